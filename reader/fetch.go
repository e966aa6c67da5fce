package reader

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	ethfetchcommon "github.com/barsava/ethfetch/common"
)

// NativeTokenSentinel is the conventional pseudo address for the chain's
// native coin. It never appears in a contract call, the orchestrator
// answers it from direct balance queries instead.
var NativeTokenSentinel = ethfetchcommon.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

// BalanceKey identifies one (wallet, token) cell in the balance and
// allowance maps.
type BalanceKey struct {
	Wallet common.Address
	Token  common.Address
}

// FetchOptions selects which lookup categories one Fetch call runs and how
// its batches are shaped. Categories that are off cost no network calls.
type FetchOptions struct {
	WantBalances  bool
	WantDecimals  bool
	WantNames     bool
	WantSymbols   bool
	WantAllowance bool
	WantENS       bool

	// Spender is the allowance counterparty, required when WantAllowance
	// is set.
	Spender common.Address

	// Names are forward-resolved and their addresses joined into the
	// wallet set. This happens whenever names are given, WantENS only
	// controls the reverse direction.
	Names []string

	DisableBatching bool
	ChunkSize       int
	Concurrency     int
}

// FetchResult carries every map a fetch produced. Failed lookups are
// simply absent from their map, a zero value always means the chain
// actually said zero.
type FetchResult struct {
	Balances   map[BalanceKey]*big.Int
	Allowance  map[BalanceKey]*big.Int
	Decimals   map[common.Address]uint64
	Names      map[common.Address]string
	Symbols    map[common.Address]string
	ENSForward map[string]common.Address
	ENSReverse map[common.Address]string

	// ResolvedWallets is the working wallet set of the fetch, the caller
	// supplied wallets first, then addresses derived from names, deduped.
	ResolvedWallets []common.Address
}

func NewFetchResult() *FetchResult {
	return &FetchResult{
		Balances:        map[BalanceKey]*big.Int{},
		Allowance:       map[BalanceKey]*big.Int{},
		Decimals:        map[common.Address]uint64{},
		Names:           map[common.Address]string{},
		Symbols:         map[common.Address]string{},
		ENSForward:      map[string]common.Address{},
		ENSReverse:      map[common.Address]string{},
		ResolvedWallets: []common.Address{},
	}
}

func (fr *FetchResult) Balance(wallet, token common.Address) (*big.Int, bool) {
	b, ok := fr.Balances[BalanceKey{Wallet: wallet, Token: token}]
	return b, ok
}

func (fr *FetchResult) AllowanceFor(wallet, token common.Address) (*big.Int, bool) {
	a, ok := fr.Allowance[BalanceKey{Wallet: wallet, Token: token}]
	return a, ok
}

// DecimalsOr returns the token's fetched decimals or def when the lookup
// failed. Defaulting is deliberately left to callers, the maps themselves
// never guess.
func (fr *FetchResult) DecimalsOr(token common.Address, def uint64) uint64 {
	if d, ok := fr.Decimals[token]; ok {
		return d
	}
	return def
}

// FetcherConfig binds a Fetcher to one chain. ENSReader may point name
// resolution at a different chain than the one balances are read from,
// nil means names resolve through Reader.
type FetcherConfig struct {
	Reader            *EthReader
	MultiCallContract common.Address

	NativeSymbol   string
	NativeName     string
	NativeDecimals uint64
	NativeSynonyms []common.Address

	ENSReader            *EthReader
	ENSRegistry          common.Address
	ENSMultiCallContract common.Address

	Logger *zap.Logger
}

// Fetcher is the read engine's public surface. Give it wallets, tokens and
// options, get back keyed maps of everything that could be read.
type Fetcher struct {
	config FetcherConfig
	logger *zap.Logger
}

func NewFetcher(config FetcherConfig) (*Fetcher, error) {
	if config.Reader == nil {
		return nil, fmt.Errorf("fetcher needs a reader")
	}
	if config.NativeDecimals == 0 {
		config.NativeDecimals = 18
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		config: config,
		logger: logger.Named("fetch"),
	}, nil
}

type fetchCategory int

const (
	catBalance fetchCategory = iota
	catDecimals
	catName
	catSymbol
	catAllowance
)

func (c fetchCategory) String() string {
	switch c {
	case catBalance:
		return "balance"
	case catDecimals:
		return "decimals"
	case catName:
		return "name"
	case catSymbol:
		return "symbol"
	case catAllowance:
		return "allowance"
	}
	return "unknown"
}

// fetchLabel remembers which map cell a batched call belongs to.
type fetchLabel struct {
	category fetchCategory
	wallet   common.Address
	token    common.Address
}

// Fetch runs every enabled lookup category for the given wallets and
// tokens and folds the answers into one result. Per entity failures leave
// holes in the maps, only an exhausted endpoint pool makes Fetch fail.
func (f *Fetcher) Fetch(wallets []common.Address, tokens []common.Address, opts FetchOptions) (*FetchResult, error) {
	initReaderMetrics()
	logger := f.logger.With(zap.String("fetch_id", uuid.NewString()))
	logger.Debug("fetch started",
		zap.Int("wallets", len(wallets)),
		zap.Int("tokens", len(tokens)),
		zap.Int("names", len(opts.Names)),
	)

	result := NewFetchResult()
	mc := f.multicallFor(opts)
	ens := f.ensFor(opts)

	resolved := []common.Address{}
	if len(opts.Names) > 0 {
		if ens == nil {
			logger.Warn("names given but no name registry is configured, skipping them",
				zap.Int("names", len(opts.Names)))
		} else {
			forward, err := ens.ResolveNames(opts.Names)
			if err != nil {
				return nil, err
			}
			result.ENSForward = forward
			for _, name := range opts.Names {
				if addr, ok := forward[NormalizeName(name)]; ok {
					resolved = append(resolved, addr)
				}
			}
		}
	}

	workingWallets := dedupAddresses(append(append([]common.Address{}, wallets...), resolved...))
	result.ResolvedWallets = workingWallets

	contracts := []common.Address{}
	natives := []common.Address{}
	for _, token := range dedupAddresses(tokens) {
		if f.isNativeAlias(token) {
			natives = append(natives, token)
		} else {
			contracts = append(contracts, token)
		}
	}

	calls, labels, err := f.buildCalls(workingWallets, contracts, opts)
	if err != nil {
		return nil, err
	}
	if len(calls) > 0 {
		results, err := mc.Aggregate(calls, true)
		if err != nil {
			return nil, err
		}
		f.fold(result, calls, labels, results)
	}

	if len(natives) > 0 {
		if err := f.fetchNatives(result, workingWallets, natives, opts, logger); err != nil {
			return nil, err
		}
	}

	if opts.WantENS && ens != nil && len(workingWallets) > 0 {
		reverse, err := ens.LookupNames(workingWallets)
		if err != nil {
			return nil, err
		}
		result.ENSReverse = reverse
	}

	logger.Debug("fetch finished",
		zap.Int("balances", len(result.Balances)),
		zap.Int("allowances", len(result.Allowance)),
		zap.Int("decimals", len(result.Decimals)),
		zap.Int("reverse_names", len(result.ENSReverse)),
	)
	return result, nil
}

func (f *Fetcher) multicallFor(opts FetchOptions) *MultiCallReader {
	contract := f.config.MultiCallContract
	if opts.DisableBatching {
		contract = common.Address{}
	}
	mc := NewMultiCallReader(f.config.Reader, contract).WithLogger(f.logger)
	if opts.ChunkSize > 0 {
		mc = mc.WithChunkSize(opts.ChunkSize)
	}
	if opts.Concurrency > 0 {
		mc = mc.WithConcurrency(opts.Concurrency)
	}
	return mc
}

func (f *Fetcher) ensFor(opts FetchOptions) *ENSReader {
	if f.config.ENSRegistry == (common.Address{}) {
		return nil
	}
	reader := f.config.ENSReader
	if reader == nil {
		reader = f.config.Reader
	}
	contract := f.config.ENSMultiCallContract
	if opts.DisableBatching {
		contract = common.Address{}
	}
	mc := NewMultiCallReader(reader, contract).WithLogger(f.logger)
	if opts.ChunkSize > 0 {
		mc = mc.WithChunkSize(opts.ChunkSize)
	}
	if opts.Concurrency > 0 {
		mc = mc.WithConcurrency(opts.Concurrency)
	}
	return NewENSReader(mc, f.config.ENSRegistry)
}

func (f *Fetcher) isNativeAlias(token common.Address) bool {
	if token == NativeTokenSentinel {
		return true
	}
	for _, syn := range f.config.NativeSynonyms {
		if syn != (common.Address{}) && token == syn {
			return true
		}
	}
	return false
}

// buildCalls lays out one mixed batch: per token metadata first, then the
// wallet by token grid. Order inside the batch is stable so results can be
// matched back through the parallel label slice.
func (f *Fetcher) buildCalls(
	wallets []common.Address,
	contracts []common.Address,
	opts FetchOptions,
) ([]Call, []fetchLabel, error) {
	calls := []Call{}
	labels := []fetchLabel{}

	push := func(category fetchCategory, wallet, token common.Address, kind ReturnKind, method string, args ...interface{}) error {
		data, err := ethfetchcommon.PackERC20Data(method, args...)
		if err != nil {
			return err
		}
		fetchLookups.WithLabelValues(category.String()).Inc()
		calls = append(calls, Call{Target: token, Data: data, Kind: kind})
		labels = append(labels, fetchLabel{category: category, wallet: wallet, token: token})
		return nil
	}

	for _, token := range contracts {
		if opts.WantDecimals {
			if err := push(catDecimals, common.Address{}, token, ReturnUint, "decimals"); err != nil {
				return nil, nil, err
			}
		}
		if opts.WantNames {
			if err := push(catName, common.Address{}, token, ReturnString, "name"); err != nil {
				return nil, nil, err
			}
		}
		if opts.WantSymbols {
			if err := push(catSymbol, common.Address{}, token, ReturnString, "symbol"); err != nil {
				return nil, nil, err
			}
		}
	}
	for _, wallet := range wallets {
		for _, token := range contracts {
			if opts.WantBalances {
				if err := push(catBalance, wallet, token, ReturnUint, "balanceOf", wallet); err != nil {
					return nil, nil, err
				}
			}
			if opts.WantAllowance {
				if err := push(catAllowance, wallet, token, ReturnUint, "allowance", wallet, opts.Spender); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	return calls, labels, nil
}

// fold routes decoded batch results into their maps. The call's kind picks
// the decoder, the label picks the destination.
func (f *Fetcher) fold(result *FetchResult, calls []Call, labels []fetchLabel, results []CallResult) {
	for i, res := range results {
		if !res.Success {
			continue
		}
		label := labels[i]
		switch calls[i].Kind {
		case ReturnUint:
			v, ok := DecodeUint(res.ReturnData)
			if !ok {
				continue
			}
			switch label.category {
			case catBalance:
				result.Balances[BalanceKey{Wallet: label.wallet, Token: label.token}] = v
			case catAllowance:
				result.Allowance[BalanceKey{Wallet: label.wallet, Token: label.token}] = v
			case catDecimals:
				if v.IsUint64() {
					result.Decimals[label.token] = v.Uint64()
				}
			}
		case ReturnString:
			s, ok := DecodeString(res.ReturnData)
			if !ok {
				continue
			}
			switch label.category {
			case catName:
				result.Names[label.token] = s
			case catSymbol:
				result.Symbols[label.token] = s
			}
		}
	}
}

// fetchNatives answers native aliases with direct balance queries and
// synthesized metadata. Existing map entries are never overwritten.
func (f *Fetcher) fetchNatives(
	result *FetchResult,
	wallets []common.Address,
	natives []common.Address,
	opts FetchOptions,
	logger *zap.Logger,
) error {
	if opts.WantBalances {
		for _, wallet := range wallets {
			fetchLookups.WithLabelValues("native_balance").Inc()
			balance, err := f.config.Reader.GetBalance(wallet)
			if err != nil {
				if isPoolExhausted(err) {
					return err
				}
				logger.Warn("native balance query failed",
					zap.String("wallet", wallet.Hex()),
					zap.Error(err),
				)
				continue
			}
			for _, native := range natives {
				result.Balances[BalanceKey{Wallet: wallet, Token: native}] = balance
			}
		}
	}
	for _, native := range natives {
		if opts.WantDecimals {
			if _, ok := result.Decimals[native]; !ok {
				result.Decimals[native] = f.config.NativeDecimals
			}
		}
		if opts.WantNames && f.config.NativeName != "" {
			if _, ok := result.Names[native]; !ok {
				result.Names[native] = f.config.NativeName
			}
		}
		if opts.WantSymbols && f.config.NativeSymbol != "" {
			if _, ok := result.Symbols[native]; !ok {
				result.Symbols[native] = f.config.NativeSymbol
			}
		}
	}
	return nil
}

func dedupAddresses(addrs []common.Address) []common.Address {
	seen := map[common.Address]bool{}
	out := []common.Address{}
	for _, a := range addrs {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
