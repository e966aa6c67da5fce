package util

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	ethfetchcommon "github.com/barsava/ethfetch/common"
	"github.com/barsava/ethfetch/reader"
	"github.com/barsava/ethfetch/ui"
)

const unknownCell = "?"

// shortHex renders an address as 0x1234..cdef for table cells where the
// full 42 characters would drown everything else.
func shortHex(a common.Address) string {
	h := a.Hex()
	return h[:6] + ".." + h[len(h)-4:]
}

// ── Severity helpers ─────────────────────────────────────────────────────────

// styledSymbol prefers the on-chain symbol, rendered green. A token that
// never answered symbol() falls back to its shortened address in yellow so
// the reader knows the column head is a placeholder, not a verified ticker.
func styledSymbol(token common.Address, result *reader.FetchResult) ui.StyledText {
	if sym := result.Symbols[token]; sym != "" {
		return ui.StyledText{Text: sym, Severity: ui.SeveritySuccess}
	}
	return ui.StyledText{Text: shortHex(token), Severity: ui.SeverityWarn}
}

// styledAmount formats a known amount with the token's decimals. An amount
// the chain never answered is a red "?", absence stays distinct from zero.
func styledAmount(v *big.Int, ok bool, decimals uint64) ui.StyledText {
	if !ok {
		return ui.StyledText{Text: unknownCell, Severity: ui.SeverityError}
	}
	return ui.StyledText{Text: ethfetchcommon.BigToFloatString(v, decimals)}
}

// styledWalletName renders a reverse-resolved primary name green; wallets
// without one get an empty cell.
func styledWalletName(wallet common.Address, result *reader.FetchResult) ui.StyledText {
	if name := result.ENSReverse[wallet]; name != "" {
		return ui.StyledText{Text: name, Severity: ui.SeveritySuccess}
	}
	return ui.StyledText{}
}

// ── Build phase (pure: no UI side-effects) ──────────────────────────────────

func buildTokenColumns(tokens []common.Address, result *reader.FetchResult, defaultDecimals uint64) []TokenColumn {
	cols := make([]TokenColumn, 0, len(tokens))
	for _, t := range tokens {
		col := TokenColumn{
			Address: t.Hex(),
			Symbol:  styledSymbol(t, result),
			Name:    result.Names[t],
		}
		if d, ok := result.Decimals[t]; ok {
			col.Decimals = strconv.FormatUint(d, 10)
		} else {
			col.Decimals = strconv.FormatUint(defaultDecimals, 10) + " (default)"
		}
		cols = append(cols, col)
	}
	return cols
}

// buildGrid fills one wallet row per wallet and, when there is more than
// one row, a totals row summing every column over the wallets that had a
// known amount. A column where no wallet answered totals to "?".
func buildGrid(
	wallets, tokens []common.Address,
	result *reader.FetchResult,
	defaultDecimals uint64,
	amount func(wallet, token common.Address) (*big.Int, bool),
) ([]WalletRow, []ui.StyledText) {
	rows := make([]WalletRow, 0, len(wallets))
	sums := make([]*big.Int, len(tokens))
	for _, w := range wallets {
		row := WalletRow{
			Address: w.Hex(),
			Name:    styledWalletName(w, result),
			Cells:   make([]ui.StyledText, 0, len(tokens)),
		}
		for i, t := range tokens {
			v, ok := amount(w, t)
			row.Cells = append(row.Cells, styledAmount(v, ok, result.DecimalsOr(t, defaultDecimals)))
			if ok {
				if sums[i] == nil {
					sums[i] = big.NewInt(0)
				}
				sums[i].Add(sums[i], v)
			}
		}
		rows = append(rows, row)
	}
	if len(rows) < 2 {
		return rows, nil
	}
	totals := make([]ui.StyledText, 0, len(tokens))
	for i, t := range tokens {
		cell := styledAmount(sums[i], sums[i] != nil, result.DecimalsOr(t, defaultDecimals))
		if sums[i] != nil {
			cell.Severity = ui.SeverityCritical
		}
		totals = append(totals, cell)
	}
	return rows, totals
}

// BuildBalanceReport assembles the wallets × tokens balance grid out of one
// fetch result. Unknown balances become "?" cells rather than zeros, so a
// dead token contract is never mistaken for an empty wallet.
func BuildBalanceReport(
	network string, block uint64,
	wallets, tokens []common.Address,
	result *reader.FetchResult,
	defaultDecimals uint64,
) *BalanceReport {
	r := &BalanceReport{
		Network: network,
		Tokens:  buildTokenColumns(tokens, result, defaultDecimals),
	}
	if block > 0 {
		r.Block = strconv.FormatUint(block, 10)
	}
	r.Wallets, r.Totals = buildGrid(wallets, tokens, result, defaultDecimals, result.Balance)
	return r
}

// BuildAllowanceReport is BuildBalanceReport for the allowance grid: each
// cell is what spender may still pull out of that wallet's token balance.
func BuildAllowanceReport(
	network string, block uint64, spender common.Address,
	wallets, tokens []common.Address,
	result *reader.FetchResult,
	defaultDecimals uint64,
) *BalanceReport {
	r := &BalanceReport{
		Network: network,
		Spender: spender.Hex(),
		Tokens:  buildTokenColumns(tokens, result, defaultDecimals),
	}
	if block > 0 {
		r.Block = strconv.FormatUint(block, 10)
	}
	r.Wallets, r.Totals = buildGrid(wallets, tokens, result, defaultDecimals, result.AllowanceFor)
	return r
}

// BuildResolveReport assembles forward and reverse resolution tables.
// Inputs keep their caller order; unresolved entries render a red "?" so
// the reader can tell "asked, no primary name" apart from a typo.
func BuildResolveReport(network string, names []string, wallets []common.Address, result *reader.FetchResult) *ResolveReport {
	r := &ResolveReport{Network: network}
	for _, name := range names {
		row := ResolveRow{Input: name}
		if addr, ok := result.ENSForward[reader.NormalizeName(name)]; ok {
			row.Result = ui.StyledText{Text: addr.Hex(), Severity: ui.SeveritySuccess}
		} else {
			row.Result = ui.StyledText{Text: unknownCell, Severity: ui.SeverityError}
		}
		r.Forward = append(r.Forward, row)
	}
	for _, w := range wallets {
		row := ResolveRow{Input: w.Hex()}
		if name := result.ENSReverse[w]; name != "" {
			row.Result = ui.StyledText{Text: name, Severity: ui.SeveritySuccess}
		} else {
			row.Result = ui.StyledText{Text: unknownCell, Severity: ui.SeverityError}
		}
		r.Reverse = append(r.Reverse, row)
	}
	return r
}

// ── Print phase (reads only from the display struct, colours via u.Style) ────

func reportHasNames(r *BalanceReport) bool {
	for _, w := range r.Wallets {
		if w.Name.Text != "" {
			return true
		}
	}
	return false
}

// PrintBalanceReport renders one grid report. Token metadata goes first as
// a key/value block, then the grid itself. The totals row, when present,
// sits in its own table group under a divider.
func PrintBalanceReport(u ui.UI, r *BalanceReport) {
	if r.Spender != "" {
		u.Section("allowances granted to " + r.Spender + " on " + r.Network)
	} else {
		u.Section("balances on " + r.Network)
	}
	meta := [][2]string{}
	if r.Block != "" {
		meta = append(meta, [2]string{"block", r.Block})
	}
	for _, t := range r.Tokens {
		desc := t.Address + "  decimals " + t.Decimals
		if t.Name != "" {
			desc = t.Name + "  " + desc
		}
		meta = append(meta, [2]string{u.Style(t.Symbol), desc})
	}
	if len(meta) > 0 {
		u.KeyValue(meta)
	}

	withNames := reportHasNames(r)
	headers := []string{"wallet"}
	if withNames {
		headers = append(headers, "name")
	}
	for _, t := range r.Tokens {
		headers = append(headers, u.Style(t.Symbol))
	}

	rows := make([][]string, 0, len(r.Wallets))
	for _, w := range r.Wallets {
		row := []string{w.Address}
		if withNames {
			row = append(row, u.Style(w.Name))
		}
		for _, c := range w.Cells {
			row = append(row, u.Style(c))
		}
		rows = append(rows, row)
	}

	if r.Totals == nil {
		u.Table(headers, rows)
		return
	}
	total := []string{"TOTAL"}
	if withNames {
		total = append(total, "")
	}
	for _, c := range r.Totals {
		total = append(total, u.Style(c))
	}
	u.TableWithGroups(headers, [][][]string{rows, {total}})
}

// PrintResolveReport renders the forward and reverse resolution tables.
func PrintResolveReport(u ui.UI, r *ResolveReport) {
	u.Section("name resolution on " + r.Network)
	if len(r.Forward) > 0 {
		rows := make([][]string, 0, len(r.Forward))
		for _, row := range r.Forward {
			rows = append(rows, []string{row.Input, u.Style(row.Result)})
		}
		u.Table([]string{"name", "address"}, rows)
	}
	if len(r.Reverse) > 0 {
		rows := make([][]string, 0, len(r.Reverse))
		for _, row := range r.Reverse {
			rows = append(rows, []string{row.Input, u.Style(row.Result)})
		}
		u.Table([]string{"address", "name"}, rows)
	}
	if len(r.Forward) == 0 && len(r.Reverse) == 0 {
		u.Info("nothing to resolve")
	}
}
