package reader

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ethfetchcommon "github.com/barsava/ethfetch/common"
)

const MaxCallsPerChunk = 500

// Call is one contract read inside a batch. Kind picks the decoder the
// caller will apply to the result bytes.
type Call struct {
	Target common.Address
	Data   []byte
	Kind   ReturnKind
}

// CallResult mirrors the aggregator's per call result tuple. Success false
// means the call reverted or could not be submitted, ReturnData is then
// meaningless.
type CallResult struct {
	Success    bool
	ReturnData []byte
}

// MultiCallReader runs many independent reads as aggregate3 batches
// against a Multicall3 deployment. A zero contract address means the chain
// has no aggregator, batches then degrade to one call per request.
type MultiCallReader struct {
	reader      *EthReader
	contract    common.Address
	chunkSize   int
	concurrency int
	logger      *zap.Logger
}

func NewMultiCallReader(r *EthReader, contract common.Address) *MultiCallReader {
	return &MultiCallReader{
		reader:      r,
		contract:    contract,
		chunkSize:   MaxCallsPerChunk,
		concurrency: 1,
		logger:      zap.NewNop(),
	}
}

func (mc *MultiCallReader) WithChunkSize(n int) *MultiCallReader {
	if n > 0 {
		mc.chunkSize = n
	}
	return mc
}

func (mc *MultiCallReader) WithConcurrency(n int) *MultiCallReader {
	if n > 0 {
		mc.concurrency = n
	}
	return mc
}

func (mc *MultiCallReader) WithLogger(l *zap.Logger) *MultiCallReader {
	if l != nil {
		mc.logger = l.Named("multicall")
	}
	return mc
}

// aggregate3 tuple layouts, field names line up with the abi components.
type call3 struct {
	Target       common.Address
	AllowFailure bool
	CallData     []byte
}

type result3 struct {
	Success    bool
	ReturnData []byte
}

// Aggregate executes calls and returns one result per call, in input
// order. Batches over the chunk size are split, the split is invisible in
// the output. A batch whose submission fails is retried call by call, only
// an exhausted endpoint pool aborts the whole run.
func (mc *MultiCallReader) Aggregate(calls []Call, allowPartialFailure bool) ([]CallResult, error) {
	initReaderMetrics()
	results := make([]CallResult, len(calls))
	if len(calls) == 0 {
		return results, nil
	}
	group := errgroup.Group{}
	group.SetLimit(mc.concurrency)
	for start := 0; start < len(calls); start += mc.chunkSize {
		end := start + mc.chunkSize
		if end > len(calls) {
			end = len(calls)
		}
		chunk := calls[start:end]
		out := results[start:end]
		group.Go(func() error {
			return mc.runChunk(chunk, allowPartialFailure, out)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (mc *MultiCallReader) runChunk(chunk []Call, allowPartialFailure bool, out []CallResult) error {
	if mc.contract == (common.Address{}) {
		return mc.runOneByOne(chunk, allowPartialFailure, out)
	}
	multicallChunks.Inc()
	err := mc.runAggregated(chunk, allowPartialFailure, out)
	if err == nil {
		return nil
	}
	if isPoolExhausted(err) {
		return err
	}
	mc.logger.Warn("aggregate3 batch failed, degrading to one by one calls",
		zap.Int("calls", len(chunk)),
		zap.Error(err),
	)
	return mc.runOneByOne(chunk, allowPartialFailure, out)
}

func (mc *MultiCallReader) runAggregated(chunk []Call, allowPartialFailure bool, out []CallResult) error {
	args := []call3{}
	for _, c := range chunk {
		args = append(args, call3{c.Target, allowPartialFailure, c.Data})
	}
	res := []result3{}
	err := mc.reader.ReadContractWithABI(&res, mc.contract, ethfetchcommon.GetMultiCallABI(), "aggregate3", args)
	if err != nil {
		return err
	}
	if len(res) != len(chunk) {
		return fmt.Errorf("aggregate3 returned %d results for %d calls", len(res), len(chunk))
	}
	for i := range res {
		out[i] = CallResult{Success: res[i].Success, ReturnData: res[i].ReturnData}
	}
	return nil
}

func (mc *MultiCallReader) runOneByOne(chunk []Call, allowPartialFailure bool, out []CallResult) error {
	for i, c := range chunk {
		multicallFallbacks.Inc()
		data, err := mc.reader.node.CallContract(c.Target, c.Data)
		if err != nil {
			if isPoolExhausted(err) {
				return err
			}
			if !allowPartialFailure {
				return fmt.Errorf("call %d to %s failed: %w", i, c.Target.Hex(), err)
			}
			out[i] = CallResult{Success: false}
			continue
		}
		out[i] = CallResult{Success: true, ReturnData: data}
	}
	return nil
}

func isPoolExhausted(err error) bool {
	return errors.Is(err, ErrNoEndpoints) || errors.Is(err, ErrRateLimited)
}
