package reader_test

import (
	"bytes"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	ethfetchcommon "github.com/barsava/ethfetch/common"
	"github.com/barsava/ethfetch/reader"
)

// ---------------------------------------------------------------------------
// In-memory node
//
// fakeNode answers contract reads from a scripted handler instead of a real
// endpoint. Calls addressed to the configured multicall contract are decoded
// as aggregate3 batches and answered per inner call through the same handler,
// so tests observe exactly how work is batched without any network.
// ---------------------------------------------------------------------------

type fakeNode struct {
	multicall common.Address
	handle    func(target common.Address, data []byte) ([]byte, error)

	mu         sync.Mutex
	aggBatches []int // sizes of the aggregate3 batches actually served
	aggFail    int   // batches to reject at submission before serving any
	aggErr     error // error those rejections return, nil means a generic one
	direct     int   // contract reads that bypassed the aggregator
	balances   map[common.Address]*big.Int
	balanceErr error
	block      uint64
}

var _ reader.EthereumNode = (*fakeNode)(nil)

func newFakeNode(multicall common.Address) *fakeNode {
	return &fakeNode{
		multicall: multicall,
		balances:  map[common.Address]*big.Int{},
	}
}

func (f *fakeNode) NodeName() string { return "fake" }
func (f *fakeNode) NodeURL() string  { return "mem://fake" }

func (f *fakeNode) CallContract(to common.Address, data []byte) ([]byte, error) {
	if to == f.multicall && len(data) >= 4 && bytes.Equal(data[:4], aggregate3ID) {
		return f.serveAggregate3(data)
	}
	f.mu.Lock()
	f.direct++
	f.mu.Unlock()
	return f.handle(to, data)
}

func (f *fakeNode) serveAggregate3(data []byte) ([]byte, error) {
	f.mu.Lock()
	if f.aggFail > 0 {
		f.aggFail--
		err := f.aggErr
		f.mu.Unlock()
		if err == nil {
			err = errors.New("aggregate3 rejected")
		}
		return nil, err
	}
	f.mu.Unlock()

	calls, err := unpackAggregate3(data)
	if err != nil {
		return nil, err
	}
	results := make([]aggResult, len(calls))
	for i, c := range calls {
		ret, err := f.handle(c.Target, c.CallData)
		if err != nil {
			results[i] = aggResult{Success: false}
			continue
		}
		results[i] = aggResult{Success: true, ReturnData: ret}
	}
	f.mu.Lock()
	f.aggBatches = append(f.aggBatches, len(calls))
	f.mu.Unlock()
	return packAggregate3(results)
}

func (f *fakeNode) GetBalance(address common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	if b, ok := f.balances[address]; ok {
		return b, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeNode) CurrentBlock() (uint64, error) {
	return f.block, nil
}

func (f *fakeNode) servedBatches() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int{}, f.aggBatches...)
}

func (f *fakeNode) directCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.direct
}

// ---------------------------------------------------------------------------
// aggregate3 wire helpers
// ---------------------------------------------------------------------------

type aggCall struct {
	Target       common.Address
	AllowFailure bool
	CallData     []byte
}

type aggResult struct {
	Success    bool
	ReturnData []byte
}

var aggregate3ID = ethfetchcommon.GetMultiCallABI().Methods["aggregate3"].ID

func unpackAggregate3(data []byte) ([]aggCall, error) {
	method := ethfetchcommon.GetMultiCallABI().Methods["aggregate3"]
	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(values[0], new([]aggCall)).(*[]aggCall), nil
}

func packAggregate3(results []aggResult) ([]byte, error) {
	method := ethfetchcommon.GetMultiCallABI().Methods["aggregate3"]
	return method.Outputs.Pack(results)
}

// uintWord encodes v as a single uint256 return word.
func uintWord(v uint64) []byte {
	word := make([]byte, 32)
	big.NewInt(0).SetUint64(v).FillBytes(word)
	return word
}

// addressWord encodes a as a single address return word.
func addressWord(a common.Address) []byte {
	word := make([]byte, 32)
	copy(word[12:], a.Bytes())
	return word
}
