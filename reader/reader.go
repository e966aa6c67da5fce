package reader

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	ethfetchcommon "github.com/barsava/ethfetch/common"
)

// EthReader exposes typed contract reads on top of an EthereumNode. The
// node decides where requests actually go, a RotatingNodeReader walks its
// endpoint pool, a OneNodeReader just asks the one node it has.
type EthReader struct {
	node EthereumNode
}

func NewEthReader(node EthereumNode) *EthReader {
	return &EthReader{node: node}
}

// NewEthReaderFromURLs builds a reader over a rotating pool of endpoints.
func NewEthReaderFromURLs(name string, urls []string) (*EthReader, error) {
	node, err := NewRotatingNodeReader(name, urls)
	if err != nil {
		return nil, err
	}
	return NewEthReader(node), nil
}

func (er *EthReader) Node() EthereumNode {
	return er.node
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

func (er *EthReader) ReadContractToBytes(
	caddr common.Address,
	a *abi.ABI,
	method string,
	args ...interface{},
) ([]byte, error) {
	data, err := a.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s call failed: %w", method, err)
	}
	res, err := er.node.CallContract(caddr, data)
	return res, wrapError(err, er.node.NodeName())
}

func (er *EthReader) ReadContractWithABI(
	result interface{},
	caddr common.Address,
	a *abi.ABI,
	method string,
	args ...interface{},
) error {
	responseBytes, err := er.ReadContractToBytes(caddr, a, method, args...)
	if err != nil {
		return err
	}
	return a.UnpackIntoInterface(result, method, responseBytes)
}

func (er *EthReader) ERC20Balance(caddr common.Address, user common.Address) (*big.Int, error) {
	abi := ethfetchcommon.GetERC20ABI()
	result := big.NewInt(0)
	err := er.ReadContractWithABI(&result, caddr, abi, "balanceOf", user)
	return result, err
}

func (er *EthReader) ERC20Decimal(caddr common.Address) (uint64, error) {
	abi := ethfetchcommon.GetERC20ABI()
	var result uint8
	err := er.ReadContractWithABI(&result, caddr, abi, "decimals")
	return uint64(result), err
}

func (er *EthReader) ERC20Name(caddr common.Address) (string, error) {
	abi := ethfetchcommon.GetERC20ABI()
	var result string
	err := er.ReadContractWithABI(&result, caddr, abi, "name")
	return result, err
}

func (er *EthReader) ERC20Symbol(caddr common.Address) (string, error) {
	abi := ethfetchcommon.GetERC20ABI()
	var result string
	err := er.ReadContractWithABI(&result, caddr, abi, "symbol")
	return result, err
}

func (er *EthReader) ERC20Allowance(
	caddr common.Address,
	owner common.Address,
	spender common.Address,
) (*big.Int, error) {
	abi := ethfetchcommon.GetERC20ABI()
	result := big.NewInt(0)
	err := er.ReadContractWithABI(&result, caddr, abi, "allowance", owner, spender)
	return result, err
}

func (er *EthReader) GetBalance(address common.Address) (*big.Int, error) {
	balance, err := er.node.GetBalance(address)
	return balance, wrapError(err, er.node.NodeName())
}

func (er *EthReader) CurrentBlock() (uint64, error) {
	block, err := er.node.CurrentBlock()
	return block, wrapError(err, er.node.NodeName())
}
