package reader

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EthereumNode is the read surface the fetch engine needs from a node. It is
// implemented by OneNodeReader (a single endpoint) and RotatingNodeReader (an
// ordered pool of endpoints with failover), and by test fakes.
type EthereumNode interface {
	NodeName() string
	NodeURL() string

	// CallContract executes a read-only contract call against the latest
	// block and returns the raw return data.
	CallContract(to common.Address, data []byte) ([]byte, error)
	// GetBalance returns the native coin balance of an account at the
	// latest block.
	GetBalance(address common.Address) (*big.Int, error)
	CurrentBlock() (uint64, error)
}
