package reader

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const RetryDelay time.Duration = 100 * time.Millisecond

var (
	// ErrNoEndpoints means every endpoint in the pool failed at the
	// transport level. The last transport error is wrapped so callers can
	// still inspect it.
	ErrNoEndpoints = errors.New("all rpc endpoints unreachable")

	// ErrRateLimited means every endpoint answered but all of them were
	// throttling us. Callers that care can back off and try again later.
	ErrRateLimited = errors.New("all rpc endpoints rate limited")
)

// RotatingNodeReaderConfig configures a RotatingNodeReader. Only Name and
// URLs are required.
type RotatingNodeReaderConfig struct {
	Name       string
	URLs       []string
	RetryDelay time.Duration
	Limiter    *rate.Limiter
	Logger     *zap.Logger
}

// RotatingNodeReader fans requests over an ordered pool of endpoints. It
// sticks to the current endpoint while it keeps answering and only moves
// on when the endpoint dies or starts throttling. The cursor is shared
// across goroutines so one caller discovering a dead endpoint spares the
// others from hitting it again.
type RotatingNodeReader struct {
	name       string
	nodes      []*OneNodeReader
	retryDelay time.Duration
	limiter    *rate.Limiter
	logger     *zap.Logger

	mu     sync.Mutex
	cursor int
}

// NewRotatingNodeReader builds a pool over urls with default settings.
// URLs are trimmed and deduplicated, first occurrence wins, order is kept.
func NewRotatingNodeReader(name string, urls []string) (*RotatingNodeReader, error) {
	return NewRotatingNodeReaderFromConfig(RotatingNodeReaderConfig{
		Name: name,
		URLs: urls,
	})
}

func NewRotatingNodeReaderFromConfig(config RotatingNodeReaderConfig) (*RotatingNodeReader, error) {
	urls := dedupURLs(config.URLs)
	if len(urls) == 0 {
		return nil, fmt.Errorf("rpc pool %s: no endpoint urls provided", config.Name)
	}
	nodes := []*OneNodeReader{}
	for i, url := range urls {
		nodes = append(nodes, NewOneNodeReader(fmt.Sprintf("%s-%d", config.Name, i), url))
	}
	delay := config.RetryDelay
	if delay == 0 {
		delay = RetryDelay
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RotatingNodeReader{
		name:       config.Name,
		nodes:      nodes,
		retryDelay: delay,
		limiter:    config.Limiter,
		logger:     logger.Named("rpc"),
	}, nil
}

func dedupURLs(urls []string) []string {
	seen := map[string]bool{}
	result := []string{}
	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		result = append(result, url)
	}
	return result
}

func (r *RotatingNodeReader) NodeName() string {
	return r.name
}

// NodeURL returns the url of the endpoint the pool is currently pinned to.
func (r *RotatingNodeReader) NodeURL() string {
	return r.currentNode().NodeURL()
}

// URLs returns the pool's endpoints in rotation order.
func (r *RotatingNodeReader) URLs() []string {
	result := []string{}
	for _, node := range r.nodes {
		result = append(result, node.NodeURL())
	}
	return result
}

func (r *RotatingNodeReader) currentNode() *OneNodeReader {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nodes[r.cursor]
}

func (r *RotatingNodeReader) rotate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = (r.cursor + 1) % len(r.nodes)
}

// do runs fn against the current endpoint and walks the pool on failure.
// A transport failure or a rate-limit answer moves the cursor and retries
// after a short pause. Any other node answer is final, the node did its
// job, repeating the question elsewhere would only get the same answer.
// At most len(pool) attempts are made per call.
func (r *RotatingNodeReader) do(op string, fn func(node *OneNodeReader) error) error {
	initReaderMetrics()
	var lastTransportErr error
	total := len(r.nodes)
	for attempt := 0; attempt < total; attempt++ {
		if r.limiter != nil {
			if err := r.limiter.Wait(context.Background()); err != nil {
				return err
			}
		}
		node := r.currentNode()
		nodeRequests.WithLabelValues(r.name, op).Inc()
		err := fn(node)
		if err == nil {
			return nil
		}
		switch {
		case IsRateLimitError(err):
			endpointRotations.WithLabelValues(r.name, "rate_limit").Inc()
			r.logger.Debug("endpoint rate limited, rotating",
				zap.String("node", node.NodeName()),
				zap.String("op", op),
				zap.Error(err),
			)
			r.rotate()
		case isRPCError(err):
			return err
		default:
			lastTransportErr = err
			endpointRotations.WithLabelValues(r.name, "transport").Inc()
			r.logger.Debug("endpoint unreachable, rotating",
				zap.String("node", node.NodeName()),
				zap.String("op", op),
				zap.Error(err),
			)
			r.rotate()
		}
		if attempt < total-1 {
			time.Sleep(r.retryDelay)
		}
	}
	if lastTransportErr != nil {
		poolExhaustions.WithLabelValues(r.name, "unreachable").Inc()
		r.logger.Warn("rpc pool exhausted",
			zap.String("op", op),
			zap.Error(lastTransportErr),
		)
		return fmt.Errorf("%w: %w", ErrNoEndpoints, lastTransportErr)
	}
	poolExhaustions.WithLabelValues(r.name, "rate_limited").Inc()
	r.logger.Warn("rpc pool exhausted, all endpoints rate limited",
		zap.String("op", op),
	)
	return fmt.Errorf("%w: pool %s", ErrRateLimited, r.name)
}

func (r *RotatingNodeReader) CallContract(to common.Address, data []byte) ([]byte, error) {
	var result []byte
	err := r.do("eth_call", func(node *OneNodeReader) error {
		res, callErr := node.CallContract(to, data)
		if callErr != nil {
			return callErr
		}
		result = res
		return nil
	})
	return result, err
}

func (r *RotatingNodeReader) GetBalance(address common.Address) (*big.Int, error) {
	var result *big.Int
	err := r.do("eth_getBalance", func(node *OneNodeReader) error {
		res, callErr := node.GetBalance(address)
		if callErr != nil {
			return callErr
		}
		result = res
		return nil
	})
	return result, err
}

func (r *RotatingNodeReader) CurrentBlock() (uint64, error) {
	var result uint64
	err := r.do("eth_blockNumber", func(node *OneNodeReader) error {
		res, callErr := node.CurrentBlock()
		if callErr != nil {
			return callErr
		}
		result = res
		return nil
	})
	return result, err
}
