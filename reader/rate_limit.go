package reader

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

// Providers rarely agree on how to say "slow down". Some return HTTP 429,
// some a JSON-RPC error with a vendor code, some just put it in the message.
// The default lists below cover the providers we have seen in the wild,
// deployments can extend them for exotic gateways.
var (
	RateLimitTokens = []string{
		"rate limit",
		"too many requests",
		"daily request count exceeded",
		"exceeded",
		"request limit",
		"over capacity",
		"project id request rate exceeded",
	}

	RateLimitCodes = []int{-32005, -32000, 429}
)

// IsRateLimitError reports whether err is the endpoint telling us to back
// off rather than a real application-level failure. Only errors carrying a
// JSON-RPC error object or an HTTP status are considered, transport
// failures are classified separately.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 429
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		code := rpcErr.ErrorCode()
		for _, c := range RateLimitCodes {
			if code == c {
				return true
			}
		}
		msg := strings.ToLower(rpcErr.Error())
		for _, token := range RateLimitTokens {
			if strings.Contains(msg, token) {
				return true
			}
		}
	}
	return false
}

// isRPCError reports whether err carries a JSON-RPC error object, meaning
// the request reached a node and the node answered. Anything else is a
// transport failure (dial, timeout, bad gateway) worth retrying elsewhere.
func isRPCError(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr)
}
