package clientcontroller

import (
	"context"
	"errors"
	"net"

	"github.com/ethereum/go-ethereum/rpc"
)

// IsTransientError tells whether a failed request may succeed if repeated.
// Errors reported by the node itself are final, so are caller cancellations.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}

	return errors.Is(err, rpc.ErrClientQuit)
}
