package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	apperrors "github.com/jwalitptl/reception-gateway/pkg/errors"
)

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Resource string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.Resource, e.Status)
}

// ClassifyTransportError maps a failed upstream round-trip onto the gateway
// error taxonomy: deadline expiry becomes a timeout (504), unreachable hosts
// (DNS failure, connection refused) become bad gateway (502), anything else
// is internal (500).
func ClassifyTransportError(err error) *apperrors.AppError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.UpstreamTimeout(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.UpstreamTimeout(err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return apperrors.UpstreamUnreachable("upstream host could not be resolved", err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return apperrors.UpstreamUnreachable("upstream connection refused", err)
	}
	return apperrors.Internal(err)
}
