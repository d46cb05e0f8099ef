package upstream

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/reception-gateway/pkg/errors"
)

func classify(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	appErr := ClassifyTransportError(err)
	require.NotNil(t, appErr)
	return appErr
}

func TestClassifyDeadline(t *testing.T) {
	wrapped := &url.Error{Op: "Get", URL: "https://x", Err: context.DeadlineExceeded}
	assert.Equal(t, apperrors.ErrUpstreamTimeout, classify(t, wrapped).Code)
}

func TestClassifyDNSFailure(t *testing.T) {
	wrapped := &url.Error{Op: "Get", URL: "https://x", Err: &net.OpError{
		Op:  "dial",
		Err: &net.DNSError{Name: "host.invalid", Err: "no such host", IsNotFound: true},
	}}
	assert.Equal(t, apperrors.ErrUpstreamUnreachable, classify(t, wrapped).Code)
}

func TestClassifyConnectionRefused(t *testing.T) {
	wrapped := &url.Error{Op: "Get", URL: "https://x", Err: &net.OpError{
		Op:  "dial",
		Err: syscall.ECONNREFUSED,
	}}
	assert.Equal(t, apperrors.ErrUpstreamUnreachable, classify(t, wrapped).Code)
}

func TestClassifyUnknownIsInternal(t *testing.T) {
	assert.Equal(t, apperrors.ErrInternal, classify(t, errors.New("wire gremlins")).Code)
}
