package retry

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// ARMErrorClassifier implements azsm.ErrorClassifier for Azure management
// plane errors. Throttling and transient service conditions are retryable;
// everything else, including context cancellation, is fatal.
type ARMErrorClassifier struct{}

// NewARMErrorClassifier creates a new ARM error classifier.
func NewARMErrorClassifier() *ARMErrorClassifier {
	return &ARMErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *ARMErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Cancellation is a caller decision, never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return isTransientStatus(respErr.StatusCode)
	}

	// Network-level timeouts without an HTTP response are worth retrying.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// isTransientStatus reports whether the ARM status code signals a condition
// that a later attempt may clear.
func isTransientStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, // 408
		http.StatusTooManyRequests: // 429, ARM throttling
		return true
	}
	// 5xx except 501 (Not Implemented never clears on retry).
	return status >= 500 && status != http.StatusNotImplemented
}
