package azsm

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	token, err := provider.Authenticate(ctx, clientID, audience)
//	if errors.Is(err, azsm.ErrCredentialNotFound) {
//	    // Handle missing key-store entry
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCredentialNotFound indicates the key store holds no secret for the
	// requested client/tenant pair.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrAuthenticationRejected indicates the identity provider denied the
	// token exchange.
	ErrAuthenticationRejected = errors.New("authentication rejected")

	// ErrRemoteOperationFailed indicates a management-plane call failed.
	ErrRemoteOperationFailed = errors.New("remote operation failed")

	// ErrApprovalDenied indicates the user denied approval for the operation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrSecretDestroyed indicates a protected secret was used after Destroy().
	ErrSecretDestroyed = errors.New("secret already destroyed")

	// ErrNotImplemented indicates a feature is not yet implemented.
	ErrNotImplemented = errors.New("not implemented")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrCredentialNotFound):
		return ExitCredentialMissing
	case errors.Is(err, ErrAuthenticationRejected):
		return ExitAuthRejected
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrRemoteOperationFailed):
		return ExitRemoteError
	case errors.Is(err, ErrSecretDestroyed):
		return ExitConfigError
	}

	errStr := err.Error()

	// Cobra reports flag/argument misuse as plain errors; map them to the
	// conventional usage exit code.
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "invalid argument") ||
		strings.Contains(errStr, "accepts ") {
		return ExitUsageError
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return ExitRemoteError
	}

	return ExitGeneralError
}
