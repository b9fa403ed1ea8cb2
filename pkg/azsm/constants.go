package azsm

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Operation completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration or parameters
	ExitCredentialMissing = 11 // Key store has no secret for the client/tenant pair
	ExitAuthRejected      = 12 // Identity provider denied the token exchange
	ExitApprovalDenied    = 13 // User denied destructive-operation approval
	ExitRemoteError       = 14 // Management-plane call failed
)

const (
	// DefaultScopeSuffix is appended to an audience to derive the effective
	// OAuth scope when the caller supplies no explicit scopes. Entra ID
	// resolves "<audience>/.default" to the application's configured
	// permissions for that resource.
	DefaultScopeSuffix = "/.default"

	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 500 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 30 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts
	// for management-plane reads and upserts.
	DefaultRetryMaxAttempts = 3

	// SecretRedaction is the placeholder printed wherever a protected secret
	// would otherwise appear.
	SecretRedaction = "[REDACTED]"
)
