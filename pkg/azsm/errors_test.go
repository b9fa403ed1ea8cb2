package azsm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/azsm/pkg/azsm"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, azsm.ExitSuccess},
		{"general error", errors.New("something went wrong"), azsm.ExitGeneralError},
		{"invalid config", azsm.ErrInvalidConfig, azsm.ExitConfigError},
		{"credential not found", azsm.ErrCredentialNotFound, azsm.ExitCredentialMissing},
		{"auth rejected", azsm.ErrAuthenticationRejected, azsm.ExitAuthRejected},
		{"approval denied", azsm.ErrApprovalDenied, azsm.ExitApprovalDenied},
		{"remote failed", azsm.ErrRemoteOperationFailed, azsm.ExitRemoteError},
		{"wrapped sentinel", fmt.Errorf("server get: %w", azsm.ErrRemoteOperationFailed), azsm.ExitRemoteError},
		{"unknown flag", errors.New("unknown flag --foo"), azsm.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), azsm.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), azsm.ExitUsageError},
		{"required flag", errors.New("required flag \"name\" not set"), azsm.ExitUsageError},
		{"connection refused", errors.New("dial tcp: connection refused"), azsm.ExitRemoteError},
		{"no such host", errors.New("dial tcp: lookup management.azure.invalid: no such host"), azsm.ExitRemoteError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := azsm.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
