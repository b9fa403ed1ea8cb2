package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vvka-141/azsm/pkg/azsm"
)

// ForcedApprover implements the Approver interface for forced
// (non-interactive) approval. It displays a countdown and automatically
// approves afterwards, used when the --force flag is provided.
type ForcedApprover struct {
	out       io.Writer
	countdown time.Duration
	sleepFn   func(time.Duration)
}

// NewForcedApprover creates a ForcedApprover with the default countdown.
func NewForcedApprover() azsm.Approver {
	return &ForcedApprover{
		out:       os.Stderr,
		countdown: azsm.DefaultForceApprovalCountdown,
		sleepFn:   time.Sleep,
	}
}

// RequestApproval displays a countdown and automatically approves after it.
func (a *ForcedApprover) RequestApproval(ctx context.Context, serverName string) (bool, error) {
	fmt.Fprintf(a.out, "\n⚠️  --force: server '%s' will be deleted without confirmation.\n", serverName)

	countdownSeconds := int(a.countdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.out, "\rDeleting in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(1 * time.Second)
		}
	}

	fmt.Fprintf(a.out, "\r✓ Proceeding with server deletion...                              \n")
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ azsm.Approver = (*ForcedApprover)(nil)
