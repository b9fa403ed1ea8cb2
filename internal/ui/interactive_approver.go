package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/azsm/pkg/azsm"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the server name
// to confirm destructive operations.
type InteractiveApprover struct {
	in  io.Reader
	out io.Writer
}

// NewInteractiveApprover creates an approver reading from stdin and
// prompting on stderr.
func NewInteractiveApprover() azsm.Approver {
	return &InteractiveApprover{in: os.Stdin, out: os.Stderr}
}

// NewInteractiveApproverWith creates an approver with explicit streams.
// Used by tests.
func NewInteractiveApproverWith(in io.Reader, out io.Writer) azsm.Approver {
	return &InteractiveApprover{in: in, out: out}
}

// RequestApproval prompts the user to type the server name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, serverName string) (bool, error) {
	fmt.Fprintf(a.out, "\n⚠️  WARNING: You are about to DELETE the server '%s'\n", serverName)
	fmt.Fprintln(a.out, "This will permanently remove the server and all databases on it!")
	fmt.Fprintf(a.out, "\nTo confirm, type the server name '%s' and press Enter: ", serverName)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.in)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == serverName {
			fmt.Fprintln(a.out, "✓ Confirmed. Proceeding with server deletion...")
			return true, nil
		}
		fmt.Fprintf(a.out, "✗ Input '%s' does not match server name '%s'. Operation cancelled.\n", input, serverName)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ azsm.Approver = (*InteractiveApprover)(nil)
