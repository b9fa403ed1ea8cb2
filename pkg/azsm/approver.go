package azsm

import "context"

// Approver handles user interaction for approval workflows,
// particularly for destructive operations like server deletion.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the server name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before deleting a server.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - serverName: Name of the server to be deleted
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, serverName string) (bool, error)
}
