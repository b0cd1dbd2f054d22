package slicermeta

import "context"

// Approver decides whether a file may be overwritten with its rewritten content.
//
// Implementations:
//   - AutoApprover: approves every file (default, non-interactive)
//   - InteractiveApprover: asks on the terminal before each overwrite
type Approver interface {
	// RequestApproval asks for confirmation before path is replaced.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - path: File that is about to be overwritten
	//   - header: Header lines that will be prepended
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, path string, header []string) (bool, error)
}
