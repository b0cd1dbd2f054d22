package ui

import (
	"context"

	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

// AutoApprover approves every overwrite without prompting. It is the default
// when --confirm is not given or no terminal is attached.
type AutoApprover struct {
	logger slicermeta.Logger
}

// NewAutoApprover creates a new AutoApprover. logger may be nil.
func NewAutoApprover(logger slicermeta.Logger) slicermeta.Approver {
	return &AutoApprover{logger: logger}
}

// RequestApproval approves unless ctx is already cancelled.
func (a *AutoApprover) RequestApproval(ctx context.Context, path string, header []string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if a.logger != nil {
		a.logger.Verbose("Auto-approved %s (%d metadata line(s))", path, len(header))
	}
	return true, nil
}

var _ slicermeta.Approver = (*AutoApprover)(nil)
