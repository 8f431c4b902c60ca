package approval

import "context"

// Reviewer is the review half every request service exposes.
type Reviewer interface {
	Approve(ctx context.Context, in ReviewInput) (Result, error)
	Reject(ctx context.Context, in ReviewInput) (Result, error)
}
