package memory

import (
	"context"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
)

type transactor struct{}

// NewTransactor returns a Transactor that simply runs fn. Each store call
// is already atomic on its own.
func NewTransactor() database.Transactor {
	return transactor{}
}

func (transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
