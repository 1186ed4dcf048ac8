package shared

import "context"

// TransactionManager runs a unit of work inside a single database
// transaction. Every orchestration that touches more than one aggregate goes
// through it: any error returned by fn aborts the whole transaction, so no
// partial write is ever observable. Nested calls join the enclosing
// transaction instead of opening a new one.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
