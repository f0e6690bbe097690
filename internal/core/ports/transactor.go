package ports

import "context"

// Transactor runs fn as one unit of work. Repositories called with the ctx
// passed to fn join the transaction; any error returned by fn rolls it back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
