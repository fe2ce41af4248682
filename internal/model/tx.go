package model

import "context"

// TxRunner executes fn inside a single storage transaction. Store calls made
// with the context passed to fn join that transaction; the transaction is
// committed when fn returns nil and rolled back otherwise.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
