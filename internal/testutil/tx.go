package testutil

import "context"

// PassthroughTx is a model.TxRunner that runs fn without any transaction.
// Transactional behavior itself is covered by the repository integration
// tests.
type PassthroughTx struct{}

func (PassthroughTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
