package memory

import (
	"context"

	"github.com/maxviazov/player-roster-service/internal/repository"
)

type txKey struct{}

type txManager struct{ store *Store }

// NewTxManager returns a TxManager that undoes the writes made through ctx
// when fn fails. Nested calls join the outer transaction.
func NewTxManager(s *Store) repository.TxManager { return &txManager{store: s} }

func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if undoFrom(ctx) != nil {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	undo := newUndoLog()
	if err := fn(context.WithValue(ctx, txKey{}, undo)); err != nil {
		undo.rollback(m.store)
		return err
	}
	return nil
}

var _ repository.TxManager = (*txManager)(nil)
