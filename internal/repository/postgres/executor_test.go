package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records savepoint traffic. Methods it does not override panic
// through the nil embedded interface.
type fakeTx struct {
	pgx.Tx
	savepoints []*fakeTx
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) {
	sp := &fakeTx{}
	f.savepoints = append(f.savepoints, sp)
	return sp, nil
}

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rolledBack = true
	return nil
}

func TestRunInSavepoint_ReleasesOnSuccess(t *testing.T) {
	outer := &fakeTx{}
	ctx := withTx(context.Background(), outer)

	var got DBTX
	err := RunInSavepoint(ctx, nil, func(executor DBTX) error {
		got = executor
		return nil
	})
	require.NoError(t, err)

	require.Len(t, outer.savepoints, 1)
	sp := outer.savepoints[0]
	assert.Same(t, sp, got)
	assert.True(t, sp.committed)
	assert.False(t, sp.rolledBack)
	assert.False(t, outer.committed)
	assert.False(t, outer.rolledBack)
}

func TestRunInSavepoint_FailureOnlyRollsBackSavepoint(t *testing.T) {
	outer := &fakeTx{}
	ctx := withTx(context.Background(), outer)
	boom := errors.New("duplicate key")

	for i := 0; i < 2; i++ {
		err := RunInSavepoint(ctx, nil, func(DBTX) error { return boom })
		assert.ErrorIs(t, err, boom)
	}

	require.Len(t, outer.savepoints, 2)
	for _, sp := range outer.savepoints {
		assert.True(t, sp.rolledBack)
		assert.False(t, sp.committed)
	}
	assert.False(t, outer.rolledBack, "outer transaction must stay open")

	// The transaction is still usable for the next write
	require.NoError(t, RunInSavepoint(ctx, nil, func(DBTX) error { return nil }))
	assert.True(t, outer.savepoints[2].committed)
}

func TestRunInSavepoint_NoTransaction(t *testing.T) {
	calls := 0
	err := RunInSavepoint(context.Background(), nil, func(DBTX) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
