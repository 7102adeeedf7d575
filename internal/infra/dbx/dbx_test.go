package dbx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs []*fakeTx
}

func (b *fakeBeginner) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{}

	err := WithTx(context.Background(), db, pgx.TxOptions{}, func(pgx.Tx) error { return nil })

	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.False(t, db.txs[0].rolledBack)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, pgx.TxOptions{}, func(pgx.Tx) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, db.txs[0].committed)
	assert.True(t, db.txs[0].rolledBack)
}

func TestWithRetryTxRetriesSerializationFailures(t *testing.T) {
	db := &fakeBeginner{}
	calls := 0

	err := WithRetryTx(context.Background(), db, pgx.TxOptions{IsoLevel: pgx.Serializable}, 3, func(pgx.Tx) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("recompute: %w", &pgconn.PgError{Code: codeSerializationFailure})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.True(t, db.txs[2].committed)
}

func TestWithRetryTxGivesUp(t *testing.T) {
	db := &fakeBeginner{}
	calls := 0

	err := WithRetryTx(context.Background(), db, pgx.TxOptions{}, 3, func(pgx.Tx) error {
		calls++
		return &pgconn.PgError{Code: codeDeadlockDetected}
	})

	assert.ErrorIs(t, err, ErrTxConflict)
	assert.Equal(t, 3, calls)
}

func TestWithRetryTxDoesNotRetryOtherErrors(t *testing.T) {
	db := &fakeBeginner{}
	calls := 0

	err := WithRetryTx(context.Background(), db, pgx.TxOptions{}, 3, func(pgx.Tx) error {
		calls++
		return &pgconn.PgError{Code: codeForeignKeyViolation}
	})

	assert.True(t, IsForeignKeyViolation(err))
	assert.NotErrorIs(t, err, ErrTxConflict)
	assert.Equal(t, 1, calls)
}

func TestClassifiers(t *testing.T) {
	wrapped := fmt.Errorf("insert review: %w", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "amenities_name_key"})

	assert.True(t, IsUniqueViolation(wrapped))
	assert.False(t, IsForeignKeyViolation(wrapped))
	assert.False(t, IsRetryable(wrapped))
	assert.Equal(t, "amenities_name_key", ConstraintName(wrapped))
	assert.Equal(t, "", ConstraintName(errors.New("plain")))
}
