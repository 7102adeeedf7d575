package storage

import (
	"context"
	"errors"
	"testing"

	"tastemap/internal/domain/reviews"
	"tastemap/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTx answers every Exec with err, or with a single affected row.
type scriptedTx struct {
	pgx.Tx
	err        error
	execs      int
	committed  bool
	rolledBack bool
}

func (t *scriptedTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	t.execs++
	if t.err != nil {
		return pgconn.CommandTag{}, t.err
	}
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func (t *scriptedTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *scriptedTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

// scriptedBeginner hands out transactions whose Exec fails with the next
// error in failures, then succeeds.
type scriptedBeginner struct {
	failures []error
	txs      []*scriptedTx
	opts     []pgx.TxOptions
}

func (b *scriptedBeginner) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	tx := &scriptedTx{}
	if len(b.failures) > 0 {
		tx.err, b.failures = b.failures[0], b.failures[1:]
	}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func serializationFailure() error {
	return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
}

func TestWithReviewTxRetriesSerializationFailure(t *testing.T) {
	db := &scriptedBeginner{failures: []error{serializationFailure()}}
	c := &Container{txb: db}

	calls := 0
	err := c.WithReviewTx(context.Background(), func(st reviews.Store) error {
		calls++
		return st.Delete(context.Background(), 7)
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, db.txs, 2)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
	assert.True(t, db.txs[1].committed)
	for _, opts := range db.opts {
		assert.Equal(t, pgx.Serializable, opts.IsoLevel)
	}
}

func TestWithReviewTxGivesUpAfterAttempts(t *testing.T) {
	db := &scriptedBeginner{}
	for i := 0; i < ReviewTxAttempts; i++ {
		db.failures = append(db.failures, serializationFailure())
	}
	c := &Container{txb: db}

	err := c.WithReviewTx(context.Background(), func(st reviews.Store) error {
		return st.Delete(context.Background(), 7)
	})

	assert.ErrorIs(t, err, dbx.ErrTxConflict)
	assert.Len(t, db.txs, ReviewTxAttempts)
	for _, tx := range db.txs {
		assert.False(t, tx.committed)
	}
}

func TestWithReviewTxDoesNotRetryOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	db := &scriptedBeginner{failures: []error{boom}}
	c := &Container{txb: db}

	err := c.WithReviewTx(context.Background(), func(st reviews.Store) error {
		return st.Delete(context.Background(), 7)
	})

	assert.ErrorIs(t, err, boom)
	assert.Len(t, db.txs, 1)
}

func TestWithReviewTxWithoutPool(t *testing.T) {
	err := (&Container{}).WithReviewTx(context.Background(), func(reviews.Store) error { return nil })
	assert.Error(t, err)
}
