package storage

import (
	"context"
	"fmt"

	"tastemap/internal/domain/accesscontrol"
	"tastemap/internal/domain/catalog"
	"tastemap/internal/domain/hours"
	"tastemap/internal/domain/images"
	"tastemap/internal/domain/issues"
	"tastemap/internal/domain/restaurants"
	"tastemap/internal/domain/reviews"
	"tastemap/internal/domain/users"
	"tastemap/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewTxAttempts bounds retries of a review unit of work on serialization
// failure before the caller sees a conflict.
const ReviewTxAttempts = 3

type Container struct {
	pool *pgxpool.Pool
	// txb begins review units of work; it is the pool outside tests.
	txb           dbx.TxBeginner
	Users         users.Store
	AccessControl accesscontrol.Store
	Restaurants   restaurants.Store
	Catalog       catalog.Store
	Hours         hours.Store
	Images        images.Store
	Issues        issues.Store
	Reviews       *reviews.Repository
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:          db,
		txb:           db,
		Users:         users.NewRepository(db),
		AccessControl: accesscontrol.NewRepository(db),
		Restaurants:   restaurants.NewRepository(db),
		Catalog:       catalog.NewRepository(db),
		Hours:         hours.NewRepository(db),
		Images:        images.NewRepository(db),
		Issues:        issues.NewRepository(db),
		Reviews:       reviews.NewRepository(db),
	}
}

// WithReviewTx runs a review unit of work in a serializable transaction,
// retried up to ReviewTxAttempts times. It implements reviews.UnitOfWork.
func (c *Container) WithReviewTx(ctx context.Context, fn func(reviews.Store) error) error {
	if c.txb == nil {
		return fmt.Errorf("storage container pool is nil")
	}

	opts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	return dbx.WithRetryTx(ctx, c.txb, opts, ReviewTxAttempts, func(tx pgx.Tx) error {
		return fn(reviews.NewRepository(tx))
	})
}

// Ping is used by the health check.
func (c *Container) Ping(ctx context.Context) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil")
	}
	return c.pool.Ping(ctx)
}
