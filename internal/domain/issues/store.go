package issues

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tastemap/internal/domain/statuses"
	"tastemap/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var QueryTimeoutDuration = time.Second * 5

type Store interface {
	Create(ctx context.Context, reporterID, restaurantID int64, in CreateInput) (*Issue, error)
	GetByID(ctx context.Context, id int64) (*Issue, error)
	List(ctx context.Context, f ListFilter) ([]Issue, int, error)
	// Transition moves the issue to status under a row lock, rejecting moves
	// CanTransition forbids with ErrInvalidTransition.
	Transition(ctx context.Context, id int64, to statuses.ID, note *string) (*Issue, error)
}

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	dbx.Querier
	dbx.TxBeginner
}

type Repository struct {
	db DB
}

func NewRepository(db DB) Store {
	return &Repository{db: db}
}

const issueColumns = `
	i.id, i.restaurant_id, i.review_id, i.reporter_id, i.category, i.description,
	i.status_id, i.admin_note, i.resolved_at, i.created_at, i.updated_at,
	u.first_name, u.email`

const issueFrom = ` FROM issues i JOIN users u ON u.id = i.reporter_id`

func scanIssue(row pgx.Row) (*Issue, error) {
	var is Issue
	err := row.Scan(
		&is.ID, &is.RestaurantID, &is.ReviewID, &is.ReporterID, &is.Category, &is.Description,
		&is.StatusID, &is.AdminNote, &is.ResolvedAt, &is.CreatedAt, &is.UpdatedAt,
		&is.ReporterName, &is.ReporterEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	is.Status = is.StatusID.String()
	return &is, nil
}

// Create files a Pending issue. A review, when given, must belong to the
// restaurant.
func (r *Repository) Create(ctx context.Context, reporterID, restaurantID int64, in CreateInput) (*Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO issues (restaurant_id, review_id, reporter_id, category, description, status_id)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE $2::bigint IS NULL
		   OR EXISTS (SELECT 1 FROM reviews WHERE id = $2 AND restaurant_id = $1)
		RETURNING id
	`, restaurantID, in.ReviewID, reporterID, string(in.Category), in.Description, int16(statuses.Pending),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || dbx.IsForeignKeyViolation(err) {
			return nil, ErrBadReference
		}
		return nil, fmt.Errorf("create issue: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanIssue(r.db.QueryRow(ctx, `SELECT`+issueColumns+issueFrom+` WHERE i.id = $1`, id))
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]Issue, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var status *int16
	if f.StatusID != nil {
		s := int16(*f.StatusID)
		status = &s
	}
	where := ` WHERE ($1::smallint IS NULL OR i.status_id = $1) AND ($2::bigint IS NULL OR i.reporter_id = $2)`

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+issueFrom+where, status, f.ReporterID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count issues: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT`+issueColumns+issueFrom+where+` ORDER BY i.created_at DESC, i.id DESC LIMIT $3 OFFSET $4`,
		status, f.ReporterID, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	out := make([]Issue, 0, f.Limit)
	for rows.Next() {
		is, err := scanIssue(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *is)
	}
	return out, total, rows.Err()
}

func (r *Repository) Transition(ctx context.Context, id int64, to statuses.ID, note *string) (*Issue, error) {
	err := dbx.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
		defer cancel()

		var from statuses.ID
		err := tx.QueryRow(ctx, `SELECT status_id FROM issues WHERE id = $1 FOR UPDATE`, id).Scan(&from)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if !CanTransition(from, to) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
		}

		_, err = tx.Exec(ctx, `
			UPDATE issues
			SET status_id = $1,
			    admin_note = COALESCE($2, admin_note),
			    resolved_at = CASE WHEN $3 THEN NOW() ELSE resolved_at END,
			    updated_at = NOW()
			WHERE id = $4
		`, int16(to), note, IsTerminal(to), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
