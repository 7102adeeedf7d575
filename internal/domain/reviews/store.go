package reviews

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

// Repository is the Postgres implementation of Store and Reader.
type Repository struct {
	q dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{q: q}
}

const reviewColumns = `
	r.id, r.restaurant_id, r.user_id, r.rating, r.comment, r.photos, r.status_id,
	r.is_edited, r.edited_at, r.has_requested_recheck, r.recheck_explanation, r.created_at`

func scanReview(row pgx.Row, extra ...any) (*Review, error) {
	var rv Review
	dest := []any{
		&rv.ID, &rv.RestaurantID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.Photos, &rv.StatusID,
		&rv.IsEdited, &rv.EditedAt, &rv.HasRequestedRecheck, &rv.RecheckExplanation, &rv.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if rv.Photos == nil {
		rv.Photos = []string{}
	}
	return &rv, nil
}

func (r *Repository) LockRestaurant(ctx context.Context, restaurantID int64) (*int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var ownerID *int64
	err := r.q.QueryRow(ctx,
		`SELECT owner_id FROM restaurants WHERE id = $1 FOR UPDATE`, restaurantID,
	).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("lock restaurant: %w", err)
	}
	return ownerID, nil
}

func (r *Repository) GetByID(ctx context.Context, reviewID int64) (*Review, error) {
	return r.get(ctx, `SELECT`+reviewColumns+` FROM reviews r WHERE r.id = $1`, reviewID)
}

func (r *Repository) GetForUpdate(ctx context.Context, reviewID int64) (*Review, error) {
	return r.get(ctx, `SELECT`+reviewColumns+` FROM reviews r WHERE r.id = $1 FOR UPDATE`, reviewID)
}

func (r *Repository) get(ctx context.Context, query string, reviewID int64) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rv, err := scanReview(r.q.QueryRow(ctx, query, reviewID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}

func (r *Repository) Insert(ctx context.Context, review *Review) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO reviews (restaurant_id, user_id, rating, comment, photos, status_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.q.QueryRow(ctx, query,
		review.RestaurantID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.Photos,
		int16(review.StatusID),
		review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w (%s)", ErrForeignKeyViolation, dbx.ConstraintName(err))
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *Repository) UpdateContent(ctx context.Context, review *Review) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.q.Exec(ctx, `
		UPDATE reviews
		SET rating = $1, comment = $2, photos = $3, is_edited = $4, edited_at = $5
		WHERE id = $6
	`, review.Rating, review.Comment, review.Photos, review.IsEdited, review.EditedAt, review.ID)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, reviewID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.q.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteByUser(ctx context.Context, userID int64) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.q.Query(ctx, `
		SELECT id FROM restaurants
		WHERE id IN (SELECT restaurant_id FROM reviews WHERE user_id = $1)
		ORDER BY id
		FOR UPDATE
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("lock reviewed restaurants: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("lock reviewed restaurants: %w", err)
	}

	if _, err := r.q.Exec(ctx, `DELETE FROM reviews WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("delete user reviews: %w", err)
	}
	return ids, nil
}

func (r *Repository) LockAuthor(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var id int64
	err := r.q.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAuthorNotFound
		}
		return fmt.Errorf("lock author: %w", err)
	}
	return nil
}

func (r *Repository) DeleteAuthor(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAuthorNotFound
	}
	return nil
}

func (r *Repository) SetStatus(ctx context.Context, reviewID int64, status statuses.ID) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.q.Exec(ctx, `UPDATE reviews SET status_id = $1 WHERE id = $2`, int16(status), reviewID)
	if err != nil {
		return fmt.Errorf("set review status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) MarkRecheck(ctx context.Context, reviewID int64, explanation string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.q.Exec(ctx, `
		UPDATE reviews
		SET status_id = $1, recheck_explanation = $2, has_requested_recheck = TRUE
		WHERE id = $3
	`, int16(statuses.RecheckRequested), explanation, reviewID)
	if err != nil {
		return fmt.Errorf("mark recheck: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) RatingTotals(ctx context.Context, restaurantID int64, counted []statuses.ID) (int64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var filter []int16
	if counted != nil {
		filter = make([]int16, len(counted))
		for i, s := range counted {
			filter[i] = int16(s)
		}
	}

	var sum, count int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(rating), 0), COUNT(id)
		FROM reviews
		WHERE restaurant_id = $1
		  AND ($2::smallint[] IS NULL OR status_id = ANY($2))
	`, restaurantID, filter).Scan(&sum, &count)
	if err != nil {
		return 0, 0, err
	}
	return sum, count, nil
}

func (r *Repository) SetAverageRating(ctx context.Context, restaurantID int64, average float64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.q.Exec(ctx,
		`UPDATE restaurants SET average_rating = $1 WHERE id = $2`, average, restaurantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID int64, f ListFilter) ([]Review, int, error) {
	return r.list(ctx, "r.restaurant_id = $1", restaurantID, f)
}

func (r *Repository) ListByUser(ctx context.Context, userID int64, f ListFilter) ([]Review, int, error) {
	return r.list(ctx, "r.user_id = $1", userID, f)
}

func (r *Repository) ListByStatus(ctx context.Context, f ListFilter) ([]Review, int, error) {
	return r.list(ctx, "$1::bigint IS NULL", nil, f)
}

// list pages reviews matching where (which must reference $1 only) and the
// optional status filter, newest first.
func (r *Repository) list(ctx context.Context, where string, arg any, f ListFilter) ([]Review, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var status *int16
	if f.StatusID != nil {
		s := int16(*f.StatusID)
		status = &s
	}

	var total int
	countQ := `SELECT COUNT(*) FROM reviews r WHERE ` + where + ` AND ($2::smallint IS NULL OR r.status_id = $2)`
	if err := r.q.QueryRow(ctx, countQ, arg, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	listQ := `
		SELECT` + reviewColumns + `, u.first_name, u.profile_picture_url
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE ` + where + ` AND ($2::smallint IS NULL OR r.status_id = $2)
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.q.Query(ctx, listQ, arg, status, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]Review, 0, f.Limit)
	for rows.Next() {
		var (
			name   string
			avatar *string
		)
		rv, err := scanReview(rows, &name, &avatar)
		if err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		rv.UserName = name
		rv.AvatarURL = avatar
		out = append(out, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows: %w", err)
	}

	return out, total, nil
}
