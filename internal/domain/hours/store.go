package hours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tastemap/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrDuplicateWeekday   = errors.New("weekday listed more than once")

	QueryTimeoutDuration = time.Second * 5
)

type Store interface {
	Get(ctx context.Context, restaurantID int64) ([]Day, error)
	// ReplaceWeek swaps the whole schedule; days left out become closed.
	ReplaceWeek(ctx context.Context, restaurantID int64, days []Day) error
	UpsertDay(ctx context.Context, restaurantID int64, day Day) error
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

// CheckWeek rejects schedules naming a weekday twice.
func CheckWeek(days []Day) error {
	var seen [7]bool
	for _, d := range days {
		if d.Weekday < 0 || d.Weekday > 6 {
			return fmt.Errorf("weekday %d out of range", d.Weekday)
		}
		if seen[d.Weekday] {
			return fmt.Errorf("%w: %s", ErrDuplicateWeekday, time.Weekday(d.Weekday))
		}
		seen[d.Weekday] = true
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, restaurantID int64) ([]Day, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT weekday, open_hour, open_minute, close_hour, close_minute, is_closed
		FROM working_hours
		WHERE restaurant_id = $1
		ORDER BY weekday
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("get hours: %w", err)
	}
	defer rows.Close()

	days := []Day{}
	for rows.Next() {
		var d Day
		if err := rows.Scan(&d.Weekday, &d.OpenHour, &d.OpenMinute, &d.CloseHour, &d.CloseMinute, &d.IsClosed); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *Repository) ReplaceWeek(ctx context.Context, restaurantID int64, days []Day) error {
	if err := CheckWeek(days); err != nil {
		return err
	}

	return dbx.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
		defer cancel()

		if _, err := tx.Exec(ctx, `DELETE FROM working_hours WHERE restaurant_id = $1`, restaurantID); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, d := range days {
			batch.Queue(upsertDay, restaurantID, d.Weekday, d.OpenHour, d.OpenMinute, d.CloseHour, d.CloseMinute, d.IsClosed)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			if dbx.IsForeignKeyViolation(err) {
				return ErrRestaurantNotFound
			}
			return fmt.Errorf("insert hours: %w", err)
		}
		return nil
	})
}

const upsertDay = `
	INSERT INTO working_hours (restaurant_id, weekday, open_hour, open_minute, close_hour, close_minute, is_closed)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (restaurant_id, weekday) DO UPDATE
	SET open_hour = EXCLUDED.open_hour,
	    open_minute = EXCLUDED.open_minute,
	    close_hour = EXCLUDED.close_hour,
	    close_minute = EXCLUDED.close_minute,
	    is_closed = EXCLUDED.is_closed
`

func (r *Repository) UpsertDay(ctx context.Context, restaurantID int64, d Day) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, upsertDay, restaurantID, d.Weekday, d.OpenHour, d.OpenMinute, d.CloseHour, d.CloseMinute, d.IsClosed)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("upsert hours: %w", err)
	}
	return nil
}
