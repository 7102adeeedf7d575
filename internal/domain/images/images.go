package images

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tastemap/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

const MaxPerRestaurant = 10

var (
	ErrNotFound           = errors.New("image not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrLimitReached       = fmt.Errorf("a restaurant can have at most %d images", MaxPerRestaurant)

	QueryTimeoutDuration = time.Second * 5
)

type Image struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"created_at"`
}

type Store interface {
	// Remaining is how many more images the gallery accepts.
	Remaining(ctx context.Context, restaurantID int64) (int, error)
	// Add stores urls, failing with ErrLimitReached if the gallery would
	// exceed MaxPerRestaurant.
	Add(ctx context.Context, restaurantID int64, urls []string) ([]Image, error)
	List(ctx context.Context, restaurantID int64) ([]Image, error)
	Delete(ctx context.Context, restaurantID, imageID int64) (*Image, error)
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

func (r *Repository) Remaining(ctx context.Context, restaurantID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM restaurants WHERE id = $1),
		       (SELECT COUNT(*) FROM restaurant_images WHERE restaurant_id = $1)
	`, restaurantID).Scan(&exists, &n)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrRestaurantNotFound
	}
	return max(MaxPerRestaurant-n, 0), nil
}

func (r *Repository) Add(ctx context.Context, restaurantID int64, urls []string) ([]Image, error) {
	out := make([]Image, 0, len(urls))
	err := dbx.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
		defer cancel()

		// serialise concurrent uploads to the same gallery
		var id int64
		err := tx.QueryRow(ctx, `SELECT id FROM restaurants WHERE id = $1 FOR UPDATE`, restaurantID).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrRestaurantNotFound
			}
			return err
		}

		var n int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM restaurant_images WHERE restaurant_id = $1`, restaurantID).Scan(&n); err != nil {
			return err
		}
		if n+len(urls) > MaxPerRestaurant {
			return ErrLimitReached
		}

		for _, u := range urls {
			img := Image{RestaurantID: restaurantID, URL: u}
			err := tx.QueryRow(ctx,
				`INSERT INTO restaurant_images (restaurant_id, url) VALUES ($1, $2) RETURNING id, created_at`,
				restaurantID, u,
			).Scan(&img.ID, &img.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert image: %w", err)
			}
			out = append(out, img)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) List(ctx context.Context, restaurantID int64) ([]Image, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, restaurant_id, url, created_at
		FROM restaurant_images
		WHERE restaurant_id = $1
		ORDER BY created_at, id
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	imgs := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.RestaurantID, &img.URL, &img.CreatedAt); err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	return imgs, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, restaurantID, imageID int64) (*Image, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	img := &Image{}
	err := r.db.QueryRow(ctx, `
		DELETE FROM restaurant_images
		WHERE id = $1 AND restaurant_id = $2
		RETURNING id, restaurant_id, url, created_at
	`, imageID, restaurantID).Scan(&img.ID, &img.RestaurantID, &img.URL, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return img, nil
}
