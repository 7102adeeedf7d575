// Package catalog manages the named lookups attached to restaurants:
// amenities and cuisines share one table shape and one repository.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tastemap/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound      = errors.New("item not found")
	ErrDuplicateName = errors.New("an item with that name already exists")
	ErrUnknownKind   = errors.New("unknown catalog kind")

	QueryTimeoutDuration = time.Second * 5
)

type Kind string

const (
	Amenities Kind = "amenities"
	Cuisines  Kind = "cuisines"
)

type table struct {
	name    string // lookup table
	link    string // restaurant join table
	linkCol string
}

var tables = map[Kind]table{
	Amenities: {name: "amenities", link: "restaurant_amenities", linkCol: "amenity_id"},
	Cuisines:  {name: "cuisines", link: "restaurant_cuisines", linkCol: "cuisine_id"},
}

func (k Kind) table() (table, error) {
	t, ok := tables[k]
	if !ok {
		return table{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
	return t, nil
}

type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Input struct {
	Name string `json:"name" validate:"required,max=100"`
}

type Store interface {
	List(ctx context.Context, kind Kind) ([]Item, error)
	Create(ctx context.Context, kind Kind, name string) (*Item, error)
	Rename(ctx context.Context, kind Kind, id int64, name string) (*Item, error)
	Delete(ctx context.Context, kind Kind, id int64) error
	ForRestaurant(ctx context.Context, kind Kind, restaurantID int64) ([]Item, error)
	// Attach is idempotent. A missing restaurant or item is ErrNotFound.
	Attach(ctx context.Context, kind Kind, restaurantID, itemID int64) error
	Detach(ctx context.Context, kind Kind, restaurantID, itemID int64) error
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, kind Kind) ([]Item, error) {
	t, err := kind.table()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM `+t.name+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *Repository) Create(ctx context.Context, kind Kind, name string) (*Item, error) {
	t, err := kind.table()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	item := &Item{Name: name}
	err = r.db.QueryRow(ctx,
		`INSERT INTO `+t.name+` (name) VALUES ($1) RETURNING id, created_at`, name,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return item, nil
}

func (r *Repository) Rename(ctx context.Context, kind Kind, id int64, name string) (*Item, error) {
	t, err := kind.table()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	item := &Item{}
	err = r.db.QueryRow(ctx,
		`UPDATE `+t.name+` SET name = $1 WHERE id = $2 RETURNING id, name, created_at`, name, id,
	).Scan(&item.ID, &item.Name, &item.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		case dbx.IsUniqueViolation(err):
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return item, nil
}

func (r *Repository) Delete(ctx context.Context, kind Kind, id int64) error {
	t, err := kind.table()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM `+t.name+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ForRestaurant(ctx context.Context, kind Kind, restaurantID int64) ([]Item, error) {
	t, err := kind.table()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT i.id, i.name, i.created_at
		FROM %s i
		JOIN %s l ON l.%s = i.id
		WHERE l.restaurant_id = $1
		ORDER BY i.name
	`, t.name, t.link, t.linkCol), restaurantID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *Repository) Attach(ctx context.Context, kind Kind, restaurantID, itemID int64) error {
	t, err := kind.table()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err = r.db.Exec(ctx, fmt.Sprintf(
		`INSERT INTO %s (restaurant_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`, t.link, t.linkCol,
	), restaurantID, itemID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *Repository) Detach(ctx context.Context, kind Kind, restaurantID, itemID int64) error {
	t, err := kind.table()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE restaurant_id = $1 AND %s = $2`, t.link, t.linkCol,
	), restaurantID, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collect(rows pgx.Rows) ([]Item, error) {
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
