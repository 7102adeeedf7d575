package restaurants

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tastemap/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var QueryTimeoutDuration = time.Second * 5

type Store interface {
	Create(ctx context.Context, in CreateInput) (*Restaurant, error)
	GetByID(ctx context.Context, id int64) (*Restaurant, error)
	GetDetail(ctx context.Context, id int64) (*Detail, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Restaurant, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]Restaurant, int, error)
	OwnerOf(ctx context.Context, id int64) (*int64, error)
	// SetOwner assigns or clears (nil) the claimed owner. Assigning also
	// grants the owner role.
	SetOwner(ctx context.Context, id int64, ownerID *int64) (*Restaurant, error)

	AddFavorite(ctx context.Context, userID, restaurantID int64) error
	RemoveFavorite(ctx context.Context, userID, restaurantID int64) error
	ListFavorites(ctx context.Context, userID int64) ([]Restaurant, error)
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

const restaurantColumns = `
	r.id, r.name, r.description, r.address, r.city, r.latitude, r.longitude,
	r.phone, r.website, r.price_level, r.owner_id, r.average_rating,
	(SELECT COUNT(*) FROM reviews rv WHERE rv.restaurant_id = r.id),
	r.created_at, r.updated_at`

func scanRestaurant(row pgx.Row, extra ...any) (*Restaurant, error) {
	var x Restaurant
	dest := []any{
		&x.ID, &x.Name, &x.Description, &x.Address, &x.City, &x.Latitude, &x.Longitude,
		&x.Phone, &x.Website, &x.PriceLevel, &x.OwnerID, &x.AverageRating,
		&x.ReviewCount, &x.CreatedAt, &x.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &x, nil
}

func (r *Repository) Create(ctx context.Context, in CreateInput) (*Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if in.PriceLevel == 0 {
		in.PriceLevel = 2
	}

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO restaurants (name, description, address, city, latitude, longitude, phone, website, price_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, in.Name, in.Description, in.Address, in.City, in.Latitude, in.Longitude, in.Phone, in.Website, in.PriceLevel,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanRestaurant(r.db.QueryRow(ctx, `SELECT`+restaurantColumns+` FROM restaurants r WHERE r.id = $1`, id))
}

func (r *Repository) GetDetail(ctx context.Context, id int64) (*Detail, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	d := &Detail{}
	x, err := scanRestaurant(r.db.QueryRow(ctx, `
		SELECT`+restaurantColumns+`,
			COALESCE((SELECT array_agg(c.name ORDER BY c.name)
			          FROM restaurant_cuisines rc JOIN cuisines c ON c.id = rc.cuisine_id
			          WHERE rc.restaurant_id = r.id), '{}'),
			COALESCE((SELECT array_agg(a.name ORDER BY a.name)
			          FROM restaurant_amenities ra JOIN amenities a ON a.id = ra.amenity_id
			          WHERE ra.restaurant_id = r.id), '{}')
		FROM restaurants r
		WHERE r.id = $1
	`, id), &d.Cuisines, &d.Amenities)
	if err != nil {
		return nil, err
	}
	d.Restaurant = *x
	return d, nil
}

// updateClauses turns the non-nil fields of in into SET clauses numbered
// from $1. average_rating is deliberately absent.
func updateClauses(in UpdateInput) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Address != nil {
		add("address", *in.Address)
	}
	if in.City != nil {
		add("city", *in.City)
	}
	if in.Latitude != nil {
		add("latitude", *in.Latitude)
	}
	if in.Longitude != nil {
		add("longitude", *in.Longitude)
	}
	if in.Phone != nil {
		add("phone", *in.Phone)
	}
	if in.Website != nil {
		add("website", *in.Website)
	}
	if in.PriceLevel != nil {
		add("price_level", *in.PriceLevel)
	}
	return sets, args
}

func (r *Repository) Update(ctx context.Context, id int64, in UpdateInput) (*Restaurant, error) {
	sets, args := updateClauses(in)
	if len(sets) == 0 {
		return nil, ErrNoChanges
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE restaurants SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete cascades to reviews, hours, images, favorites, issues and lookups.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// buildListQuery returns the count and page queries sharing one argument list.
func buildListQuery(f ListFilter) (countQ, listQ string, args []any) {
	var where []string
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg(s)
		where = append(where, fmt.Sprintf("(r.name ILIKE '%%' || %s || '%%' OR r.description ILIKE '%%' || %s || '%%')", p, p))
	}
	if c := strings.TrimSpace(f.City); c != "" {
		where = append(where, "lower(r.city) = lower("+arg(c)+")")
	}
	if f.CuisineID != nil {
		where = append(where, "EXISTS (SELECT 1 FROM restaurant_cuisines rc WHERE rc.restaurant_id = r.id AND rc.cuisine_id = "+arg(*f.CuisineID)+")")
	}
	if f.AmenityID != nil {
		where = append(where, "EXISTS (SELECT 1 FROM restaurant_amenities ra WHERE ra.restaurant_id = r.id AND ra.amenity_id = "+arg(*f.AmenityID)+")")
	}
	if f.MinRating != nil {
		where = append(where, "r.average_rating >= "+arg(*f.MinRating))
	}
	if f.OwnerID != nil {
		where = append(where, "r.owner_id = "+arg(*f.OwnerID))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var order string
	switch f.Sort {
	case SortRating:
		order = "r.average_rating DESC, r.id DESC"
	case SortNewest:
		order = "r.created_at DESC, r.id DESC"
	default:
		order = "r.name ASC, r.id ASC"
	}

	countQ = "SELECT COUNT(*) FROM restaurants r" + clause
	listQ = fmt.Sprintf("SELECT%s FROM restaurants r%s ORDER BY %s LIMIT $%d OFFSET $%d",
		restaurantColumns, clause, order, len(args)+1, len(args)+2)
	return countQ, listQ, args
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]Restaurant, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	countQ, listQ, args := buildListQuery(f)

	var total int
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count restaurants: %w", err)
	}

	rows, err := r.db.Query(ctx, listQ, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}
	out, err := collect(rows)
	return out, total, err
}

func collect(rows pgx.Rows) ([]Restaurant, error) {
	defer rows.Close()

	out := []Restaurant{}
	for rows.Next() {
		x, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, *x)
	}
	return out, rows.Err()
}

func (r *Repository) OwnerOf(ctx context.Context, id int64) (*int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var owner *int64
	err := r.db.QueryRow(ctx, `SELECT owner_id FROM restaurants WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return owner, nil
}

func (r *Repository) SetOwner(ctx context.Context, id int64, ownerID *int64) (*Restaurant, error) {
	err := dbx.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
		defer cancel()

		tag, err := tx.Exec(ctx, `UPDATE restaurants SET owner_id = $1, updated_at = NOW() WHERE id = $2`, ownerID, id)
		if err != nil {
			if dbx.IsForeignKeyViolation(err) {
				return ErrOwnerNotFound
			}
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		if ownerID == nil {
			return nil
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id)
			SELECT $1, id FROM roles WHERE name = 'owner'
			ON CONFLICT DO NOTHING
		`, *ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// AddFavorite is idempotent.
func (r *Repository) AddFavorite(ctx context.Context, userID, restaurantID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO favorites (user_id, restaurant_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, restaurantID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *Repository) RemoveFavorite(ctx context.Context, userID, restaurantID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND restaurant_id = $2`, userID, restaurantID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) ListFavorites(ctx context.Context, userID int64) ([]Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT`+restaurantColumns+`
		FROM restaurants r
		JOIN favorites f ON f.restaurant_id = r.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return collect(rows)
}
