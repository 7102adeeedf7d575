package accesscontrol

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tastemap/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

var QueryTimeoutDuration = time.Second * 5

type Store interface {
	ListRoles(ctx context.Context) ([]Role, error)
	AssignRole(ctx context.Context, userID int64, roleName string) error
	RemoveRole(ctx context.Context, userID int64, roleName string) error
	GetUserRoles(ctx context.Context, userID int64) ([]Role, error)
	// RoleNames is the cheap lookup the auth middleware runs per request.
	RoleNames(ctx context.Context, userID int64) ([]string, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func (r *Repository) ListRoles(ctx context.Context) ([]Role, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectRoles(rows)
}

// AssignRole is idempotent.
func (r *Repository) AssignRole(ctx context.Context, userID int64, roleName string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT DO NOTHING
	`, userID, roleName)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("assign role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.checkRole(ctx, roleName)
	}
	return nil
}

// checkRole distinguishes an unknown role from an already assigned one.
func (r *Repository) checkRole(ctx context.Context, roleName string) error {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, roleName).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRoleNotFound
	}
	return err
}

func (r *Repository) RemoveRole(ctx context.Context, userID int64, roleName string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		DELETE FROM user_roles
		WHERE user_id = $1 AND role_id = (SELECT id FROM roles WHERE name = $2)
	`, userID, roleName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotAssigned
	}
	return nil
}

func (r *Repository) GetUserRoles(ctx context.Context, userID int64) ([]Role, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.name, r.description, r.created_at, r.updated_at
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.id
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectRoles(rows)
}

func (r *Repository) RoleNames(ctx context.Context, userID int64) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT r.name FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func collectRoles(rows pgx.Rows) ([]Role, error) {
	defer rows.Close()

	roles := []Role{}
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
