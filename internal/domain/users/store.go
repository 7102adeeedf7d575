package users

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"tastemap/internal/domain/statuses"
	"tastemap/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	GetByID(ctx context.Context, userID int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	CreateAndInvite(ctx context.Context, user *User, tokenHash string, exp time.Duration) error
	Activate(ctx context.Context, token string) error
	Delete(ctx context.Context, userID int64) error
	Update(ctx context.Context, userID int64, in UpdateInput) (*User, error)
	SetProfilePicture(ctx context.Context, userID int64, url string) (old *string, err error)
	SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error
	DeleteRefreshToken(ctx context.Context, userID int64) error
	GetRefreshToken(ctx context.Context, userID int64) (string, error)
	SetResetToken(ctx context.Context, email, tokenHash string, expires time.Time) (*User, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	SetAccountStatus(ctx context.Context, userID int64, status statuses.ID, suspendedUntil *time.Time) (*User, error)
	LiftExpiredSuspensions(ctx context.Context) (int64, error)
	ReviewCount(ctx context.Context, userID int64) (int, error)
	Profile(ctx context.Context, userID int64) (*Profile, error)
	List(ctx context.Context, f ListFilter) ([]User, int, error)
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

// HashToken is how invitation and reset tokens are stored at rest.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

const userColumns = `
	id, first_name, last_name, email, password, profile_picture_url,
	is_active, status_id, suspended_until, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Password.hash,
		&u.ProfilePictureURL,
		&u.IsActive,
		&u.StatusID,
		&u.SuspendedUntil,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Status = u.StatusID.String()
	return u, nil
}

func (r *Repository) GetByID(ctx context.Context, userID int64) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE id = $1`, userID))
}

// GetByEmail only finds activated accounts.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx,
		`SELECT`+userColumns+` FROM users WHERE lower(email) = lower($1) AND is_active = TRUE`, email))
}

// CreateAndInvite inserts the user, grants the default role and stores the
// invitation in one transaction.
func (r *Repository) CreateAndInvite(ctx context.Context, user *User, tokenHash string, exp time.Duration) error {
	return dbx.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if err := r.create(ctx, tx, user); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
		defer cancel()

		_, err := tx.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id)
			SELECT $1, id FROM roles WHERE name = 'user'
		`, user.ID)
		if err != nil {
			return fmt.Errorf("grant default role: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO user_invitations (token, user_id, expiry) VALUES ($1, $2, $3)`,
			tokenHash, user.ID, time.Now().Add(exp))
		return err
	})
}

func (r *Repository) create(ctx context.Context, tx pgx.Tx, user *User) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := tx.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password, status_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, user.FirstName, user.LastName, strings.ToLower(user.Email), user.Password.hash, int16(statuses.Active),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	user.StatusID = statuses.Active
	user.Status = user.StatusID.String()
	return nil
}

// Activate is idempotent for an already active account.
func (r *Repository) Activate(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
		defer cancel()

		var userID int64
		err := tx.QueryRow(ctx,
			`SELECT user_id FROM user_invitations WHERE token = $1 AND expiry > $2`,
			HashToken(token), time.Now(),
		).Scan(&userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx, `UPDATE users SET is_active = TRUE, updated_at = NOW() WHERE id = $1`, userID); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM user_invitations WHERE user_id = $1`, userID)
		return err
	})
}

// Delete removes the account. Reviews, issues, favorites and invitations go
// with it through cascading foreign keys; the caller recomputes affected averages.
func (r *Repository) Delete(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, userID int64, in UpdateInput) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET first_name = COALESCE($1, first_name),
		    last_name  = COALESCE($2, last_name),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING`+userColumns,
		in.FirstName, in.LastName, userID))
}

func (r *Repository) SetProfilePicture(ctx context.Context, userID int64, url string) (*string, error) {
	var old *string
	err := dbx.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
		defer cancel()

		err := tx.QueryRow(ctx, `SELECT profile_picture_url FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&old)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE users SET profile_picture_url = $1, updated_at = NOW() WHERE id = $2`, url, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("set profile picture: %w", err)
	}
	return old, nil
}

func (r *Repository) SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `UPDATE users SET refresh_token = $1 WHERE id = $2`, refreshToken, userID)
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (r *Repository) DeleteRefreshToken(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `UPDATE users SET refresh_token = NULL WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (r *Repository) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var token *string
	err := r.db.QueryRow(ctx, `SELECT refresh_token FROM users WHERE id = $1`, userID).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get refresh token: %w", err)
	}
	if token == nil {
		return "", nil
	}
	return *token, nil
}

func (r *Repository) SetResetToken(ctx context.Context, email, tokenHash string, expires time.Time) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users SET reset_password_token = $1, reset_password_expires = $2
		WHERE lower(email) = lower($3) AND is_active = TRUE
		RETURNING`+userColumns,
		tokenHash, expires, email))
}

// ResetPassword consumes a reset token. Outstanding refresh tokens are revoked.
func (r *Repository) ResetPassword(ctx context.Context, token, newPassword string) error {
	var p password
	if err := p.Set(newPassword); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $1, reset_password_token = NULL, reset_password_expires = NULL,
		    refresh_token = NULL, updated_at = NOW()
		WHERE reset_password_token = $2 AND reset_password_expires > NOW()
	`, p.hash, HashToken(token))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAccountStatus moves the account to status. Leaving Active revokes the
// refresh token so the change takes effect at the next refresh.
func (r *Repository) SetAccountStatus(ctx context.Context, userID int64, status statuses.ID, suspendedUntil *time.Time) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET status_id = $1,
		    suspended_until = $2,
		    refresh_token = CASE WHEN $1 = 1 THEN refresh_token ELSE NULL END,
		    updated_at = NOW()
		WHERE id = $3
		RETURNING`+userColumns,
		int16(status), suspendedUntil, userID))
}

// LiftExpiredSuspensions reactivates suspended accounts whose suspension has ended.
func (r *Repository) LiftExpiredSuspensions(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE users SET status_id = $1, suspended_until = NULL, updated_at = NOW()
		WHERE status_id = $2 AND suspended_until <= NOW()
	`, int16(statuses.Active), int16(statuses.Suspended))
	if err != nil {
		return 0, fmt.Errorf("lift expired suspensions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) ReviewCount(ctx context.Context, userID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *Repository) Profile(ctx context.Context, userID int64) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	p := &Profile{}
	err := r.db.QueryRow(ctx, `
		SELECT u.id, u.first_name, u.last_name, u.profile_picture_url, u.created_at,
		       (SELECT COUNT(*) FROM reviews WHERE user_id = u.id)
		FROM users u
		WHERE u.id = $1 AND u.is_active = TRUE
	`, userID).Scan(&p.ID, &p.FirstName, &p.LastName, &p.ProfilePictureURL, &p.MemberSince, &p.ReviewCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Badge = BadgeFor(p.ReviewCount)
	return p, nil
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]User, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var status *int16
	if f.StatusID != nil {
		s := int16(*f.StatusID)
		status = &s
	}
	search := strings.TrimSpace(f.Search)

	where := `
		WHERE ($1::smallint IS NULL OR status_id = $1)
		  AND ($2 = '' OR first_name ILIKE '%' || $2 || '%' OR last_name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')`

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, status, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT`+userColumns+` FROM users`+where+` ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`,
		status, search, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]User, 0, f.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *u)
	}
	return out, total, rows.Err()
}
