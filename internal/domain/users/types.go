package users

import (
	"errors"
	"time"

	"tastemap/internal/domain/statuses"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("a user with that email already exists")
	ErrInvalidSuspension = errors.New("suspension must last between 1 and 365 days")
	ErrInvalidTransition = errors.New("account is already in that state")
	QueryTimeoutDuration = time.Second * 5
)

const MaxSuspensionDays = 365

type User struct {
	ID                int64       `json:"id"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	Email             string      `json:"email"`
	Password          password    `json:"-"`
	ProfilePictureURL *string     `json:"profile_picture_url"`
	IsActive          bool        `json:"is_active"`
	StatusID          statuses.ID `json:"status_id"`
	Status            string      `json:"status"`
	SuspendedUntil    *time.Time  `json:"suspended_until,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// AccountStatus is the effective state at now. A suspension whose end has
// passed counts as active even before anyone clears it.
func (u *User) AccountStatus(now time.Time) statuses.ID {
	if u.StatusID == statuses.Suspended && u.SuspendedUntil != nil && !now.Before(*u.SuspendedUntil) {
		return statuses.Active
	}
	return u.StatusID
}

// CanWrite reports whether the user may create or change content.
func (u *User) CanWrite(now time.Time) bool {
	return u.AccountStatus(now) == statuses.Active
}

func (u *User) IsBanned() bool {
	return u.StatusID == statuses.Banned
}

type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

type UpdateInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

// Profile is the public view of a user shown next to their reviews.
type Profile struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	ReviewCount       int       `json:"review_count"`
	Badge             Badge     `json:"badge"`
	MemberSince       time.Time `json:"member_since"`
}

type ListFilter struct {
	StatusID *statuses.ID
	Search   string
	Limit    int
	Offset   int
}

// SuspensionEnd returns when a suspension of days starting at now ends.
func SuspensionEnd(now time.Time, days int) (time.Time, error) {
	if days < 1 || days > MaxSuspensionDays {
		return time.Time{}, ErrInvalidSuspension
	}
	return now.AddDate(0, 0, days), nil
}
