package reviews

import (
	"context"
	"time"

	"tastemap/internal/domain/statuses"
)

type Review struct {
	ID           int64       `json:"id"`
	RestaurantID int64       `json:"restaurant_id"`
	UserID       int64       `json:"user_id"`
	Rating       int         `json:"rating"` // 1-5
	Comment      string      `json:"comment"`
	Photos       []string    `json:"photos"`
	StatusID     statuses.ID `json:"status_id"`
	Status       string      `json:"status"`
	IsEdited     bool        `json:"is_edited"`
	EditedAt     *time.Time  `json:"edited_at,omitempty"`

	// HasRequestedRecheck is sticky: it records that the owner disputed this
	// review at some point, even after the recheck was adjudicated.
	HasRequestedRecheck bool    `json:"has_requested_recheck"`
	RecheckExplanation  *string `json:"recheck_explanation,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Joined fields
	UserName  string  `json:"user_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// CreateInput is the typed request for a new review.
type CreateInput struct {
	RestaurantID int64    `json:"-" validate:"required,gt=0"`
	Rating       int      `json:"rating" validate:"min=1,max=5"`
	Comment      string   `json:"comment" validate:"required,max=2000"`
	Photos       []string `json:"photos" validate:"max=3,dive,required,url"`
}

// EditInput patches an existing review. Nil fields are left unchanged; a
// non-nil empty Photos slice removes all photos.
type EditInput struct {
	Rating  *int     `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string  `json:"comment" validate:"omitempty,min=1,max=2000"`
	Photos  []string `json:"photos" validate:"omitempty,max=3,dive,required,url"`
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

type RecheckInput struct {
	Explanation string `json:"explanation" validate:"required,max=1000"`
}

type ListFilter struct {
	StatusID *statuses.ID
	Limit    int
	Offset   int
}

// Store is the set of operations available inside a review unit of work.
type Store interface {
	// LockRestaurant takes a row lock on the restaurant and returns its
	// claimed owner, serializing concurrent writers to its review set.
	LockRestaurant(ctx context.Context, restaurantID int64) (ownerID *int64, err error)
	GetByID(ctx context.Context, reviewID int64) (*Review, error)
	GetForUpdate(ctx context.Context, reviewID int64) (*Review, error)
	Insert(ctx context.Context, review *Review) error
	UpdateContent(ctx context.Context, review *Review) error
	Delete(ctx context.Context, reviewID int64) error
	// LockAuthor takes a row lock on the user, blocking new reviews by them
	// until the unit of work ends.
	LockAuthor(ctx context.Context, userID int64) error
	// DeleteAuthor removes the user row. Their reviews must already be gone.
	DeleteAuthor(ctx context.Context, userID int64) error
	// DeleteByUser locks every restaurant the user reviewed, in id order,
	// removes the user's reviews and returns the affected restaurant ids.
	DeleteByUser(ctx context.Context, userID int64) ([]int64, error)
	SetStatus(ctx context.Context, reviewID int64, status statuses.ID) error
	MarkRecheck(ctx context.Context, reviewID int64, explanation string) error
	// RatingTotals returns the sum and count of ratings for the restaurant,
	// restricted to the given statuses. A nil filter counts every review.
	RatingTotals(ctx context.Context, restaurantID int64, counted []statuses.ID) (sum, count int64, err error)
	SetAverageRating(ctx context.Context, restaurantID int64, average float64) error
}

// Reader serves the read-only listings outside any transaction.
type Reader interface {
	GetByID(ctx context.Context, reviewID int64) (*Review, error)
	ListByRestaurant(ctx context.Context, restaurantID int64, filter ListFilter) ([]Review, int, error)
	ListByUser(ctx context.Context, userID int64, filter ListFilter) ([]Review, int, error)
	ListByStatus(ctx context.Context, filter ListFilter) ([]Review, int, error)
}

// UnitOfWork runs fn atomically. Implementations retry fn on transient
// write conflicts and report exhaustion as dbx.ErrTxConflict.
type UnitOfWork interface {
	WithReviewTx(ctx context.Context, fn func(Store) error) error
}
