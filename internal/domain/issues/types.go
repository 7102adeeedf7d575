package issues

import (
	"errors"
	"time"

	"tastemap/internal/domain/statuses"
)

var (
	ErrNotFound          = errors.New("issue not found")
	ErrInvalidTransition = errors.New("issue cannot move to that status")
	ErrBadReference      = errors.New("restaurant or review does not exist")
)

type Category string

const (
	CategoryWrongInfo           Category = "wrong_info"
	CategoryClosedPermanently   Category = "closed_permanently"
	CategoryInappropriateReview Category = "inappropriate_review"
	CategoryOther               Category = "other"
)

type Issue struct {
	ID           int64       `json:"id"`
	RestaurantID int64       `json:"restaurant_id"`
	ReviewID     *int64      `json:"review_id,omitempty"`
	ReporterID   int64       `json:"reporter_id"`
	Category     Category    `json:"category"`
	Description  string      `json:"description"`
	StatusID     statuses.ID `json:"status_id"`
	Status       string      `json:"status"`
	AdminNote    *string     `json:"admin_note,omitempty"`
	ResolvedAt   *time.Time  `json:"resolved_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	// for notifying the reporter
	ReporterName  string `json:"-"`
	ReporterEmail string `json:"-"`
}

type CreateInput struct {
	Category    Category `json:"category" validate:"required,oneof=wrong_info closed_permanently inappropriate_review other"`
	Description string   `json:"description" validate:"required,max=2000"`
	ReviewID    *int64   `json:"review_id" validate:"omitempty,gt=0"`
}

type TransitionInput struct {
	Status string  `json:"status" validate:"required"`
	Note   *string `json:"note" validate:"omitempty,max=2000"`
}

type ListFilter struct {
	StatusID   *statuses.ID
	ReporterID *int64
	Limit      int
	Offset     int
}

var next = map[statuses.ID][]statuses.ID{
	statuses.Pending:    {statuses.InProgress, statuses.Resolved, statuses.Rejected},
	statuses.InProgress: {statuses.Resolved, statuses.Rejected},
}

// CanTransition reports whether an issue in from may move to to. Resolved
// and Rejected are terminal.
func CanTransition(from, to statuses.ID) bool {
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(s statuses.ID) bool {
	return s == statuses.Resolved || s == statuses.Rejected
}
