package notifications

import (
	"context"

	"tastemap/internal/domain/restaurants"
	"tastemap/internal/domain/users"
)

// Sender delivers a rendered template to one address. mailer.Client
// satisfies it.
type Sender interface {
	Send(templateFile, username, email string, data any) error
}

type UserLookup interface {
	GetByID(ctx context.Context, userID int64) (*users.User, error)
}

type RestaurantLookup interface {
	GetByID(ctx context.Context, id int64) (*restaurants.Restaurant, error)
}
