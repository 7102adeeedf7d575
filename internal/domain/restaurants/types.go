package restaurants

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("restaurant not found")
	ErrOwnerNotFound = errors.New("owner user not found")
	ErrNoChanges     = errors.New("no fields to update")
)

// Restaurant is a listed venue. AverageRating is maintained by the review
// service and is read-only everywhere else.
type Restaurant struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Website       *string   `json:"website,omitempty"`
	PriceLevel    int       `json:"price_level"`
	OwnerID       *int64    `json:"owner_id,omitempty"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Detail adds the lookup names attached to a restaurant.
type Detail struct {
	Restaurant
	Cuisines  []string `json:"cuisines"`
	Amenities []string `json:"amenities"`
}

type CreateInput struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Address     string   `json:"address" validate:"required,max=300"`
	City        string   `json:"city" validate:"required,max=100"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
	Phone       *string  `json:"phone" validate:"omitempty,max=30"`
	Website     *string  `json:"website" validate:"omitempty,url"`
	PriceLevel  int      `json:"price_level" validate:"omitempty,min=1,max=4"`
}

type UpdateInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Address     *string  `json:"address" validate:"omitempty,min=1,max=300"`
	City        *string  `json:"city" validate:"omitempty,min=1,max=100"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
	Phone       *string  `json:"phone" validate:"omitempty,max=30"`
	Website     *string  `json:"website" validate:"omitempty,url"`
	PriceLevel  *int     `json:"price_level" validate:"omitempty,min=1,max=4"`
}

type Sort string

const (
	SortRating Sort = "rating"
	SortNewest Sort = "newest"
	SortName   Sort = "name"
)

type ListFilter struct {
	Search    string
	City      string
	CuisineID *int64
	AmenityID *int64
	MinRating *float64
	OwnerID   *int64
	Sort      Sort
	Limit     int
	Offset    int
}

type Favorite struct {
	UserID       int64     `json:"user_id"`
	RestaurantID int64     `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}
