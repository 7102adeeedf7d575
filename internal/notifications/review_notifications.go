package notifications

import (
	"context"
	"errors"
	"fmt"

	"tastemap/internal/domain/reviews"
	"tastemap/internal/domain/statuses"
	"tastemap/internal/domain/users"
	"tastemap/internal/mailer"
)

type ReviewEvent string

const (
	// ReviewReceived goes to the restaurant's claimed owner.
	ReviewReceived ReviewEvent = "received"
	ReviewApproved ReviewEvent = "approved"
	ReviewRejected ReviewEvent = "rejected"
)

// ErrNoRecipient means the event has nobody to tell, e.g. a review on an
// unclaimed restaurant. Callers usually ignore it.
var ErrNoRecipient = errors.New("no recipient for notification")

// ModerationEvent maps a moderated review's status to the event its author
// receives. ok is false for statuses that notify nobody.
func ModerationEvent(status statuses.ID) (ReviewEvent, bool) {
	switch status {
	case statuses.Approved:
		return ReviewApproved, true
	case statuses.Rejected:
		return ReviewRejected, true
	default:
		return "", false
	}
}

type Notifier struct {
	sender      Sender
	users       UserLookup
	restaurants RestaurantLookup
}

func New(sender Sender, u UserLookup, r RestaurantLookup) *Notifier {
	return &Notifier{sender: sender, users: u, restaurants: r}
}

type reviewMail struct {
	Username   string
	Restaurant string
	Event      ReviewEvent
	ReviewID   int64
	Rating     int
	Comment    string
}

func (n *Notifier) SendReviewNotification(ctx context.Context, event ReviewEvent, review *reviews.Review) error {
	restaurant, err := n.restaurants.GetByID(ctx, review.RestaurantID)
	if err != nil {
		return err
	}

	var recipientID int64
	switch event {
	case ReviewReceived:
		if restaurant.OwnerID == nil || *restaurant.OwnerID == review.UserID {
			return ErrNoRecipient
		}
		recipientID = *restaurant.OwnerID
	case ReviewApproved, ReviewRejected:
		recipientID = review.UserID
	default:
		return fmt.Errorf("unknown review event %q", event)
	}

	recipient, err := n.users.GetByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrNoRecipient
		}
		return err
	}
	if !recipient.IsActive || recipient.IsBanned() {
		return ErrNoRecipient
	}

	return n.sender.Send(mailer.ReviewUpdateTemplate, recipient.FirstName, recipient.Email, reviewMail{
		Username:   recipient.FirstName,
		Restaurant: restaurant.Name,
		Event:      event,
		ReviewID:   review.ID,
		Rating:     review.Rating,
		Comment:    review.Comment,
	})
}
