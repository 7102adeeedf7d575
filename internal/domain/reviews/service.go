package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tastemap/internal/auth"
	"tastemap/internal/domain/statuses"
	"tastemap/internal/infra/dbx"

	"go.uber.org/zap"
)

// Service owns the review lifecycle. Every mutation of a restaurant's review
// set recomputes its average rating inside the same unit of work, so readers
// never see one without the other.
type Service struct {
	uow    UnitOfWork
	reader Reader
	policy Policy
	logger *zap.SugaredLogger
	now    func() time.Time
}

type Option func(*Service)

func WithPolicy(p Policy) Option {
	return func(s *Service) { s.policy = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(uow UnitOfWork, reader Reader, logger *zap.SugaredLogger, opts ...Option) *Service {
	s := &Service{
		uow:    uow,
		reader: reader,
		policy: CountAll,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}
	return s
}

func (s *Service) Policy() Policy { return s.policy }

// Create inserts a Pending review by the caller.
func (s *Service) Create(ctx context.Context, caller auth.Caller, in CreateInput) (*Review, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	review := &Review{
		RestaurantID: in.RestaurantID,
		UserID:       caller.UserID,
		Rating:       in.Rating,
		Comment:      in.Comment,
		Photos:       normalizePhotos(in.Photos),
		StatusID:     statuses.Pending,
	}

	err := s.run(ctx, func(st Store) error {
		if _, err := st.LockRestaurant(ctx, in.RestaurantID); err != nil {
			if errors.Is(err, ErrRestaurantNotFound) {
				return fmt.Errorf("%w: restaurant %d", ErrForeignKeyViolation, in.RestaurantID)
			}
			return err
		}

		review.CreatedAt = s.now()
		if err := st.Insert(ctx, review); err != nil {
			return err
		}

		if s.policy.Counts(review.StatusID) {
			return s.recompute(ctx, st, review.RestaurantID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	review.Status = review.StatusID.String()
	return review, nil
}

// Edit patches the caller's own review and marks it edited.
func (s *Service) Edit(ctx context.Context, caller auth.Caller, reviewID int64, in EditInput) (*Review, error) {
	if in.Comment != nil {
		trimmed := strings.TrimSpace(*in.Comment)
		in.Comment = &trimmed
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var out *Review
	err := s.run(ctx, func(st Store) error {
		review, err := s.lockReview(ctx, st, reviewID)
		if err != nil {
			return err
		}
		if review.UserID != caller.UserID {
			return ErrForbidden
		}

		if in.Rating != nil {
			review.Rating = *in.Rating
		}
		if in.Comment != nil {
			review.Comment = *in.Comment
		}
		if in.Photos != nil {
			review.Photos = normalizePhotos(in.Photos)
		}
		editedAt := s.now()
		review.IsEdited = true
		review.EditedAt = &editedAt

		if err := st.UpdateContent(ctx, review); err != nil {
			return err
		}
		if err := s.recompute(ctx, st, review.RestaurantID); err != nil {
			return err
		}

		out = review
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.Status = out.StatusID.String()
	return out, nil
}

// Delete removes the caller's own review.
func (s *Service) Delete(ctx context.Context, caller auth.Caller, reviewID int64) error {
	return s.run(ctx, func(st Store) error {
		review, err := s.lockReview(ctx, st, reviewID)
		if err != nil {
			return err
		}
		if review.UserID != caller.UserID {
			return ErrForbidden
		}

		if err := st.Delete(ctx, reviewID); err != nil {
			return err
		}
		return s.recompute(ctx, st, review.RestaurantID)
	})
}

// DeleteAuthor deletes the account of userID together with every review it
// wrote, recomputing each affected restaurant in the same unit of work. The
// user row is locked first so no review can be added meanwhile.
func (s *Service) DeleteAuthor(ctx context.Context, userID int64) error {
	return s.run(ctx, func(st Store) error {
		if err := st.LockAuthor(ctx, userID); err != nil {
			return err
		}
		ids, err := st.DeleteByUser(ctx, userID)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := s.recompute(ctx, st, id); err != nil {
				return err
			}
		}
		return st.DeleteAuthor(ctx, userID)
	})
}

// Moderate applies an admin decision. A pending recheck is consumed by it.
func (s *Service) Moderate(ctx context.Context, caller auth.Caller, reviewID int64, action Action) (*Review, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	var next statuses.ID
	switch action {
	case ActionApprove:
		next = statuses.Approved
	case ActionReject:
		next = statuses.Rejected
	default:
		return nil, invalid("action", "must be approve or reject")
	}

	var out *Review
	err := s.run(ctx, func(st Store) error {
		review, err := s.lockReview(ctx, st, reviewID)
		if err != nil {
			return err
		}

		prev := review.StatusID
		if err := st.SetStatus(ctx, reviewID, next); err != nil {
			return err
		}
		review.StatusID = next

		if s.policy.Counts(prev) != s.policy.Counts(next) {
			if err := s.recompute(ctx, st, review.RestaurantID); err != nil {
				return err
			}
		}

		out = review
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.Status = out.StatusID.String()
	return out, nil
}

// RequestRecheck lets the claimed owner of the review's restaurant dispute it.
func (s *Service) RequestRecheck(ctx context.Context, caller auth.Caller, reviewID int64, in RecheckInput) (*Review, error) {
	in.Explanation = strings.TrimSpace(in.Explanation)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var out *Review
	err := s.run(ctx, func(st Store) error {
		peek, err := st.GetByID(ctx, reviewID)
		if err != nil {
			return err
		}
		ownerID, err := st.LockRestaurant(ctx, peek.RestaurantID)
		if err != nil {
			return err
		}
		review, err := st.GetForUpdate(ctx, reviewID)
		if err != nil {
			return err
		}

		if !caller.Owns(ownerID) {
			return ErrForbidden
		}
		if review.StatusID == statuses.RecheckRequested {
			return fmt.Errorf("%w: recheck already requested", ErrConflict)
		}

		prev := review.StatusID
		if err := st.MarkRecheck(ctx, reviewID, in.Explanation); err != nil {
			return err
		}
		review.StatusID = statuses.RecheckRequested
		review.HasRequestedRecheck = true
		review.RecheckExplanation = &in.Explanation

		if s.policy.Counts(prev) != s.policy.Counts(review.StatusID) {
			if err := s.recompute(ctx, st, review.RestaurantID); err != nil {
				return err
			}
		}

		out = review
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.Status = out.StatusID.String()
	return out, nil
}

// RecomputeAverage rebuilds the cached average for one restaurant.
func (s *Service) RecomputeAverage(ctx context.Context, restaurantID int64) (float64, error) {
	var avg float64
	err := s.run(ctx, func(st Store) error {
		if _, err := st.LockRestaurant(ctx, restaurantID); err != nil {
			return err
		}
		var err error
		avg, err = s.average(ctx, st, restaurantID)
		if err != nil {
			return err
		}
		return st.SetAverageRating(ctx, restaurantID, avg)
	})
	return avg, err
}

func (s *Service) Get(ctx context.Context, reviewID int64) (*Review, error) {
	r, err := s.reader.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	r.Status = r.StatusID.String()
	return r, nil
}

func (s *Service) ListByRestaurant(ctx context.Context, restaurantID int64, f ListFilter) ([]Review, int, error) {
	return withNames(s.reader.ListByRestaurant(ctx, restaurantID, f))
}

func (s *Service) ListByUser(ctx context.Context, userID int64, f ListFilter) ([]Review, int, error) {
	return withNames(s.reader.ListByUser(ctx, userID, f))
}

func (s *Service) ListByStatus(ctx context.Context, f ListFilter) ([]Review, int, error) {
	return withNames(s.reader.ListByStatus(ctx, f))
}

func withNames(list []Review, total int, err error) ([]Review, int, error) {
	if err != nil {
		return nil, 0, err
	}
	for i := range list {
		list[i].Status = list[i].StatusID.String()
	}
	return list, total, nil
}

// lockReview locks the parent restaurant first, then the review row, so every
// writer acquires locks in the same order.
func (s *Service) lockReview(ctx context.Context, st Store, reviewID int64) (*Review, error) {
	peek, err := st.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if _, err := st.LockRestaurant(ctx, peek.RestaurantID); err != nil {
		return nil, err
	}
	return st.GetForUpdate(ctx, reviewID)
}

func (s *Service) recompute(ctx context.Context, st Store, restaurantID int64) error {
	avg, err := s.average(ctx, st, restaurantID)
	if err != nil {
		return err
	}
	if err := st.SetAverageRating(ctx, restaurantID, avg); err != nil {
		return fmt.Errorf("set average rating: %w", err)
	}
	return nil
}

func (s *Service) average(ctx context.Context, st Store, restaurantID int64) (float64, error) {
	sum, count, err := st.RatingTotals(ctx, restaurantID, s.policy.counted)
	if err != nil {
		return 0, fmt.Errorf("rating totals: %w", err)
	}
	avg := Mean(sum, count)
	s.logger.Debugw("average rating recomputed",
		"restaurant_id", restaurantID, "average", avg, "count", count, "policy", s.policy.String())
	return avg, nil
}

func (s *Service) run(ctx context.Context, fn func(Store) error) error {
	err := s.uow.WithReviewTx(ctx, fn)
	if errors.Is(err, dbx.ErrTxConflict) {
		s.logger.Warnw("review transaction gave up after retries", "error", err)
		return fmt.Errorf("%w: concurrent update, try again", ErrConflict)
	}
	return err
}

func normalizePhotos(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
