package reviews

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"tastemap/internal/auth"
	"tastemap/internal/domain/statuses"
	"tastemap/internal/infra/dbx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	restaurantID = int64(10)
	ownerID      = int64(100)
	aliceID      = int64(1)
	bobID        = int64(2)
	adminID      = int64(99)
)

var (
	alice = auth.Caller{UserID: aliceID}
	bob   = auth.Caller{UserID: bobID}
	owner = auth.Caller{UserID: ownerID, Privilege: auth.PrivilegeOwner}
	admin = auth.Caller{UserID: adminID, Privilege: auth.PrivilegeAdmin}
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) (*Service, *memoryDB) {
	t.Helper()
	db := newMemoryDB()
	o := ownerID
	db.addRestaurant(restaurantID, &o)
	db.addRestaurant(20, nil)
	for _, id := range []int64{aliceID, bobID, ownerID, adminID} {
		db.addUser(id)
	}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewService(db, db, nil, opts...), db
}

func create(t *testing.T, s *Service, c auth.Caller, rating int) *Review {
	t.Helper()
	r, err := s.Create(context.Background(), c, CreateInput{
		RestaurantID: restaurantID,
		Rating:       rating,
		Comment:      fmt.Sprintf("rated %d", rating),
	})
	require.NoError(t, err)
	return r
}

func intPtr(v int) *int { return &v }

func TestCreateStartsPendingAndUpdatesAverage(t *testing.T) {
	s, db := newTestService(t)

	r, err := s.Create(context.Background(), alice, CreateInput{
		RestaurantID: restaurantID,
		Rating:       4,
		Comment:      "  great dumplings  ",
		Photos:       []string{"https://img.example.com/a.jpg"},
	})
	require.NoError(t, err)

	assert.Equal(t, statuses.Pending, r.StatusID)
	assert.Equal(t, "pending", r.Status)
	assert.Equal(t, "great dumplings", r.Comment)
	assert.Equal(t, aliceID, r.UserID)
	assert.Equal(t, fixedNow, r.CreatedAt)
	assert.False(t, r.IsEdited)
	assert.Equal(t, 4.0, db.average(restaurantID))
}

func TestCreateValidationPerformsNoMutation(t *testing.T) {
	s, db := newTestService(t)
	create(t, s, alice, 3)
	txBefore := db.txCount

	cases := map[string]CreateInput{
		"rating zero":    {RestaurantID: restaurantID, Rating: 0, Comment: "x"},
		"rating six":     {RestaurantID: restaurantID, Rating: 6, Comment: "x"},
		"negative":       {RestaurantID: restaurantID, Rating: -1, Comment: "x"},
		"empty comment":  {RestaurantID: restaurantID, Rating: 4, Comment: "   "},
		"too many photo": {RestaurantID: restaurantID, Rating: 4, Comment: "x", Photos: []string{"https://a.io/1", "https://a.io/2", "https://a.io/3", "https://a.io/4"}},
		"bad photo url":  {RestaurantID: restaurantID, Rating: 4, Comment: "x", Photos: []string{"not a url"}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Create(context.Background(), bob, in)
			require.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.NotEmpty(t, ve.Fields)
		})
	}

	assert.Equal(t, txBefore, db.txCount)
	assert.Equal(t, 3.0, db.average(restaurantID))
}

func TestCreateMissingReferences(t *testing.T) {
	s, db := newTestService(t)

	_, err := s.Create(context.Background(), alice, CreateInput{RestaurantID: 404, Rating: 4, Comment: "x"})
	assert.ErrorIs(t, err, ErrForeignKeyViolation)

	ghost := auth.Caller{UserID: 777}
	_, err = s.Create(context.Background(), ghost, CreateInput{RestaurantID: restaurantID, Rating: 4, Comment: "x"})
	assert.ErrorIs(t, err, ErrForeignKeyViolation)
	assert.Equal(t, 0.0, db.average(restaurantID))
}

func TestEditRecomputesAverage(t *testing.T) {
	s, db := newTestService(t)
	mine := create(t, s, alice, 3)
	create(t, s, bob, 4)
	require.Equal(t, 3.5, db.average(restaurantID))

	edited, err := s.Edit(context.Background(), alice, mine.ID, EditInput{Rating: intPtr(5)})
	require.NoError(t, err)

	assert.Equal(t, 4.5, db.average(restaurantID))
	assert.Equal(t, 5, edited.Rating)
	assert.True(t, edited.IsEdited)
	require.NotNil(t, edited.EditedAt)
	assert.Equal(t, fixedNow, *edited.EditedAt)
	assert.Equal(t, "rated 3", edited.Comment)
}

func TestEditPatchesOnlyGivenFields(t *testing.T) {
	s, db := newTestService(t)
	r, err := s.Create(context.Background(), alice, CreateInput{
		RestaurantID: restaurantID, Rating: 2, Comment: "meh", Photos: []string{"https://a.io/1"},
	})
	require.NoError(t, err)

	comment := "better on second visit"
	_, err = s.Edit(context.Background(), alice, r.ID, EditInput{Comment: &comment, Photos: []string{}})
	require.NoError(t, err)

	stored, _ := db.review(r.ID)
	assert.Equal(t, 2, stored.Rating)
	assert.Equal(t, comment, stored.Comment)
	assert.Empty(t, stored.Photos)
}

func TestEditRejectsInvalidPatch(t *testing.T) {
	s, db := newTestService(t)
	r := create(t, s, alice, 3)

	_, err := s.Edit(context.Background(), alice, r.ID, EditInput{Rating: intPtr(7)})
	assert.ErrorIs(t, err, ErrValidation)

	empty := " "
	_, err = s.Edit(context.Background(), alice, r.ID, EditInput{Comment: &empty})
	assert.ErrorIs(t, err, ErrValidation)

	stored, _ := db.review(r.ID)
	assert.False(t, stored.IsEdited)
}

func TestOnlyAuthorMayEditOrDelete(t *testing.T) {
	s, db := newTestService(t)
	r := create(t, s, alice, 3)

	_, err := s.Edit(context.Background(), bob, r.ID, EditInput{Rating: intPtr(1)})
	assert.ErrorIs(t, err, ErrForbidden)

	// admin privilege does not grant content edits
	_, err = s.Edit(context.Background(), admin, r.ID, EditInput{Rating: intPtr(1)})
	assert.ErrorIs(t, err, ErrForbidden)

	err = s.Delete(context.Background(), bob, r.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	stored, ok := db.review(r.ID)
	require.True(t, ok)
	assert.Equal(t, 3, stored.Rating)
	assert.Equal(t, 3.0, db.average(restaurantID))
}

func TestUnknownReview(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Edit(context.Background(), alice, 12345, EditInput{Rating: intPtr(2)})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), alice, 12345), ErrNotFound)
	_, err = s.Moderate(context.Background(), admin, 12345, ActionApprove)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.RequestRecheck(context.Background(), owner, 12345, RecheckInput{Explanation: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletingOnlyReviewResetsAverageToZero(t *testing.T) {
	s, db := newTestService(t)
	r := create(t, s, alice, 5)
	require.Equal(t, 5.0, db.average(restaurantID))

	require.NoError(t, s.Delete(context.Background(), alice, r.ID))

	assert.Equal(t, 0.0, db.average(restaurantID))
	_, ok := db.review(r.ID)
	assert.False(t, ok)
}

func TestDeleteAuthorRecomputesEveryRestaurant(t *testing.T) {
	s, db := newTestService(t)
	create(t, s, alice, 1)
	create(t, s, bob, 5)
	_, err := s.Create(context.Background(), alice, CreateInput{RestaurantID: 20, Rating: 2, Comment: "x"})
	require.NoError(t, err)
	txBefore := db.txCount

	require.NoError(t, s.DeleteAuthor(context.Background(), aliceID))

	assert.Equal(t, 1, db.txCount-txBefore, "reviews and account go in one unit of work")
	assert.Equal(t, 5.0, db.average(restaurantID))
	assert.Equal(t, 0.0, db.average(20))
	assert.False(t, db.users[aliceID])
	left, total, err := s.ListByUser(context.Background(), aliceID, ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, left)
}

func TestReviewAfterDeleteAuthorIsRejected(t *testing.T) {
	s, db := newTestService(t)
	create(t, s, bob, 5)
	require.NoError(t, s.DeleteAuthor(context.Background(), aliceID))

	// a request authenticated before the deletion cannot add a review that
	// the aggregate would never see
	_, err := s.Create(context.Background(), alice, CreateInput{RestaurantID: restaurantID, Rating: 1, Comment: "late"})
	assert.ErrorIs(t, err, ErrForeignKeyViolation)
	assert.Equal(t, 5.0, db.average(restaurantID))
}

func TestDeleteAuthorUnknownUserChangesNothing(t *testing.T) {
	s, db := newTestService(t)
	create(t, s, alice, 2)

	err := s.DeleteAuthor(context.Background(), 404)
	assert.ErrorIs(t, err, ErrAuthorNotFound)
	assert.Equal(t, 2.0, db.average(restaurantID))
	assert.True(t, db.users[aliceID])
}

func TestModerationRequiresAdmin(t *testing.T) {
	s, _ := newTestService(t)
	r := create(t, s, alice, 4)

	_, err := s.Moderate(context.Background(), owner, r.ID, ActionReject)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = s.Moderate(context.Background(), admin, r.ID, Action("archive"))
	assert.ErrorIs(t, err, ErrValidation)

	got, err := s.Moderate(context.Background(), admin, r.ID, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, statuses.Approved, got.StatusID)

	// decisions can be repeated and reversed
	got, err = s.Moderate(context.Background(), admin, r.ID, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, statuses.Rejected, got.StatusID)
}

func TestLiteralPolicyCountsRejectedReviews(t *testing.T) {
	s, db := newTestService(t)
	r := create(t, s, alice, 1)
	create(t, s, bob, 5)

	_, err := s.Moderate(context.Background(), admin, r.ID, ActionReject)
	require.NoError(t, err)

	assert.Equal(t, 3.0, db.average(restaurantID))
}

func TestModeratedPolicyExcludesRejectedReviews(t *testing.T) {
	s, db := newTestService(t, WithPolicy(CountModerated))
	r := create(t, s, alice, 1)
	create(t, s, bob, 5)
	require.Equal(t, 3.0, db.average(restaurantID))

	_, err := s.Moderate(context.Background(), admin, r.ID, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, 5.0, db.average(restaurantID))

	// owner disputes the rejection: the review counts again while pending re-adjudication
	_, err = s.RequestRecheck(context.Background(), owner, r.ID, RecheckInput{Explanation: "legit customer"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, db.average(restaurantID))

	_, err = s.Moderate(context.Background(), admin, r.ID, ActionReject)
	require.NoError(t, err)
	assert.Equal(t, 5.0, db.average(restaurantID))
}

func TestRecheckLifecycle(t *testing.T) {
	s, db := newTestService(t)
	r := create(t, s, alice, 1)

	_, err := s.RequestRecheck(context.Background(), bob, r.ID, RecheckInput{Explanation: "fake"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = s.RequestRecheck(context.Background(), admin, r.ID, RecheckInput{Explanation: "fake"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = s.RequestRecheck(context.Background(), owner, r.ID, RecheckInput{Explanation: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	got, err := s.RequestRecheck(context.Background(), owner, r.ID, RecheckInput{Explanation: "never visited us"})
	require.NoError(t, err)
	assert.Equal(t, statuses.RecheckRequested, got.StatusID)
	assert.True(t, got.HasRequestedRecheck)
	require.NotNil(t, got.RecheckExplanation)
	assert.Equal(t, "never visited us", *got.RecheckExplanation)

	_, err = s.RequestRecheck(context.Background(), owner, r.ID, RecheckInput{Explanation: "again"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.Moderate(context.Background(), admin, r.ID, ActionApprove)
	require.NoError(t, err)

	stored, _ := db.review(r.ID)
	assert.Equal(t, statuses.Approved, stored.StatusID)
	assert.True(t, stored.HasRequestedRecheck, "history flag survives adjudication")

	// a new dispute is allowed once the previous one was consumed
	_, err = s.RequestRecheck(context.Background(), owner, r.ID, RecheckInput{Explanation: "still wrong"})
	assert.NoError(t, err)
}

func TestUnclaimedRestaurantCannotRequestRecheck(t *testing.T) {
	s, _ := newTestService(t)
	r, err := s.Create(context.Background(), alice, CreateInput{RestaurantID: 20, Rating: 2, Comment: "cold"})
	require.NoError(t, err)

	_, err = s.RequestRecheck(context.Background(), owner, r.ID, RecheckInput{Explanation: "mine"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConcurrentCreatesKeepFullAverage(t *testing.T) {
	for i := 0; i < 20; i++ {
		s, db := newTestService(t)

		var wg sync.WaitGroup
		errs := make(chan error, 2)
		for _, c := range []struct {
			caller auth.Caller
			rating int
		}{{alice, 4}, {bob, 2}} {
			wg.Add(1)
			go func(caller auth.Caller, rating int) {
				defer wg.Done()
				_, err := s.Create(context.Background(), caller, CreateInput{
					RestaurantID: restaurantID, Rating: rating, Comment: "concurrent",
				})
				errs <- err
			}(c.caller, c.rating)
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
		require.Equal(t, 3.0, db.average(restaurantID))
	}
}

func TestAverageInvariantAcrossMutations(t *testing.T) {
	s, db := newTestService(t, WithPolicy(CountAll))
	rng := rand.New(rand.NewSource(7))
	callers := []auth.Caller{alice, bob}
	ctx := context.Background()

	for step := 0; step < 200; step++ {
		caller := callers[rng.Intn(len(callers))]
		mine, _, err := s.ListByUser(ctx, caller.UserID, ListFilter{Limit: 100})
		require.NoError(t, err)

		switch op := rng.Intn(4); {
		case op == 0 || len(mine) == 0:
			_, err = s.Create(ctx, caller, CreateInput{RestaurantID: restaurantID, Rating: 1 + rng.Intn(5), Comment: "x"})
		case op == 1:
			_, err = s.Edit(ctx, caller, mine[0].ID, EditInput{Rating: intPtr(1 + rng.Intn(5))})
		case op == 2:
			err = s.Delete(ctx, caller, mine[0].ID)
		default:
			action := ActionApprove
			if rng.Intn(2) == 0 {
				action = ActionReject
			}
			_, err = s.Moderate(ctx, admin, mine[0].ID, action)
		}
		require.NoError(t, err)

		all, _, err := s.ListByRestaurant(ctx, restaurantID, ListFilter{Limit: 1000})
		require.NoError(t, err)
		var sum int64
		for _, r := range all {
			sum += int64(r.Rating)
		}
		require.Equal(t, Mean(sum, int64(len(all))), db.average(restaurantID), "step %d", step)
	}
}

func TestRecomputeAverageRepairsCache(t *testing.T) {
	s, db := newTestService(t)
	create(t, s, alice, 2)
	create(t, s, bob, 3)
	db.restaurants[restaurantID].average = 0

	avg, err := s.RecomputeAverage(context.Background(), restaurantID)
	require.NoError(t, err)
	assert.Equal(t, 2.5, avg)
	assert.Equal(t, 2.5, db.average(restaurantID))

	_, err = s.RecomputeAverage(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

type conflictingUoW struct{ calls int }

func (u *conflictingUoW) WithReviewTx(context.Context, func(Store) error) error {
	u.calls++
	return fmt.Errorf("%w: serialization failure", dbx.ErrTxConflict)
}

func TestExhaustedRetriesSurfaceAsConflict(t *testing.T) {
	uow := &conflictingUoW{}
	s := NewService(uow, newMemoryDB(), nil)

	_, err := s.Create(context.Background(), alice, CreateInput{RestaurantID: restaurantID, Rating: 4, Comment: "x"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, uow.calls)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, "all", p.String())

	p, err = ParsePolicy("moderated")
	require.NoError(t, err)
	assert.False(t, p.Counts(statuses.Rejected))
	assert.True(t, p.Counts(statuses.Approved))
	assert.True(t, CountAll.Counts(statuses.Rejected))

	_, err = ParsePolicy("approved-only")
	assert.Error(t, err)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(0, 0))
	assert.Equal(t, 3.5, Mean(7, 2))
	assert.InDelta(t, 3.6667, Mean(11, 3), 1e-4)
}

func TestValidationErrorMessage(t *testing.T) {
	err := validateStruct(CreateInput{RestaurantID: 1, Rating: 9})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "must be at most 5", ve.Fields["rating"])
	assert.Equal(t, "is required", ve.Fields["comment"])
	assert.Equal(t, "validation failed: comment: is required; rating: must be at most 5", ve.Error())
}
