package reviews

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"tastemap/internal/domain/statuses"
)

// memoryDB is an in-memory stand-in for Postgres. WithReviewTx holds a single
// mutex for the whole unit of work and restores a snapshot when fn fails.
type memoryDB struct {
	mu          sync.Mutex
	nextID      int64
	reviews     map[int64]Review
	restaurants map[int64]*memRestaurant
	users       map[int64]bool
	txCount     int
}

type memRestaurant struct {
	ownerID *int64
	average float64
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		reviews:     map[int64]Review{},
		restaurants: map[int64]*memRestaurant{},
		users:       map[int64]bool{},
	}
}

func (m *memoryDB) addRestaurant(id int64, ownerID *int64) {
	m.restaurants[id] = &memRestaurant{ownerID: ownerID}
}

func (m *memoryDB) addUser(id int64) { m.users[id] = true }

func (m *memoryDB) average(id int64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restaurants[id].average
}

func (m *memoryDB) review(id int64) (Review, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	return r, ok
}

func (m *memoryDB) WithReviewTx(ctx context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txCount++

	snapReviews := make(map[int64]Review, len(m.reviews))
	for k, v := range m.reviews {
		snapReviews[k] = v
	}
	snapAvg := make(map[int64]float64, len(m.restaurants))
	for k, v := range m.restaurants {
		snapAvg[k] = v.average
	}
	snapNext := m.nextID
	snapUsers := maps.Clone(m.users)

	if err := fn(memoryStore{m}); err != nil {
		m.reviews = snapReviews
		for k, v := range snapAvg {
			m.restaurants[k].average = v
		}
		m.nextID = snapNext
		m.users = snapUsers
		return err
	}
	return nil
}

// memoryStore is only used while the owning memoryDB mutex is held.
type memoryStore struct{ m *memoryDB }

func (s memoryStore) LockRestaurant(_ context.Context, id int64) (*int64, error) {
	r, ok := s.m.restaurants[id]
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	return r.ownerID, nil
}

func (s memoryStore) GetByID(_ context.Context, id int64) (*Review, error) {
	r, ok := s.m.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.Photos = slices.Clone(r.Photos)
	return &r, nil
}

func (s memoryStore) GetForUpdate(ctx context.Context, id int64) (*Review, error) {
	return s.GetByID(ctx, id)
}

func (s memoryStore) Insert(_ context.Context, r *Review) error {
	if !s.m.users[r.UserID] {
		return ErrForeignKeyViolation
	}
	s.m.nextID++
	r.ID = s.m.nextID
	s.m.reviews[r.ID] = *r
	return nil
}

func (s memoryStore) UpdateContent(_ context.Context, r *Review) error {
	cur, ok := s.m.reviews[r.ID]
	if !ok {
		return ErrNotFound
	}
	cur.Rating, cur.Comment, cur.Photos = r.Rating, r.Comment, slices.Clone(r.Photos)
	cur.IsEdited, cur.EditedAt = r.IsEdited, r.EditedAt
	s.m.reviews[r.ID] = cur
	return nil
}

func (s memoryStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.m.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.reviews, id)
	return nil
}

func (s memoryStore) LockAuthor(_ context.Context, userID int64) error {
	if !s.m.users[userID] {
		return ErrAuthorNotFound
	}
	return nil
}

func (s memoryStore) DeleteAuthor(_ context.Context, userID int64) error {
	if !s.m.users[userID] {
		return ErrAuthorNotFound
	}
	delete(s.m.users, userID)
	return nil
}

func (s memoryStore) DeleteByUser(_ context.Context, userID int64) ([]int64, error) {
	seen := map[int64]bool{}
	for id, r := range s.m.reviews {
		if r.UserID == userID {
			seen[r.RestaurantID] = true
			delete(s.m.reviews, id)
		}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s memoryStore) SetStatus(_ context.Context, id int64, st statuses.ID) error {
	cur, ok := s.m.reviews[id]
	if !ok {
		return ErrNotFound
	}
	cur.StatusID = st
	s.m.reviews[id] = cur
	return nil
}

func (s memoryStore) MarkRecheck(_ context.Context, id int64, explanation string) error {
	cur, ok := s.m.reviews[id]
	if !ok {
		return ErrNotFound
	}
	cur.StatusID = statuses.RecheckRequested
	cur.HasRequestedRecheck = true
	cur.RecheckExplanation = &explanation
	s.m.reviews[id] = cur
	return nil
}

func (s memoryStore) RatingTotals(_ context.Context, restaurantID int64, counted []statuses.ID) (int64, int64, error) {
	var sum, count int64
	for _, r := range s.m.reviews {
		if r.RestaurantID != restaurantID {
			continue
		}
		if counted != nil && !slices.Contains(counted, r.StatusID) {
			continue
		}
		sum += int64(r.Rating)
		count++
	}
	return sum, count, nil
}

func (s memoryStore) SetAverageRating(_ context.Context, restaurantID int64, avg float64) error {
	r, ok := s.m.restaurants[restaurantID]
	if !ok {
		return ErrRestaurantNotFound
	}
	r.average = avg
	return nil
}

// Reader side, taking the lock itself.

func (m *memoryDB) GetByID(ctx context.Context, id int64) (*Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memoryStore{m}.GetByID(ctx, id)
}

func (m *memoryDB) filter(keep func(Review) bool, f ListFilter) ([]Review, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Review
	for _, r := range m.reviews {
		if keep(r) && (f.StatusID == nil || r.StatusID == *f.StatusID) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := len(out)
	if f.Offset >= len(out) {
		return []Review{}, total, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (m *memoryDB) ListByRestaurant(_ context.Context, id int64, f ListFilter) ([]Review, int, error) {
	return m.filter(func(r Review) bool { return r.RestaurantID == id }, f)
}

func (m *memoryDB) ListByUser(_ context.Context, id int64, f ListFilter) ([]Review, int, error) {
	return m.filter(func(r Review) bool { return r.UserID == id }, f)
}

func (m *memoryDB) ListByStatus(_ context.Context, f ListFilter) ([]Review, int, error) {
	return m.filter(func(Review) bool { return true }, f)
}
