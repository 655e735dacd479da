package booking

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
	"github.com/lmfraga/restaurant-table-reservation/internal/queue"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
)

// In-memory fakes backing the engine tests. They mirror the repository
// semantics the engine relies on, including the confirmed-slot conflict
// check inside reservation Create.

type fakeClientStore struct {
	mu      sync.Mutex
	nextID  uint64
	clients map[uint64]*model.Client
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{nextID: 1, clients: make(map[uint64]*model.Client)}
}

func (f *fakeClientStore) Create(ctx context.Context, c *model.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.clients {
		if existing.Email == c.Email && existing.IsActive {
			return repository.ErrEmailExists
		}
	}
	c.ID = f.nextID
	f.nextID++
	c.RegisteredAt = time.Now().UTC()
	c.IsActive = true
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeClientStore) GetByID(ctx context.Context, id uint64) (*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok || !c.IsActive {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClientStore) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.Email == strings.ToLower(email) && c.IsActive {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeClientStore) Update(ctx context.Context, id uint64, upd repository.ClientUpdate) (*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok || !c.IsActive {
		return nil, repository.ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Email != nil {
		for otherID, other := range f.clients {
			if otherID != id && other.Email == *upd.Email && other.IsActive {
				return nil, repository.ErrEmailExists
			}
		}
		c.Email = *upd.Email
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	cp := *c
	return &cp, nil
}

type fakeEnvironmentStore struct {
	environments map[uint64]*model.Environment
}

func newFakeEnvironmentStore() *fakeEnvironmentStore {
	return &fakeEnvironmentStore{environments: make(map[uint64]*model.Environment)}
}

func (f *fakeEnvironmentStore) GetByID(ctx context.Context, id uint64) (*model.Environment, error) {
	env, ok := f.environments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *env
	return &cp, nil
}

type fakeTableStore struct {
	tables       map[uint64]*model.Table
	reservations *fakeReservationStore
}

func newFakeTableStore(reservations *fakeReservationStore) *fakeTableStore {
	return &fakeTableStore{tables: make(map[uint64]*model.Table), reservations: reservations}
}

func (f *fakeTableStore) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	t, ok := f.tables[id]
	if !ok || !t.IsActive {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTableStore) GetAvailable(ctx context.Context, environmentID uint64, at time.Time, partySize int) ([]model.Table, error) {
	out := make([]model.Table, 0)
	for _, t := range f.tables {
		if t.EnvironmentID != environmentID || !t.IsActive || t.Capacity < partySize {
			continue
		}
		if f.reservations.slotTaken(t.ID, at) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

type fakeReservationStore struct {
	mu           sync.Mutex
	nextID       uint64
	reservations map[uint64]*model.Reservation
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{nextID: 1, reservations: make(map[uint64]*model.Reservation)}
}

func (f *fakeReservationStore) slotTaken(tableID uint64, at time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.TableID == tableID && r.ReservedAt.Equal(at.UTC()) && r.Status == model.StatusConfirmed {
			return true
		}
	}
	return false
}

func (f *fakeReservationStore) Create(ctx context.Context, res *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.TableID == res.TableID && r.ReservedAt.Equal(res.ReservedAt) && r.Status == model.StatusConfirmed {
			return repository.ErrConflict
		}
	}
	res.ID = f.nextID
	f.nextID++
	res.CreatedAt = time.Now().UTC()
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeReservationStore) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservationStore) Cancel(ctx context.Context, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return false, nil
	}
	r.Status = model.StatusCancelled
	return true, nil
}

func (f *fakeReservationStore) Update(ctx context.Context, id uint64, upd repository.ReservationUpdate) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	next := *r
	if upd.ReservedAt != nil {
		next.ReservedAt = upd.ReservedAt.UTC()
	}
	if upd.PartySize != nil {
		next.PartySize = *upd.PartySize
	}
	if upd.Notes != nil {
		next.Notes = upd.Notes
	}
	if upd.Status != nil {
		next.Status = *upd.Status
	}
	if next.Status == model.StatusConfirmed {
		for otherID, other := range f.reservations {
			if otherID != id && other.TableID == next.TableID &&
				other.ReservedAt.Equal(next.ReservedAt) && other.Status == model.StatusConfirmed {
				return nil, repository.ErrConflict
			}
		}
	}
	*r = next
	cp := next
	return &cp, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.ReservationConfirmedEvent
	fail   bool
}

func (f *fakePublisher) PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return context.DeadlineExceeded
	}
	f.events = append(f.events, ev)
	return nil
}

// testFixture wires the fakes into an engine with one restaurant layout:
// environment 1 with tables T1 (cap 2), T2 (cap 4), T3 (cap 8, inactive)
// and one registered client.
type testFixture struct {
	engine       *Service
	clients      *fakeClientStore
	environments *fakeEnvironmentStore
	tables       *fakeTableStore
	reservations *fakeReservationStore
	publisher    *fakePublisher
	clientID     uint64
}

func newTestFixture() *testFixture {
	clients := newFakeClientStore()
	environments := newFakeEnvironmentStore()
	reservations := newFakeReservationStore()
	tables := newFakeTableStore(reservations)
	publisher := &fakePublisher{}

	environments.environments[1] = &model.Environment{ID: 1, Name: "Sala Principal", RestaurantID: 1, IsActive: true}
	environments.environments[2] = &model.Environment{ID: 2, Name: "Esplanada", RestaurantID: 1, IsActive: false}
	tables.tables[1] = &model.Table{ID: 1, Number: "T1", Capacity: 2, EnvironmentID: 1, IsActive: true}
	tables.tables[2] = &model.Table{ID: 2, Number: "T2", Capacity: 4, EnvironmentID: 1, IsActive: true}
	tables.tables[3] = &model.Table{ID: 3, Number: "T3", Capacity: 8, EnvironmentID: 1, IsActive: false}

	c := &model.Client{Name: "Maria da Silva", Email: "maria@example.com", Phone: "+351912345678"}
	_ = clients.Create(context.Background(), c)

	return &testFixture{
		engine:       NewService(clients, environments, tables, reservations, publisher),
		clients:      clients,
		environments: environments,
		tables:       tables,
		reservations: reservations,
		publisher:    publisher,
		clientID:     c.ID,
	}
}

// slot returns a valid future reservation timestamp.
func slot() time.Time {
	return time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)
}
