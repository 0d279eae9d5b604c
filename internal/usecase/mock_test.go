//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/adapter"
	"travel-planner/internal/domain/ports/repository"
)

// -----------------------------
// Utilities: tiny helpers
// -----------------------------

func now() time.Time { return time.Now().Truncate(time.Millisecond) }

// newTestLogger creates a silent zerolog.Logger so test output stays clean.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// =============================
// Adapters
// =============================

// ---- Mock PlannerServiceAdapter ----

type MockPlanner struct {
	mu sync.Mutex

	SubmitFunc func(ctx context.Context, req model.PlanRequest) (model.JobHandle, error)
	StatusFunc func(ctx context.Context, jobID string) (model.JobStatus, error)
	ResultFunc func(ctx context.Context, itineraryUUID string) (model.Itinerary, error)
	HealthFunc func(ctx context.Context) error

	Calls struct {
		Submit int
		Status int
		Result int
	}
}

var _ adapter.PlannerServiceAdapter = (*MockPlanner)(nil)

func (m *MockPlanner) Submit(ctx context.Context, req model.PlanRequest) (model.JobHandle, error) {
	m.mu.Lock()
	m.Calls.Submit++
	m.mu.Unlock()
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return model.JobHandle{JobID: "srv-1", ItineraryUUID: "uuid-1", PollInterval: time.Millisecond}, nil
}

func (m *MockPlanner) Status(ctx context.Context, jobID string) (model.JobStatus, error) {
	m.mu.Lock()
	m.Calls.Status++
	m.mu.Unlock()
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, jobID)
	}
	return model.JobStatus{State: model.ServerJobProcessing}, nil
}

func (m *MockPlanner) Result(ctx context.Context, itineraryUUID string) (model.Itinerary, error) {
	m.mu.Lock()
	m.Calls.Result++
	m.mu.Unlock()
	if m.ResultFunc != nil {
		return m.ResultFunc(ctx, itineraryUUID)
	}
	return model.Itinerary{UUID: itineraryUUID, Title: "Test Trip", TotalDays: 1}, nil
}

func (m *MockPlanner) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// =============================
// Repositories
// =============================

// ---- Mock PlanJobRepository ----

type MockPlanJobRepo struct {
	mu   sync.Mutex
	data map[string]*model.PlanJob

	SaveFunc func(ctx context.Context, tx repository.Tx, job *model.PlanJob) error
}

var _ repository.PlanJobRepository = (*MockPlanJobRepo)(nil)

func NewMockPlanJobRepo() *MockPlanJobRepo {
	return &MockPlanJobRepo{data: map[string]*model.PlanJob{}}
}

func (r *MockPlanJobRepo) Save(ctx context.Context, tx repository.Tx, job *model.PlanJob) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, job)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.data[job.ID] = &cp
	return nil
}

func (r *MockPlanJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.PlanJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.data[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *MockPlanJobRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*model.PlanJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.PlanJob
	for _, j := range r.data {
		if j.UserID == userID {
			cp := *j
			out = append(out, &cp)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *MockPlanJobRepo) ListStuck(ctx context.Context, olderThanSeconds int) ([]*model.PlanJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := now().Add(-time.Duration(olderThanSeconds) * time.Second)
	var out []*model.PlanJob
	for _, j := range r.data {
		if !j.State.Terminal() && !j.SubmittedAt.IsZero() && j.SubmittedAt.Before(cutoff) {
			cp := *j
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- Mock TripRepository ----

type MockTripRepo struct {
	mu   sync.Mutex
	data map[string]*model.Trip

	SaveFunc func(ctx context.Context, tx repository.Tx, trip *model.Trip) error
}

var _ repository.TripRepository = (*MockTripRepo)(nil)

func NewMockTripRepo() *MockTripRepo {
	return &MockTripRepo{data: map[string]*model.Trip{}}
}

func (r *MockTripRepo) Save(ctx context.Context, tx repository.Tx, trip *model.Trip) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, trip)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *trip
	r.data[trip.ID] = &cp
	return nil
}

func (r *MockTripRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.data[id]; ok && !t.Deleted {
		cp := *t
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *MockTripRepo) ListByUser(ctx context.Context, userID string) ([]*model.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Trip
	for _, t := range r.data {
		if t.UserID == userID && !t.Deleted {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockTripRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.data[id]; ok {
		t.Deleted = true
		return nil
	}
	return domain.ErrNotFound
}

// ---- Mock ItineraryRepository ----

type MockItineraryRepo struct {
	mu   sync.Mutex
	data map[string]*model.Itinerary
}

var _ repository.ItineraryRepository = (*MockItineraryRepo)(nil)

func NewMockItineraryRepo() *MockItineraryRepo {
	return &MockItineraryRepo{data: map[string]*model.Itinerary{}}
}

func (r *MockItineraryRepo) Save(ctx context.Context, tx repository.Tx, it *model.Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *it
	r.data[it.UUID] = &cp
	return nil
}

func (r *MockItineraryRepo) FindByUUID(ctx context.Context, tx repository.Tx, uuid string) (*model.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.data[uuid]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

// ---- Mock AchievementRepository ----

type MockAchievementRepo struct {
	mu   sync.Mutex
	data map[string]*model.Achievement // by userID:code

	UnlockFunc func(ctx context.Context, tx repository.Tx, a *model.Achievement) error
}

var _ repository.AchievementRepository = (*MockAchievementRepo)(nil)

func NewMockAchievementRepo() *MockAchievementRepo {
	return &MockAchievementRepo{data: map[string]*model.Achievement{}}
}

func (r *MockAchievementRepo) Unlock(ctx context.Context, tx repository.Tx, a *model.Achievement) error {
	if r.UnlockFunc != nil {
		return r.UnlockFunc(ctx, tx, a)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := a.UserID + ":" + a.Code
	if _, ok := r.data[key]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *a
	r.data[key] = &cp
	return nil
}

func (r *MockAchievementRepo) ListByUser(ctx context.Context, userID string) ([]*model.Achievement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Achievement
	for _, a := range r.data {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockAchievementRepo) Has(userID, code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.data[userID+":"+code]
	return ok
}

// ---- Mock MoodRepository ----

type MockMoodRepo struct {
	mu   sync.Mutex
	data []*model.MoodEntry
}

var _ repository.MoodRepository = (*MockMoodRepo)(nil)

func NewMockMoodRepo() *MockMoodRepo { return &MockMoodRepo{} }

func (r *MockMoodRepo) Save(ctx context.Context, tx repository.Tx, entry *model.MoodEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.data = append(r.data, &cp)
	return nil
}

func (r *MockMoodRepo) ListByTrip(ctx context.Context, tripID string) ([]*model.MoodEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.MoodEntry
	for _, e := range r.data {
		if e.TripID == tripID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- Mock ScrapbookRepository ----

type MockScrapbookRepo struct {
	mu   sync.Mutex
	data map[string]*model.ScrapbookEntry
}

var _ repository.ScrapbookRepository = (*MockScrapbookRepo)(nil)

func NewMockScrapbookRepo() *MockScrapbookRepo {
	return &MockScrapbookRepo{data: map[string]*model.ScrapbookEntry{}}
}

func (r *MockScrapbookRepo) Save(ctx context.Context, tx repository.Tx, entry *model.ScrapbookEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.data[entry.ID] = &cp
	return nil
}

func (r *MockScrapbookRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.ScrapbookEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.data[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *MockScrapbookRepo) ListByTrip(ctx context.Context, tripID string) ([]*model.ScrapbookEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.ScrapbookEntry
	for _, e := range r.data {
		if e.TripID == tripID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockScrapbookRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// ---- Mock GroupRepository ----

type MockGroupRepo struct {
	mu   sync.Mutex
	data map[string]*model.TravelGroup
}

var _ repository.GroupRepository = (*MockGroupRepo)(nil)

func NewMockGroupRepo() *MockGroupRepo {
	return &MockGroupRepo{data: map[string]*model.TravelGroup{}}
}

func (r *MockGroupRepo) Save(ctx context.Context, tx repository.Tx, g *model.TravelGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *g
	cp.Members = append([]model.GroupMember(nil), g.Members...)
	r.data[g.ID] = &cp
	return nil
}

func (r *MockGroupRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.TravelGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.data[id]; ok {
		cp := *g
		cp.Members = append([]model.GroupMember(nil), g.Members...)
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *MockGroupRepo) AddMember(ctx context.Context, tx repository.Tx, m *model.GroupMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.data[m.GroupID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, existing := range g.Members {
		if existing.UserID == m.UserID {
			return nil
		}
	}
	g.Members = append(g.Members, *m)
	return nil
}

func (r *MockGroupRepo) RemoveMember(ctx context.Context, tx repository.Tx, groupID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.data[groupID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, m := range g.Members {
		if m.UserID == userID {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// =============================
// Infra helpers for tests
// =============================

// ---- Mock TransactionManager ----

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

// WithTx runs the function immediately without a real transaction; assign
// WithTxFunc to exercise rollback paths.
func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// ---- Mock StatusCache ----

type MockStatusCache struct {
	mu   sync.Mutex
	data map[string]*model.PlanJob

	StoreFunc func(ctx context.Context, job *model.PlanJob) error
	GetFunc   func(ctx context.Context, jobID string) (*model.PlanJob, error)
}

func NewMockStatusCache() *MockStatusCache {
	return &MockStatusCache{data: map[string]*model.PlanJob{}}
}

func (c *MockStatusCache) Store(ctx context.Context, job *model.PlanJob) error {
	if c.StoreFunc != nil {
		return c.StoreFunc(ctx, job)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *job
	c.data[job.ID] = &cp
	return nil
}

func (c *MockStatusCache) Get(ctx context.Context, jobID string) (*model.PlanJob, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, jobID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if j, ok := c.data[jobID]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

// ---- Mock RateLimiter ----

type MockRateLimiter struct {
	AllowFunc func(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

func (l *MockRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if l.AllowFunc != nil {
		return l.AllowFunc(ctx, key, limit, window)
	}
	return true, nil
}
