//go:build !integration

package web_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/usecase"
)

const testSecret = "test-secret"

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// signToken builds an HS256 bearer token for the given subject.
func signToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// ---- fake PlanningUseCase ----

type fakePlanningUC struct {
	jobs      map[string]*model.PlanJob
	itins     map[string]*model.Itinerary
	submitErr error
}

var _ usecase.PlanningUseCase = (*fakePlanningUC)(nil)

func newFakePlanningUC() *fakePlanningUC {
	return &fakePlanningUC{jobs: map[string]*model.PlanJob{}, itins: map[string]*model.Itinerary{}}
}

func (f *fakePlanningUC) Submit(ctx context.Context, userID string, req model.PlanRequest) (*model.PlanJob, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	job := model.NewPlanJob(userID, 1, req)
	job.BeginSubmission()
	job.AcceptHandle(model.JobHandle{JobID: "srv-1", ItineraryUUID: "uuid-1", PollInterval: time.Second})
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakePlanningUC) Status(ctx context.Context, userID, planID string) (*model.PlanJob, error) {
	job, ok := f.jobs[planID]
	if !ok || job.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

func (f *fakePlanningUC) Result(ctx context.Context, itineraryUUID string) (*model.Itinerary, error) {
	it, ok := f.itins[itineraryUUID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return it, nil
}

func (f *fakePlanningUC) ListJobs(ctx context.Context, userID string, limit int) ([]*model.PlanJob, error) {
	var out []*model.PlanJob
	for _, j := range f.jobs {
		if j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakePlanningUC) Current(userID string) uint64 { return 1 }

// ---- fake TripUseCase ----

type fakeTripUC struct {
	trips map[string]*model.Trip
}

var _ usecase.TripUseCase = (*fakeTripUC)(nil)

func newFakeTripUC() *fakeTripUC { return &fakeTripUC{trips: map[string]*model.Trip{}} }

func (f *fakeTripUC) Create(ctx context.Context, userID, title, destination string, start, end time.Time) (*model.Trip, error) {
	trip, err := model.NewTrip(userID, title, destination, start, end)
	if err != nil {
		return nil, err
	}
	f.trips[trip.ID] = trip
	return trip, nil
}

func (f *fakeTripUC) Get(ctx context.Context, userID, tripID string) (*model.Trip, error) {
	trip, ok := f.trips[tripID]
	if !ok || !trip.OwnedBy(userID) {
		return nil, domain.ErrNotFound
	}
	return trip, nil
}

func (f *fakeTripUC) List(ctx context.Context, userID string) ([]*model.Trip, error) {
	var out []*model.Trip
	for _, t := range f.trips {
		if t.OwnedBy(userID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTripUC) Update(ctx context.Context, userID, tripID string, upd usecase.TripUpdate) (*model.Trip, error) {
	trip, err := f.Get(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		trip.Title = *upd.Title
	}
	if upd.Notes != nil {
		trip.Notes = *upd.Notes
	}
	if upd.Status != nil {
		trip.Status = *upd.Status
	}
	return trip, nil
}

func (f *fakeTripUC) Delete(ctx context.Context, userID, tripID string) error {
	if _, err := f.Get(ctx, userID, tripID); err != nil {
		return err
	}
	delete(f.trips, tripID)
	return nil
}

// ---- fake AchievementUseCase ----

type fakeAchievementUC struct {
	list []*model.Achievement
}

var _ usecase.AchievementUseCase = (*fakeAchievementUC)(nil)

func (f *fakeAchievementUC) List(ctx context.Context, userID string) ([]*model.Achievement, error) {
	return f.list, nil
}

func (f *fakeAchievementUC) Unlock(ctx context.Context, userID, code string) (*model.Achievement, error) {
	a, err := model.NewBadgeUnlock(userID, code)
	if err != nil {
		return nil, err
	}
	f.list = append(f.list, a)
	return a, nil
}

// ---- fake MoodUseCase ----

type fakeMoodUC struct {
	entries []*model.MoodEntry
}

var _ usecase.MoodUseCase = (*fakeMoodUC)(nil)

func (f *fakeMoodUC) Log(ctx context.Context, userID, tripID string, mood int, note string) (*model.MoodEntry, error) {
	entry, err := model.NewMoodEntry(userID, tripID, mood, note)
	if err != nil {
		return nil, err
	}
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeMoodUC) ListByTrip(ctx context.Context, userID, tripID string) ([]*model.MoodEntry, error) {
	return f.entries, nil
}

// ---- fake ScrapbookUseCase ----

type fakeScrapbookUC struct {
	entries map[string]*model.ScrapbookEntry
}

var _ usecase.ScrapbookUseCase = (*fakeScrapbookUC)(nil)

func newFakeScrapbookUC() *fakeScrapbookUC {
	return &fakeScrapbookUC{entries: map[string]*model.ScrapbookEntry{}}
}

func (f *fakeScrapbookUC) Add(ctx context.Context, userID, tripID, caption, mediaURL string, takenAt time.Time) (*model.ScrapbookEntry, error) {
	entry, err := model.NewScrapbookEntry(userID, tripID, caption, mediaURL, takenAt)
	if err != nil {
		return nil, err
	}
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeScrapbookUC) ListByTrip(ctx context.Context, userID, tripID string) ([]*model.ScrapbookEntry, error) {
	var out []*model.ScrapbookEntry
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeScrapbookUC) Delete(ctx context.Context, userID, entryID string) error {
	if _, ok := f.entries[entryID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.entries, entryID)
	return nil
}

// ---- fake GroupUseCase ----

type fakeGroupUC struct {
	groups map[string]*model.TravelGroup
}

var _ usecase.GroupUseCase = (*fakeGroupUC)(nil)

func newFakeGroupUC() *fakeGroupUC { return &fakeGroupUC{groups: map[string]*model.TravelGroup{}} }

func (f *fakeGroupUC) Create(ctx context.Context, ownerID, name string) (*model.TravelGroup, error) {
	g, err := model.NewTravelGroup(name, ownerID)
	if err != nil {
		return nil, err
	}
	f.groups[g.ID] = g
	return g, nil
}

func (f *fakeGroupUC) Get(ctx context.Context, userID, groupID string) (*model.TravelGroup, error) {
	g, ok := f.groups[groupID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !g.HasMember(userID) {
		return nil, domain.ErrForbidden
	}
	return g, nil
}

func (f *fakeGroupUC) AddMember(ctx context.Context, callerID, groupID, userID string) error {
	g, ok := f.groups[groupID]
	if !ok {
		return domain.ErrNotFound
	}
	if g.OwnerID != callerID {
		return domain.ErrForbidden
	}
	g.Members = append(g.Members, model.GroupMember{GroupID: groupID, UserID: userID, Role: model.RoleMember, JoinedAt: time.Now()})
	return nil
}

func (f *fakeGroupUC) RemoveMember(ctx context.Context, callerID, groupID, userID string) error {
	return nil
}

// ---- fake planner (health only) ----

type fakePlannerHealth struct {
	err error
}

func (f *fakePlannerHealth) Submit(ctx context.Context, req model.PlanRequest) (model.JobHandle, error) {
	return model.JobHandle{}, nil
}

func (f *fakePlannerHealth) Status(ctx context.Context, jobID string) (model.JobStatus, error) {
	return model.JobStatus{}, nil
}

func (f *fakePlannerHealth) Result(ctx context.Context, itineraryUUID string) (model.Itinerary, error) {
	return model.Itinerary{}, nil
}

func (f *fakePlannerHealth) Health(ctx context.Context) error { return f.err }
