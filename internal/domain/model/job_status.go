package model

import "time"

// JobHandle identifies a submitted generation request. The itinerary UUID is
// assigned by the server at submission time, before the itinerary exists, so
// callers can hold a stable reference (deep links) while the job runs.
type JobHandle struct {
	JobID         string
	ItineraryUUID string
	PollInterval  time.Duration
}

type ServerJobState string

const (
	ServerJobPending    ServerJobState = "pending"
	ServerJobProcessing ServerJobState = "processing"
	ServerJobCompleted  ServerJobState = "completed"
	ServerJobFailed     ServerJobState = "failed"
)

// rank orders server states so a stale poll response can never move a job
// backwards. Terminal states share the top rank.
func (s ServerJobState) rank() int {
	switch s {
	case ServerJobPending:
		return 0
	case ServerJobProcessing:
		return 1
	case ServerJobCompleted, ServerJobFailed:
		return 2
	}
	return -1
}

func (s ServerJobState) Terminal() bool {
	return s == ServerJobCompleted || s == ServerJobFailed
}

type ProgressStep string

const (
	StepInitializing ProgressStep = "initializing"
	StepFlights      ProgressStep = "flights"
	StepHotels       ProgressStep = "hotels"
	StepRestaurants  ProgressStep = "restaurants"
	StepActivities   ProgressStep = "activities"
	StepCompleting   ProgressStep = "completing"
)

// ProgressSnapshot is advisory status detail shown while a job is
// processing. It never drives control flow.
type ProgressSnapshot struct {
	Message          string
	Step             ProgressStep
	FlightsFound     int
	HotelsFound      int
	RestaurantsFound int
	ActivitiesFound  int
	PriceRanges      map[string]string
}

// ResultSummary carries category counts once a job completes. The full
// itinerary is fetched separately.
type ResultSummary struct {
	ItineraryID   string
	ItineraryUUID string
	ActivityCount int
	FlightCount   int
	HotelCount    int
}

// JobStatus is the server-authoritative view of a job at poll time.
type JobStatus struct {
	JobID       string
	State       ServerJobState
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	Error       string
	Progress    *ProgressSnapshot
	Result      *ResultSummary
	NextStep    string
}

// MergeProgress folds a freshly polled snapshot into the previous one.
// The status itself is replaced wholesale on every poll, but progress counts
// only ever move forward: fields absent from the poll response keep their
// prior values, and a count lower than what we already saw is ignored.
func MergeProgress(prev, next *ProgressSnapshot) *ProgressSnapshot {
	if next == nil {
		return prev
	}
	if prev == nil {
		cp := *next
		return &cp
	}
	merged := *next
	if merged.FlightsFound < prev.FlightsFound {
		merged.FlightsFound = prev.FlightsFound
	}
	if merged.HotelsFound < prev.HotelsFound {
		merged.HotelsFound = prev.HotelsFound
	}
	if merged.RestaurantsFound < prev.RestaurantsFound {
		merged.RestaurantsFound = prev.RestaurantsFound
	}
	if merged.ActivitiesFound < prev.ActivitiesFound {
		merged.ActivitiesFound = prev.ActivitiesFound
	}
	if merged.Message == "" {
		merged.Message = prev.Message
	}
	if merged.Step == "" {
		merged.Step = prev.Step
	}
	if merged.PriceRanges == nil {
		merged.PriceRanges = prev.PriceRanges
	}
	return &merged
}
