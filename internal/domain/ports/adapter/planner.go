package adapter

import (
	"context"

	"travel-planner/internal/domain/model"
)

// PlannerServiceAdapter is the port for the external itinerary generation
// service. Implementations must translate transport failures into the
// domain error taxonomy (ErrSubmissionFailed, ErrPollFailed, ErrFetchFailed,
// ErrMalformedResponse); callers never see raw HTTP errors.
type PlannerServiceAdapter interface {
	// Submit issues one generation request and returns the server-assigned
	// handle, including the recommended polling interval.
	Submit(ctx context.Context, req model.PlanRequest) (model.JobHandle, error)

	// Status fetches the current server-side view of a job. Each call
	// returns a complete snapshot; the caller owns any merging.
	Status(ctx context.Context, jobID string) (model.JobStatus, error)

	// Result fetches the finished itinerary. Should only be called once
	// Status reports completion; the server remains the source of truth.
	Result(ctx context.Context, itineraryUUID string) (model.Itinerary, error)

	// Health is a boolean reachability probe.
	Health(ctx context.Context) error
}
