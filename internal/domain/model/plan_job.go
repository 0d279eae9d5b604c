package model

import (
	"math/rand"
	"time"

	"travel-planner/internal/domain"

	"github.com/oklog/ulid/v2"
)

// ClientState is our side of the job state machine. It mirrors, but is not
// identical to, the server state: submission failures exist only here.
type ClientState string

const (
	StateNotSubmitted ClientState = "not_submitted"
	StateSubmitting   ClientState = "submitting"
	StatePolling      ClientState = "polling"
	StateCompleted    ClientState = "completed"
	StateFailed       ClientState = "failed"
)

func (s ClientState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// PlanJob is the client-observed record of one generation request, from
// submission to terminal outcome. A single tracker goroutine is the only
// writer after submission.
type PlanJob struct {
	ID     string
	UserID string
	// Epoch distinguishes this submission from earlier ones by the same
	// caller; poll and fetch responses carrying a stale epoch are discarded.
	Epoch         uint64
	Request       PlanRequest
	State         ClientState
	Handle        *JobHandle
	LastStatus    *JobStatus
	PollFailures  int
	FailureReason string
	SubmittedAt   time.Time
	FinishedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewPlanJob(userID string, epoch uint64, req PlanRequest) *PlanJob {
	now := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0)
	return &PlanJob{
		ID:        ulid.MustNew(ulid.Timestamp(now), entropy).String(),
		UserID:    userID,
		Epoch:     epoch,
		Request:   req,
		State:     StateNotSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// transition validates a client state change. Terminal states absorb.
func (j *PlanJob) transition(to ClientState) error {
	if j.State.Terminal() {
		return domain.ErrTerminalState
	}
	allowed := false
	switch j.State {
	case StateNotSubmitted:
		allowed = to == StateSubmitting
	case StateSubmitting:
		allowed = to == StatePolling || to == StateFailed
	case StatePolling:
		allowed = to == StatePolling || to == StateCompleted || to == StateFailed
	}
	if !allowed {
		return domain.ErrInvalidArgument
	}
	j.State = to
	j.UpdatedAt = time.Now()
	if to.Terminal() {
		now := time.Now()
		j.FinishedAt = &now
	}
	return nil
}

func (j *PlanJob) BeginSubmission() error {
	if err := j.transition(StateSubmitting); err != nil {
		return err
	}
	j.SubmittedAt = time.Now()
	return nil
}

func (j *PlanJob) AcceptHandle(h JobHandle) error {
	if err := j.transition(StatePolling); err != nil {
		return err
	}
	j.Handle = &h
	return nil
}

func (j *PlanJob) FailSubmission(reason string) {
	if j.transition(StateFailed) == nil {
		j.FailureReason = reason
	}
}

// ApplyStatus folds one poll response into the job. It rejects regressions
// in the server state sequence and merges progress so counts never shrink.
// Status applied after the job reached a terminal state is ignored.
func (j *PlanJob) ApplyStatus(st JobStatus) error {
	if j.State.Terminal() {
		return domain.ErrTerminalState
	}
	if j.State != StatePolling {
		return domain.ErrInvalidArgument
	}
	if j.LastStatus != nil && st.State.rank() < j.LastStatus.State.rank() {
		return domain.ErrInvalidArgument
	}
	var prev *ProgressSnapshot
	if j.LastStatus != nil {
		prev = j.LastStatus.Progress
	}
	st.Progress = MergeProgress(prev, st.Progress)
	j.LastStatus = &st
	j.PollFailures = 0

	switch st.State {
	case ServerJobCompleted:
		return j.transition(StateCompleted)
	case ServerJobFailed:
		if err := j.transition(StateFailed); err != nil {
			return err
		}
		// Surface the server-supplied error text verbatim.
		j.FailureReason = st.Error
		return nil
	default:
		return j.transition(StatePolling)
	}
}

// NotePollFailure records one transient poll error. The job stays in
// Polling; the tracker gives up once the count crosses its ceiling.
func (j *PlanJob) NotePollFailure() int {
	j.PollFailures++
	j.UpdatedAt = time.Now()
	return j.PollFailures
}

func (j *PlanJob) FailTerminal(reason string) {
	if j.transition(StateFailed) == nil {
		j.FailureReason = reason
	}
}
