package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"
)

// Ensure interface compliance
var _ repository.PlanJobRepository = (*planJobRepo)(nil)

type planJobRepo struct {
	pool *pgxpool.Pool
}

func NewPlanJobRepo(pool *pgxpool.Pool) *planJobRepo {
	return &planJobRepo{pool: pool}
}

func (r *planJobRepo) Save(ctx context.Context, tx repository.Tx, job *model.PlanJob) error {
	job.UpdatedAt = time.Now()

	reqJSON, err := json.Marshal(job.Request)
	if err != nil {
		return fmt.Errorf("marshal plan request: %w", err)
	}
	statusJSON, err := json.Marshal(job.LastStatus)
	if err != nil {
		return fmt.Errorf("marshal job status: %w", err)
	}

	const q = `
INSERT INTO plan_jobs (
  id, user_id, epoch, state, request, server_job_id, itinerary_uuid,
  poll_interval_ms, last_status, poll_failures, failure_reason,
  submitted_at, finished_at, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (id) DO UPDATE SET
  state = EXCLUDED.state,
  server_job_id = EXCLUDED.server_job_id,
  itinerary_uuid = EXCLUDED.itinerary_uuid,
  poll_interval_ms = EXCLUDED.poll_interval_ms,
  last_status = EXCLUDED.last_status,
  poll_failures = EXCLUDED.poll_failures,
  failure_reason = EXCLUDED.failure_reason,
  submitted_at = EXCLUDED.submitted_at,
  finished_at = EXCLUDED.finished_at,
  updated_at = EXCLUDED.updated_at;`

	var serverJobID, itineraryUUID string
	var pollIntervalMS int64
	if job.Handle != nil {
		serverJobID = job.Handle.JobID
		itineraryUUID = job.Handle.ItineraryUUID
		pollIntervalMS = job.Handle.PollInterval.Milliseconds()
	}

	_, err = execSQL(ctx, r.pool, tx, q,
		job.ID, job.UserID, job.Epoch, job.State, reqJSON,
		serverJobID, itineraryUUID, pollIntervalMS,
		statusJSON, job.PollFailures, job.FailureReason,
		nullTime(job.SubmittedAt), job.FinishedAt, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save plan job: %w", err)
	}
	return nil
}

const planJobColumns = `
id, user_id, epoch, state, request, server_job_id, itinerary_uuid,
poll_interval_ms, last_status, poll_failures, failure_reason,
submitted_at, finished_at, created_at, updated_at`

func (r *planJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.PlanJob, error) {
	q := `SELECT ` + planJobColumns + ` FROM plan_jobs WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanPlanJob(row.Scan)
}

func (r *planJobRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*model.PlanJob, error) {
	q := `SELECT ` + planJobColumns + `
FROM plan_jobs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;`
	rows, err := r.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list plan jobs: %w", err)
	}
	defer rows.Close()

	var out []*model.PlanJob
	for rows.Next() {
		job, err := scanPlanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func (r *planJobRepo) ListStuck(ctx context.Context, olderThanSeconds int) ([]*model.PlanJob, error) {
	q := `SELECT ` + planJobColumns + `
FROM plan_jobs
WHERE state NOT IN ('completed', 'failed')
  AND submitted_at IS NOT NULL
  AND submitted_at < now() - ($1 * interval '1 second')
ORDER BY submitted_at;`
	rows, err := r.pool.Query(ctx, q, olderThanSeconds)
	if err != nil {
		return nil, fmt.Errorf("list stuck plan jobs: %w", err)
	}
	defer rows.Close()

	var out []*model.PlanJob
	for rows.Next() {
		job, err := scanPlanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func scanPlanJob(scan func(dest ...interface{}) error) (*model.PlanJob, error) {
	var (
		job            model.PlanJob
		state          string
		reqJSON        []byte
		statusJSON     []byte
		serverJobID    string
		itineraryUUID  string
		pollIntervalMS int64
		submittedAt    *time.Time
		finishedAt     *time.Time
	)
	err := scan(
		&job.ID, &job.UserID, &job.Epoch, &state, &reqJSON,
		&serverJobID, &itineraryUUID, &pollIntervalMS,
		&statusJSON, &job.PollFailures, &job.FailureReason,
		&submittedAt, &finishedAt, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, translateScanErr(err)
	}
	job.State = model.ClientState(state)
	if serverJobID != "" || itineraryUUID != "" {
		job.Handle = &model.JobHandle{
			JobID:         serverJobID,
			ItineraryUUID: itineraryUUID,
			PollInterval:  time.Duration(pollIntervalMS) * time.Millisecond,
		}
	}
	if err := json.Unmarshal(reqJSON, &job.Request); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	if len(statusJSON) > 0 {
		if err := json.Unmarshal(statusJSON, &job.LastStatus); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	if submittedAt != nil {
		job.SubmittedAt = *submittedAt
	}
	job.FinishedAt = finishedAt
	return &job, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
