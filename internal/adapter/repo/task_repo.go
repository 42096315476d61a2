// Package repo contains PostgreSQL-backed adapters for the domain
// repository interfaces.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"showcase/internal/domain"
)

// TaskRepositoryPG implements domain.TaskRepository on a pgx pool. Claims
// use FOR UPDATE SKIP LOCKED so multiple workers never run the same task,
// and a lease so tasks from crashed workers become claimable again.
type TaskRepositoryPG struct {
	pool  *pgxpool.Pool
	lease time.Duration
}

// NewTaskRepository creates a task repository. lease bounds how long a
// claimed task stays invisible to other workers.
func NewTaskRepository(pool *pgxpool.Pool, lease time.Duration) *TaskRepositoryPG {
	if lease <= 0 {
		lease = 15 * time.Minute
	}
	return &TaskRepositoryPG{pool: pool, lease: lease}
}

// EnsureSchema creates the tasks table when it does not exist yet.
func (r *TaskRepositoryPG) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS showcase_tasks (
    id            BIGSERIAL PRIMARY KEY,
    job_id        TEXT        NOT NULL,
    type          TEXT        NOT NULL,
    status        TEXT        NOT NULL DEFAULT 'QUEUED',
    payload       JSONB       NOT NULL DEFAULT '{}'::jsonb,
    error_message TEXT        NOT NULL DEFAULT '',
    lease_until   TIMESTAMPTZ,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS showcase_tasks_claim_idx
    ON showcase_tasks (status, created_at);
CREATE INDEX IF NOT EXISTS showcase_tasks_job_idx
    ON showcase_tasks (job_id, id DESC);
`)
	return err
}

// Enqueue inserts a queued task and fills its generated fields.
func (r *TaskRepositoryPG) Enqueue(ctx context.Context, task *domain.Task) error {
	query := `
INSERT INTO showcase_tasks (job_id, type, status, payload)
VALUES ($1, $2, 'QUEUED', $3)
RETURNING id, status, created_at, updated_at;
`
	row := r.pool.QueryRow(ctx, query, task.JobID, task.Type, nullableBytes(task.Payload))
	return row.Scan(&task.ID, &task.Status, &task.CreatedAt, &task.UpdatedAt)
}

// Claim atomically marks the oldest claimable task as running and stamps its
// lease. Lease-expired running tasks are claimable again.
func (r *TaskRepositoryPG) Claim(ctx context.Context) (*domain.Task, error) {
	query := `
WITH next_task AS (
    SELECT id
    FROM showcase_tasks
    WHERE status = 'QUEUED'
       OR (status = 'RUNNING' AND lease_until < now())
    ORDER BY created_at ASC
    FOR UPDATE SKIP LOCKED
    LIMIT 1
),
claimed AS (
    UPDATE showcase_tasks
    SET status = 'RUNNING',
        lease_until = now() + make_interval(secs => $1),
        updated_at = now()
    WHERE id IN (SELECT id FROM next_task)
    RETURNING id, job_id, type, status, payload, error_message, lease_until, created_at, updated_at
)
SELECT * FROM claimed;
`
	row := r.pool.QueryRow(ctx, query, r.lease.Seconds())
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

// Finish records the terminal status of a claimed task and clears its lease.
func (r *TaskRepositoryPG) Finish(ctx context.Context, taskID int64, status domain.TaskStatus, errMsg string) error {
	query := `
UPDATE showcase_tasks
SET status = $2,
    error_message = $3,
    lease_until = NULL,
    updated_at = now()
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, taskID, status, errMsg)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LatestByJobID returns the most recently enqueued task for a job.
func (r *TaskRepositoryPG) LatestByJobID(ctx context.Context, jobID string) (*domain.Task, error) {
	query := `
SELECT id, job_id, type, status, payload, error_message, lease_until, created_at, updated_at
FROM showcase_tasks
WHERE job_id = $1
ORDER BY id DESC
LIMIT 1;
`
	row := r.pool.QueryRow(ctx, query, jobID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.JobID,
		&task.Type,
		&task.Status,
		&task.Payload,
		&task.ErrorMessage,
		&task.LeaseUntil,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func nullableBytes(b []byte) []byte {
	if len(b) == 0 {
		return []byte(`{}`)
	}
	return b
}

var _ domain.TaskRepository = (*TaskRepositoryPG)(nil)
