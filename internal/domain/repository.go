package domain

import "context"

// TaskRepository defines persistence for the claimable job registry.
type TaskRepository interface {
	Enqueue(ctx context.Context, task *Task) error
	// Claim atomically marks the oldest queued (or lease-expired) task as
	// running and returns it. Returns ErrNotFound when nothing is claimable.
	Claim(ctx context.Context) (*Task, error)
	Finish(ctx context.Context, taskID int64, status TaskStatus, errMsg string) error
	LatestByJobID(ctx context.Context, jobID string) (*Task, error)
}
