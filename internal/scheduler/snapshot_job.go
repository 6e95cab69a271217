package scheduler

import (
	"context"
	"time"
)

// Snapshotter stores one valuation snapshot per client for a day.
type Snapshotter interface {
	SnapshotAll(ctx context.Context, date time.Time) (int, error)
}

// SnapshotJob stores the daily valuation snapshot of every client.
type SnapshotJob struct {
	svc     Snapshotter
	timeout time.Duration
	now     func() time.Time
}

// NewSnapshotJob creates a SnapshotJob. Each run is cancelled after timeout.
func NewSnapshotJob(svc Snapshotter, timeout time.Duration) *SnapshotJob {
	return &SnapshotJob{svc: svc, timeout: timeout, now: time.Now}
}

func (j *SnapshotJob) Name() string { return "valuation_snapshot" }

// Run snapshots today's valuations.
func (j *SnapshotJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	_, err := j.svc.SnapshotAll(ctx, j.now().UTC())
	return err
}
