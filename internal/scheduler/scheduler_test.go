package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Run() error {
	j.runs.Add(1)
	return j.err
}

func (j *countingJob) Name() string { return "counting" }

func TestScheduler_AddJob(t *testing.T) {
	s := New(zerolog.Nop())

	assert.NoError(t, s.AddJob("0 30 23 * * *", &countingJob{}))
	assert.NoError(t, s.AddJob("@every 1h", &countingJob{}))
	assert.Error(t, s.AddJob("not a schedule", &countingJob{}))
	// Five-field specs are rejected because seconds come first.
	assert.Error(t, s.AddJob("30 23 * * *", &countingJob{}))
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{err: errors.New("boom")}
	require.NoError(t, s.AddJob("@every 1s", job))

	s.Start()
	assert.Eventually(t, func() bool { return job.runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{}

	require.NoError(t, s.RunNow(job))
	assert.Equal(t, int32(1), job.runs.Load())
}

type fakeSnapshotter struct {
	date time.Time
	err  error
}

func (f *fakeSnapshotter) SnapshotAll(ctx context.Context, date time.Time) (int, error) {
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("expected a deadline")
	}
	f.date = date
	return 3, f.err
}

func TestSnapshotJob_Run(t *testing.T) {
	fake := &fakeSnapshotter{}
	job := NewSnapshotJob(fake, time.Minute)
	job.now = func() time.Time { return time.Date(2024, 5, 2, 23, 30, 0, 0, time.UTC) }

	require.NoError(t, job.Run())
	assert.Equal(t, "valuation_snapshot", job.Name())
	assert.Equal(t, time.Date(2024, 5, 2, 23, 30, 0, 0, time.UTC), fake.date)

	fake.err = errors.New("disk full")
	assert.EqualError(t, job.Run(), "disk full")
}
