package store

import (
	"context"
	"testing"
	"time"

	"evorun/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedger_Jobs(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	job := &model.Job{ID: "run1-text_01_Rep1", Name: "text_01_Rep1"}
	require.NoError(t, ledger.CreateJob(ctx, job))

	job.Status.State = model.JobRunning
	require.NoError(t, ledger.UpdateJob(ctx, job))

	got, err := ledger.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobRunning, got.Status.State)

	_, err = ledger.GetJob(ctx, "missing")
	assert.Error(t, err)
}

func TestMemoryLedger_Logs(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	require.NoError(t, ledger.SaveJobLog(ctx, "j1", "generation 1 done"))

	logs, err := ledger.GetJobLog(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, "generation 1 done", logs)

	_, err = ledger.GetJobLog(ctx, "j2")
	assert.Error(t, err)
}

func TestMemoryLedger_Runs(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	run := &model.Run{ID: "run1", TotalJobs: 9, State: model.RunRunning}
	require.NoError(t, ledger.SaveRun(ctx, run))

	run.State = model.RunSuccess
	run.Completed = 9
	require.NoError(t, ledger.SaveRun(ctx, run))

	got, err := ledger.GetRun(ctx, "run1")
	require.NoError(t, err)
	assert.Equal(t, model.RunSuccess, got.State)
	assert.Equal(t, 9, got.Completed)
}

func TestMemoryLedger_Watch(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := ledger.WatchJobs(ctx)

	job := &model.Job{ID: "j1", Name: "text_01_Rep1"}
	require.NoError(t, ledger.CreateJob(ctx, job))
	job.Status.State = model.JobSuccess
	require.NoError(t, ledger.UpdateJob(ctx, job))

	ev := <-events
	assert.Equal(t, JobCreate, ev.Type)
	assert.Equal(t, "text_01_Rep1", ev.Job.Name)

	ev = <-events
	assert.Equal(t, JobUpdate, ev.Type)
	assert.Equal(t, model.JobSuccess, ev.Job.Status.State)

	// cancelling the context closes the channel
	cancel()
	select {
	case _, open := <-events:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("watch channel was not closed after cancel")
	}
}
