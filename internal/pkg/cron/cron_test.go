package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reconcilerStub struct {
	leave.LeaveService
	calls atomic.Int32
	opts  leave.ReconcileOptions
	err   error
}

func (r *reconcilerStub) Reconcile(ctx context.Context, opts leave.ReconcileOptions) (leave.ReconcileReport, error) {
	r.calls.Add(1)
	r.opts = opts
	return leave.ReconcileReport{Unsettled: []string{"req-1"}, Settled: []string{"req-1"}}, r.err
}

func TestReconciliationJobs_PassesOptions(t *testing.T) {
	stub := &reconcilerStub{}
	opts := leave.ReconcileOptions{MinAge: 10 * time.Minute, AutoSettle: true}
	jobs := NewReconciliationJobs(stub, time.Hour, opts)

	require.NoError(t, jobs.ReconcileLeaveCredits(context.Background()))
	assert.EqualValues(t, 1, stub.calls.Load())
	assert.Equal(t, opts, stub.opts)
}

func TestReconciliationJobs_ReturnsServiceError(t *testing.T) {
	stub := &reconcilerStub{err: errors.New("database down")}
	jobs := NewReconciliationJobs(stub, time.Hour, leave.ReconcileOptions{})

	assert.Error(t, jobs.ReconcileLeaveCredits(context.Background()))
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.AddJob("fail", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	assert.EqualValues(t, 2, runs.Load())
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	var late atomic.Bool
	s.AddJob("late", time.Hour, func(ctx context.Context) error {
		late.Store(true)
		return nil
	})
	s.RunOnce(context.Background())
	assert.False(t, late.Load(), "jobs added after start are ignored")
}
