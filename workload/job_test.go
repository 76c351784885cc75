package workload

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePi(t *testing.T) {
	pi, err := ComputePi(context.Background(), 20, nil)
	require.NoError(t, err)
	assert.Equal(t, "3.14159265358979323846", pi)

	pi, err = ComputePi(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "3.1", pi)
}

func TestComputePiReportsProgress(t *testing.T) {
	var seen []int
	_, err := ComputePi(context.Background(), 500, func(pct int) { seen = append(seen, pct) })
	require.NoError(t, err)
	require.NotEmpty(t, seen)
	assert.Equal(t, 100, seen[len(seen)-1])
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i], seen[i-1])
	}
}

func TestComputePiCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ComputePi(ctx, 1000, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "3.14", Truncate("3.14", 5))
	assert.Equal(t, "3.14", Truncate("3.14159", 2))
}

func waitStatus(t *testing.T, j *PiJob, want domain.WorkloadStatus) domain.WorkloadSnapshot {
	t.Helper()
	var snap domain.WorkloadSnapshot
	require.Eventually(t, func() bool {
		snap = j.Status()
		return snap.Status == want
	}, 10*time.Second, 5*time.Millisecond)
	return snap
}

func TestPiJobFinishes(t *testing.T) {
	j := NewPiJob(config.WorkloadConfig{})
	assert.Equal(t, domain.WorkloadIdle, j.Status().Status)

	require.NoError(t, j.Start(context.Background(), 1500))
	snap := waitStatus(t, j, domain.WorkloadFinished)
	assert.EqualValues(t, 1500, snap.Digits)
	assert.Equal(t, "100%", snap.Progress)
	assert.Len(t, snap.Result, domain.MaxDigitsResult+2)
	assert.True(t, strings.HasPrefix(snap.Result, "3.14159265358979323846"))

	var kinds []domain.WorkloadEventKind
	var last domain.WorkloadEvent
	for last.Kind != domain.WorkloadEventStatus {
		select {
		case last = <-j.Events():
			kinds = append(kinds, last.Kind)
		case <-time.After(5 * time.Second):
			t.Fatal("no status event")
		}
	}
	assert.Contains(t, kinds, domain.WorkloadEventProgress)
	assert.Contains(t, kinds, domain.WorkloadEventResult)
	assert.Equal(t, "Finished", last.Value)
}

func TestPiJobClampsDigits(t *testing.T) {
	j := NewPiJob(config.WorkloadConfig{MaxDigits: 30})
	require.NoError(t, j.Start(context.Background(), 1000))
	snap := waitStatus(t, j, domain.WorkloadFinished)
	assert.EqualValues(t, 30, snap.Digits)
	assert.Equal(t, "3.141592653589793238462643383279", snap.Result)
}

func TestPiJobRejectsInvalidDigits(t *testing.T) {
	j := NewPiJob(config.WorkloadConfig{})
	assert.ErrorIs(t, j.Start(context.Background(), 0), domain.ErrInvalidDigits)
	assert.ErrorIs(t, j.Start(context.Background(), -5), domain.ErrInvalidDigits)
	assert.ErrorIs(t, j.Cancel(), domain.ErrWorkloadIdle)
}

func TestPiJobCancel(t *testing.T) {
	j := NewPiJob(config.WorkloadConfig{})
	ctx, cancelReq := context.WithCancel(context.Background())
	require.NoError(t, j.Start(ctx, 5000000))
	// the job outlives the context that started it
	cancelReq()

	assert.ErrorIs(t, j.Start(context.Background(), 10), domain.ErrWorkloadRunning)
	assert.Equal(t, domain.WorkloadRunning, j.Status().Status)

	require.NoError(t, j.Cancel())
	snap := j.Status()
	assert.Equal(t, domain.WorkloadCanceled, snap.Status)
	assert.Empty(t, snap.Result)
	assert.False(t, snap.FinishedAt.IsZero())

	require.NoError(t, j.Start(context.Background(), 10))
	waitStatus(t, j, domain.WorkloadFinished)
}

func drain(j *PiJob) []domain.WorkloadEvent {
	var events []domain.WorkloadEvent
	for {
		select {
		case ev := <-j.Events():
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestPiJobEventsBelongToLatestRun(t *testing.T) {
	j := NewPiJob(config.WorkloadConfig{})

	require.NoError(t, j.Start(context.Background(), 3000))
	waitStatus(t, j, domain.WorkloadFinished)
	require.NoError(t, j.Start(context.Background(), 40))
	snap := waitStatus(t, j, domain.WorkloadFinished)

	events := drain(j)
	require.NotEmpty(t, events)
	assert.LessOrEqual(t, len(events), eventBuffer)

	var results []string
	for _, ev := range events {
		if ev.Kind == domain.WorkloadEventResult {
			results = append(results, ev.Value)
		}
	}
	require.Len(t, results, 1)
	assert.Equal(t, snap.Result, results[0])
	assert.Len(t, results[0], 42)
	assert.Equal(t, domain.WorkloadEvent{Kind: domain.WorkloadEventStatus, Value: "Finished"}, events[len(events)-1])
}

func TestPiJobKeepsNewestEventsWhenFull(t *testing.T) {
	j := NewPiJob(config.WorkloadConfig{})
	for i := range eventBuffer + 10 {
		j.emit(domain.WorkloadEventProgress, strconv.Itoa(i))
	}
	events := drain(j)
	require.Len(t, events, eventBuffer)
	assert.Equal(t, "10", events[0].Value)
	assert.Equal(t, strconv.Itoa(eventBuffer+9), events[len(events)-1].Value)
}
