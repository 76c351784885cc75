package governor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Gthulhu/cpupower/backend"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*SessionManager, *backend.Memory) {
	t.Helper()
	mem := backend.NewMemory()
	return NewSessionManager(NewCatalog(), mem, testLimits), mem
}

func TestOpenLoadsAndValidates(t *testing.T) {
	m, _ := newManager(t)
	s, err := m.Open(context.Background(), domain.GovernorConservative)
	require.NoError(t, err)
	defer s.Cancel()

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, domain.SessionValid, s.State())
	assert.Equal(t, "20", s.Values()["down_threshold"])
	view := s.View()
	assert.Equal(t, domain.GovernorConservative, view.Governor)
	assert.Len(t, view.Fields, 6)
}

func TestOpenWhileOpenIsRejectedWithoutSideEffects(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	first, err := m.Open(ctx, domain.GovernorOndemand)
	require.NoError(t, err)
	_, err = first.Set(ctx, "up_threshold", "abc")
	require.NoError(t, err)
	before := first.View()

	second, err := m.Open(ctx, domain.GovernorConservative)
	require.ErrorIs(t, err, domain.ErrSessionBusy)
	assert.Nil(t, second)

	active, ok := m.Active()
	require.True(t, ok)
	assert.Same(t, first, active)
	assert.Equal(t, before, first.View())
	assert.Equal(t, domain.SessionInvalid, first.State())
}

func TestOpenParameterlessGovernor(t *testing.T) {
	m, _ := newManager(t)
	_, err := m.Open(context.Background(), domain.GovernorPerformance)
	require.ErrorIs(t, err, domain.ErrNotTunable)
	_, ok := m.Active()
	assert.False(t, ok)
}

func TestOpenLoadFailureLeavesFieldBlank(t *testing.T) {
	m, mem := newManager(t)
	mem.InjectFault("get:freq_step", errors.New("io error"))

	s, err := m.Open(context.Background(), domain.GovernorConservative)
	require.NoError(t, err)
	defer s.Cancel()
	assert.Equal(t, "", s.Values()["freq_step"])
	assert.Equal(t, domain.SessionInvalid, s.State())
	assert.Equal(t, "'Frequency step' value cannot be empty.", s.Validate(context.Background()))
}

func TestConservativeThresholdScenario(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	s, err := m.Open(ctx, domain.GovernorConservative)
	require.NoError(t, err)
	defer s.Cancel()

	_, err = s.Set(ctx, "down_threshold", "60")
	require.NoError(t, err)
	msg, err := s.Set(ctx, "up_threshold", "50")
	require.NoError(t, err)
	assert.Contains(t, msg, "'Up threshold'")
	assert.Equal(t, domain.SessionInvalid, s.State())

	_, err = s.Commit(ctx)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msg, verr.Message)
	assert.Equal(t, domain.SessionInvalid, s.State())

	msg, err = s.Set(ctx, "up_threshold", "70")
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Equal(t, domain.SessionValid, s.State())
}

func TestCommitRoundTrip(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	s, err := m.Open(ctx, domain.GovernorOndemand)
	require.NoError(t, err)

	_, err = s.Set(ctx, "sampling_rate", "40000")
	require.NoError(t, err)
	_, err = s.Set(ctx, "ignore_nice_load", "true")
	require.NoError(t, err)
	report, err := s.Commit(ctx)
	require.NoError(t, err)
	assert.Len(t, report.Written, 4)
	assert.Empty(t, report.Failed)
	assert.Equal(t, domain.SessionClosed, s.State())

	reopened, err := m.Open(ctx, domain.GovernorOndemand)
	require.NoError(t, err)
	defer reopened.Cancel()
	assert.Equal(t, "40000", reopened.Values()["sampling_rate"])
	assert.Equal(t, "1", reopened.Values()["ignore_nice_load"])
}

func TestCommitContinuesAfterFieldFailure(t *testing.T) {
	ctx := context.Background()
	m, mem := newManager(t)
	s, err := m.Open(ctx, domain.GovernorConservative)
	require.NoError(t, err)
	mem.InjectFault("set:up_threshold", errors.New("permission denied"))

	_, err = s.Set(ctx, "freq_step", "10")
	require.NoError(t, err)
	report, err := s.Commit(ctx)
	require.NoError(t, err)
	assert.Contains(t, report.Failed, "up_threshold")
	assert.Contains(t, report.Written, "freq_step")
	assert.Len(t, report.Written, 5)

	v, err := mem.GetParameter(ctx, domain.GovernorConservative, "freq_step")
	require.NoError(t, err)
	assert.Equal(t, "10", v)
	_, ok := m.Active()
	assert.False(t, ok)
}

func TestCancelIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	s, err := m.Open(ctx, domain.GovernorSchedutil)
	require.NoError(t, err)

	s.Cancel()
	s.Cancel()
	assert.Equal(t, domain.SessionClosed, s.State())

	select {
	case <-s.Done():
	default:
		t.Fatal("closing must signal Done")
	}
	select {
	case <-s.Done():
		t.Fatal("Done must be signalled once")
	default:
	}

	next, err := m.Open(ctx, domain.GovernorSchedutil)
	require.NoError(t, err)
	s.Cancel()
	active, ok := m.Active()
	require.True(t, ok, "cancelling a stale session must not release the new one")
	assert.Same(t, next, active)
	next.Cancel()
}

func TestClosedSessionRejectsEdits(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	s, err := m.Open(ctx, domain.GovernorUserspace)
	require.NoError(t, err)
	s.Cancel()

	_, err = s.Set(ctx, "scaling_setspeed", "528000")
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
	_, err = s.Commit(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestSetUnknownParameter(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	s, err := m.Open(ctx, domain.GovernorUserspace)
	require.NoError(t, err)
	defer s.Cancel()
	_, err = s.Set(ctx, "sampling_rate", "1")
	assert.ErrorIs(t, err, domain.ErrUnknownParameter)
}

func TestWaiterWakesOnClose(t *testing.T) {
	m, _ := newManager(t)
	s, err := m.Open(context.Background(), domain.GovernorOndemand)
	require.NoError(t, err)

	woke := make(chan struct{})
	go func() {
		<-s.Done()
		close(woke)
	}()
	s.Cancel()
	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken")
	}
}

func TestConcurrentOpenOnlyOneWins(t *testing.T) {
	m, _ := newManager(t)
	var wg sync.WaitGroup
	var mu sync.Mutex
	opened := 0
	busy := 0
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Open(context.Background(), domain.GovernorOndemand)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				opened++
			} else if errors.Is(err, domain.ErrSessionBusy) {
				busy++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 15, busy)
}

func TestDescribeUsesDeviceValues(t *testing.T) {
	m, _ := newManager(t)
	views := m.Describe(context.Background(), domain.GovernorConservative)
	require.Len(t, views, 6)
	assert.EqualValues(t, 21, *views[1].Min)
	assert.EqualValues(t, 79, *views[2].Max)
}
