package usage

import (
	"testing"

	"github.com/Gthulhu/cpupower/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageWorkOverTotal(t *testing.T) {
	// work 100 -> 150, total 400 -> 500
	u := Usage("cpu 50 0 50 300", "cpu 75 0 75 350")
	assert.InDelta(t, 50.0, u, 1e-9)
}

func TestUsageCountsOnlyFirstThreeColumnsAsWork(t *testing.T) {
	u := Usage("cpu0 10 10 10 10 10 10 10", "cpu0 20 20 20 20 20 20 20")
	assert.InDelta(t, 100*30.0/70.0, u, 1e-9)
}

func TestUsageSentinelOnMalformedRow(t *testing.T) {
	assert.Equal(t, domain.UsageUnavailable, Usage("cpu 1 2 x 4", "cpu 2 3 4 5"))
	assert.Equal(t, domain.UsageUnavailable, Usage("cpu 1 2 3 4", "cpu 2 3"))
	assert.Equal(t, domain.UsageUnavailable, Usage("", "cpu 2 3 4 5"))
	assert.Equal(t, domain.UsageUnavailable, Usage("cpu -1 2 3 4", "cpu 2 3 4 5"))
}

func TestUsageNoElapsedTicks(t *testing.T) {
	assert.Equal(t, 0.0, Usage("cpu 1 2 3 4", "cpu 1 2 3 4"))
	assert.Equal(t, 0.0, Usage("cpu 5 5 5 50", "cpu 1 1 1 10"))
}

func TestUsageBounded(t *testing.T) {
	u := Usage("cpu 0 0 0 0", "cpu 10 10 10 0")
	assert.Equal(t, 100.0, u)
	u = Usage("cpu 0 0 0 0", "cpu 0 0 0 10")
	assert.Equal(t, 0.0, u)
}

func TestBuildVectorAllCoresPresent(t *testing.T) {
	a := domain.CounterSnapshot{
		"cpu  100 0 100 800",
		"cpu0 10 0 10 80",
		"cpu1 10 0 10 80",
		"cpu2 10 0 10 80",
		"cpu3 10 0 10 80",
	}
	b := domain.CounterSnapshot{
		"cpu  200 0 200 1000",
		"cpu0 20 0 20 160",
		"cpu1 15 0 15 170",
		"cpu2 60 0 60 80",
		"cpu3 10 0 10 180",
	}
	v, err := BuildVector(a, b, 4)
	require.NoError(t, err)

	want := domain.UsageVector{50, 20, 10, 100, 0}
	if diff := cmp.Diff(want, v, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("BuildVector() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildVectorDisabledCoreRealignment(t *testing.T) {
	// cpu1 is offline: its row is missing and cpu2 must not be attributed to it.
	a := domain.CounterSnapshot{
		"cpu  100 0 100 800",
		"cpu0 10 0 10 80",
		"cpu2 10 0 10 80",
		"cpu3 10 0 10 80",
	}
	b := domain.CounterSnapshot{
		"cpu  200 0 200 1000",
		"cpu0 20 0 20 160",
		"cpu2 60 0 60 80",
		"cpu3 15 0 15 170",
	}
	v, err := BuildVector(a, b, 4)
	require.NoError(t, err)
	require.Len(t, v, 5)
	assert.InDelta(t, 50.0, v[0], 1e-9)
	assert.InDelta(t, 20.0, v[1], 1e-9)
	assert.Equal(t, 0.0, v[2])
	assert.InDelta(t, 100.0, v[3], 1e-9)
	assert.InDelta(t, 10.0, v[4], 1e-9)
}

func TestBuildVectorCoreOnlyInOneSnapshot(t *testing.T) {
	a := domain.CounterSnapshot{
		"cpu  100 0 100 800",
		"cpu0 10 0 10 80",
		"cpu1 10 0 10 80",
		"cpu2 10 0 10 80",
	}
	b := domain.CounterSnapshot{
		"cpu  200 0 200 1000",
		"cpu0 20 0 20 160",
		"cpu2 60 0 60 80",
	}
	v, err := BuildVector(a, b, 4)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v[2])
	assert.InDelta(t, 100.0, v[3], 1e-9)
	assert.Equal(t, 0.0, v[4])
}

func TestBuildVectorFewerCoresThanSupported(t *testing.T) {
	a := domain.CounterSnapshot{"cpu 10 0 10 80", "cpu0 10 0 10 80"}
	b := domain.CounterSnapshot{"cpu 20 0 20 160", "cpu0 20 0 20 160"}
	v, err := BuildVector(a, b, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.UsageVector{20, 20, 0, 0, 0}, v)
}

func TestBuildVectorMalformedIsReported(t *testing.T) {
	a := domain.CounterSnapshot{"cpu 10 0 10 80", "cpu0 10 0 10 80", "cpu1 garbage"}
	b := domain.CounterSnapshot{"cpu 20 0 20 160", "cpu0 20 0 20 160", "cpu1 20 0 20 160"}
	v, err := BuildVector(a, b, 4)
	require.ErrorIs(t, err, domain.ErrMalformedCounters)
	for _, u := range v {
		assert.GreaterOrEqual(t, u, 0.0)
	}
}

func TestBuildVectorMissingPositionalRows(t *testing.T) {
	_, err := BuildVector(domain.CounterSnapshot{"cpu 1 2 3 4"}, domain.CounterSnapshot{"cpu 1 2 3 4"}, 4)
	require.ErrorIs(t, err, domain.ErrMalformedCounters)
}
