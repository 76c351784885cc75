package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/Gthulhu/cpupower/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySeededDefaults(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	v, err := m.GetParameter(ctx, domain.GovernorConservative, "down_threshold")
	require.NoError(t, err)
	assert.Equal(t, "20", v)

	_, err = m.GetParameter(ctx, domain.GovernorOndemand, "nope")
	assert.ErrorIs(t, err, domain.ErrUnknownParameter)

	assert.Equal(t, map[string]string{
		"down_rate_limit_us": "20000",
		"up_rate_limit_us":   "500",
	}, m.Knobs(domain.GovernorSchedutil))
	assert.Len(t, m.Knobs(domain.GovernorConservative), 7)
	assert.Empty(t, m.Knobs(domain.GovernorPerformance))
}

func TestMemoryUserspaceSetspeedTracksCurrentFrequency(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.SetParameter(ctx, domain.GovernorUserspace, "scaling_setspeed", "528000"))
	cur, err := m.CurrentFrequency(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 528000, cur)

	v, err := m.GetParameter(ctx, domain.GovernorUserspace, "scaling_setspeed")
	require.NoError(t, err)
	assert.Equal(t, "528000", v)
}

func TestMemoryInjectFault(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("boom")

	m.InjectFault("set:freq_step", boom)
	err := m.SetParameter(ctx, domain.GovernorConservative, "freq_step", "10")
	assert.ErrorIs(t, err, boom)

	m.InjectFault("set:freq_step", nil)
	require.NoError(t, m.SetParameter(ctx, domain.GovernorConservative, "freq_step", "10"))
}

func TestMemoryDeviceOperations(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	assert.ErrorIs(t, m.SetCoreEnabled(ctx, 0, false), domain.ErrBootCore)
	assert.ErrorIs(t, m.SetCoreEnabled(ctx, 4, true), domain.ErrCoreOutOfRange)
	require.NoError(t, m.SetCoreEnabled(ctx, 3, false))
	enabled, err := m.IsCoreEnabled(ctx, 3)
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, m.SetMaxScalingFrequency(ctx, 792000))
	cur, err := m.CurrentFrequency(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 792000, cur)

	require.NoError(t, m.SetGovernor(ctx, domain.GovernorSchedutil))
	kind, err := m.CurrentGovernor(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.GovernorSchedutil, kind)
	assert.ErrorIs(t, m.SetGovernor(ctx, domain.GovernorUnknown), domain.ErrGovernorUnavailable)
}
