package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGovernorKind(t *testing.T) {
	assert.Equal(t, GovernorOndemand, ParseGovernorKind("ondemand"))
	assert.Equal(t, GovernorSchedutil, ParseGovernorKind(" Schedutil\n"))
	assert.Equal(t, GovernorUnknown, ParseGovernorKind("turbo"))
	assert.Equal(t, "unknown", GovernorKind(42).String())
}

func TestGovernorKindTunable(t *testing.T) {
	for _, kind := range []GovernorKind{GovernorPerformance, GovernorPowersave, GovernorUnknown} {
		assert.False(t, kind.Tunable(), kind.String())
	}
	for _, kind := range []GovernorKind{GovernorOndemand, GovernorConservative, GovernorInteractive, GovernorUserspace, GovernorSchedutil} {
		assert.True(t, kind.Tunable(), kind.String())
	}
}

func TestSessionViewJSON(t *testing.T) {
	view := SessionView{
		ID:       "abc",
		Governor: GovernorConservative,
		State:    SessionInvalid,
		Fields:   []SessionField{{Name: "freq_step", Label: "Frequency step", Type: ParamPercentage, Value: "5"}},
	}
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"governor":"conservative"`)
	assert.Contains(t, string(data), `"state":"invalid"`)
	assert.Contains(t, string(data), `"type":"percentage"`)

	var decoded SessionView
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, view, decoded)

	var state SessionState
	assert.Error(t, state.UnmarshalText([]byte("open")))
}
