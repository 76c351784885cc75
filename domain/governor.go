package domain

import (
	"fmt"
	"strings"
)

type GovernorKind int

const (
	GovernorUnknown GovernorKind = iota
	GovernorPerformance
	GovernorPowersave
	GovernorUserspace
	GovernorOndemand
	GovernorConservative
	GovernorInteractive
	GovernorSchedutil
)

var governorNames = map[GovernorKind]string{
	GovernorUnknown:      "unknown",
	GovernorPerformance:  "performance",
	GovernorPowersave:    "powersave",
	GovernorUserspace:    "userspace",
	GovernorOndemand:     "ondemand",
	GovernorConservative: "conservative",
	GovernorInteractive:  "interactive",
	GovernorSchedutil:    "schedutil",
}

// String returns the kernel name of the governor.
func (k GovernorKind) String() string {
	if name, ok := governorNames[k]; ok {
		return name
	}
	return governorNames[GovernorUnknown]
}

// Tunable reports whether the governor exposes parameters that can be edited.
func (k GovernorKind) Tunable() bool {
	switch k {
	case GovernorOndemand, GovernorConservative, GovernorInteractive, GovernorUserspace, GovernorSchedutil:
		return true
	}
	return false
}

func (k GovernorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *GovernorKind) UnmarshalText(text []byte) error {
	*k = ParseGovernorKind(string(text))
	return nil
}

// ParseGovernorKind maps a kernel governor name to its kind. Unrecognised names are GovernorUnknown.
func ParseGovernorKind(name string) GovernorKind {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, kernelName := range governorNames {
		if kernelName == name {
			return kind
		}
	}
	return GovernorUnknown
}

type ParamType int

const (
	ParamInteger ParamType = iota
	ParamUnsignedLong
	ParamPercentage
	ParamBoolean
	ParamFrequency
)

func (t ParamType) String() string {
	switch t {
	case ParamInteger:
		return "integer"
	case ParamUnsignedLong:
		return "unsigned_long"
	case ParamPercentage:
		return "percentage"
	case ParamBoolean:
		return "boolean"
	case ParamFrequency:
		return "frequency"
	}
	return fmt.Sprintf("ParamType(%d)", int(t))
}

func (t ParamType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ParamType) UnmarshalText(text []byte) error {
	for candidate := ParamInteger; candidate <= ParamFrequency; candidate++ {
		if candidate.String() == string(text) {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown parameter type %q", text)
}

type SessionState int

const (
	SessionLoaded SessionState = iota
	SessionValid
	SessionInvalid
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionLoaded:
		return "loaded"
	case SessionValid:
		return "valid"
	case SessionInvalid:
		return "invalid"
	case SessionClosed:
		return "closed"
	}
	return fmt.Sprintf("SessionState(%d)", int(s))
}

func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SessionState) UnmarshalText(text []byte) error {
	for candidate := SessionLoaded; candidate <= SessionClosed; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}

// DeviceLimits are device bounds that the kernel does not report.
type DeviceLimits struct {
	MinSamplingRate  int64
	MinDownThreshold int64
	MinRateLimit     int64
	MaxRateLimit     int64
}

// ParameterView describes one tunable parameter with its bounds resolved against the current values.
type ParameterView struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Type  ParamType `json:"type"`
	Min   *int64    `json:"min,omitempty"`
	Max   *int64    `json:"max,omitempty"`
	// Choices lists the accepted values of frequency parameters.
	Choices []int64 `json:"choices,omitempty"`
}

type SessionField struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Type  ParamType `json:"type"`
	Value string    `json:"value"`
}

// SessionView is a read-only copy of the open governor session.
type SessionView struct {
	ID       string         `json:"id"`
	Governor GovernorKind   `json:"governor"`
	State    SessionState   `json:"state"`
	Fields   []SessionField `json:"fields"`
	Message  string         `json:"message,omitempty"`
}

// CommitReport lists which fields reached the kernel and which writes failed.
type CommitReport struct {
	Written []string          `json:"written"`
	Failed  map[string]string `json:"failed,omitempty"`
}
