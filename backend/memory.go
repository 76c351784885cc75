package backend

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/pkg/util"
	"github.com/pkg/errors"
)

var memoryDefaults = map[domain.GovernorKind]map[string]string{
	domain.GovernorOndemand: {
		"sampling_rate":        "20000",
		"min_sampling_rate":    "10000",
		"up_threshold":         "95",
		"sampling_down_factor": "1",
		"ignore_nice_load":     "0",
	},
	domain.GovernorConservative: {
		"sampling_rate":        "20000",
		"min_sampling_rate":    "10000",
		"up_threshold":         "80",
		"down_threshold":       "20",
		"sampling_down_factor": "1",
		"freq_step":            "5",
		"ignore_nice_load":     "0",
	},
	domain.GovernorInteractive: {
		"min_sample_time":     "80000",
		"hispeed_freq":        "996000",
		"go_hispeed_load":     "99",
		"above_hispeed_delay": "20000",
		"timer_rate":          "20000",
		"timer_slack":         "80000",
		"boostpulse_duration": "80000",
		"boost":               "0",
	},
	domain.GovernorSchedutil: {
		"down_rate_limit_us": "20000",
		"up_rate_limit_us":   "500",
	},
}

var memoryFrequencies = []int64{396000, 528000, 792000, 996000, 1200000}

// Memory is an in-process governor backend for hosts without cpufreq and for tests.
type Memory struct {
	knobs  *util.GenericMap[string, string]
	faults *util.GenericMap[string, error]

	mu          sync.RWMutex
	frequencies []int64
	minFreq     int64
	maxFreq     int64
	curFreq     int64
	cores       []bool
	governor    domain.GovernorKind
	governors   []domain.GovernorKind
	temperature float64
}

func NewMemory() *Memory {
	m := &Memory{
		knobs:       util.NewGenericMap[string, string](),
		faults:      util.NewGenericMap[string, error](),
		frequencies: slices.Clone(memoryFrequencies),
		minFreq:     memoryFrequencies[0],
		maxFreq:     memoryFrequencies[len(memoryFrequencies)-1],
		curFreq:     memoryFrequencies[len(memoryFrequencies)-1],
		cores:       []bool{true, true, true, true},
		governor:    domain.GovernorOndemand,
		governors: []domain.GovernorKind{
			domain.GovernorConservative,
			domain.GovernorOndemand,
			domain.GovernorUserspace,
			domain.GovernorPowersave,
			domain.GovernorPerformance,
			domain.GovernorInteractive,
			domain.GovernorSchedutil,
		},
		temperature: 45,
	}
	for kind, knobs := range memoryDefaults {
		for name, value := range knobs {
			m.knobs.Store(knobKey(kind, name), value)
		}
	}
	return m
}

func knobKey(kind domain.GovernorKind, name string) string {
	return kind.String() + "/" + name
}

// InjectFault makes the named operation fail with err until cleared with a nil err.
// Operations are "get:<knob>", "set:<knob>" or a method name such as "AvailableFrequencies".
func (m *Memory) InjectFault(op string, err error) {
	if err == nil {
		m.faults.Delete(op)
		return
	}
	m.faults.Store(op, err)
}

func (m *Memory) fault(op string) error {
	if err, ok := m.faults.Load(op); ok {
		return errors.Wrap(err, op)
	}
	return nil
}

func (m *Memory) GetParameter(ctx context.Context, kind domain.GovernorKind, name string) (string, error) {
	if err := m.fault("get:" + name); err != nil {
		return "", err
	}
	if kind == domain.GovernorUserspace && name == setspeedKnob {
		freq, err := m.CurrentFrequency(ctx)
		return strconv.FormatInt(freq, 10), err
	}
	v, ok := m.knobs.Load(knobKey(kind, name))
	if !ok {
		return "", errors.Wrapf(domain.ErrUnknownParameter, "%s/%s", kind, name)
	}
	return v, nil
}

func (m *Memory) SetParameter(ctx context.Context, kind domain.GovernorKind, name string, value string) error {
	if err := m.fault("set:" + name); err != nil {
		return err
	}
	if kind == domain.GovernorUserspace && name == setspeedKnob {
		freq, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse %s", name)
		}
		m.mu.Lock()
		m.curFreq = freq
		m.mu.Unlock()
		return nil
	}
	m.knobs.Store(knobKey(kind, name), value)
	return nil
}

// Knobs returns a copy of the stored parameters of kind, keyed by knob name.
func (m *Memory) Knobs(kind domain.GovernorKind) map[string]string {
	prefix := knobKey(kind, "")
	out := make(map[string]string)
	for key, value := range m.knobs.Filter(func(key, _ string) bool {
		return strings.HasPrefix(key, prefix)
	}) {
		out[strings.TrimPrefix(key, prefix)] = value
	}
	return out
}

func (m *Memory) AvailableFrequencies(ctx context.Context) ([]int64, error) {
	if err := m.fault("AvailableFrequencies"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.frequencies), nil
}

func (m *Memory) CurrentFrequency(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.curFreq, nil
}

func (m *Memory) ScalingLimits(ctx context.Context) (int64, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.minFreq, m.maxFreq, nil
}

func (m *Memory) SetMinScalingFrequency(ctx context.Context, freq int64) error {
	if err := m.fault("SetMinScalingFrequency"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.minFreq = freq
	m.curFreq = max(m.curFreq, freq)
	return nil
}

func (m *Memory) SetMaxScalingFrequency(ctx context.Context, freq int64) error {
	if err := m.fault("SetMaxScalingFrequency"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxFreq = freq
	m.curFreq = min(m.curFreq, freq)
	return nil
}

func (m *Memory) NumberOfCores(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cores), nil
}

func (m *Memory) IsCoreEnabled(ctx context.Context, core int) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if core < 0 || core >= len(m.cores) {
		return false, domain.ErrCoreOutOfRange
	}
	return m.cores[core], nil
}

func (m *Memory) SetCoreEnabled(ctx context.Context, core int, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if core < 0 || core >= len(m.cores) {
		return domain.ErrCoreOutOfRange
	}
	if core == 0 && !enabled {
		return domain.ErrBootCore
	}
	m.cores[core] = enabled
	return nil
}

func (m *Memory) CurrentGovernor(ctx context.Context) (domain.GovernorKind, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.governor, nil
}

func (m *Memory) SetGovernor(ctx context.Context, kind domain.GovernorKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.governors, kind) {
		return errors.Wrap(domain.ErrGovernorUnavailable, kind.String())
	}
	m.governor = kind
	return nil
}

func (m *Memory) AvailableGovernors(ctx context.Context) ([]domain.GovernorKind, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.governors), nil
}

func (m *Memory) Temperature(ctx context.Context) (float64, error) {
	if err := m.fault("Temperature"); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.temperature, nil
}
