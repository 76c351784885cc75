package governor

import (
	"context"

	"github.com/Gthulhu/cpupower/domain"
)

// Ceilings that the kernel does not report.
const (
	MaxSamplingRate                   = 1000000
	MinUpThreshold                    = 11
	MaxThreshold                      = 100
	OndemandMaxSamplingDownFactor     = 100000
	ConservativeMaxSamplingDownFactor = 10

	MaxMinSampleTime      = 1000000
	MaxAboveHispeedDelay  = 1000000
	MaxTimerRate          = 1000000
	MaxTimerSlack         = 1000000
	MaxBoostpulseDuration = 1000000
)

// Knob names as exposed under the governor's sysfs directory.
const (
	KnobSamplingRate       = "sampling_rate"
	KnobMinSamplingRate    = "min_sampling_rate"
	KnobUpThreshold        = "up_threshold"
	KnobDownThreshold      = "down_threshold"
	KnobSamplingDownFactor = "sampling_down_factor"
	KnobFreqStep           = "freq_step"
	KnobIgnoreNiceLoad     = "ignore_nice_load"

	KnobMinSampleTime      = "min_sample_time"
	KnobHispeedFreq        = "hispeed_freq"
	KnobGoHispeedLoad      = "go_hispeed_load"
	KnobAboveHispeedDelay  = "above_hispeed_delay"
	KnobTimerRate          = "timer_rate"
	KnobTimerSlack         = "timer_slack"
	KnobBoostpulseDuration = "boostpulse_duration"
	KnobBoost              = "boost"

	KnobScalingSetspeed = "scaling_setspeed"

	KnobDownRateLimit = "down_rate_limit_us"
	KnobUpRateLimit   = "up_rate_limit_us"
)

// Bounds is an inclusive integer range.
type Bounds struct {
	Min int64
	Max int64
}

func (b Bounds) Contains(v int64) bool {
	return v >= b.Min && v <= b.Max
}

// ParameterSpec describes one tunable knob of a governor.
type ParameterSpec struct {
	Name  string
	Label string
	Type  domain.ParamType
	// bounds resolves the accepted range when the value is checked. Unused for booleans and frequencies.
	bounds func(r *resolver) Bounds
}

func fixed(lo, hi int64) func(*resolver) Bounds {
	return func(*resolver) Bounds { return Bounds{Min: lo, Max: hi} }
}

// resolver gives bounds access to sibling values and to the device.
type resolver struct {
	ctx     context.Context
	kind    domain.GovernorKind
	backend domain.GovernorBackend
	limits  domain.DeviceLimits
	values  map[string]string
}

func (r *resolver) intValue(name string) (int64, bool) {
	v, err := parseInt(r.values[name])
	return v, err == nil
}

// minSamplingRate reads the live minimum from the governor, falling back to the configured one.
func (r *resolver) minSamplingRate() int64 {
	if r.backend != nil {
		raw, err := r.backend.GetParameter(r.ctx, r.kind, KnobMinSamplingRate)
		if err == nil {
			if v, err := parseInt(raw); err == nil {
				return v
			}
		}
	}
	return r.limits.MinSamplingRate
}

func samplingRate() ParameterSpec {
	return ParameterSpec{
		Name:  KnobSamplingRate,
		Label: "Sampling rate",
		Type:  domain.ParamUnsignedLong,
		bounds: func(r *resolver) Bounds {
			return Bounds{Min: r.minSamplingRate(), Max: MaxSamplingRate}
		},
	}
}

func ignoreNiceLoad() ParameterSpec {
	return ParameterSpec{Name: KnobIgnoreNiceLoad, Label: "Ignore nice load", Type: domain.ParamBoolean}
}

func ondemandSpecs() []ParameterSpec {
	return []ParameterSpec{
		samplingRate(),
		{Name: KnobUpThreshold, Label: "Up threshold", Type: domain.ParamPercentage, bounds: fixed(MinUpThreshold, MaxThreshold)},
		{Name: KnobSamplingDownFactor, Label: "Sampling down factor", Type: domain.ParamInteger, bounds: fixed(1, OndemandMaxSamplingDownFactor)},
		ignoreNiceLoad(),
	}
}

func conservativeSpecs() []ParameterSpec {
	return []ParameterSpec{
		samplingRate(),
		{
			Name:  KnobUpThreshold,
			Label: "Up threshold",
			Type:  domain.ParamPercentage,
			bounds: func(r *resolver) Bounds {
				lo := r.limits.MinDownThreshold + 1
				if down, ok := r.intValue(KnobDownThreshold); ok && down+1 > lo {
					lo = down + 1
				}
				return Bounds{Min: lo, Max: MaxThreshold}
			},
		},
		{
			Name:  KnobDownThreshold,
			Label: "Down threshold",
			Type:  domain.ParamPercentage,
			bounds: func(r *resolver) Bounds {
				hi := int64(MaxThreshold - 1)
				if up, ok := r.intValue(KnobUpThreshold); ok && up-1 < hi {
					hi = up - 1
				}
				return Bounds{Min: r.limits.MinDownThreshold, Max: hi}
			},
		},
		{Name: KnobSamplingDownFactor, Label: "Sampling down factor", Type: domain.ParamInteger, bounds: fixed(1, ConservativeMaxSamplingDownFactor)},
		{Name: KnobFreqStep, Label: "Frequency step", Type: domain.ParamPercentage, bounds: fixed(0, 100)},
		ignoreNiceLoad(),
	}
}

func interactiveSpecs() []ParameterSpec {
	return []ParameterSpec{
		{Name: KnobMinSampleTime, Label: "Minimum sample time", Type: domain.ParamUnsignedLong, bounds: fixed(0, MaxMinSampleTime)},
		{Name: KnobHispeedFreq, Label: "High speed frequency", Type: domain.ParamFrequency},
		{Name: KnobGoHispeedLoad, Label: "Go high speed load", Type: domain.ParamPercentage, bounds: fixed(0, 100)},
		{Name: KnobAboveHispeedDelay, Label: "Above high speed delay", Type: domain.ParamUnsignedLong, bounds: fixed(0, MaxAboveHispeedDelay)},
		{Name: KnobTimerRate, Label: "Timer rate", Type: domain.ParamUnsignedLong, bounds: fixed(0, MaxTimerRate)},
		{Name: KnobTimerSlack, Label: "Timer slack", Type: domain.ParamInteger, bounds: fixed(-1, MaxTimerSlack)},
		{Name: KnobBoostpulseDuration, Label: "Boost pulse duration", Type: domain.ParamUnsignedLong, bounds: fixed(0, MaxBoostpulseDuration)},
		{Name: KnobBoost, Label: "Boost", Type: domain.ParamBoolean},
	}
}

func userspaceSpecs() []ParameterSpec {
	return []ParameterSpec{
		{Name: KnobScalingSetspeed, Label: "Custom frequency", Type: domain.ParamFrequency},
	}
}

func schedutilSpecs() []ParameterSpec {
	rateLimit := func(r *resolver) Bounds {
		return Bounds{Min: r.limits.MinRateLimit, Max: r.limits.MaxRateLimit}
	}
	return []ParameterSpec{
		{Name: KnobDownRateLimit, Label: "Down rate limit", Type: domain.ParamUnsignedLong, bounds: rateLimit},
		{Name: KnobUpRateLimit, Label: "Up rate limit", Type: domain.ParamUnsignedLong, bounds: rateLimit},
	}
}

var tunableKinds = []domain.GovernorKind{
	domain.GovernorOndemand,
	domain.GovernorConservative,
	domain.GovernorInteractive,
	domain.GovernorUserspace,
	domain.GovernorSchedutil,
}

// Catalog maps each governor kind to its ordered parameter set. It is immutable after NewCatalog.
type Catalog struct {
	specs map[domain.GovernorKind][]ParameterSpec
}

func NewCatalog() *Catalog {
	return &Catalog{
		specs: map[domain.GovernorKind][]ParameterSpec{
			domain.GovernorOndemand:     ondemandSpecs(),
			domain.GovernorConservative: conservativeSpecs(),
			domain.GovernorInteractive:  interactiveSpecs(),
			domain.GovernorUserspace:    userspaceSpecs(),
			domain.GovernorSchedutil:    schedutilSpecs(),
		},
	}
}

// SpecsFor returns the parameters of kind in validation order. Parameterless kinds return nil.
func (c *Catalog) SpecsFor(kind domain.GovernorKind) []ParameterSpec {
	specs := c.specs[kind]
	if len(specs) == 0 {
		return nil
	}
	out := make([]ParameterSpec, len(specs))
	copy(out, specs)
	return out
}

func (c *Catalog) Tunable(kind domain.GovernorKind) bool {
	return len(c.specs[kind]) > 0
}

// Kinds lists the tunable governors.
func (c *Catalog) Kinds() []domain.GovernorKind {
	out := make([]domain.GovernorKind, len(tunableKinds))
	copy(out, tunableKinds)
	return out
}

func (c *Catalog) spec(kind domain.GovernorKind, name string) (ParameterSpec, bool) {
	for _, spec := range c.specs[kind] {
		if spec.Name == name {
			return spec, true
		}
	}
	return ParameterSpec{}, false
}
