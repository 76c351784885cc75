package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/pkg/errors"
)

const (
	DefaultSysfsRoot   = "/sys/devices/system/cpu"
	DefaultThermalZone = "/sys/class/thermal/thermal_zone0"

	availableFrequenciesKey = "scaling_available_frequencies"
	setspeedKnob            = "scaling_setspeed"
)

var cpuDirPattern = regexp.MustCompile(`^cpu[0-9]+$`)

// Sysfs drives cpufreq and cpu hotplug through the kernel's sysfs files.
type Sysfs struct {
	root        string
	thermalZone string
	cacheTTL    time.Duration
	freqCache   *cache.Cache[string, []int64]
}

func NewSysfs(cfg config.BackendConfig) *Sysfs {
	s := &Sysfs{
		root:        cfg.SysfsRoot,
		thermalZone: cfg.ThermalZone,
		cacheTTL:    cfg.FrequencyCacheTTL,
		freqCache:   cache.New[string, []int64](),
	}
	if s.root == "" {
		s.root = DefaultSysfsRoot
	}
	if s.thermalZone == "" {
		s.thermalZone = DefaultThermalZone
	}
	return s
}

func (s *Sysfs) cpufreqPath(cpu int, file string) string {
	return filepath.Join(s.root, fmt.Sprintf("cpu%d", cpu), "cpufreq", file)
}

// governorDir prefers the per-policy directory and falls back to the global one.
func (s *Sysfs) governorDir(kind domain.GovernorKind) string {
	policyDir := filepath.Join(s.root, "cpufreq", "policy0", kind.String())
	if info, err := os.Stat(policyDir); err == nil && info.IsDir() {
		return policyDir
	}
	return filepath.Join(s.root, "cpufreq", kind.String())
}

func (s *Sysfs) knobPath(kind domain.GovernorKind, name string) string {
	if kind == domain.GovernorUserspace && name == setspeedKnob {
		return s.cpufreqPath(0, setspeedKnob)
	}
	return filepath.Join(s.governorDir(kind), name)
}

func readValue(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return strings.TrimSpace(string(data)), nil
}

func writeValue(path string, value string) error {
	if err := os.WriteFile(path, []byte(value), 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

func readInt(path string) (int64, error) {
	raw, err := readValue(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", path)
	}
	return v, nil
}

func (s *Sysfs) GetParameter(ctx context.Context, kind domain.GovernorKind, name string) (string, error) {
	return readValue(s.knobPath(kind, name))
}

func (s *Sysfs) SetParameter(ctx context.Context, kind domain.GovernorKind, name string, value string) error {
	return writeValue(s.knobPath(kind, name), value)
}

// AvailableFrequencies lists the scaling frequencies of cpu0 in ascending order.
// The list is cached for the configured TTL.
func (s *Sysfs) AvailableFrequencies(ctx context.Context) ([]int64, error) {
	if freqs, ok := s.freqCache.Get(availableFrequenciesKey); ok {
		return slices.Clone(freqs), nil
	}
	raw, err := readValue(s.cpufreqPath(0, availableFrequenciesKey))
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(raw)
	freqs := make([]int64, 0, len(fields))
	for _, field := range fields {
		freq, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse frequency %q", field)
		}
		freqs = append(freqs, freq)
	}
	slices.Sort(freqs)
	freqs = slices.Compact(freqs)
	if s.cacheTTL > 0 {
		s.freqCache.Set(availableFrequenciesKey, freqs, cache.WithExpiration(s.cacheTTL))
	}
	return slices.Clone(freqs), nil
}

func (s *Sysfs) CurrentFrequency(ctx context.Context) (int64, error) {
	return readInt(s.cpufreqPath(0, "scaling_cur_freq"))
}

func (s *Sysfs) ScalingLimits(ctx context.Context) (int64, int64, error) {
	minFreq, err := readInt(s.cpufreqPath(0, "scaling_min_freq"))
	if err != nil {
		return 0, 0, err
	}
	maxFreq, err := readInt(s.cpufreqPath(0, "scaling_max_freq"))
	if err != nil {
		return 0, 0, err
	}
	return minFreq, maxFreq, nil
}

func (s *Sysfs) SetMinScalingFrequency(ctx context.Context, freq int64) error {
	return writeValue(s.cpufreqPath(0, "scaling_min_freq"), strconv.FormatInt(freq, 10))
}

func (s *Sysfs) SetMaxScalingFrequency(ctx context.Context, freq int64) error {
	return writeValue(s.cpufreqPath(0, "scaling_max_freq"), strconv.FormatInt(freq, 10))
}

// NumberOfCores counts the cpuN directories, online or not.
func (s *Sysfs) NumberOfCores(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, errors.Wrapf(err, "list %s", s.root)
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() && cpuDirPattern.MatchString(entry.Name()) {
			count++
		}
	}
	return count, nil
}

func (s *Sysfs) onlinePath(core int) string {
	return filepath.Join(s.root, fmt.Sprintf("cpu%d", core), "online")
}

// IsCoreEnabled reads cpuN/online. Cores without the file, usually cpu0, cannot be unplugged.
func (s *Sysfs) IsCoreEnabled(ctx context.Context, core int) (bool, error) {
	if core < 0 {
		return false, domain.ErrCoreOutOfRange
	}
	raw, err := readValue(s.onlinePath(core))
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			if _, statErr := os.Stat(filepath.Join(s.root, fmt.Sprintf("cpu%d", core))); statErr == nil {
				return true, nil
			}
			return false, errors.Wrapf(domain.ErrCoreOutOfRange, "cpu%d", core)
		}
		return false, err
	}
	return raw == "1", nil
}

func (s *Sysfs) SetCoreEnabled(ctx context.Context, core int, enabled bool) error {
	if core < 0 {
		return domain.ErrCoreOutOfRange
	}
	if core == 0 && !enabled {
		return domain.ErrBootCore
	}
	value := "0"
	if enabled {
		value = "1"
	}
	return writeValue(s.onlinePath(core), value)
}

func (s *Sysfs) CurrentGovernor(ctx context.Context) (domain.GovernorKind, error) {
	raw, err := readValue(s.cpufreqPath(0, "scaling_governor"))
	if err != nil {
		return domain.GovernorUnknown, err
	}
	return domain.ParseGovernorKind(raw), nil
}

// SetGovernor writes the governor of every core that exposes cpufreq. Offline cores are skipped.
func (s *Sysfs) SetGovernor(ctx context.Context, kind domain.GovernorKind) error {
	if kind == domain.GovernorUnknown {
		return domain.ErrGovernorUnavailable
	}
	cores, err := s.NumberOfCores(ctx)
	if err != nil {
		return err
	}
	for core := range cores {
		path := s.cpufreqPath(core, "scaling_governor")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := writeValue(path, kind.String()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sysfs) AvailableGovernors(ctx context.Context) ([]domain.GovernorKind, error) {
	raw, err := readValue(s.cpufreqPath(0, "scaling_available_governors"))
	if err != nil {
		return nil, err
	}
	var kinds []domain.GovernorKind
	for _, name := range strings.Fields(raw) {
		if kind := domain.ParseGovernorKind(name); kind != domain.GovernorUnknown {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

// Temperature reads the thermal zone, which reports milli-degrees Celsius.
func (s *Sysfs) Temperature(ctx context.Context) (float64, error) {
	milli, err := readInt(filepath.Join(s.thermalZone, "temp"))
	if err != nil {
		return 0, errors.Wrap(domain.ErrTemperatureUnavailable, err.Error())
	}
	return float64(milli) / 1000, nil
}
