package service

import (
	"context"
	"slices"

	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/pkg/logger"
	"github.com/pkg/errors"
	"github.com/prometheus/procfs"
)

// GetDeviceStatus collects cores, frequencies, governor, temperature and memory.
// Temperature and memory are optional: a failing read leaves them empty.
func (svc *Service) GetDeviceStatus(ctx context.Context) (*domain.DeviceStatus, error) {
	status := &domain.DeviceStatus{
		OverallUsage: svc.sampler.OverallPercentage(),
	}

	cores, err := svc.backend.NumberOfCores(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "count cores")
	}
	status.Cores = make([]domain.CoreStatus, 0, cores)
	for core := range cores {
		enabled, err := svc.backend.IsCoreEnabled(ctx, core)
		if err != nil {
			return nil, errors.Wrapf(err, "read core %d", core)
		}
		status.Cores = append(status.Cores, domain.CoreStatus{Index: core, Enabled: enabled})
	}

	if status.Governor, err = svc.backend.CurrentGovernor(ctx); err != nil {
		return nil, errors.Wrap(err, "read governor")
	}
	if status.AvailableGovernors, err = svc.backend.AvailableGovernors(ctx); err != nil {
		return nil, errors.Wrap(err, "read available governors")
	}
	if status.AvailableFrequencies, err = svc.backend.AvailableFrequencies(ctx); err != nil {
		return nil, errors.Wrap(err, "read available frequencies")
	}
	if status.MinFrequency, status.MaxFrequency, err = svc.backend.ScalingLimits(ctx); err != nil {
		return nil, errors.Wrap(err, "read scaling limits")
	}
	if status.CurrentFrequency, err = svc.backend.CurrentFrequency(ctx); err != nil {
		return nil, errors.Wrap(err, "read current frequency")
	}

	if temp, err := svc.backend.Temperature(ctx); err == nil {
		status.Temperature = &temp
	} else {
		logger.Logger(ctx).Debug().Err(err).Msg("temperature not available")
	}

	if used, total, err := svc.memoryUsage(); err == nil {
		status.MemoryUsedKB, status.MemoryTotalKB = used, total
	} else {
		logger.Logger(ctx).Debug().Err(err).Msg("memory usage not available")
	}
	return status, nil
}

func (svc *Service) memoryUsage() (used, total uint64, err error) {
	root := svc.procRoot
	if root == "" {
		root = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(root)
	if err != nil {
		return 0, 0, err
	}
	meminfo, err := fs.Meminfo()
	if err != nil {
		return 0, 0, err
	}
	if meminfo.MemTotal == nil {
		return 0, 0, errors.New("meminfo has no MemTotal")
	}
	total = *meminfo.MemTotal
	free := uint64(0)
	switch {
	case meminfo.MemAvailable != nil:
		free = *meminfo.MemAvailable
	case meminfo.MemFree != nil:
		free = *meminfo.MemFree
	}
	return total - min(free, total), total, nil
}

// SetCoreEnabled brings a core online or offline. Core 0 always stays online.
func (svc *Service) SetCoreEnabled(ctx context.Context, core int, enabled bool) error {
	cores, err := svc.backend.NumberOfCores(ctx)
	if err != nil {
		return errors.Wrap(err, "count cores")
	}
	if core < 0 || core >= cores {
		return errors.Wrapf(domain.ErrCoreOutOfRange, "core %d of %d", core, cores)
	}
	if core == 0 && !enabled {
		return domain.ErrBootCore
	}
	if err := svc.backend.SetCoreEnabled(ctx, core, enabled); err != nil {
		return err
	}
	logger.Logger(ctx).Info().Str("client_id", clientID(ctx)).Int("core", core).Bool("enabled", enabled).Msg("core state changed")
	return nil
}

// SetScalingFrequency sets the scaling limits. Both must be available frequencies and
// minFreq must not exceed maxFreq.
func (svc *Service) SetScalingFrequency(ctx context.Context, minFreq, maxFreq int64) error {
	if minFreq > maxFreq {
		return errors.Wrapf(domain.ErrInvalidFrequencyRange, "min %d max %d", minFreq, maxFreq)
	}
	freqs, err := svc.backend.AvailableFrequencies(ctx)
	if err != nil {
		return errors.Wrap(err, "read available frequencies")
	}
	for _, f := range []int64{minFreq, maxFreq} {
		if !slices.Contains(freqs, f) {
			return errors.Wrapf(domain.ErrFrequencyUnavailable, "%d kHz", f)
		}
	}

	_, curMax, err := svc.backend.ScalingLimits(ctx)
	if err != nil {
		return errors.Wrap(err, "read scaling limits")
	}
	// the kernel rejects a minimum above the current maximum
	if minFreq > curMax {
		if err := svc.backend.SetMaxScalingFrequency(ctx, maxFreq); err != nil {
			return err
		}
		if err := svc.backend.SetMinScalingFrequency(ctx, minFreq); err != nil {
			return err
		}
	} else {
		if err := svc.backend.SetMinScalingFrequency(ctx, minFreq); err != nil {
			return err
		}
		if err := svc.backend.SetMaxScalingFrequency(ctx, maxFreq); err != nil {
			return err
		}
	}
	logger.Logger(ctx).Info().Str("client_id", clientID(ctx)).Int64("min_khz", minFreq).Int64("max_khz", maxFreq).Msg("scaling limits changed")
	return nil
}

// SetGovernor switches the frequency governor of every core.
func (svc *Service) SetGovernor(ctx context.Context, kind domain.GovernorKind) error {
	available, err := svc.backend.AvailableGovernors(ctx)
	if err != nil {
		return errors.Wrap(err, "read available governors")
	}
	if !slices.Contains(available, kind) {
		return errors.Wrapf(domain.ErrGovernorUnavailable, "governor %q", kind)
	}
	if err := svc.backend.SetGovernor(ctx, kind); err != nil {
		return err
	}
	logger.Logger(ctx).Info().Str("client_id", clientID(ctx)).Str("governor", kind.String()).Msg("governor changed")
	return nil
}
