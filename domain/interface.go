package domain

import (
	"context"
)

// GovernorBackend is the device collaborator that reads and writes cpufreq and hotplug knobs.
type GovernorBackend interface {
	// GetParameter reads the raw value of a governor parameter
	GetParameter(ctx context.Context, kind GovernorKind, name string) (string, error)
	// SetParameter writes the raw value of a governor parameter
	SetParameter(ctx context.Context, kind GovernorKind, name string, value string) error
	// AvailableFrequencies lists the scaling frequencies in kHz, ascending
	AvailableFrequencies(ctx context.Context) ([]int64, error)
	// CurrentFrequency returns the current frequency of core 0 in kHz
	CurrentFrequency(ctx context.Context) (int64, error)
	// ScalingLimits returns the minimum and maximum scaling frequency in kHz
	ScalingLimits(ctx context.Context) (int64, int64, error)
	SetMinScalingFrequency(ctx context.Context, freq int64) error
	SetMaxScalingFrequency(ctx context.Context, freq int64) error
	// NumberOfCores returns how many cores the device reports, online or not
	NumberOfCores(ctx context.Context) (int, error)
	IsCoreEnabled(ctx context.Context, core int) (bool, error)
	SetCoreEnabled(ctx context.Context, core int, enabled bool) error
	CurrentGovernor(ctx context.Context) (GovernorKind, error)
	SetGovernor(ctx context.Context, kind GovernorKind) error
	AvailableGovernors(ctx context.Context) ([]GovernorKind, error)
	// Temperature returns the device temperature in degrees Celsius
	Temperature(ctx context.Context) (float64, error)
}

// Service defines the interface for the service layer
type Service interface {
	// CurrentUsage returns the latest usage sample
	CurrentUsage(ctx context.Context) UsageReport
	// UsageHistory returns the samples of one channel, oldest first
	UsageHistory(ctx context.Context, channel int) ([]float64, error)

	// GetDeviceStatus collects cores, frequencies, governor, temperature and memory
	GetDeviceStatus(ctx context.Context) (*DeviceStatus, error)
	SetCoreEnabled(ctx context.Context, core int, enabled bool) error
	SetScalingFrequency(ctx context.Context, minFreq, maxFreq int64) error
	SetGovernor(ctx context.Context, kind GovernorKind) error

	// GovernorSpecs lists the parameters of a governor with bounds resolved against the device
	GovernorSpecs(ctx context.Context, kind GovernorKind) ([]ParameterView, error)
	OpenGovernorSession(ctx context.Context, kind GovernorKind) (*SessionView, error)
	GetGovernorSession(ctx context.Context) (*SessionView, error)
	SetGovernorSessionField(ctx context.Context, name, value string) (*SessionView, error)
	CommitGovernorSession(ctx context.Context) (*CommitReport, error)
	CancelGovernorSession(ctx context.Context) error

	StartPiWorkload(ctx context.Context, digits int64) error
	CancelPiWorkload(ctx context.Context) error
	GetPiWorkload(ctx context.Context) WorkloadSnapshot
	// PiWorkloadEvents streams progress, result and status events of the current run
	PiWorkloadEvents(ctx context.Context) <-chan WorkloadEvent

	// VerifyAndGenerateToken verifies the provided public key and generates a JWT token if valid
	VerifyAndGenerateToken(ctx context.Context, clientID string, publicKey string) (string, int64, error)
	// VerifyJWTToken parses a bearer token and returns its claims
	VerifyJWTToken(ctx context.Context, tokenString string) (*Claims, error)
}
