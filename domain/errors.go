package domain

import "errors"

var (
	ErrCountersUnavailable = errors.New("cpu counters are unavailable")
	ErrMalformedCounters   = errors.New("malformed cpu counters")
	ErrChannelNotFound     = errors.New("usage channel not found")

	ErrSessionBusy      = errors.New("a governor session is already open")
	ErrSessionClosed    = errors.New("governor session is closed")
	ErrNoSession        = errors.New("no governor session is open")
	ErrNotTunable       = errors.New("governor has no tunable parameters")
	ErrUnknownParameter = errors.New("unknown governor parameter")

	ErrCoreOutOfRange         = errors.New("core index out of range")
	ErrBootCore               = errors.New("core 0 cannot be disabled")
	ErrFrequencyUnavailable   = errors.New("frequency is not an available frequency")
	ErrInvalidFrequencyRange  = errors.New("minimum frequency must not exceed maximum frequency")
	ErrGovernorUnavailable    = errors.New("governor is not available on this device")
	ErrUnsupportedBackend     = errors.New("unsupported governor backend")
	ErrTemperatureUnavailable = errors.New("temperature sensor is unavailable")

	ErrWorkloadRunning = errors.New("workload is already running")
	ErrWorkloadIdle    = errors.New("no workload is running")
	ErrInvalidDigits   = errors.New("number of digits must be positive")

	ErrTokenUnavailable = errors.New("token issuing is not configured")
)

// ValidationError carries the message shown for the first invalid session field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
