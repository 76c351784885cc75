package domain

const (
	// MaxSupportedCores is the number of per-core channels tracked besides the aggregate.
	MaxSupportedCores = 4
	// UsageSeriesCapacity is how many samples each usage channel keeps.
	UsageSeriesCapacity = 60
	// UsageUnavailable marks a row whose counters could not be parsed. It never leaves the usage package.
	UsageUnavailable = -1.0
	// MaxStatRows bounds how many rows a single read of the counter table consumes.
	MaxStatRows = 1 + MaxSupportedCores
)

// CounterSnapshot holds the raw counter rows of one read, aggregate row first.
type CounterSnapshot []string

// UsageVector holds one usage sample: index 0 is the aggregate, index i is core i-1.
type UsageVector []float64

func NewUsageVector(maxCores int) UsageVector {
	return make(UsageVector, 1+maxCores)
}

// Aggregate returns the overall usage of the sample.
func (v UsageVector) Aggregate() float64 {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

// UsageReport is the latest sample together with the truncated overall value.
type UsageReport struct {
	Vector  UsageVector `json:"vector"`
	Overall float64     `json:"overall"`
}

// StatSource reads the kernel per-CPU counter table. ok is false when the table cannot be read.
type StatSource interface {
	Read() (snapshot CounterSnapshot, ok bool)
}
