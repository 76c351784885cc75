package usage

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/pkg/logger"
	"github.com/pkg/errors"
)

const (
	DefaultSampleDelay = 250 * time.Millisecond
	DefaultCycleDelay  = 500 * time.Millisecond
)

// Sampler periodically measures cpu usage and keeps one Series per channel.
// Channel 0 is the aggregate, channel i is core i-1.
type Sampler struct {
	source      domain.StatSource
	sampleDelay time.Duration
	cycleDelay  time.Duration
	maxCores    int
	series      []*Series

	latest  atomic.Pointer[domain.UsageVector]
	overall atomic.Uint64
	samples atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSampler(source domain.StatSource, cfg config.SamplerConfig) *Sampler {
	s := &Sampler{
		source:      source,
		sampleDelay: cfg.SampleDelay,
		cycleDelay:  cfg.CycleDelay,
		maxCores:    cfg.MaxCores,
	}
	if s.sampleDelay <= 0 {
		s.sampleDelay = DefaultSampleDelay
	}
	if s.cycleDelay <= 0 {
		s.cycleDelay = DefaultCycleDelay
	}
	if s.maxCores <= 0 || s.maxCores > domain.MaxSupportedCores {
		s.maxCores = domain.MaxSupportedCores
	}
	s.series = make([]*Series, 1+s.maxCores)
	for i := range s.series {
		s.series[i] = NewSeries(domain.UsageSeriesCapacity)
	}
	return s
}

// Start launches the sampling loop. The loop runs until Stop is called or ctx is done.
// Calling Start on a running sampler does nothing.
func (s *Sampler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop cancels the loop and waits for it to exit. No counter read happens after Stop returns.
func (s *Sampler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *Sampler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Sampler) run(ctx context.Context) {
	defer s.wg.Done()
	log := logger.Logger(ctx)
	log.Info().Dur("sample_delay", s.sampleDelay).Dur("cycle_delay", s.cycleDelay).Msg("usage sampler started")
	for {
		_, err := s.Sample(ctx)
		switch {
		case ctx.Err() != nil:
			log.Info().Msg("usage sampler stopped")
			return
		case err != nil:
			log.Debug().Err(err).Msg("usage sample skipped")
		}
		if !sleep(ctx, s.cycleDelay) {
			log.Info().Msg("usage sampler stopped")
			return
		}
	}
}

// Sample takes one measurement: read, wait the sample delay, read again. A usable
// measurement is appended to every channel and returned.
func (s *Sampler) Sample(ctx context.Context) (domain.UsageVector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	first, ok := s.source.Read()
	if !ok {
		return nil, domain.ErrCountersUnavailable
	}
	if !sleep(ctx, s.sampleDelay) {
		return nil, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	second, ok := s.source.Read()
	if !ok {
		return nil, domain.ErrCountersUnavailable
	}
	vector, err := BuildVector(first, second, s.maxCores)
	if err != nil {
		return nil, errors.Wrap(err, "discarding sample")
	}
	s.record(vector)
	return vector, nil
}

func (s *Sampler) record(vector domain.UsageVector) {
	for i, v := range vector {
		s.series[i].Append(v)
	}
	s.latest.Store(&vector)
	s.overall.Store(math.Float64bits(vector.Aggregate()))
	s.samples.Add(1)
}

// CurrentUsage returns a copy of the latest vector, all zeros before the first sample.
func (s *Sampler) CurrentUsage() domain.UsageVector {
	out := domain.NewUsageVector(s.maxCores)
	if latest := s.latest.Load(); latest != nil {
		copy(out, *latest)
	}
	return out
}

// OverallPercentage returns the latest aggregate usage truncated to two decimals.
func (s *Sampler) OverallPercentage() float64 {
	overall := math.Float64frombits(s.overall.Load())
	return math.Trunc(overall*100) / 100
}

// History returns the samples of one channel, oldest first.
func (s *Sampler) History(channel int) ([]float64, error) {
	if channel < 0 || channel >= len(s.series) {
		return nil, errors.Wrapf(domain.ErrChannelNotFound, "channel %d", channel)
	}
	return s.series[channel].Snapshot(), nil
}

func (s *Sampler) Channels() int {
	return len(s.series)
}

// Samples returns how many measurements have been recorded.
func (s *Sampler) Samples() uint64 {
	return s.samples.Load()
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
