package workload

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/pkg/logger"
	"github.com/pkg/errors"
)

const eventBuffer = 128

// PiJob runs one Pi calculation at a time as a CPU load generator.
type PiJob struct {
	maxDigits int64
	events    chan domain.WorkloadEvent

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	snapshot domain.WorkloadSnapshot
}

var _ domain.Workload = (*PiJob)(nil)

func NewPiJob(cfg config.WorkloadConfig) *PiJob {
	maxDigits := cfg.MaxDigits
	if maxDigits <= 0 || maxDigits > domain.MaxDigits {
		maxDigits = domain.MaxDigits
	}
	return &PiJob{
		maxDigits: maxDigits,
		events:    make(chan domain.WorkloadEvent, eventBuffer),
		snapshot:  domain.WorkloadSnapshot{Status: domain.WorkloadIdle},
	}
}

// Start launches a calculation of digits decimals, clamped to the configured maximum.
// The job keeps running after ctx is done; use Cancel to stop it.
func (j *PiJob) Start(ctx context.Context, digits int64) error {
	if digits <= 0 {
		return errors.Wrapf(domain.ErrInvalidDigits, "digits %d", digits)
	}
	digits = min(digits, j.maxDigits)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel != nil {
		return domain.ErrWorkloadRunning
	}
	j.drainEvents()
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	j.cancel = cancel
	j.done = make(chan struct{})
	j.snapshot = domain.WorkloadSnapshot{
		Status:    domain.WorkloadRunning,
		Digits:    digits,
		Progress:  "0%",
		StartedAt: time.Now(),
	}
	go j.run(runCtx, digits, j.done)
	return nil
}

// Cancel stops the running calculation and waits for it to exit.
func (j *PiJob) Cancel() error {
	j.mu.Lock()
	cancel, done := j.cancel, j.done
	j.mu.Unlock()
	if cancel == nil {
		return domain.ErrWorkloadIdle
	}
	cancel()
	<-done
	return nil
}

// Events delivers the progress, result and status events of the current run. When the
// buffer is full the oldest event is dropped, and Start discards what is left of the
// previous run.
func (j *PiJob) Events() <-chan domain.WorkloadEvent {
	return j.events
}

func (j *PiJob) Status() domain.WorkloadSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.snapshot
}

func (j *PiJob) run(ctx context.Context, digits int64, done chan struct{}) {
	defer close(done)
	log := logger.Logger(ctx)
	log.Info().Int64("digits", digits).Msg("pi calculation started")

	pi, err := ComputePi(ctx, digits, j.progress)

	// the final events go out under the lock so a following Start cannot interleave
	j.mu.Lock()
	j.cancel = nil
	j.snapshot.FinishedAt = time.Now()
	elapsed := j.snapshot.FinishedAt.Sub(j.snapshot.StartedAt)
	if err != nil {
		j.snapshot.Status = domain.WorkloadCanceled
	} else {
		j.snapshot.Status = domain.WorkloadFinished
		j.snapshot.Progress = "100%"
		j.snapshot.Result = Truncate(pi, domain.MaxDigitsResult)
		j.emit(domain.WorkloadEventResult, j.snapshot.Result)
	}
	j.emit(domain.WorkloadEventStatus, string(j.snapshot.Status))
	j.mu.Unlock()

	if err != nil {
		log.Info().Err(err).Dur("elapsed", elapsed).Msg("pi calculation canceled")
	} else {
		log.Info().Dur("elapsed", elapsed).Msg("pi calculation finished")
	}
}

func (j *PiJob) progress(pct int) {
	value := fmt.Sprintf("%d%%", pct)
	j.mu.Lock()
	j.snapshot.Progress = value
	j.mu.Unlock()
	j.emit(domain.WorkloadEventProgress, value)
}

// emit never blocks: with a full buffer it evicts the oldest event first.
func (j *PiJob) emit(kind domain.WorkloadEventKind, value string) {
	event := domain.WorkloadEvent{Kind: kind, Value: value}
	for {
		select {
		case j.events <- event:
			return
		default:
		}
		select {
		case <-j.events:
		default:
		}
	}
}

func (j *PiJob) drainEvents() {
	for {
		select {
		case <-j.events:
		default:
			return
		}
	}
}
