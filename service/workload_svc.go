package service

import (
	"context"

	"github.com/Gthulhu/cpupower/domain"
)

func (svc *Service) StartPiWorkload(ctx context.Context, digits int64) error {
	return svc.workload.Start(ctx, digits)
}

func (svc *Service) CancelPiWorkload(ctx context.Context) error {
	return svc.workload.Cancel()
}

func (svc *Service) GetPiWorkload(ctx context.Context) domain.WorkloadSnapshot {
	return svc.workload.Status()
}

// PiWorkloadEvents returns the event stream of the current run.
func (svc *Service) PiWorkloadEvents(ctx context.Context) <-chan domain.WorkloadEvent {
	return svc.workload.Events()
}
