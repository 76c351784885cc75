package service

import (
	"context"

	"github.com/Gthulhu/cpupower/domain"
)

// CurrentUsage returns the latest usage vector and the truncated aggregate
func (svc *Service) CurrentUsage(ctx context.Context) domain.UsageReport {
	return domain.UsageReport{
		Vector:  svc.sampler.CurrentUsage(),
		Overall: svc.sampler.OverallPercentage(),
	}
}

// UsageHistory returns the stored samples of one channel, oldest first
func (svc *Service) UsageHistory(ctx context.Context, channel int) ([]float64, error) {
	return svc.sampler.History(channel)
}
