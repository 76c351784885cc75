package service_test

import (
	"context"
	"testing"

	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPiWorkloadDelegates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.TokenConfig{})

	f.workload.EXPECT().Start(mock.Anything, int64(1000)).Return(nil).Once()
	f.workload.EXPECT().Start(mock.Anything, int64(1000)).Return(domain.ErrWorkloadRunning).Once()
	f.workload.EXPECT().Status().Return(domain.WorkloadSnapshot{Status: domain.WorkloadRunning, Digits: 1000})
	f.workload.EXPECT().Cancel().Return(nil).Once()

	assert.NoError(t, f.svc.StartPiWorkload(ctx, 1000))
	assert.ErrorIs(t, f.svc.StartPiWorkload(ctx, 1000), domain.ErrWorkloadRunning)
	assert.Equal(t, domain.WorkloadRunning, f.svc.GetPiWorkload(ctx).Status)
	assert.NoError(t, f.svc.CancelPiWorkload(ctx))
}

func TestPiWorkloadEvents(t *testing.T) {
	f := newFixture(t, config.TokenConfig{})
	events := make(chan domain.WorkloadEvent, 1)
	events <- domain.WorkloadEvent{Kind: domain.WorkloadEventStatus, Value: "Finished"}
	f.workload.EXPECT().Events().Return(events).Once()

	got := <-f.svc.PiWorkloadEvents(context.Background())
	assert.Equal(t, "Finished", got.Value)
}
