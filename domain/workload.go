package domain

import (
	"context"
	"time"
)

const (
	// MaxDigits caps the number of Pi digits a single job computes.
	MaxDigits = 30000000
	// MaxDigitsResult caps the number of digits reported back.
	MaxDigitsResult = 1000
)

type WorkloadStatus string

const (
	WorkloadIdle     WorkloadStatus = "Idle"
	WorkloadRunning  WorkloadStatus = "Running"
	WorkloadFinished WorkloadStatus = "Finished"
	WorkloadCanceled WorkloadStatus = "Canceled"
)

type WorkloadEventKind string

const (
	WorkloadEventProgress WorkloadEventKind = "progress"
	WorkloadEventResult   WorkloadEventKind = "result"
	WorkloadEventStatus   WorkloadEventKind = "status"
)

type WorkloadEvent struct {
	Kind  WorkloadEventKind `json:"kind"`
	Value string            `json:"value"`
}

// WorkloadSnapshot is the last known state of the load generator.
type WorkloadSnapshot struct {
	Status     WorkloadStatus `json:"status"`
	Digits     int64          `json:"digits"`
	Progress   string         `json:"progress,omitempty"`
	Result     string         `json:"result,omitempty"`
	StartedAt  time.Time      `json:"started_at,omitempty"`
	FinishedAt time.Time      `json:"finished_at,omitempty"`
}

// Workload is a CPU-bound job that runs independently of governor sessions.
type Workload interface {
	Start(ctx context.Context, digits int64) error
	Cancel() error
	Events() <-chan WorkloadEvent
	Status() WorkloadSnapshot
}
