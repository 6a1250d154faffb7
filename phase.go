// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import (
	"time"

	"github.com/google/uuid"
)

// Phase is one stage of an Execute call.
type Phase uint8

const (
	// PhaseDiscovery syncs scene state through RenderIndex.SyncAll.
	PhaseDiscovery Phase = iota

	// PhasePrepare calls Task.Prepare on every task.
	PhasePrepare

	// PhaseCommit calls RenderDelegate.CommitResources once.
	PhaseCommit

	// PhaseExecute calls Task.Execute on every task.
	PhaseExecute

	numPhases
)

var phaseNames = [numPhases]string{
	PhaseDiscovery: "discovery",
	PhasePrepare:   "prepare",
	PhaseCommit:    "commit",
	PhaseExecute:   "execute",
}

// String returns the lower-case phase name.
func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// PhaseObserver is notified at phase boundaries. Observers run on the
// engine's goroutine and must not call back into the engine.
type PhaseObserver interface {
	BeginPhase(frame uuid.UUID, phase Phase)
	EndPhase(frame uuid.UUID, phase Phase, elapsed time.Duration)
}

// FrameStats summarizes one completed Execute call.
type FrameStats struct {
	// ID identifies the frame in log records.
	ID uuid.UUID

	// Tasks is the number of tasks the frame ran.
	Tasks int

	// Durations holds the wall time spent in each phase.
	Durations [numPhases]time.Duration
}

// Duration returns the time spent in phase p.
func (s FrameStats) Duration(p Phase) time.Duration {
	if p >= numPhases {
		return 0
	}
	return s.Durations[p]
}

// Total returns the time spent in all phases.
func (s FrameStats) Total() time.Duration {
	var total time.Duration
	for _, d := range s.Durations {
		total += d
	}
	return total
}
