package input

import (
	"sync/atomic"
	"time"
)

// Stats is a snapshot of ingestion counters since process start.
type Stats struct {
	Frames        uint64
	KeyEvents     uint64
	ButtonEvents  uint64
	MotionEvents  uint64
	CursorEvents  uint64
	ResizeEvents  uint64
	CloseRequests uint64

	// LastIngest is the duration of the most recent Ingest call.
	LastIngest time.Duration
	// PeakIngest is the longest Ingest call observed.
	PeakIngest time.Duration
}

// Events returns the total number of events ingested.
func (s Stats) Events() uint64 {
	return s.KeyEvents + s.ButtonEvents + s.MotionEvents +
		s.CursorEvents + s.ResizeEvents + s.CloseRequests
}

// ingestStats tracks ingestion counters. Counters are atomic so they may be
// read from any goroutine while ingestion runs.
type ingestStats struct {
	frames        atomic.Uint64
	keyEvents     atomic.Uint64
	buttonEvents  atomic.Uint64
	motionEvents  atomic.Uint64
	cursorEvents  atomic.Uint64
	resizeEvents  atomic.Uint64
	closeRequests atomic.Uint64

	lastNs atomic.Int64
	peakNs atomic.Int64
}

var stats ingestStats

func (s *ingestStats) recordIngest(f *Frame, d time.Duration) {
	s.frames.Add(1)
	s.keyEvents.Add(uint64(len(f.Keyboard)))
	s.buttonEvents.Add(uint64(len(f.MouseButtons)))
	s.motionEvents.Add(uint64(len(f.MouseMotion)))
	s.cursorEvents.Add(uint64(len(f.CursorMoved)))
	s.resizeEvents.Add(uint64(len(f.Resized)))
	if f.CloseRequested {
		s.closeRequests.Add(1)
	}

	ns := d.Nanoseconds()
	s.lastNs.Store(ns)
	for {
		peak := s.peakNs.Load()
		if ns <= peak {
			break
		}
		if s.peakNs.CompareAndSwap(peak, ns) {
			break
		}
	}
}

// IngestStats returns the ingestion counters.
func IngestStats() Stats {
	return Stats{
		Frames:        stats.frames.Load(),
		KeyEvents:     stats.keyEvents.Load(),
		ButtonEvents:  stats.buttonEvents.Load(),
		MotionEvents:  stats.motionEvents.Load(),
		CursorEvents:  stats.cursorEvents.Load(),
		ResizeEvents:  stats.resizeEvents.Load(),
		CloseRequests: stats.closeRequests.Load(),
		LastIngest:    time.Duration(stats.lastNs.Load()),
		PeakIngest:    time.Duration(stats.peakNs.Load()),
	}
}
