package app

import (
	"math"
	"sync/atomic"
	"time"
)

// Metrics tracks frame loop performance.
type Metrics struct {
	// Frame timing
	frameCount    atomic.Uint64
	frameTotalNs  atomic.Int64
	frameMinNs    atomic.Int64
	frameMaxNs    atomic.Int64
	lastFrameNs   atomic.Int64
	overrunFrames atomic.Uint64

	// Phase timing
	ingestTotalNs atomic.Int64
	updateTotalNs atomic.Int64
	drawTotalNs   atomic.Int64

	// Input
	eventCount    atomic.Uint64
	closeRequests atomic.Uint64
	closeRejected atomic.Uint64

	// Deferred render objects waiting at the end of the last frame
	pendingObjects atomic.Int64

	startNs atomic.Int64
}

// FrameSample is the timing of one frame's phases.
type FrameSample struct {
	Ingest time.Duration
	Update time.Duration
	Draw   time.Duration
	Events int
}

// Total returns the sum of the phase durations.
func (s FrameSample) Total() time.Duration {
	return s.Ingest + s.Update + s.Draw
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.Reset()
	return m
}

// RecordFrame records one completed frame.
func (m *Metrics) RecordFrame(s FrameSample) {
	ns := s.Total().Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)
	m.ingestTotalNs.Add(s.Ingest.Nanoseconds())
	m.updateTotalNs.Add(s.Update.Nanoseconds())
	m.drawTotalNs.Add(s.Draw.Nanoseconds())
	m.eventCount.Add(uint64(s.Events))

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordOverrun records a frame that took longer than the frame interval.
func (m *Metrics) RecordOverrun() {
	m.overrunFrames.Add(1)
}

// RecordCloseRequest records a close request and whether it was accepted.
func (m *Metrics) RecordCloseRequest(accepted bool) {
	m.closeRequests.Add(1)
	if !accepted {
		m.closeRejected.Add(1)
	}
}

// SetPendingObjects records the deferred render queue length.
func (m *Metrics) SetPendingObjects(n int) {
	m.pendingObjects.Store(int64(n))
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()

	avg := func(total int64) time.Duration {
		if frameCount == 0 {
			return 0
		}
		return time.Duration(total / int64(frameCount))
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == math.MaxInt64 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(time.Unix(0, m.startNs.Load())),
		FrameCount:     frameCount,
		AvgFrame:       avg(m.frameTotalNs.Load()),
		MinFrame:       time.Duration(minFrameNs),
		MaxFrame:       time.Duration(m.frameMaxNs.Load()),
		LastFrame:      time.Duration(m.lastFrameNs.Load()),
		OverrunFrames:  m.overrunFrames.Load(),
		AvgIngest:      avg(m.ingestTotalNs.Load()),
		AvgUpdate:      avg(m.updateTotalNs.Load()),
		AvgDraw:        avg(m.drawTotalNs.Load()),
		EventCount:     m.eventCount.Load(),
		CloseRequests:  m.closeRequests.Load(),
		CloseRejected:  m.closeRejected.Load(),
		PendingObjects: int(m.pendingObjects.Load()),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.frameCount.Store(0)
	m.frameTotalNs.Store(0)
	m.frameMinNs.Store(math.MaxInt64)
	m.frameMaxNs.Store(0)
	m.lastFrameNs.Store(0)
	m.overrunFrames.Store(0)
	m.ingestTotalNs.Store(0)
	m.updateTotalNs.Store(0)
	m.drawTotalNs.Store(0)
	m.eventCount.Store(0)
	m.closeRequests.Store(0)
	m.closeRejected.Store(0)
	m.pendingObjects.Store(0)
	m.startNs.Store(time.Now().UnixNano())
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrame       time.Duration
	MinFrame       time.Duration
	MaxFrame       time.Duration
	LastFrame      time.Duration
	OverrunFrames  uint64
	AvgIngest      time.Duration
	AvgUpdate      time.Duration
	AvgDraw        time.Duration
	EventCount     uint64
	CloseRequests  uint64
	CloseRejected  uint64
	PendingObjects int
}

// AvgFPS returns the frame rate the average frame time would allow.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrame == 0 {
		return 0
	}
	return float64(time.Second) / float64(s.AvgFrame)
}

// OverrunRate returns the percentage of frames that overran the interval.
func (s MetricsSnapshot) OverrunRate() float64 {
	if s.FrameCount == 0 {
		return 0
	}
	return float64(s.OverrunFrames) / float64(s.FrameCount) * 100
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop returns the elapsed time and resets the timer.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	t.start = time.Now()
	return elapsed
}
