// Package monitoring tracks per-frame render timings and failure counters.
package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// FrameMonitor tracks frame, wall pass and sprite pass timings. Counters
// are atomics so the stats can be read from another goroutine.
type FrameMonitor struct {
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame
	wallTime   atomic.Uint64
	spriteTime atomic.Uint64

	columnsCast    atomic.Uint64
	spritesDrawn   atomic.Uint64
	drawFailures   atomic.Uint64
	rayFailures    atomic.Uint64
	spritesSkipped atomic.Uint64

	mutex          sync.RWMutex
	totalFrameTime time.Duration
	startTime      time.Time
	frameBudget    time.Duration
}

// NewFrameMonitor creates a monitor that flags frames slower than budget.
func NewFrameMonitor(budget time.Duration) *FrameMonitor {
	if budget <= 0 {
		budget = 16 * time.Millisecond
	}
	return &FrameMonitor{
		startTime:   time.Now(),
		frameBudget: budget,
	}
}

// Timer measures one section of a frame.
type Timer struct {
	target    *atomic.Uint64
	startTime time.Time
	onStop    func(time.Duration)
}

// Stop records the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.startTime)
	t.target.Store(uint64(elapsed.Nanoseconds()))
	if t.onStop != nil {
		t.onStop(elapsed)
	}
	return elapsed
}

// StartFrame begins frame timing
func (fm *FrameMonitor) StartFrame() *Timer {
	return &Timer{
		target:    &fm.frameTime,
		startTime: time.Now(),
		onStop: func(elapsed time.Duration) {
			fm.frameCount.Add(1)
			fm.mutex.Lock()
			fm.totalFrameTime += elapsed
			fm.mutex.Unlock()
		},
	}
}

// StartWallPass begins timing of the column raycast pass.
func (fm *FrameMonitor) StartWallPass() *Timer {
	return &Timer{target: &fm.wallTime, startTime: time.Now()}
}

// StartSpritePass begins timing of the sprite pass.
func (fm *FrameMonitor) StartSpritePass() *Timer {
	return &Timer{target: &fm.spriteTime, startTime: time.Now()}
}

// FrameStats are the counts a single frame produced.
type FrameStats struct {
	ColumnsCast    int
	SpritesDrawn   int
	SpritesSkipped int
	DrawFailures   int
	RayFailures    int
}

// RecordFrame adds one frame's counts to the running totals.
func (fm *FrameMonitor) RecordFrame(stats FrameStats) {
	fm.columnsCast.Add(uint64(stats.ColumnsCast))
	fm.spritesDrawn.Add(uint64(stats.SpritesDrawn))
	fm.spritesSkipped.Add(uint64(stats.SpritesSkipped))
	fm.drawFailures.Add(uint64(stats.DrawFailures))
	fm.rayFailures.Add(uint64(stats.RayFailures))
}

// FrameCount returns the number of completed frames.
func (fm *FrameMonitor) FrameCount() uint64 {
	return fm.frameCount.Load()
}

// DrawFailures returns the number of failed draw calls so far.
func (fm *FrameMonitor) DrawFailures() uint64 {
	return fm.drawFailures.Load()
}

// AverageFrameTime returns the mean duration of completed frames.
func (fm *FrameMonitor) AverageFrameTime() time.Duration {
	count := fm.frameCount.Load()
	if count == 0 {
		return 0
	}
	fm.mutex.RLock()
	defer fm.mutex.RUnlock()
	return fm.totalFrameTime / time.Duration(count)
}

// GetDetailedStats returns detailed performance statistics
func (fm *FrameMonitor) GetDetailedStats() map[string]interface{} {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	fps := 0.0
	if ft := fm.frameTime.Load(); ft > 0 {
		fps = 1e9 / float64(ft)
	}

	return map[string]interface{}{
		"uptime_seconds":    time.Since(fm.startTime).Seconds(),
		"frame_count":       fm.frameCount.Load(),
		"avg_frame_time_ms": float64(fm.AverageFrameTime()) / 1e6,
		"wall_pass_ms":      float64(fm.wallTime.Load()) / 1e6,
		"sprite_pass_ms":    float64(fm.spriteTime.Load()) / 1e6,
		"current_fps":       fps,
		"columns_cast":      fm.columnsCast.Load(),
		"sprites_drawn":     fm.spritesDrawn.Load(),
		"sprites_skipped":   fm.spritesSkipped.Load(),
		"draw_failures":     fm.drawFailures.Load(),
		"ray_failures":      fm.rayFailures.Load(),
		"memory_alloc_mb":   memStats.Alloc / 1024 / 1024,
		"goroutines":        runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckAlerts reports a slow last frame and any draw failures seen so far.
func (fm *FrameMonitor) CheckAlerts() []PerformanceAlert {
	var alerts []PerformanceAlert
	now := time.Now()

	if ft := time.Duration(fm.frameTime.Load()); ft > fm.frameBudget {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_frame",
			Message:   "last frame exceeded the frame budget",
			Value:     float64(ft) / 1e6,
			Threshold: float64(fm.frameBudget) / 1e6,
			Timestamp: now,
		})
	}
	if failures := fm.drawFailures.Load(); failures > 0 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "draw_failures",
			Message:   "draw calls have failed",
			Value:     float64(failures),
			Timestamp: now,
		})
	}
	return alerts
}

// Reset resets all performance counters
func (fm *FrameMonitor) Reset() {
	fm.frameCount.Store(0)
	fm.frameTime.Store(0)
	fm.wallTime.Store(0)
	fm.spriteTime.Store(0)
	fm.columnsCast.Store(0)
	fm.spritesDrawn.Store(0)
	fm.spritesSkipped.Store(0)
	fm.drawFailures.Store(0)
	fm.rayFailures.Store(0)

	fm.mutex.Lock()
	fm.totalFrameTime = 0
	fm.startTime = time.Now()
	fm.mutex.Unlock()
}
