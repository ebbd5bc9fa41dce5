package game

import (
	"log"
	"time"

	"raymaze/internal/threading/monitoring"
)

const (
	perfLowFpsThreshold = 50.0
	perfLowFpsDuration  = 3 * time.Second
	perfLogInterval     = 3 * time.Second
)

// PerfWatch logs a render snapshot once the frame rate has stayed low for
// a while, then at most once per interval until it recovers.
type PerfWatch struct {
	logger   *log.Logger
	lowSince time.Time
	lastLog  time.Time
}

func NewPerfWatch(logger *log.Logger) *PerfWatch {
	if logger == nil {
		logger = log.Default()
	}
	return &PerfWatch{logger: logger}
}

// Observe feeds one FPS sample. It reports whether a snapshot was logged.
func (pw *PerfWatch) Observe(fps float64, now time.Time, monitor *monitoring.FrameMonitor) bool {
	if fps >= perfLowFpsThreshold {
		pw.lowSince = time.Time{}
		pw.lastLog = time.Time{}
		return false
	}

	if pw.lowSince.IsZero() {
		pw.lowSince = now
		return false
	}
	if now.Sub(pw.lowSince) < perfLowFpsDuration {
		return false
	}
	if !pw.lastLog.IsZero() && now.Sub(pw.lastLog) < perfLogInterval {
		return false
	}

	pw.lastLog = now
	pw.logSnapshot(fps, monitor)
	return true
}

func (pw *PerfWatch) logSnapshot(fps float64, monitor *monitoring.FrameMonitor) {
	stats := monitor.GetDetailedStats()
	pw.logger.Printf("[perf] FPS<%.0f for >=%s | fps=%.1f avg_frame=%.2fms walls=%.2fms sprites=%.2fms",
		perfLowFpsThreshold, perfLowFpsDuration, fps,
		stats["avg_frame_time_ms"], stats["wall_pass_ms"], stats["sprite_pass_ms"])
	pw.logger.Printf("[perf] columns=%v sprites_drawn=%v skipped=%v draw_failures=%v mem=%vMB goroutines=%v",
		stats["columns_cast"], stats["sprites_drawn"], stats["sprites_skipped"],
		stats["draw_failures"], stats["memory_alloc_mb"], stats["goroutines"])
	for _, alert := range monitor.CheckAlerts() {
		pw.logger.Printf("[perf] alert %s: %s (%.2f)", alert.Type, alert.Message, alert.Value)
	}
}
