package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jwaldner/finengine/internal/logger"
	"github.com/jwaldner/finengine/internal/models"
)

// SlowRequestThreshold marks a request as slow in the performance stats.
const SlowRequestThreshold = 500 * time.Millisecond

// PerformanceMonitor wraps handlers with request timing
type PerformanceMonitor struct {
	mu               sync.Mutex
	totalRequests    int64
	totalDuration    time.Duration
	slowRequestCount int64
	threshold        time.Duration
}

// NewPerformanceMonitor creates a monitor with the default slow threshold
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{threshold: SlowRequestThreshold}
}

// Middleware times every request that passes through it
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)

		pm.recordRequest(duration)
		if duration > pm.threshold {
			logger.Warn.Printf("SLOW REQUEST: %s %s took %v [%s]", r.Method, r.URL.Path, duration, RequestID(r.Context()))
		}
	})
}

func (pm *PerformanceMonitor) recordRequest(duration time.Duration) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.totalRequests++
	pm.totalDuration += duration
	if duration > pm.threshold {
		pm.slowRequestCount++
	}
}

// Stats returns a snapshot of the collected timings
func (pm *PerformanceMonitor) Stats() models.PerformanceStats {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	stats := models.PerformanceStats{
		TotalRequests: pm.totalRequests,
		SlowRequests:  pm.slowRequestCount,
		TotalMs:       float64(pm.totalDuration.Microseconds()) / 1000.0,
	}
	if pm.totalRequests > 0 {
		stats.AverageMs = stats.TotalMs / float64(pm.totalRequests)
		stats.SlowPercent = float64(pm.slowRequestCount) / float64(pm.totalRequests) * 100
	}
	return stats
}

// Report formats the stats for the shutdown log
func (pm *PerformanceMonitor) Report() string {
	s := pm.Stats()
	return fmt.Sprintf(`
Request Performance Stats
=========================
Total Requests:    %d
Average Duration:  %.3fms
Total Time:        %.3fms
Slow Requests:     %d (>%v)
Slow Request %%:    %.1f%%
`,
		s.TotalRequests,
		s.AverageMs,
		s.TotalMs,
		s.SlowRequests,
		pm.threshold,
		s.SlowPercent,
	)
}

// Close logs the final report if any requests were served
func (pm *PerformanceMonitor) Close() {
	if pm.Stats().TotalRequests > 0 {
		logger.Info.Printf("Performance Report:%s", pm.Report())
	}
}
