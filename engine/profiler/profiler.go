package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame throughput and memory statistics for the render loop.
// Frames are counted in two buckets so interactive load is visible: frames
// that actually redrew the viewport versus frames that presented nothing new.
// Stats are written to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	redrawCount    int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
	}
}

// Frame should be called once per render-loop iteration.
// Logs throughput statistics when the update interval has elapsed.
//
// Parameters:
//   - redrew: whether this iteration redrew the viewport
//
// Returns:
//   - bool: true if stats were logged this frame, false otherwise
func (p *Profiler) Frame(redrew bool) bool {
	p.frameCount++
	if redrew {
		p.redrawCount++
	}
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	redrawFPS := float64(p.redrawCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	log.Printf("[Profiler] FPS: %.2f (redraws: %.2f/s) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		fps, redrawFPS, heapMB, allocRateMB, p.memStats.NumGC)

	p.frameCount = 0
	p.redrawCount = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
