package game

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

// ErrProfilerBusy is returned while a capture is running or cooling down
var ErrProfilerBusy = errors.New("profiler busy")

// Profiler captures a CPU profile and an execution trace when the game
// reports a frame rate drop.
type Profiler struct {
	mu              sync.Mutex
	wg              sync.WaitGroup
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	logger          *log.Logger
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, duration, cooldown time.Duration, logger *log.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profiles dir: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Profiler{
		captureCooldown: cooldown,
		captureDuration: duration,
		profilesDir:     dir,
		logger:          logger,
	}, nil
}

// CaptureProfile starts a background capture. It returns ErrProfilerBusy when
// a capture is running or the last one started less than the cooldown ago.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("%w: capture in progress", ErrProfilerBusy)
	}
	if !p.lastCaptureTime.IsZero() && time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("%w: last capture was %v ago", ErrProfilerBusy, time.Since(p.lastCaptureTime))
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := fmt.Sprintf("fps-drop-%s-%s", p.lastCaptureTime.Format("20060102-150405"), reason)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.logger.Printf("error capturing CPU profile: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Printf("error capturing trace: %v", err)
			}
		}()
		wg.Wait()

		p.logSummary(baseName)
	}()
	return nil
}

// Wait blocks until any running capture has finished
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	p.logger.Printf("CPU profile saved to %s", profilePath)
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")
	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	p.logger.Printf("trace saved to %s", tracePath)
	return nil
}

// logSummary reports the capture's file size and memory stats
func (p *Profiler) logSummary(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(profilePath)
	if err != nil {
		p.logger.Printf("could not inspect profile: %v", err)
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Printf("profile %s (%.2f KB); view with: go tool pprof -http=:8080 %s",
		baseName, float64(info.Size())/1024, profilePath)
	p.logger.Printf("memory at capture: alloc=%d KB sys=%d KB numGC=%d heapObjects=%d",
		m.Alloc/1024, m.Sys/1024, m.NumGC, m.HeapObjects)
}
