package frontend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrProfilerBusy is returned when a capture is running or on cooldown
var ErrProfilerBusy = errors.New("profiler busy")

// Profiler captures a CPU profile and an execution trace on demand or when
// the frame rate drops.
type Profiler struct {
	mu              sync.Mutex
	wg              sync.WaitGroup
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	log             zerolog.Logger
	now             func() time.Time
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string, duration time.Duration, log zerolog.Logger) *Profiler {
	return &Profiler{
		captureCooldown: 10 * time.Second, // Don't capture more than once every 10 seconds
		captureDuration: duration,
		profilesDir:     dir,
		log:             log,
		now:             time.Now,
	}
}

// Capture starts a background capture named after reason
func (p *Profiler) Capture(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("%w: capture in progress", ErrProfilerBusy)
	}
	if !p.lastCaptureTime.IsZero() && p.now().Sub(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("%w: last capture was %v ago", ErrProfilerBusy, p.now().Sub(p.lastCaptureTime))
	}
	if err := os.MkdirAll(p.profilesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}

	p.isProfiling = true
	p.lastCaptureTime = p.now()
	baseName := fmt.Sprintf("%s-%s", p.lastCaptureTime.Format("20060102-150405"), sanitize(reason))

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
				p.log.Error().Err(err).Msg("Error capturing CPU profile")
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.log.Error().Err(err).Msg("Error capturing trace")
			}
		}()
		wg.Wait()

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		p.log.Info().
			Str("profile", p.path(baseName, ".cpu.prof")).
			Uint64("heapAllocKB", m.HeapAlloc/1024).
			Uint32("numGC", m.NumGC).
			Msg("Profile captured")
	}()
	return nil
}

// Wait blocks until any running capture has been written
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) path(baseName, ext string) string {
	return filepath.Join(p.profilesDir, baseName+ext)
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	file, err := os.Create(p.path(baseName, ".cpu.prof"))
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	file, err := os.Create(p.path(baseName, ".trace"))
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()
	return nil
}

// sanitize keeps reason usable as part of a file name
func sanitize(reason string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, reason)
}
