package loadgen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// DefaultSeconds is the burn duration used when a caller does not specify one.
const DefaultSeconds = 60

// Worker modes, used as metric labels.
const (
	ModeProcess   = "process"
	ModeGoroutine = "goroutine"
)

// Burn spins on the wall clock until d has elapsed or ctx is done.
func Burn(ctx context.Context, d time.Duration) {
	end := time.Now().Add(d)
	done := ctx.Done()
	for time.Now().Before(end) {
		select {
		case <-done:
			return
		default:
		}
	}
}

// Spawner launches one detached burn worker.
type Spawner interface {
	Spawn(seconds int) error
	Mode() string
}

// ProcessSpawner runs each worker as a separate OS process, by default the
// current executable invoked as "<exe> burn --duration N".
type ProcessSpawner struct {
	Path   string
	Args   func(seconds int) []string
	Env    []string
	Stderr io.Writer
	logger *slog.Logger
}

// NewProcessSpawner returns a spawner that re-executes the running binary.
func NewProcessSpawner(logger *slog.Logger) (*ProcessSpawner, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	return &ProcessSpawner{
		Path: exe,
		Args: func(seconds int) []string {
			return []string{"burn", "--duration", strconv.Itoa(seconds)}
		},
		Stderr: os.Stderr,
		logger: logger.With("component", "loadgen"),
	}, nil
}

// Spawn starts the worker process and returns without waiting for it. The
// process is reaped in the background so it does not linger as a zombie.
func (p *ProcessSpawner) Spawn(seconds int) error {
	cmd := exec.Command(p.Path, p.Args(seconds)...)
	cmd.Env = p.Env
	cmd.Stderr = p.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start burn process: %w", err)
	}

	pid := cmd.Process.Pid
	go func() {
		err := cmd.Wait()
		if p.logger != nil {
			p.logger.Debug("burn process exited", "pid", pid, "error", err)
		}
	}()
	return nil
}

// Mode implements Spawner.
func (p *ProcessSpawner) Mode() string { return ModeProcess }

// InProcessSpawner runs each worker on its own goroutine.
type InProcessSpawner struct{}

// Spawn implements Spawner.
func (InProcessSpawner) Spawn(seconds int) error {
	go Burn(context.Background(), time.Duration(seconds)*time.Second)
	return nil
}

// Mode implements Spawner.
func (InProcessSpawner) Mode() string { return ModeGoroutine }

// Generator starts burn workers, optionally clamping their duration.
type Generator struct {
	spawner    Spawner
	maxSeconds int
	logger     *slog.Logger
}

// NewGenerator creates a Generator. maxSeconds of 0 leaves durations uncapped.
func NewGenerator(s Spawner, maxSeconds int, logger *slog.Logger) *Generator {
	return &Generator{
		spawner:    s,
		maxSeconds: maxSeconds,
		logger:     logger.With("component", "loadgen"),
	}
}

// Start launches a worker for the given number of seconds and returns the
// duration actually requested from the worker. Durations are not validated
// beyond the optional cap.
func (g *Generator) Start(seconds int) (int, error) {
	if g.maxSeconds > 0 && seconds > g.maxSeconds {
		g.logger.Warn("stress duration capped", "requested", seconds, "max", g.maxSeconds)
		seconds = g.maxSeconds
	}

	if err := g.spawner.Spawn(seconds); err != nil {
		return 0, err
	}

	workersStarted.WithLabelValues(g.spawner.Mode()).Inc()
	g.logger.Info("stress worker started", "seconds", seconds, "mode", g.spawner.Mode())
	return seconds, nil
}
