package engines

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/dgnsrekt/lafrance/internal/tts"
)

// EdgeConfig configures the edge-tts engine.
type EdgeConfig struct {
	// Binary is the edge-tts executable. Defaults to "edge-tts".
	Binary string

	// AttemptTimeout bounds a single synthesis attempt. Defaults to 30s.
	AttemptTimeout time.Duration

	// MaxAttempts is the number of tries before giving up. Defaults to 3.
	MaxAttempts int

	// RequestsPerMinute throttles calls to the synthesis service to
	// stay under its tolerance. Defaults to 50.
	RequestsPerMinute int
}

// Edge implements tts.Engine by invoking the edge-tts CLI as a
// subprocess. Transient network failures are retried with a linear
// backoff; each attempt runs under its own timeout.
type Edge struct {
	binary         string
	attemptTimeout time.Duration
	maxAttempts    int
	limiter        *rate.Limiter
}

// NewEdge creates an edge-tts engine.
func NewEdge(config EdgeConfig) *Edge {
	if config.Binary == "" {
		config.Binary = "edge-tts"
	}
	if config.AttemptTimeout == 0 {
		config.AttemptTimeout = 30 * time.Second
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = 3
	}
	if config.RequestsPerMinute == 0 {
		config.RequestsPerMinute = 50
	}

	return &Edge{
		binary:         config.Binary,
		attemptTimeout: config.AttemptTimeout,
		maxAttempts:    config.MaxAttempts,
		limiter:        rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 1),
	}
}

// Name identifies the engine.
func (e *Edge) Name() string { return "edge-tts" }

// Validate checks that the edge-tts binary is on PATH.
func (e *Edge) Validate() error {
	if _, err := exec.LookPath(e.binary); err != nil {
		return fmt.Errorf("%w: %s not found in PATH", tts.ErrEngineUnavailable, e.binary)
	}
	return nil
}

// Synthesize runs edge-tts to produce an audio file at req.OutputPath.
func (e *Edge) Synthesize(ctx context.Context, req tts.Request) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		if attempt > 0 {
			log.Debug("retrying synthesis", "attempt", attempt+1, "err", lastErr)
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = e.attempt(ctx, req)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("synthesis failed after %d attempts: %w", e.maxAttempts, lastErr)
}

// attempt performs a single subprocess invocation under its own
// timeout and verifies the output file was actually written.
func (e *Edge) attempt(ctx context.Context, req tts.Request) error {
	actx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
	defer cancel()

	cmd := exec.CommandContext(actx, e.binary, buildArgs(req)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if actx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("synthesis timed out after %s", e.attemptTimeout)
		}
		return fmt.Errorf("%s failed: %w: %s", e.binary, err, string(output))
	}

	info, err := os.Stat(req.OutputPath)
	if err != nil {
		return fmt.Errorf("output file missing: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(req.OutputPath) //nolint:errcheck
		return fmt.Errorf("%s produced an empty file: %s", e.binary, string(output))
	}
	return nil
}

// buildArgs assembles the edge-tts command line for one request.
func buildArgs(req tts.Request) []string {
	return []string{
		"--text", req.Text,
		"--voice", req.Voice,
		"--rate", req.Rate,
		"--volume", req.Volume,
		"--write-media", req.OutputPath,
	}
}
