package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgnsrekt/lafrance/internal/tts"
)

type scriptEngine struct {
	calls int
	err   error
}

func (s *scriptEngine) Name() string { return "script" }

func (s *scriptEngine) Synthesize(_ context.Context, req tts.Request) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return os.WriteFile(req.OutputPath, []byte("mp3"), 0o644)
}

func (s *scriptEngine) Validate() error { return nil }

func newTestLoop(t *testing.T, engine tts.Engine, input string) (*Loop, *bytes.Buffer) {
	t.Helper()

	session, err := tts.NewSession(engine, nil, tts.Config{
		OutputDir: t.TempDir(),
		UseCache:  true,
		Out:       io.Discard,
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	history := LoadHistory(filepath.Join(t.TempDir(), "history"), 100)
	loop := New(session, history, Config{Prompt: "> "})

	var out bytes.Buffer
	loop.in = strings.NewReader(input)
	loop.out = &out
	return loop, &out
}

func TestLoop_QuitTerminates(t *testing.T) {
	loop, out := newTestLoop(t, &scriptEngine{}, "quit\n")

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Au revoir!") {
		t.Error("missing farewell on quit")
	}
}

func TestLoop_EOFTerminates(t *testing.T) {
	loop, _ := newTestLoop(t, &scriptEngine{}, "")

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run failed on EOF: %v", err)
	}
}

func TestLoop_SpeakInvokesEngine(t *testing.T) {
	engine := &scriptEngine{}
	loop, _ := newTestLoop(t, engine, "Bonjour Madame\nquit\n")

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if engine.calls != 1 {
		t.Errorf("engine called %d times, want 1", engine.calls)
	}
}

func TestLoop_SpeakErrorContinuesLoop(t *testing.T) {
	engine := &scriptEngine{err: errors.New("network down")}
	loop, out := newTestLoop(t, engine, "Bonjour\nBonsoir\nquit\n")

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if engine.calls != 2 {
		t.Errorf("engine called %d times, want 2 (loop must continue after a failure)", engine.calls)
	}
	if !strings.Contains(out.String(), "❌") {
		t.Error("missing error diagnostic")
	}
}

func TestLoop_VoiceCommand(t *testing.T) {
	loop, out := newTestLoop(t, &scriptEngine{}, "/voice henri\n/voice gaston\nquit\n")

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "voice set to henri") {
		t.Error("missing confirmation for a known voice")
	}
	if !strings.Contains(out.String(), "unknown voice: gaston") {
		t.Error("missing diagnostic for an unknown voice")
	}
}

func TestLoop_CacheCommands(t *testing.T) {
	engine := &scriptEngine{}
	loop, out := newTestLoop(t, engine, "Bonjour\n/cache\n/clear\nquit\n")

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "entries: 1") {
		t.Errorf("cache info missing entry count: %s", out.String())
	}
	if !strings.Contains(out.String(), "cleared 1 cached entries") {
		t.Error("missing clear confirmation")
	}
	if loop.session.Cache().Len() != 0 {
		t.Error("cache not cleared")
	}
}

func TestLoop_HelpAndUnknown(t *testing.T) {
	loop, out := newTestLoop(t, &scriptEngine{}, "/help\n/bogus\nquit\n")

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "/voice <name>") {
		t.Error("help text not printed")
	}
	if !strings.Contains(out.String(), "unknown command: /bogus") {
		t.Error("missing unknown-command diagnostic")
	}
}

func TestLoop_FlushesHistoryOnExit(t *testing.T) {
	histPath := filepath.Join(t.TempDir(), "history")

	engine := &scriptEngine{}
	session, err := tts.NewSession(engine, nil, tts.Config{
		OutputDir: t.TempDir(),
		UseCache:  true,
		Out:       io.Discard,
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	loop := New(session, LoadHistory(histPath, 100), Config{Prompt: "> "})
	loop.in = strings.NewReader("Bonjour\n/list\nquit\n")
	loop.out = io.Discard

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	saved := LoadHistory(histPath, 100).Lines()
	want := []string{"Bonjour", "/list", "quit"}
	if len(saved) != len(want) {
		t.Fatalf("saved %d history lines, want %d: %v", len(saved), len(want), saved)
	}
	for i := range want {
		if saved[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, saved[i], want[i])
		}
	}
}

func TestLoop_CancellationFlushesHistory(t *testing.T) {
	histPath := filepath.Join(t.TempDir(), "history")

	session, err := tts.NewSession(&scriptEngine{}, nil, tts.Config{
		OutputDir: t.TempDir(),
		UseCache:  true,
		Out:       io.Discard,
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	history := LoadHistory(histPath, 100)
	history.Append("from before")

	loop := New(session, history, Config{Prompt: "> "})
	// A reader that never produces a line keeps the loop pending on
	// input, so cancellation is the only way out.
	pr, pw := io.Pipe()
	defer pw.Close() //nolint:errcheck
	loop.in = pr
	loop.out = io.Discard

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run failed on cancellation: %v", err)
	}

	if lines := LoadHistory(histPath, 100).Lines(); len(lines) != 1 || lines[0] != "from before" {
		t.Errorf("history not flushed on cancellation: %v", lines)
	}
}
