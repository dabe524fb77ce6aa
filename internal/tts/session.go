package tts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/lafrance/internal/audio"
	"github.com/dgnsrekt/lafrance/internal/cache"
	"github.com/dgnsrekt/lafrance/internal/voices"
)

// timestampLayout names generated files by generation time.
const timestampLayout = "20060102150405"

// Config holds the session settings. Zero values fall back to the
// application defaults.
type Config struct {
	// Voice is a friendly voice name from the voices table. Unknown
	// names fall back to the default voice.
	Voice string

	// Rate is a signed percentage speaking-rate adjustment.
	Rate string

	// Volume is a signed percentage volume adjustment.
	Volume string

	// OutputDir is where audio files and the cache file are written.
	OutputDir string

	// AutoPlay plays each result after synthesis or a cache hit.
	AutoPlay bool

	// UseCache enables the artifact cache.
	UseCache bool

	// Timeout bounds one Speak call end to end. Zero means 90s.
	Timeout time.Duration

	// Out receives user-facing progress output. Defaults to os.Stdout.
	Out io.Writer
}

// Options adjusts a single Speak call.
type Options struct {
	// Filename overrides the generated file name. The .mp3 extension is
	// appended when missing.
	Filename string

	// Play overrides the session's auto-play setting when non-nil.
	Play *bool

	// Force bypasses the cache lookup and resynthesizes, overwriting
	// the stored path for the derived key.
	Force bool

	// Verbose prints progress and cache-hit notices.
	Verbose bool
}

// Session orchestrates cache lookups, synthesis and playback for one
// voice/rate/volume configuration. Voice and rate may be changed
// between calls; a Session must not be shared across goroutines while
// being reconfigured.
type Session struct {
	engine Engine
	store  *cache.Store
	player audio.Player

	voiceID  string
	rate     string
	volume   string
	dir      string
	autoPlay bool
	useCache bool
	timeout  time.Duration
	out      io.Writer

	now func() time.Time
}

// NewSession creates a session, ensuring the output directory exists
// and loading the cache persisted there.
func NewSession(engine Engine, player audio.Player, cfg Config) (*Session, error) {
	if cfg.Voice == "" {
		cfg.Voice = voices.DefaultName
	}
	if cfg.Rate == "" {
		cfg.Rate = "+0%"
	}
	if cfg.Volume == "" {
		cfg.Volume = "+0%"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "samples"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 90 * time.Second
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	if err := ValidateAdjustment(cfg.Rate); err != nil {
		return nil, fmt.Errorf("rate: %w", err)
	}
	if err := ValidateAdjustment(cfg.Volume); err != nil {
		return nil, fmt.Errorf("volume: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	voiceID, ok := voices.Resolve(cfg.Voice)
	if !ok {
		log.Debug("unknown voice, using default", "voice", cfg.Voice, "default", voices.DefaultName)
	}

	return &Session{
		engine:   engine,
		store:    cache.NewStore(filepath.Join(cfg.OutputDir, cache.FileName)),
		player:   player,
		voiceID:  voiceID,
		rate:     cfg.Rate,
		volume:   cfg.Volume,
		dir:      cfg.OutputDir,
		autoPlay: cfg.AutoPlay,
		useCache: cfg.UseCache,
		timeout:  cfg.Timeout,
		out:      cfg.Out,
		now:      time.Now,
	}, nil
}

// Speak converts text to an audio file and returns its path. Cached
// results are reused when the referenced file still exists; stale
// entries are invalidated and regenerated.
func (s *Session) Speak(ctx context.Context, text string, opts Options) (string, error) {
	text = strings.TrimSpace(text)
	if err := ValidateText(text); err != nil {
		return "", NewError(CodeInvalidInput, "nothing to speak", err)
	}

	play := s.autoPlay
	if opts.Play != nil {
		play = *opts.Play
	}

	key := cache.Key(text, s.voiceID, s.rate, s.volume)
	if s.useCache && !opts.Force {
		if path, ok := s.store.Get(key); ok {
			if _, err := os.Stat(path); err == nil {
				if opts.Verbose {
					fmt.Fprintf(s.out, "♻️  %s\n", filepath.Base(path))
				}
				if play {
					s.play(path)
				}
				return path, nil
			}
			// Referenced file is gone; drop the stale entry and regenerate.
			s.store.Invalidate(key)
		}
	}

	outputPath := filepath.Join(s.dir, s.filename(text, opts.Filename))

	if opts.Verbose {
		fmt.Fprint(s.out, "🔊 ")
	}

	sctx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req := Request{
		Text:       text,
		Voice:      s.voiceID,
		Rate:       s.rate,
		Volume:     s.volume,
		OutputPath: outputPath,
	}
	if err := s.engine.Synthesize(sctx, req); err != nil {
		if opts.Verbose {
			fmt.Fprintln(s.out)
		}
		code := CodeSynthesisFailed
		if sctx.Err() == context.DeadlineExceeded {
			code = CodeTimeout
		}
		return "", NewError(code, fmt.Sprintf("%s engine failed", s.engine.Name()), err)
	}

	if opts.Verbose {
		fmt.Fprintf(s.out, "✅ %s\n", outputPath)
	}

	if s.useCache {
		s.store.Put(key, outputPath)
	}
	if play {
		s.play(outputPath)
	}
	return outputPath, nil
}

// play triggers the playback collaborator. Failure is logged and the
// user is told to play the file manually; it never fails the call.
func (s *Session) play(path string) {
	if s.player == nil {
		return
	}
	if err := s.player.Play(path); err != nil {
		log.Warn("playback failed", "path", path, "err", err)
		fmt.Fprintf(s.out, "⚠️  could not play audio, play it manually: %s\n", path)
	}
}

// filename picks the output file name: the explicit override when
// given, otherwise a timestamp plus a sanitized slug of the text.
func (s *Session) filename(text, override string) string {
	name := override
	if name == "" {
		name = s.now().Format(timestampLayout) + "_" + SanitizeFilename(text)
	}
	if !strings.HasSuffix(name, ".mp3") {
		name += ".mp3"
	}
	return name
}

// SetVoice switches the session to the named voice.
func (s *Session) SetVoice(name string) error {
	id, ok := voices.Resolve(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVoice, name)
	}
	s.voiceID = id
	return nil
}

// SetRate changes the speaking-rate adjustment.
func (s *Session) SetRate(rate string) error {
	if err := ValidateAdjustment(rate); err != nil {
		return err
	}
	s.rate = rate
	return nil
}

// VoiceID returns the provider identifier of the current voice.
func (s *Session) VoiceID() string { return s.voiceID }

// Rate returns the current speaking-rate adjustment.
func (s *Session) Rate() string { return s.rate }

// OutputDir returns the directory audio files are written to.
func (s *Session) OutputDir() string { return s.dir }

// Cache exposes the artifact store for display and maintenance.
func (s *Session) Cache() *cache.Store { return s.store }
