package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

// Player plays a local audio file, blocking until playback finishes.
type Player interface {
	Play(path string) error
	Close() error
}

// OtoPlayer implements Player on top of an oto audio context. The
// context is created lazily on first use and reused for the lifetime of
// the process; oto supports only one context per process.
type OtoPlayer struct {
	mu         sync.Mutex
	ctx        *oto.Context
	sampleRate int
	closed     bool
}

// NewOtoPlayer returns a player whose audio device is opened on the
// first call to Play.
func NewOtoPlayer() *OtoPlayer {
	return &OtoPlayer{}
}

// Play decodes the MP3 file at path and plays it to completion.
func (p *OtoPlayer) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open audio file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("unable to decode mp3: %w", err)
	}

	ctx, err := p.context(dec.SampleRate())
	if err != nil {
		return err
	}

	player := ctx.NewPlayer(dec)
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := player.Close(); err != nil {
		return fmt.Errorf("unable to close player: %w", err)
	}
	return nil
}

// context returns the shared oto context, creating it on first use.
func (p *OtoPlayer) context(sampleRate int) (*oto.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("audio player is closed")
	}
	if p.ctx != nil {
		if sampleRate != p.sampleRate {
			// The context sample rate is fixed at creation; a mismatched
			// file plays at the wrong pitch rather than failing outright.
			log.Debug("sample rate mismatch", "context", p.sampleRate, "file", sampleRate)
		}
		return p.ctx, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2, // go-mp3 always decodes to 2-channel 16-bit LE
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("unable to open audio device: %w", err)
	}
	<-ready

	p.ctx = ctx
	p.sampleRate = sampleRate
	return ctx, nil
}

// Close marks the player unusable. The underlying oto context has no
// close operation; it is released at process exit.
func (p *OtoPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	return nil
}
