package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/dgnsrekt/lafrance/internal/tts"
	"github.com/dgnsrekt/lafrance/internal/voices"
)

// Config holds interactive-mode settings, overridable from the
// environment.
type Config struct {
	Prompt      string `env:"LAFRANCE_PROMPT" envDefault:"🇫🇷 > "`
	HistoryFile string `env:"LAFRANCE_HISTORY" envDefault:"~/.lafrance_history"`
	HistorySize int    `env:"LAFRANCE_HISTORY_SIZE" envDefault:"1000"`
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	nameStyle  = lipgloss.NewStyle().Bold(true).Width(10)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

const helpText = `Commands:
  /voice <name>  switch voice (henri/denise/eloise/remy/vivienne)
  /rate <±n%>    adjust speaking rate, e.g. /rate +20% or /rate -30%
  /list          list available voices
  /cache         show cache information
  /clear         clear the cache
  !<text>        force regeneration, e.g. !Bonjour
  /help          show this help
  quit           leave (also: exit, q)
`

// VoiceList renders the voice table for display.
func VoiceList() string {
	out := titleStyle.Render("Available French voices:") + "\n"
	for _, v := range voices.List() {
		out += fmt.Sprintf("  • %s %s %s\n",
			nameStyle.Render(v.Name),
			v.Gender,
			dimStyle.Render("("+v.ID+", "+v.Note+")"))
	}
	return out
}

// Loop is the interactive read-eval-print loop. One line is processed
// to completion, including any network synthesis and playback trigger,
// before the next is read.
type Loop struct {
	session *tts.Session
	history *History
	cfg     Config

	in  io.Reader
	out io.Writer
}

// New creates a loop reading from stdin and writing to stdout.
func New(session *tts.Session, history *History, cfg Config) *Loop {
	if cfg.Prompt == "" {
		cfg.Prompt = "🇫🇷 > "
	}
	return &Loop{
		session: session,
		history: history,
		cfg:     cfg,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// Run executes the loop until quit, end of input, or ctx cancellation.
// History is flushed on every exit path, including interrupts.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintln(l.out, titleStyle.Render("🥐 lafrance — French text-to-speech"))
	fmt.Fprintln(l.out)
	fmt.Fprint(l.out, VoiceList())
	fmt.Fprintln(l.out, dimStyle.Render("Type a French sentence to speak it, /help for commands, quit to leave."))

	// Reading happens on its own goroutine so an interrupt can unblock
	// the loop while a read is pending.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(l.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Debug("input closed", "err", err)
		}
	}()

	for {
		fmt.Fprint(l.out, "\n"+l.cfg.Prompt)

		select {
		case <-ctx.Done():
			return l.farewell()
		case line, ok := <-lines:
			if !ok {
				return l.farewell()
			}
			if l.dispatch(ctx, line) {
				return l.farewell()
			}
		}
	}
}

func (l *Loop) farewell() error {
	fmt.Fprintln(l.out, "\nAu revoir! 👋")
	if err := l.history.Flush(); err != nil {
		log.Warn("could not save history", "err", err)
	}
	return nil
}

// dispatch handles one input line and reports whether the loop should
// terminate.
func (l *Loop) dispatch(ctx context.Context, line string) (quit bool) {
	cmd := Parse(line)
	if cmd.Kind != Empty {
		l.history.Append(line)
	}

	switch cmd.Kind {
	case Empty:

	case Quit:
		return true

	case SetVoice:
		if err := l.session.SetVoice(cmd.Arg); err != nil {
			fmt.Fprintf(l.out, "✗ unknown voice: %s\n", cmd.Arg)
			fmt.Fprint(l.out, VoiceList())
			break
		}
		fmt.Fprintf(l.out, "✓ voice set to %s\n", cmd.Arg)

	case SetRate:
		if err := l.session.SetRate(cmd.Arg); err != nil {
			fmt.Fprintf(l.out, "✗ %v\n", err)
			break
		}
		fmt.Fprintf(l.out, "✓ rate set to %s\n", cmd.Arg)

	case List:
		fmt.Fprint(l.out, VoiceList())

	case ShowCache:
		l.showCache()

	case ClearCache:
		count := l.session.Cache().Clear()
		fmt.Fprintf(l.out, "🗑️  cleared %d cached entries\n", count)

	case Help:
		fmt.Fprint(l.out, helpText)

	case Unknown:
		fmt.Fprintf(l.out, "✗ unknown command: %s (see /help)\n", cmd.Arg)

	case Speak:
		// Silent mode: cache hits replay without any notice.
		if _, err := l.session.Speak(ctx, cmd.Arg, tts.Options{Force: cmd.Force}); err != nil {
			fmt.Fprintf(l.out, "❌ %v\n", err)
		}
	}
	return false
}

// showCache prints the cache location, the entry count, and the most
// recent artifacts with their on-disk sizes.
func (l *Loop) showCache() {
	store := l.session.Cache()
	fmt.Fprintln(l.out, titleStyle.Render("📦 Cache"))
	fmt.Fprintf(l.out, "  file:    %s\n", store.Path())
	fmt.Fprintf(l.out, "  entries: %d\n", store.Len())

	recent := store.Recent(5)
	if len(recent) == 0 {
		return
	}
	fmt.Fprintln(l.out, "  recent:")
	for i, entry := range recent {
		size := "missing"
		if info, err := os.Stat(entry.Path); err == nil {
			size = humanize.Bytes(uint64(info.Size()))
		}
		fmt.Fprintf(l.out, "    %d. %s %s\n", i+1, filepath.Base(entry.Path), dimStyle.Render("("+size+")"))
	}
}
