package repl

import (
	"bufio"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/lafrance/utils"
)

// History is an explicit input-history session: loaded from a file at
// startup, appended to per line, and flushed at teardown. It replaces
// ambient process-wide readline state with something the loop owns.
type History struct {
	path  string
	max   int
	lines []string
}

// LoadHistory reads history from path, expanding a leading tilde. A
// missing or unreadable file yields an empty history. max bounds the
// number of lines kept; non-positive means 1000.
func LoadHistory(path string, max int) *History {
	if max <= 0 {
		max = 1000
	}
	h := &History{path: utils.ExpandPath(path), max: max}

	f, err := os.Open(h.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug("history unreadable, starting empty", "path", h.path, "err", err)
		}
		return h
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			h.lines = append(h.lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Debug("history partially read", "path", h.path, "err", err)
	}
	h.trim()
	return h
}

// Append records one input line. Blank lines and immediate repeats are
// skipped.
func (h *History) Append(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	h.trim()
}

// Lines returns the recorded history, oldest first.
func (h *History) Lines() []string {
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// Flush writes the history back to its file.
func (h *History) Flush() error {
	if h.path == "" {
		return nil
	}
	var b strings.Builder
	for _, line := range h.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}

func (h *History) trim() {
	if len(h.lines) > h.max {
		h.lines = h.lines[len(h.lines)-h.max:]
	}
}
