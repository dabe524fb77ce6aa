// Package repl implements the interactive prompt: a tagged-command
// parser, a persistent input history, and a synchronous read-eval-print
// loop over a synthesis session.
package repl

import "strings"

// Kind tags a parsed input line with its command variant.
type Kind int

const (
	// Empty is a blank line; it is ignored.
	Empty Kind = iota

	// Speak synthesizes the line as French text.
	Speak

	// SetVoice switches the session voice.
	SetVoice

	// SetRate changes the speaking-rate adjustment.
	SetRate

	// List prints the voice table.
	List

	// ShowCache prints cache information.
	ShowCache

	// ClearCache empties the artifact cache.
	ClearCache

	// Help prints the command reference.
	Help

	// Quit terminates the loop.
	Quit

	// Unknown is an unrecognized slash command.
	Unknown
)

// String returns the command name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Speak:
		return "speak"
	case SetVoice:
		return "set-voice"
	case SetRate:
		return "set-rate"
	case List:
		return "list"
	case ShowCache:
		return "show-cache"
	case ClearCache:
		return "clear-cache"
	case Help:
		return "help"
	case Quit:
		return "quit"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Command is one parsed input line.
type Command struct {
	Kind Kind

	// Arg carries the voice name for SetVoice, the adjustment for
	// SetRate, the text for Speak, and the offending token for Unknown.
	Arg string

	// Force requests regeneration, bypassing the cache (Speak only).
	Force bool
}

// Parse classifies one line of interactive input. Lines starting with
// "/" are commands, a leading "!" forces regeneration, quit/exit/q end
// the loop, and anything else is text to speak.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: Empty}
	}

	switch strings.ToLower(line) {
	case "quit", "exit", "q":
		return Command{Kind: Quit}
	}

	if strings.HasPrefix(line, "/") {
		fields := strings.Fields(line)
		switch fields[0] {
		case "/voice":
			if len(fields) < 2 {
				return Command{Kind: Unknown, Arg: fields[0]}
			}
			return Command{Kind: SetVoice, Arg: fields[1]}
		case "/rate":
			if len(fields) < 2 {
				return Command{Kind: Unknown, Arg: fields[0]}
			}
			return Command{Kind: SetRate, Arg: fields[1]}
		case "/list":
			return Command{Kind: List}
		case "/cache":
			return Command{Kind: ShowCache}
		case "/clear":
			return Command{Kind: ClearCache}
		case "/help":
			return Command{Kind: Help}
		default:
			return Command{Kind: Unknown, Arg: fields[0]}
		}
	}

	if strings.HasPrefix(line, "!") {
		text := strings.TrimSpace(line[1:])
		if text == "" {
			return Command{Kind: Empty}
		}
		return Command{Kind: Speak, Arg: text, Force: true}
	}

	return Command{Kind: Speak, Arg: line}
}
