// Package tts provides the synthesis session that turns French text
// into audio files, backed by a pluggable engine and a persistent
// artifact cache.
package tts

import "context"

// Request describes one synthesis call to an engine.
type Request struct {
	// Text is the free-form French text to synthesize.
	Text string

	// Voice is the provider-specific voice identifier.
	Voice string

	// Rate is a signed percentage speaking-rate adjustment, e.g. "-25%".
	Rate string

	// Volume is a signed percentage volume adjustment, e.g. "+0%".
	Volume string

	// OutputPath is where the engine must write the audio file.
	OutputPath string
}

// Engine is the external synthesis collaborator. Implementations are
// assumed network-dependent and allowed to fail transiently; they must
// honor ctx cancellation and deadlines.
type Engine interface {
	// Name identifies the engine for logs and diagnostics.
	Name() string

	// Synthesize produces an audio file at req.OutputPath.
	Synthesize(ctx context.Context, req Request) error

	// Validate checks that the engine is usable (binary present,
	// credentials configured) without performing a synthesis.
	Validate() error
}
