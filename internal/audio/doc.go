// Package audio provides cross-platform playback of generated MP3
// files using the oto/v3 library. Playback failures are reported to the
// caller but are never fatal to the operation that produced the file.
package audio
