// Package cache provides a persistent mapping from synthesis
// fingerprints to generated audio file paths. The mapping lives in
// memory and is flushed to a single JSON file after every mutation.
package cache
