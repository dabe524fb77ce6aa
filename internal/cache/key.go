package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// KeyLength is the length of a derived cache key in hex characters.
const KeyLength = 16

// Key derives a deterministic fingerprint for one synthesis request.
// The four fields are joined with "|", which never appears in a voice
// identifier or a percentage adjustment, hashed, and truncated to
// KeyLength hex characters.
func Key(text, voice, rate, volume string) string {
	data := strings.Join([]string{text, voice, rate, volume}, "|")
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])[:KeyLength]
}
