package cache

import "testing"

func TestKey_Deterministic(t *testing.T) {
	a := Key("Bonjour Madame, je voudrais un café.", "fr-FR-DeniseNeural", "+0%", "+0%")
	b := Key("Bonjour Madame, je voudrais un café.", "fr-FR-DeniseNeural", "+0%", "+0%")

	if a != b {
		t.Errorf("same inputs produced different keys: %q vs %q", a, b)
	}
}

func TestKey_Format(t *testing.T) {
	key := Key("Au revoir!", "fr-FR-HenriNeural", "-25%", "+0%")

	if len(key) != KeyLength {
		t.Fatalf("key length = %d, want %d", len(key), KeyLength)
	}
	for _, r := range key {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("key %q contains non-hex character %q", key, r)
		}
	}
}

func TestKey_SensitiveToEachInput(t *testing.T) {
	base := Key("Bonjour", "fr-FR-DeniseNeural", "+0%", "+0%")

	tests := []struct {
		name                      string
		text, voice, rate, volume string
	}{
		{"text", "Bonsoir", "fr-FR-DeniseNeural", "+0%", "+0%"},
		{"voice", "Bonjour", "fr-FR-HenriNeural", "+0%", "+0%"},
		{"rate", "Bonjour", "fr-FR-DeniseNeural", "-25%", "+0%"},
		{"volume", "Bonjour", "fr-FR-DeniseNeural", "+0%", "+10%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Key(tt.text, tt.voice, tt.rate, tt.volume)
			if got == base {
				t.Errorf("changing %s did not change the key", tt.name)
			}
		})
	}
}
