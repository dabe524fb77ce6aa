package voices

import "testing"

func TestResolve_KnownNames(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"henri", "fr-FR-HenriNeural"},
		{"denise", "fr-FR-DeniseNeural"},
		{"eloise", "fr-FR-EloiseNeural"},
		{"remy", "fr-FR-RemyMultilingualNeural"},
		{"vivienne", "fr-FR-VivienneMultilingualNeural"},
	}

	for _, tt := range tests {
		id, ok := Resolve(tt.name)
		if !ok {
			t.Errorf("Resolve(%q): ok = false, want true", tt.name)
		}
		if id != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.name, id, tt.want)
		}
	}
}

func TestResolve_UnknownFallsBackToDefault(t *testing.T) {
	id, ok := Resolve("gaston")
	if ok {
		t.Error("Resolve of unknown name reported ok = true")
	}

	want, _ := Resolve(DefaultName)
	if id != want {
		t.Errorf("Resolve fallback = %q, want default %q", id, want)
	}
}

func TestList_StableOrder(t *testing.T) {
	want := []string{"henri", "denise", "eloise", "remy", "vivienne"}

	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	a := List()
	a[0].ID = "mutated"

	b := List()
	if b[0].ID == "mutated" {
		t.Error("List() exposes the internal table")
	}
}
