// Package voices holds the fixed table of French neural voices known to
// the synthesis service, keyed by short friendly names.
package voices

// DefaultName is used when a requested voice is unknown.
const DefaultName = "denise"

// Voice describes a single selectable voice.
type Voice struct {
	Name   string // friendly name used on the command line
	ID     string // provider-specific identifier
	Gender string
	Note   string
}

// table is kept in display order.
var table = []Voice{
	{Name: "henri", ID: "fr-FR-HenriNeural", Gender: "male", Note: "standard"},
	{Name: "denise", ID: "fr-FR-DeniseNeural", Gender: "female", Note: "soft"},
	{Name: "eloise", ID: "fr-FR-EloiseNeural", Gender: "female", Note: "young"},
	{Name: "remy", ID: "fr-FR-RemyMultilingualNeural", Gender: "male", Note: "multilingual"},
	{Name: "vivienne", ID: "fr-FR-VivienneMultilingualNeural", Gender: "female", Note: "multilingual"},
}

// Resolve maps a friendly name to its provider identifier. Unknown names
// are reported with ok=false alongside the default voice's identifier,
// so callers can fall back without a second lookup.
func Resolve(name string) (id string, ok bool) {
	for _, v := range table {
		if v.Name == name {
			return v.ID, true
		}
	}
	id, _ = Resolve(DefaultName)
	return id, false
}

// List returns all voices in display order. The returned slice is a
// copy; callers may not mutate the table through it.
func List() []Voice {
	out := make([]Voice, len(table))
	copy(out, table)
	return out
}

// Names returns the friendly names in display order.
func Names() []string {
	names := make([]string, len(table))
	for i, v := range table {
		names[i] = v.Name
	}
	return names
}
