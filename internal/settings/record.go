// Package settings loads, merges, and resolves layered caltc configuration.
//
// Configuration is assembled from a chain of settings files discovered by
// walking the directory ancestry, merged under a selectable policy, then
// combined with CLI values into a fully concrete Effective value:
// explicit CLI value wins, else merged config value, else built-in default.
package settings

// FileName is the settings file looked for in every directory of the
// ancestry walk, and in the home directory as a fallback.
const FileName = ".caltc"

// Tristate is a three-valued boolean distinguishing "not specified" from
// an explicit true or false. Merging relies on that distinction: an unset
// value never overrides a set one.
type Tristate int

const (
	TriUnset Tristate = iota
	TriTrue
	TriFalse
)

// Present reports whether the value was explicitly specified.
func (t Tristate) Present() bool {
	return t != TriUnset
}

// Value returns the boolean value, or def when unset.
func (t Tristate) Value(def bool) bool {
	switch t {
	case TriTrue:
		return true
	case TriFalse:
		return false
	}
	return def
}

// Record holds the parsed contents of one settings file (or the result of
// merging several). A Record is never mutated after construction; merging
// produces a new Record.
type Record struct {
	// Calendars is the ordered calendar-name list from a "calendar ="
	// line. Empty means "all calendars". Duplicates are preserved.
	Calendars []string

	// Start, End, and Filter are raw values from the corresponding
	// keys; "" means the key was not specified. Temporal tokens are
	// not validated at load time.
	Start  string
	End    string
	Filter string

	// Output toggles from the bare boolean-token vocabulary.
	Notes    Tristate
	Tag      Tristate
	Map      Tristate
	DayBreak Tristate

	// Mappings maps an event title to its replacement. Keys are unique;
	// within one file the last occurrence of a repeated key wins.
	Mappings map[string]string

	// DuplicateKeys records mapping keys that appeared more than once
	// while parsing a single file, for diagnostics.
	DuplicateKeys map[string]struct{}
}

// Equal reports whether two records hold the same values. Used by tests
// and by nothing on the hot path.
func (r Record) Equal(o Record) bool {
	if len(r.Calendars) != len(o.Calendars) {
		return false
	}
	for i := range r.Calendars {
		if r.Calendars[i] != o.Calendars[i] {
			return false
		}
	}
	if r.Start != o.Start || r.End != o.End || r.Filter != o.Filter {
		return false
	}
	if r.Notes != o.Notes || r.Tag != o.Tag || r.Map != o.Map || r.DayBreak != o.DayBreak {
		return false
	}
	if len(r.Mappings) != len(o.Mappings) {
		return false
	}
	for k, v := range r.Mappings {
		if ov, ok := o.Mappings[k]; !ok || ov != v {
			return false
		}
	}
	if len(r.DuplicateKeys) != len(o.DuplicateKeys) {
		return false
	}
	for k := range r.DuplicateKeys {
		if _, ok := o.DuplicateKeys[k]; !ok {
			return false
		}
	}
	return true
}
