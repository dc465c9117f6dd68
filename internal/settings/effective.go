package settings

import (
	"time"

	"caltc/internal/temporal"
)

// CLIValues carries the command-line side of effective-settings
// resolution. Explicitness is recorded separately from the values so
// that a flag the user actually passed can be told apart from a cobra
// default: string fields pair with a Set flag populated from
// Flags().Changed(), booleans arrive as Tristate for the same reason,
// and the calendar list counts as supplied only when non-empty.
type CLIValues struct {
	Calendars []string

	Start     string
	StartSet  bool
	End       string
	EndSet    bool
	Filter    string
	FilterSet bool

	Notes    Tristate
	Tag      Tristate
	Map      Tristate
	DayBreak Tristate
}

// Effective is the fully resolved configuration for one invocation.
// Every field holds a concrete value; construction happens once per run
// and the value is treated as immutable afterwards.
type Effective struct {
	Calendars []string
	Start     time.Time
	End       time.Time
	Filter    string
	Notes     bool
	Tag       bool
	Map       bool
	DayBreak  bool
	Mappings  map[string]string
}

// ResolveEffective combines CLI values with the merged configuration:
// per field, an explicitly supplied CLI value wins, else the merged
// config value when present, else the built-in default. Temporal tokens
// resolve against now; a token that is present but unparseable falls
// back to the default endpoint (one year before now for start, one year
// after for end).
func ResolveEffective(cli CLIValues, merged Record, now time.Time) Effective {
	eff := Effective{
		Start:    resolveEndpoint(cli.Start, cli.StartSet, merged.Start, now, now.AddDate(-1, 0, 0)),
		End:      resolveEndpoint(cli.End, cli.EndSet, merged.End, now, now.AddDate(1, 0, 0)),
		Notes:    resolveFlag(cli.Notes, merged.Notes),
		Tag:      resolveFlag(cli.Tag, merged.Tag),
		Map:      resolveFlag(cli.Map, merged.Map),
		DayBreak: resolveFlag(cli.DayBreak, merged.DayBreak),
		Mappings: merged.Mappings,
	}
	if eff.Mappings == nil {
		eff.Mappings = map[string]string{}
	}

	if len(cli.Calendars) > 0 {
		eff.Calendars = cli.Calendars
	} else {
		eff.Calendars = merged.Calendars
	}

	if cli.FilterSet {
		eff.Filter = cli.Filter
	} else {
		eff.Filter = merged.Filter
	}

	return eff
}

// resolveEndpoint picks the winning temporal token and resolves it.
// Both an absent token and an unparseable one yield def.
func resolveEndpoint(cliVal string, cliSet bool, cfgVal string, now, def time.Time) time.Time {
	token := cfgVal
	if cliSet {
		token = cliVal
	}
	if token == "" {
		return def
	}
	if t, ok := temporal.Resolve(token, now); ok {
		return t
	}
	return def
}

func resolveFlag(cli, cfg Tristate) bool {
	if cli.Present() {
		return cli.Value(false)
	}
	return cfg.Value(false)
}
