// Package cli provides flag binding and validation for the caltc CLI.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"caltc/internal/settings"
)

// Flags holds the raw command-line values before effective-settings
// resolution. Whether a flag was explicitly passed is recovered from
// cobra's Changed() at collection time, so defaults here never shadow
// configuration-file values.
type Flags struct {
	Calendars []string
	Start     string
	End       string
	Filter    string

	Notes    bool
	Tag      bool
	Map      bool
	DayBreak bool

	Merge  string
	Dir    string
	Source string

	Verbose bool
}

// Bind registers all flags on the given cobra command. Shared flags
// (--dir, --source, --merge, --verbose) are persistent so subcommands
// see them too.
func Bind(cmd *cobra.Command, f *Flags) {
	flags := cmd.Flags()

	// Query range and filtering.
	flags.StringArrayVar(&f.Calendars, "calendar", nil, "Calendar to query (repeatable; default: all)")
	flags.StringVar(&f.Start, "start", "", "Range start token (absolute YYYY-MM-DD or relative like -1M)")
	flags.StringVar(&f.End, "end", "", "Range end token (default: +1Y from now)")
	flags.StringVar(&f.Filter, "filter", "", "Case-insensitive title substring filter")

	// Output toggles.
	flags.BoolVar(&f.Notes, "notes", false, "Append flattened event notes to the clock-in line")
	flags.BoolVar(&f.Tag, "tag", false, "Emit a '; :Calendar:' tag line per event")
	flags.BoolVar(&f.Map, "map", false, "Apply title mappings from the settings chain")
	flags.BoolVar(&f.DayBreak, "break", false, "Emit day-boundary header lines")

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&f.Merge, "merge", "closest", "Settings chain merge policy: closest, parent, or local")
	persistent.StringVar(&f.Dir, "dir", "", "Directory to start the settings walk from (default: cwd)")
	persistent.StringVar(&f.Source, "source", "", "Event source directory of .ics files (default: $CALTC_SOURCE or ~/.calendars)")
	persistent.BoolVarP(&f.Verbose, "verbose", "v", false, "Enable debug output")
}

// Collect converts parsed flags into CLIValues, using Changed() so that
// only flags the user actually passed take part in precedence. Passing
// --notes=false is therefore distinguishable from omitting --notes.
func Collect(cmd *cobra.Command, f *Flags) settings.CLIValues {
	changed := cmd.Flags().Changed

	return settings.CLIValues{
		Calendars: f.Calendars,
		Start:     f.Start,
		StartSet:  changed("start"),
		End:       f.End,
		EndSet:    changed("end"),
		Filter:    f.Filter,
		FilterSet: changed("filter"),
		Notes:     tristate(changed("notes"), f.Notes),
		Tag:       tristate(changed("tag"), f.Tag),
		Map:       tristate(changed("map"), f.Map),
		DayBreak:  tristate(changed("break"), f.DayBreak),
	}
}

// Validate checks flag values after parsing and resolves the merge
// policy. Must be called after cmd.Execute() or cmd.ParseFlags().
func Validate(f *Flags) (settings.Policy, error) {
	return settings.ParsePolicy(f.Merge)
}

// StartDir returns the settings-walk start directory: --dir when given,
// else the working directory.
func StartDir(f *Flags) (string, error) {
	if f.Dir != "" {
		return f.Dir, nil
	}
	return os.Getwd()
}

// SourceDir returns the event-source directory: --source when given,
// else $CALTC_SOURCE, else ~/.calendars.
func SourceDir(f *Flags) string {
	if f.Source != "" {
		return f.Source
	}
	if env := os.Getenv("CALTC_SOURCE"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".calendars"
	}
	return filepath.Join(home, ".calendars")
}

func tristate(changed, value bool) settings.Tristate {
	if !changed {
		return settings.TriUnset
	}
	if value {
		return settings.TriTrue
	}
	return settings.TriFalse
}
