// Package render turns resolved events into timeclock output lines.
//
// The line format is a compatibility contract with downstream ledger
// tooling: an "i" line carrying the start timestamp and (mapped) title,
// an optional "; :Calendar:" tag line, and an "o" line carrying the end
// timestamp. Field order, spacing, and tag syntax must not change.
package render

import (
	"strings"

	"caltc/internal/calendar"
	"caltc/internal/settings"
)

// timestampLayout is the fixed clock-in/clock-out timestamp format.
const timestampLayout = "2006-01-02 15:04:05"

// untitled is the placeholder for events without a title.
const untitled = "Untitled"

// notesSeparator sits between the title and the flattened notes.
const notesSeparator = "    "

// Format renders one event into its output line group under the given
// effective settings. Line order is fixed: the "i" line, the tag line
// when enabled, then the "o" line.
func Format(ev calendar.Event, eff settings.Effective) []string {
	title := resolveTitle(ev, eff)

	in := "i " + ev.Start.Format(timestampLayout) + " " + title
	if eff.Notes && ev.Notes != "" {
		in += notesSeparator + flattenNotes(ev.Notes)
	}

	lines := []string{in}
	if eff.Tag {
		lines = append(lines, "; :"+calendarName(ev)+":")
	}
	lines = append(lines, "o "+ev.End.Format(timestampLayout))
	return lines
}

// resolveTitle applies the "Untitled" placeholder and, when mapping is
// enabled, the exact case-sensitive title substitution.
func resolveTitle(ev calendar.Event, eff settings.Effective) string {
	title := ev.Title
	if title == "" {
		title = untitled
	}
	if !eff.Map {
		return title
	}
	if mapped, ok := eff.Mappings[ev.Title]; ok {
		return mapped
	}
	return title
}

// flattenNotes collapses every internal line break to a single space.
func flattenNotes(notes string) string {
	notes = strings.ReplaceAll(notes, "\r\n", " ")
	notes = strings.ReplaceAll(notes, "\n", " ")
	notes = strings.ReplaceAll(notes, "\r", " ")
	return notes
}

func calendarName(ev calendar.Event) string {
	if ev.Calendar == "" {
		return "Unknown"
	}
	return ev.Calendar
}
