package render

import (
	"sort"
	"strings"

	"caltc/internal/calendar"
	"caltc/internal/settings"
)

// headerLayout formats the date part of a day-boundary header.
const headerLayout = "2006-01-02 Monday"

// Render drives the full output pipeline: title filtering, chronological
// sorting, optional day-boundary headers, and per-event formatting. The
// returned slice is ready to print one element per line.
func Render(events []calendar.Event, eff settings.Effective) []string {
	filtered := filterByTitle(events, eff.Filter)

	// Stable sort keeps source order among equal start instants, so a
	// given input set always renders deterministically.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Start.Before(filtered[j].Start)
	})

	var lines []string
	lastDate := ""
	for _, ev := range filtered {
		if eff.DayBreak {
			date := ev.Start.Local().Format("2006-01-02")
			if date != lastDate {
				if len(lines) > 0 {
					lines = append(lines, "")
				}
				lines = append(lines, "### "+ev.Start.Local().Format(headerLayout)+" ###")
				lastDate = date
			}
		}
		lines = append(lines, Format(ev, eff)...)
	}
	return lines
}

// filterByTitle keeps events whose raw title contains the filter as a
// case-insensitive substring. An empty filter keeps everything. The
// filter runs before sorting and formatting, against the raw title.
func filterByTitle(events []calendar.Event, filter string) []calendar.Event {
	if filter == "" {
		out := make([]calendar.Event, len(events))
		copy(out, events)
		return out
	}

	needle := strings.ToLower(filter)
	var out []calendar.Event
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Title), needle) {
			out = append(out, ev)
		}
	}
	return out
}
