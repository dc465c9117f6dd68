package settings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads one settings file's text into a Record.
//
// Lines are processed according to these rules:
//   - Blank lines and lines whose first non-whitespace character is ';'
//     are skipped.
//   - A line without '=' is matched against the bare boolean vocabulary
//     (notes/nonotes, tag/notag, map/nomap, break/nobreak); any other
//     bare line is silently ignored.
//   - A line with '=' splits at the first '=' only, both sides trimmed.
//     The keys calendar, start, end, and filter populate structured
//     fields; every other key is a title-mapping entry. A repeated
//     mapping key is recorded in DuplicateKeys and its last value wins.
//
// Nothing is validated at parse time; an unparseable temporal token in
// "start" only surfaces later, at resolution time.
func Parse(r io.Reader) Record {
	rec := Record{
		Mappings:      make(map[string]string),
		DuplicateKeys: make(map[string]struct{}),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx < 0 {
			applyBareToken(&rec, line)
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		switch key {
		case "calendar":
			rec.Calendars = splitCalendars(value)
		case "start":
			rec.Start = value
		case "end":
			rec.End = value
		case "filter":
			rec.Filter = value
		default:
			if _, seen := rec.Mappings[key]; seen {
				rec.DuplicateKeys[key] = struct{}{}
			}
			rec.Mappings[key] = value
		}
	}

	return rec
}

// LoadFile parses the settings file at path. A file that cannot be
// opened or read is reported so callers can decide; the chain resolver
// treats that as "no configuration present".
func LoadFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, fmt.Errorf("open settings file: %w", err)
	}
	defer f.Close()
	return Parse(f), nil
}

// applyBareToken handles the fixed no-'=' vocabulary. Unknown bare
// lines are ignored, not errors.
func applyBareToken(rec *Record, line string) {
	switch line {
	case "notes":
		rec.Notes = TriTrue
	case "nonotes":
		rec.Notes = TriFalse
	case "tag":
		rec.Tag = TriTrue
	case "notag":
		rec.Tag = TriFalse
	case "map":
		rec.Map = TriTrue
	case "nomap":
		rec.Map = TriFalse
	case "break":
		rec.DayBreak = TriTrue
	case "nobreak":
		rec.DayBreak = TriFalse
	}
}

// splitCalendars splits a calendar value on commas, trimming each part.
// Order and duplicates are preserved; empty parts are dropped.
func splitCalendars(value string) []string {
	var names []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		names = append(names, part)
	}
	return names
}
