package calendar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"caltc/internal/logging"
)

// DirSource is a Source backed by a directory of .ics files, one
// calendar per file. The calendar name is the file's base name without
// the extension. All parsing happens during RequestAccess; an unreadable
// directory is treated as a denial.
type DirSource struct {
	dir       string
	calendars []Info
	events    map[string][]Event
}

// NewDirSource creates a source over the given directory. No I/O happens
// until RequestAccess.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// RequestAccess scans the source directory in the background and waits
// for the result. This is the pipeline's single suspension point; the
// grant or denial is awaited to completion before any query runs.
func (s *DirSource) RequestAccess(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		done <- s.scan()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Calendars enumerates the calendars found during RequestAccess, in
// file-name order.
func (s *DirSource) Calendars() []Info {
	return s.calendars
}

// CalendarByName finds a calendar by case-insensitive exact name match.
func (s *DirSource) CalendarByName(name string) (Info, bool) {
	for _, info := range s.calendars {
		if strings.EqualFold(info.Name, name) {
			return info, true
		}
	}
	return Info{}, false
}

// Events returns every event whose interval intersects [start, end)
// across the named calendars. An empty name set queries all calendars; a
// name that matches nothing yields a NotFoundError.
func (s *DirSource) Events(ctx context.Context, start, end time.Time, names []string) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selected := make([]Info, 0, len(s.calendars))
	if len(names) == 0 {
		selected = s.calendars
	} else {
		for _, name := range names {
			info, ok := s.CalendarByName(name)
			if !ok {
				return nil, &NotFoundError{Name: name, Available: s.calendarNames()}
			}
			selected = append(selected, info)
		}
	}

	var out []Event
	for _, info := range selected {
		for _, ev := range s.events[info.Name] {
			if intersects(ev, start, end) {
				out = append(out, ev)
			}
		}
	}
	return out, nil
}

func (s *DirSource) calendarNames() []string {
	names := make([]string, len(s.calendars))
	for i, info := range s.calendars {
		names[i] = info.Name
	}
	return names
}

// scan reads every .ics file in the directory. Files that fail to parse
// are skipped with a debug note; the directory itself being unreadable
// is a denial.
func (s *DirSource) scan() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrAccessDenied, s.dir)
	}

	s.events = make(map[string][]Event)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".ics") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		events, err := loadICS(path, name)
		if err != nil {
			logging.Debug(fmt.Sprintf("skipping %s: %v", path, err))
			continue
		}

		s.calendars = append(s.calendars, Info{Name: name, Path: path})
		s.events[name] = events
	}
	return nil
}

// loadICS parses one ICS file into events for the named calendar.
// Individual events missing a start or end are dropped.
func loadICS(path, calendarName string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ics: %w", err)
	}
	defer f.Close()

	cal, err := ical.ParseCalendar(f)
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	var events []Event
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			continue
		}
		end, err := ve.GetEndAt()
		if err != nil {
			end = start
		}

		ev := Event{
			Start:    start.In(time.Local),
			End:      end.In(time.Local),
			Calendar: calendarName,
		}
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			ev.Title = p.Value
		}
		if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
			ev.Notes = unescapeText(p.Value)
		}
		events = append(events, ev)
	}
	return events, nil
}

// intersects reports whether ev's interval overlaps [start, end).
// Zero-duration events count when their instant lies inside the window.
func intersects(ev Event, start, end time.Time) bool {
	if ev.Start.Equal(ev.End) {
		return !ev.Start.Before(start) && ev.Start.Before(end)
	}
	return ev.Start.Before(end) && ev.End.After(start)
}

// unescapeText undoes the RFC 5545 TEXT escapes that matter for notes.
func unescapeText(s string) string {
	r := strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)
	return r.Replace(s)
}
