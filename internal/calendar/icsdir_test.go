package calendar_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caltc/internal/calendar"
)

const workICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//caltc//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:standup-1\r\n" +
	"DTSTART:20260106T100000Z\r\n" +
	"DTEND:20260106T103000Z\r\n" +
	"SUMMARY:Standup\r\n" +
	"DESCRIPTION:Bring laptop\\nBring charger\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:review-1\r\n" +
	"DTSTART:20260320T140000Z\r\n" +
	"DTEND:20260320T150000Z\r\n" +
	"SUMMARY:Review\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

const homeICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//caltc//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:dentist-1\r\n" +
	"DTSTART:20260110T090000Z\r\n" +
	"DTEND:20260110T094500Z\r\n" +
	"SUMMARY:Dentist\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

// newSource writes the given calendars into a temp directory and opens
// a DirSource over it with access already granted.
func newSource(t *testing.T, calendars map[string]string) *calendar.DirSource {
	t.Helper()
	dir := t.TempDir()
	for name, body := range calendars {
		err := os.WriteFile(filepath.Join(dir, name+".ics"), []byte(body), 0644)
		require.NoError(t, err)
	}

	src := calendar.NewDirSource(dir)
	require.NoError(t, src.RequestAccess(context.Background()))
	return src
}

func window(from, to string) (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", from)
	end, _ := time.Parse("2006-01-02", to)
	return start, end
}

func TestRequestAccessDeniedForMissingDirectory(t *testing.T) {
	src := calendar.NewDirSource("/nonexistent/calendars")

	err := src.RequestAccess(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, calendar.ErrAccessDenied))
}

func TestCalendarsEnumeratedFromDirectory(t *testing.T) {
	src := newSource(t, map[string]string{"Work": workICS, "Home": homeICS})

	infos := src.Calendars()
	require.Len(t, infos, 2)
	// os.ReadDir yields file-name order.
	assert.Equal(t, "Home", infos[0].Name)
	assert.Equal(t, "Work", infos[1].Name)
}

func TestCalendarByNameIsCaseInsensitive(t *testing.T) {
	src := newSource(t, map[string]string{"Work": workICS})

	info, ok := src.CalendarByName("wOrK")
	require.True(t, ok)
	assert.Equal(t, "Work", info.Name)

	_, ok = src.CalendarByName("Personal")
	assert.False(t, ok)
}

func TestEventsParsesFields(t *testing.T) {
	src := newSource(t, map[string]string{"Work": workICS})

	start, end := window("2026-01-01", "2026-02-01")
	events, err := src.Events(context.Background(), start, end, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "Standup", ev.Title)
	assert.Equal(t, "Work", ev.Calendar)
	assert.Equal(t, "Bring laptop\nBring charger", ev.Notes)
	assert.True(t, ev.Start.Equal(time.Date(2026, time.January, 6, 10, 0, 0, 0, time.UTC)))
	assert.True(t, ev.End.Equal(time.Date(2026, time.January, 6, 10, 30, 0, 0, time.UTC)))
}

func TestEventsFiltersByWindow(t *testing.T) {
	src := newSource(t, map[string]string{"Work": workICS})

	start, end := window("2026-03-01", "2026-04-01")
	events, err := src.Events(context.Background(), start, end, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Review", events[0].Title)
}

func TestEventsAcrossNamedCalendars(t *testing.T) {
	src := newSource(t, map[string]string{"Work": workICS, "Home": homeICS})

	start, end := window("2026-01-01", "2026-02-01")
	events, err := src.Events(context.Background(), start, end, []string{"home"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Dentist", events[0].Title)
}

func TestEventsEmptyNameSetMeansAllCalendars(t *testing.T) {
	src := newSource(t, map[string]string{"Work": workICS, "Home": homeICS})

	start, end := window("2026-01-01", "2026-02-01")
	events, err := src.Events(context.Background(), start, end, nil)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestEventsUnknownCalendarListsAvailable(t *testing.T) {
	src := newSource(t, map[string]string{"Work": workICS, "Home": homeICS})

	start, end := window("2026-01-01", "2026-02-01")
	_, err := src.Events(context.Background(), start, end, []string{"Personal"})
	require.Error(t, err)

	var nf *calendar.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Personal", nf.Name)
	assert.Equal(t, []string{"Home", "Work"}, nf.Available)
	assert.Contains(t, nf.Error(), "Personal")
	assert.Contains(t, nf.Error(), "Work")
}

func TestScanSkipsUnparseableFiles(t *testing.T) {
	src := newSource(t, map[string]string{"Work": workICS, "Broken": "not an ics file"})

	infos := src.Calendars()
	require.Len(t, infos, 1)
	assert.Equal(t, "Work", infos[0].Name)
}
