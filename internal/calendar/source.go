// Package calendar defines the event-source collaborator: the store the
// pipeline queries for calendars and events. The core treats a Source as
// authoritative and performs no caching of its answers.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Event is one calendar event as supplied by a Source. The core only
// reads events; it never mutates them.
type Event struct {
	// Title may be empty; rendering substitutes "Untitled".
	Title string
	Start time.Time
	End   time.Time
	// Notes may span multiple lines.
	Notes string
	// Calendar is the owning calendar's name; may be empty.
	Calendar string
}

// Info identifies one calendar available from a Source.
type Info struct {
	Name string
	Path string
}

// Source is the external event store interface.
type Source interface {
	// RequestAccess asks the store for permission and blocks until the
	// grant or denial arrives. A denial is terminal for the run.
	RequestAccess(ctx context.Context) error

	// Calendars enumerates every available calendar.
	Calendars() []Info

	// CalendarByName looks a calendar up by case-insensitive exact name.
	CalendarByName(name string) (Info, bool)

	// Events returns all events whose interval intersects [start, end)
	// across the named calendars. An empty name set means all calendars.
	Events(ctx context.Context, start, end time.Time, names []string) ([]Event, error)
}

// ErrAccessDenied is returned by RequestAccess when the store refuses.
var ErrAccessDenied = errors.New("calendar access denied")

// NotFoundError reports a requested calendar name that matched nothing,
// carrying the full list of available names for the user-facing message.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("calendar %q not found (no calendars available)", e.Name)
	}
	return fmt.Sprintf("calendar %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
