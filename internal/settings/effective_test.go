package settings_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"caltc/internal/settings"
)

var now = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.Local)

func TestResolveEffectiveDefaults(t *testing.T) {
	eff := settings.ResolveEffective(settings.CLIValues{}, settings.Record{}, now)

	assert.Equal(t, now.AddDate(-1, 0, 0), eff.Start)
	assert.Equal(t, now.AddDate(1, 0, 0), eff.End)
	assert.Empty(t, eff.Calendars)
	assert.Empty(t, eff.Filter)
	assert.False(t, eff.Notes)
	assert.False(t, eff.Tag)
	assert.False(t, eff.Map)
	assert.False(t, eff.DayBreak)
	assert.NotNil(t, eff.Mappings)
}

func TestResolveEffectiveConfigBeatsDefaults(t *testing.T) {
	merged := settings.Record{
		Start:    "-1M",
		Filter:   "meet",
		Notes:    settings.TriTrue,
		Mappings: map[string]string{"Standup": "meetings:standup"},
	}

	eff := settings.ResolveEffective(settings.CLIValues{}, merged, now)

	assert.Equal(t, now.AddDate(0, -1, 0), eff.Start)
	assert.Equal(t, "meet", eff.Filter)
	assert.True(t, eff.Notes)
	assert.Equal(t, "meetings:standup", eff.Mappings["Standup"])
}

func TestResolveEffectiveCLIBeatsConfig(t *testing.T) {
	merged := settings.Record{
		Start:  "-1M",
		Filter: "meet",
		Notes:  settings.TriTrue,
	}
	cli := settings.CLIValues{
		Start:     "-2W",
		StartSet:  true,
		Filter:    "lunch",
		FilterSet: true,
		Notes:     settings.TriFalse,
	}

	eff := settings.ResolveEffective(cli, merged, now)

	assert.Equal(t, now.AddDate(0, 0, -14), eff.Start)
	assert.Equal(t, "lunch", eff.Filter)
	assert.False(t, eff.Notes)
}

func TestResolveEffectiveExplicitEmptyCLIFilterWins(t *testing.T) {
	merged := settings.Record{Filter: "meet"}
	cli := settings.CLIValues{Filter: "", FilterSet: true}

	eff := settings.ResolveEffective(cli, merged, now)
	assert.Empty(t, eff.Filter)
}

func TestResolveEffectiveCalendarListSuppliedWhenNonEmpty(t *testing.T) {
	merged := settings.Record{Calendars: []string{"Config"}}

	eff := settings.ResolveEffective(settings.CLIValues{Calendars: []string{"CLI"}}, merged, now)
	assert.Equal(t, []string{"CLI"}, eff.Calendars)

	// An empty CLI list is indistinguishable from "not supplied".
	eff = settings.ResolveEffective(settings.CLIValues{}, merged, now)
	assert.Equal(t, []string{"Config"}, eff.Calendars)
}

func TestResolveEffectiveUnparseableTokenFallsBack(t *testing.T) {
	merged := settings.Record{Start: "gibberish", End: "also bad"}

	eff := settings.ResolveEffective(settings.CLIValues{}, merged, now)

	assert.Equal(t, now.AddDate(-1, 0, 0), eff.Start)
	assert.Equal(t, now.AddDate(1, 0, 0), eff.End)
}

func TestResolveEffectiveAbsoluteTokens(t *testing.T) {
	cli := settings.CLIValues{
		Start:    "2026-01-01",
		StartSet: true,
		End:      "2026-02-01 09:30",
		EndSet:   true,
	}

	eff := settings.ResolveEffective(cli, settings.Record{}, now)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local), eff.Start)
	assert.Equal(t, time.Date(2026, time.February, 1, 9, 30, 0, 0, time.Local), eff.End)
}
