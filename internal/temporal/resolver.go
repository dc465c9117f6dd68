// Package temporal resolves compact date/time tokens into absolute instants.
//
// A token is either an absolute calendar form ("2026-03-15", optionally
// with " HH:MM") or a relative form: an optional leading sign followed by
// one or more <digits><unit> segments, e.g. "-1Y", "+3M", "-2W4D",
// "+1h30m". Relative segments are applied sequentially against a caller
// supplied reference instant.
package temporal

import "time"

// step is one parsed <digits><unit> segment of a relative token.
type step struct {
	n    int
	unit byte
}

// Resolve turns token into an absolute instant relative to ref.
//
// Absolute forms win: "2006-01-02 15:04" first, then "2006-01-02" with
// the time components defaulting to midnight, both in ref's location.
// Otherwise the token is scanned for relative segments; zero segments
// means the token is invalid and ok is false. Callers substitute their
// own default instant on failure.
func Resolve(token string, ref time.Time) (t time.Time, ok bool) {
	loc := ref.Location()

	if abs, err := time.ParseInLocation("2006-01-02 15:04", token, loc); err == nil {
		return abs, true
	}
	if abs, err := time.ParseInLocation("2006-01-02", token, loc); err == nil {
		return abs, true
	}

	sign := 1
	rest := token
	if len(rest) > 0 {
		switch rest[0] {
		case '-':
			sign = -1
			rest = rest[1:]
		case '+':
			rest = rest[1:]
		}
	}

	steps := scan(rest)
	if len(steps) == 0 {
		return time.Time{}, false
	}

	t = ref
	for _, s := range steps {
		t = apply(t, sign*s.n, s.unit)
	}
	return t, true
}

// scan extracts every <digits><unit> segment from s, left to right.
// Characters that do not complete a segment are skipped rather than
// failing the whole token; that keeps extraction best-effort.
func scan(s string) []step {
	var steps []step
	i := 0
	for i < len(s) {
		if s[i] < '0' || s[i] > '9' {
			i++
			continue
		}
		n := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			n = n*10 + int(s[i]-'0')
			i++
		}
		if i < len(s) && isUnit(s[i]) {
			steps = append(steps, step{n: n, unit: s[i]})
			i++
		}
		// A digit run not followed by a unit is dropped; scanning
		// resumes at the offending character.
	}
	return steps
}

func isUnit(c byte) bool {
	switch c {
	case 'Y', 'Q', 'M', 'W', 'D', 'h', 'm':
		return true
	}
	return false
}

// apply advances t by n units, delegating calendar arithmetic to the
// standard library so month-end and leap-year normalization follow the
// host calendar's rules.
func apply(t time.Time, n int, unit byte) time.Time {
	switch unit {
	case 'Y':
		return t.AddDate(n, 0, 0)
	case 'Q':
		return t.AddDate(0, 3*n, 0)
	case 'M':
		return t.AddDate(0, n, 0)
	case 'W':
		return t.AddDate(0, 0, 7*n)
	case 'D':
		return t.AddDate(0, 0, n)
	case 'h':
		return t.Add(time.Duration(n) * time.Hour)
	case 'm':
		return t.Add(time.Duration(n) * time.Minute)
	}
	return t
}
