package settings

import "fmt"

// Policy selects how a discovered settings chain collapses into one Record.
type Policy int

const (
	// ClosestOnly uses the nearest file and ignores the rest of the chain.
	ClosestOnly Policy = iota
	// ParentWins folds the chain with farther files overriding nearer ones.
	ParentWins
	// LocalWins folds the chain with nearer files overriding farther ones.
	LocalWins
)

// ParsePolicy maps a CLI/config spelling onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "closest", "":
		return ClosestOnly, nil
	case "parent":
		return ParentWins, nil
	case "local":
		return LocalWins, nil
	}
	return ClosestOnly, fmt.Errorf("unknown merge policy: %q (supported: closest, parent, local)", s)
}

func (p Policy) String() string {
	switch p {
	case ParentWins:
		return "parent"
	case LocalWins:
		return "local"
	}
	return "closest"
}

// Merge combines an accumulator with the next record of a near-to-far
// chain fold. For each field a present value from the winning side
// overrides a present value from the other side, but an absent value
// never overrides a present one. Under ParentWins the next (farther)
// record is the winning side; under LocalWins the accumulator (built
// from nearer records) wins. DuplicateKeys is unioned regardless of
// policy, since it is diagnostic output rather than configuration.
func Merge(acc, next Record, policy Policy) Record {
	winner, loser := &next, &acc
	if policy == LocalWins {
		winner, loser = &acc, &next
	}

	out := Record{
		Start:         pick(winner.Start, loser.Start),
		End:           pick(winner.End, loser.End),
		Filter:        pick(winner.Filter, loser.Filter),
		Notes:         pickTri(winner.Notes, loser.Notes),
		Tag:           pickTri(winner.Tag, loser.Tag),
		Map:           pickTri(winner.Map, loser.Map),
		DayBreak:      pickTri(winner.DayBreak, loser.DayBreak),
		Mappings:      make(map[string]string, len(winner.Mappings)+len(loser.Mappings)),
		DuplicateKeys: make(map[string]struct{}, len(acc.DuplicateKeys)+len(next.DuplicateKeys)),
	}

	// The calendar list overrides wholesale; it is never merged
	// element-wise.
	if len(winner.Calendars) > 0 {
		out.Calendars = append(out.Calendars, winner.Calendars...)
	} else {
		out.Calendars = append(out.Calendars, loser.Calendars...)
	}

	for k, v := range loser.Mappings {
		out.Mappings[k] = v
	}
	for k, v := range winner.Mappings {
		out.Mappings[k] = v
	}

	for k := range acc.DuplicateKeys {
		out.DuplicateKeys[k] = struct{}{}
	}
	for k := range next.DuplicateKeys {
		out.DuplicateKeys[k] = struct{}{}
	}

	return out
}

func pick(winner, loser string) string {
	if winner != "" {
		return winner
	}
	return loser
}

func pickTri(winner, loser Tristate) Tristate {
	if winner.Present() {
		return winner
	}
	return loser
}
