package lineup

import (
	"errors"
	"slices"
)

var (
	ErrInvalidInning = errors.New("inning must be between 1 and 9")
	ErrNotInRoster   = errors.New("player is not in the lineup")
)

// InningRoster maps a player id to one label per inning.
type InningRoster map[string][]string

// DeriveInnings rebuilds the roster for l. Entries of players still in
// the lineup are kept as they are. Newcomers, and players whose entry does
// not cover every inning, get their current label for every inning.
// Everyone else is dropped.
func DeriveInnings(l *Lineup, prev InningRoster) InningRoster {
	next := make(InningRoster, l.Len())
	for _, s := range l.slots {
		if s.Player == nil {
			continue
		}
		id := s.Player.ID
		if _, done := next[id]; done {
			continue
		}
		if innings, ok := prev[id]; ok && len(innings) == Innings {
			next[id] = innings
			continue
		}
		next[id] = repeatLabel(s.Label)
	}
	return next
}

func repeatLabel(label string) []string {
	out := make([]string, Innings)
	for i := range out {
		out[i] = label
	}
	return out
}

// Set changes one inning (1-based) for a player already in the roster.
func (r InningRoster) Set(playerID string, inning int, label string) error {
	if inning < 1 || inning > Innings {
		return ErrInvalidInning
	}
	if !IsInningLabel(label) {
		return ErrInvalidLabel
	}
	innings, ok := r[playerID]
	if !ok {
		return ErrNotInRoster
	}
	updated := slices.Clone(innings)
	for len(updated) < Innings {
		updated = append(updated, LabelUnset)
	}
	updated[inning-1] = label
	r[playerID] = updated
	return nil
}

func (r InningRoster) Clone() InningRoster {
	out := make(InningRoster, len(r))
	for id, innings := range r {
		out[id] = slices.Clone(innings)
	}
	return out
}

// Inconsistency flags an inning where a core field label is not held by
// exactly one player. It is advisory only.
type Inconsistency struct {
	Inning int    `json:"inning"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// PositionCounts tallies, per inning, how many lineup players hold each
// core field label. Index 0 is the first inning.
func PositionCounts(l *Lineup, r InningRoster) [Innings]map[string]int {
	var counts [Innings]map[string]int
	for i := range counts {
		counts[i] = make(map[string]int, len(FieldLabels))
		for _, label := range FieldLabels {
			counts[i][label] = 0
		}
	}
	for _, p := range l.Occupants() {
		innings := r[p.ID]
		for i := 0; i < Innings && i < len(innings); i++ {
			if IsFieldLabel(innings[i]) {
				counts[i][innings[i]]++
			}
		}
	}
	return counts
}

func Inconsistencies(l *Lineup, r InningRoster) []Inconsistency {
	counts := PositionCounts(l, r)
	var out []Inconsistency
	for i, byLabel := range counts {
		for _, label := range FieldLabels {
			if n := byLabel[label]; n != 1 {
				out = append(out, Inconsistency{Inning: i + 1, Label: label, Count: n})
			}
		}
	}
	return out
}
