package lineup

import (
	"math"
	"slices"

	"lineup-manager/internal/domain"
)

type SortOrder string

const (
	SortDefault  SortOrder = "default"
	SortNumber   SortOrder = "number"
	SortPosition SortOrder = "position"
)

func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortNumber, SortPosition:
		return SortOrder(s)
	default:
		return SortDefault
	}
}

// Available returns registered players that do not occupy a slot. It is
// recomputed on every call; nothing caches the result.
func Available(players []domain.Player, l *Lineup, order SortOrder) []domain.Player {
	taken := make(map[string]struct{}, l.Len())
	for _, p := range l.Occupants() {
		taken[p.ID] = struct{}{}
	}
	out := make([]domain.Player, 0, len(players))
	for _, p := range players {
		if _, ok := taken[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return SortPlayers(out, order)
}

// SortPlayers sorts in place with a stable sort, so registration order
// breaks every remaining tie.
func SortPlayers(players []domain.Player, order SortOrder) []domain.Player {
	switch order {
	case SortNumber:
		slices.SortStableFunc(players, func(a, b domain.Player) int {
			return compareNumbers(a, b)
		})
	case SortPosition:
		slices.SortStableFunc(players, func(a, b domain.Player) int {
			if c := positionRank(a.MainPosition) - positionRank(b.MainPosition); c != 0 {
				return c
			}
			return compareNumbers(a, b)
		})
	}
	return players
}

func compareNumbers(a, b domain.Player) int {
	na, nb := numberKey(a), numberKey(b)
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}

func numberKey(p domain.Player) int {
	n, ok := domain.ParseNumber(p.Number)
	if !ok {
		return math.MaxInt
	}
	return n
}

func positionRank(p domain.Position) int {
	if i := slices.Index(domain.MainPositions, p); i >= 0 {
		return i
	}
	return len(domain.MainPositions)
}
