package lineup

import (
	"fmt"
	"math/rand/v2"

	"lineup-manager/internal/domain"
)

// RequiredDefenders is the number of field positions a generated lineup
// must cover.
const RequiredDefenders = 9

type role struct {
	position domain.Position
	labels   []string
}

// Roles are filled in this order; a player taken by an earlier role is
// unavailable to later ones.
var roles = []role{
	{domain.PositionPitcher, []string{LabelPitcher}},
	{domain.PositionCatcher, []string{LabelCatcher}},
	{domain.PositionInfielder, []string{LabelFirst, LabelSecond, LabelThird, LabelShort}},
	{domain.PositionOutfielder, []string{LabelLeft, LabelCenter, LabelRight}},
}

// ShortfallError reports that the chosen players cannot cover the field.
type ShortfallError struct {
	Assigned int
	Required int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("could not fill defensive positions: %d of %d assigned", e.Assigned, e.Required)
}

type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng}
}

// Generate builds a full lineup from players. On a shortfall it returns a
// *ShortfallError and no slots.
func (g *Generator) Generate(players []domain.Player) ([]Slot, error) {
	pool := append([]domain.Player(nil), players...)
	var slots []Slot

	for _, r := range roles {
		assigned := g.fillRole(&pool, r.position, len(r.labels))
		labels := shuffled(g.rng, r.labels)
		for i, p := range assigned {
			slots = append(slots, Slot{Label: labels[i], Player: &p})
		}
	}

	if len(slots) < RequiredDefenders {
		return nil, &ShortfallError{Assigned: len(slots), Required: RequiredDefenders}
	}

	for _, p := range pool {
		slots = append(slots, Slot{Label: LabelDH, Player: &p})
	}

	return shuffled(g.rng, slots), nil
}

// fillRole takes up to count players for position from pool in three
// waves: main position, then sub1, then sub2. Each wave is shuffled.
func (g *Generator) fillRole(pool *[]domain.Player, position domain.Position, count int) []domain.Player {
	waves := []func(domain.Player) domain.Position{
		func(p domain.Player) domain.Position { return p.MainPosition },
		func(p domain.Player) domain.Position { return p.SubPosition1 },
		func(p domain.Player) domain.Position { return p.SubPosition2 },
	}

	var assigned []domain.Player
	for _, pick := range waves {
		if len(assigned) >= count {
			break
		}
		var candidates []domain.Player
		for _, p := range *pool {
			if pick(p) == position {
				candidates = append(candidates, p)
			}
		}
		for _, p := range shuffled(g.rng, candidates) {
			if len(assigned) >= count {
				break
			}
			assigned = append(assigned, p)
			*pool = removePlayer(*pool, p.ID)
		}
	}
	return assigned
}

func removePlayer(pool []domain.Player, id string) []domain.Player {
	out := pool[:0:0]
	for _, p := range pool {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// shuffled returns a Fisher-Yates shuffled copy.
func shuffled[T any](rng *rand.Rand, in []T) []T {
	out := append([]T(nil), in...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
