package lineup

import (
	"testing"

	"lineup-manager/internal/domain"
)

func ids(players []domain.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func numbered(id, number string, main domain.Position) domain.Player {
	p := player(id, main)
	p.Number = number
	return p
}

func TestAvailableExcludesOccupants(t *testing.T) {
	registry := []domain.Player{
		numbered("a", "1", domain.PositionPitcher),
		numbered("b", "2", domain.PositionCatcher),
		numbered("c", "3", domain.PositionInfielder),
	}
	l := New()
	if err := l.AssignPlayer(registry[1], 0); err != nil {
		t.Fatal(err)
	}
	got := ids(Available(registry, l, SortDefault))
	if !equalIDs(got, []string{"a", "c"}) {
		t.Fatalf("expected [a c], got %v", got)
	}
}

func TestAvailableDisplacedPlayerReturns(t *testing.T) {
	registry := []domain.Player{
		numbered("a", "1", domain.PositionPitcher),
		numbered("b", "2", domain.PositionPitcher),
	}
	l := New()
	in := NewInteraction(l)
	in.StartDrag(PlayerDrag{Player: registry[0]})
	if err := in.Drop(Target{Kind: TargetSlotPlayer, Index: 0}); err != nil {
		t.Fatal(err)
	}
	in.StartDrag(PlayerDrag{Player: registry[1]})
	if err := in.Drop(Target{Kind: TargetSlotPlayer, Index: 0}); err != nil {
		t.Fatal(err)
	}
	got := ids(Available(registry, l, SortDefault))
	if !equalIDs(got, []string{"a"}) {
		t.Fatalf("expected displaced player a to be available, got %v", got)
	}
}

func TestAvailableSortByNumber(t *testing.T) {
	registry := []domain.Player{
		numbered("a", "", domain.PositionPitcher),
		numbered("b", "10", domain.PositionPitcher),
		numbered("c", "x", domain.PositionPitcher),
		numbered("d", "2", domain.PositionPitcher),
		numbered("e", "２", domain.PositionPitcher),
	}
	got := ids(Available(registry, New(), SortNumber))
	want := []string{"d", "e", "b", "a", "c"}
	if !equalIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAvailableSortByPosition(t *testing.T) {
	registry := []domain.Player{
		numbered("of", "1", domain.PositionOutfielder),
		numbered("none", "0", domain.PositionNone),
		numbered("if9", "9", domain.PositionInfielder),
		numbered("c", "", domain.PositionCatcher),
		numbered("if3", "3", domain.PositionInfielder),
		numbered("p", "50", domain.PositionPitcher),
		numbered("ifx", "", domain.PositionInfielder),
	}
	got := ids(Available(registry, New(), SortPosition))
	want := []string{"p", "c", "if3", "if9", "ifx", "of", "none"}
	if !equalIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAvailableDoesNotReorderRegistry(t *testing.T) {
	registry := []domain.Player{
		numbered("a", "9", domain.PositionPitcher),
		numbered("b", "1", domain.PositionPitcher),
	}
	_ = Available(registry, New(), SortNumber)
	if registry[0].ID != "a" {
		t.Fatal("expected registry order untouched")
	}
}

func TestParseSortOrder(t *testing.T) {
	if ParseSortOrder("number") != SortNumber {
		t.Fatal("expected number order")
	}
	if ParseSortOrder("bogus") != SortDefault {
		t.Fatal("expected unknown order to fall back to default")
	}
}
