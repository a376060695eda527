package lineup

import (
	"errors"
	"slices"

	"lineup-manager/internal/domain"
)

var (
	ErrIndexOutOfRange  = errors.New("slot index out of range")
	ErrSlotNotRemovable = errors.New("only DH slots beyond the base nine can be removed")
	ErrPlayerAssigned   = errors.New("player already occupies another slot")
	ErrInvalidLabel     = errors.New("invalid position label")
)

// Slot is one batting-order position. Player is nil for an empty slot.
type Slot struct {
	Label  string         `json:"label"`
	Player *domain.Player `json:"player"`
}

// Lineup is the batting order. Labels and players live in the same
// element so both sequences always have the same length.
type Lineup struct {
	slots []Slot
	rev   uint64
}

// New returns nine empty slots carrying the default field labels.
func New() *Lineup {
	slots := make([]Slot, len(FieldLabels))
	for i, label := range FieldLabels {
		slots[i] = Slot{Label: label}
	}
	return &Lineup{slots: slots}
}

func FromSlots(slots []Slot) *Lineup {
	l := &Lineup{}
	l.slots = cloneSlots(slots)
	return l
}

// Join pairs persisted player and label arrays. The label array decides
// the length; a missing label array falls back to the defaults (extended
// with DH when more players were stored). repaired is true when the two
// inputs did not line up.
func Join(players []*domain.Player, labels []string) (l *Lineup, repaired bool) {
	if len(labels) == 0 {
		labels = slices.Clone(FieldLabels)
		for len(labels) < len(players) {
			labels = append(labels, LabelDH)
		}
		repaired = len(players) != 0
	} else if len(players) != len(labels) {
		repaired = true
	}
	slots := make([]Slot, len(labels))
	for i, label := range labels {
		slots[i].Label = label
		if i < len(players) && players[i] != nil {
			p := *players[i]
			slots[i].Player = &p
		}
	}
	return &Lineup{slots: slots}, repaired
}

// Split returns the persisted representation: nullable players and labels.
func (l *Lineup) Split() ([]*domain.Player, []string) {
	players := make([]*domain.Player, len(l.slots))
	labels := make([]string, len(l.slots))
	for i, s := range l.slots {
		labels[i] = s.Label
		if s.Player != nil {
			p := *s.Player
			players[i] = &p
		}
	}
	return players, labels
}

func (l *Lineup) Len() int { return len(l.slots) }

// Revision increases on every applied mutation.
func (l *Lineup) Revision() uint64 { return l.rev }

func (l *Lineup) Slot(i int) (Slot, bool) {
	if !l.valid(i) {
		return Slot{}, false
	}
	return cloneSlot(l.slots[i]), true
}

func (l *Lineup) Slots() []Slot { return cloneSlots(l.slots) }

func (l *Lineup) Labels() []string {
	out := make([]string, len(l.slots))
	for i, s := range l.slots {
		out[i] = s.Label
	}
	return out
}

// Occupants returns the players in batting order, skipping empty slots.
func (l *Lineup) Occupants() []domain.Player {
	out := make([]domain.Player, 0, len(l.slots))
	for _, s := range l.slots {
		if s.Player != nil {
			out = append(out, *s.Player)
		}
	}
	return out
}

// IndexOf returns the slot holding the player id, or -1.
func (l *Lineup) IndexOf(id string) int {
	for i, s := range l.slots {
		if s.Player != nil && s.Player.ID == id {
			return i
		}
	}
	return -1
}

// Swap exchanges both the players and the labels of two slots.
func (l *Lineup) Swap(i, j int) error {
	if !l.valid(i) || !l.valid(j) {
		return ErrIndexOutOfRange
	}
	if i == j {
		return nil
	}
	l.slots[i], l.slots[j] = l.slots[j], l.slots[i]
	l.rev++
	return nil
}

// SwapPlayers exchanges only the players; labels stay in place.
func (l *Lineup) SwapPlayers(i, j int) error {
	if !l.valid(i) || !l.valid(j) {
		return ErrIndexOutOfRange
	}
	if i == j {
		return nil
	}
	l.slots[i].Player, l.slots[j].Player = l.slots[j].Player, l.slots[i].Player
	l.rev++
	return nil
}

// SwapLabels exchanges only the labels; players stay in place.
func (l *Lineup) SwapLabels(i, j int) error {
	if !l.valid(i) || !l.valid(j) {
		return ErrIndexOutOfRange
	}
	if i == j {
		return nil
	}
	l.slots[i].Label, l.slots[j].Label = l.slots[j].Label, l.slots[i].Label
	l.rev++
	return nil
}

// AssignPlayer puts p into slot i, replacing any occupant. The displaced
// player simply becomes available again.
func (l *Lineup) AssignPlayer(p domain.Player, i int) error {
	if !l.valid(i) {
		return ErrIndexOutOfRange
	}
	if at := l.IndexOf(p.ID); at >= 0 && at != i {
		return ErrPlayerAssigned
	}
	l.slots[i].Player = &p
	l.rev++
	return nil
}

func (l *Lineup) UnassignPlayer(i int) error {
	if !l.valid(i) {
		return ErrIndexOutOfRange
	}
	if l.slots[i].Player == nil {
		return nil
	}
	l.slots[i].Player = nil
	l.rev++
	return nil
}

func (l *Lineup) AppendSlot(label string) error {
	if label == "" {
		return ErrInvalidLabel
	}
	l.slots = append(l.slots, Slot{Label: label})
	l.rev++
	return nil
}

func (l *Lineup) CanRemoveSlot(i int) bool {
	return l.valid(i) && l.slots[i].Label == LabelDH && len(l.slots) > BaseSlots
}

// RemoveSlot drops slot i; any player in it becomes available.
func (l *Lineup) RemoveSlot(i int) error {
	if !l.valid(i) {
		return ErrIndexOutOfRange
	}
	if !l.CanRemoveSlot(i) {
		return ErrSlotNotRemovable
	}
	l.slots = slices.Delete(l.slots, i, i+1)
	l.rev++
	return nil
}

// ReverseAll reverses the batting order; each player keeps its label.
func (l *Lineup) ReverseAll() {
	slices.Reverse(l.slots)
	l.rev++
}

// Replace swaps in an entirely new set of slots.
func (l *Lineup) Replace(slots []Slot) {
	l.slots = cloneSlots(slots)
	l.rev++
}

// ClearPlayer empties every slot referencing id.
func (l *Lineup) ClearPlayer(id string) bool {
	changed := false
	for i := range l.slots {
		if l.slots[i].Player != nil && l.slots[i].Player.ID == id {
			l.slots[i].Player = nil
			changed = true
		}
	}
	if changed {
		l.rev++
	}
	return changed
}

// RefreshPlayer replaces the stored copy of p wherever its id appears.
func (l *Lineup) RefreshPlayer(p domain.Player) bool {
	changed := false
	for i := range l.slots {
		if l.slots[i].Player != nil && l.slots[i].Player.ID == p.ID {
			cp := p
			l.slots[i].Player = &cp
			changed = true
		}
	}
	if changed {
		l.rev++
	}
	return changed
}

// LabelWarnings lists core field labels that do not appear exactly once.
func (l *Lineup) LabelWarnings() []LabelCount {
	counts := make(map[string]int, len(FieldLabels))
	for _, s := range l.slots {
		counts[s.Label]++
	}
	var out []LabelCount
	for _, label := range FieldLabels {
		if counts[label] != 1 {
			out = append(out, LabelCount{Label: label, Count: counts[label]})
		}
	}
	return out
}

func (l *Lineup) valid(i int) bool {
	return i >= 0 && i < len(l.slots)
}

func cloneSlot(s Slot) Slot {
	if s.Player != nil {
		p := *s.Player
		s.Player = &p
	}
	return s
}

func cloneSlots(slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = cloneSlot(s)
	}
	return out
}
