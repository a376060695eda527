package lineup

import (
	"lineup-manager/internal/domain"
)

// Selection is a pending tap-to-select operation. The concrete types below
// are the only implementations.
type Selection interface {
	selection()
}

type PlayerSelection struct{ Index int }

type LabelSelection struct{ Index int }

type OrderSelection struct{ Index int }

type AvailableSelection struct{ Player domain.Player }

func (PlayerSelection) selection()    {}
func (LabelSelection) selection()     {}
func (OrderSelection) selection()     {}
func (AvailableSelection) selection() {}

// DragItem is what a drag gesture carries.
type DragItem interface {
	dragItem()
}

type SlotDrag struct{ Index int }

type PlayerDrag struct{ Player domain.Player }

func (SlotDrag) dragItem()   {}
func (PlayerDrag) dragItem() {}

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetSlotPlayer
	TargetSlotLabel
	TargetSlotOrder
	TargetAvailable
	TargetReturn
)

// Target is the region under a tap or a drop.
type Target struct {
	Kind   TargetKind
	Index  int
	Player domain.Player
}

func (t Target) isSlot() bool {
	return t.Kind == TargetSlotPlayer || t.Kind == TargetSlotLabel || t.Kind == TargetSlotOrder
}

type State int

const (
	StateIdle State = iota
	StateDragging
	StateSelected
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateSelected:
		return "selected"
	default:
		return "idle"
	}
}

// Interaction turns drag and tap input into lineup mutations. Both input
// styles end in the same Lineup operations.
type Interaction struct {
	lineup    *Lineup
	selection Selection
	dragging  DragItem
	hover     Target
}

func NewInteraction(l *Lineup) *Interaction {
	return &Interaction{lineup: l}
}

func (in *Interaction) State() State {
	switch {
	case in.dragging != nil:
		return StateDragging
	case in.selection != nil:
		return StateSelected
	default:
		return StateIdle
	}
}

func (in *Interaction) Selection() Selection { return in.selection }

func (in *Interaction) Dragging() DragItem { return in.dragging }

func (in *Interaction) Hover() Target { return in.hover }

// Reset drops all transient state.
func (in *Interaction) Reset() {
	in.selection = nil
	in.dragging = nil
	in.hover = Target{}
}

// StartDrag begins a drag and discards any pending selection.
func (in *Interaction) StartDrag(item DragItem) {
	in.selection = nil
	in.dragging = item
	in.hover = Target{}
}

// DragOver records the region currently under the dragged item.
func (in *Interaction) DragOver(t Target) {
	if in.dragging == nil {
		return
	}
	in.hover = t
}

// Drop resolves the drag against t and returns to idle.
func (in *Interaction) Drop(t Target) error {
	item := in.dragging
	in.dragging = nil
	in.hover = Target{}
	if item == nil {
		return nil
	}

	switch {
	case t.isSlot():
		switch it := item.(type) {
		case SlotDrag:
			return in.lineup.Swap(it.Index, t.Index)
		case PlayerDrag:
			return in.lineup.AssignPlayer(it.Player, t.Index)
		}
	case t.Kind == TargetReturn:
		if it, ok := item.(SlotDrag); ok {
			return in.lineup.UnassignPlayer(it.Index)
		}
	}
	return nil
}

// DropOnHover drops onto the last region passed to DragOver.
func (in *Interaction) DropOnHover() error {
	return in.Drop(in.hover)
}

func (in *Interaction) CancelDrag() {
	in.dragging = nil
	in.hover = Target{}
}

// Tap applies a click/tap on t.
func (in *Interaction) Tap(t Target) error {
	switch t.Kind {
	case TargetSlotPlayer:
		return in.tapPlayer(t.Index)
	case TargetSlotLabel:
		return in.tapLabel(t.Index)
	case TargetSlotOrder:
		return in.tapOrder(t.Index)
	case TargetAvailable:
		in.tapAvailable(t.Player)
	case TargetReturn:
		return in.tapReturn()
	}
	return nil
}

func (in *Interaction) tapPlayer(i int) error {
	slot, ok := in.lineup.Slot(i)
	if !ok {
		return ErrIndexOutOfRange
	}
	switch sel := in.selection.(type) {
	case AvailableSelection:
		in.selection = nil
		return in.lineup.AssignPlayer(sel.Player, i)
	case PlayerSelection:
		in.selection = nil
		if sel.Index == i {
			return nil
		}
		return in.lineup.SwapPlayers(sel.Index, i)
	}
	if slot.Player != nil {
		in.selection = PlayerSelection{Index: i}
	}
	return nil
}

func (in *Interaction) tapLabel(i int) error {
	if _, ok := in.lineup.Slot(i); !ok {
		return ErrIndexOutOfRange
	}
	if sel, ok := in.selection.(LabelSelection); ok {
		in.selection = nil
		if sel.Index == i {
			return nil
		}
		return in.lineup.SwapLabels(sel.Index, i)
	}
	in.selection = LabelSelection{Index: i}
	return nil
}

func (in *Interaction) tapOrder(i int) error {
	if _, ok := in.lineup.Slot(i); !ok {
		return ErrIndexOutOfRange
	}
	if sel, ok := in.selection.(OrderSelection); ok {
		in.selection = nil
		if sel.Index == i {
			return nil
		}
		return in.lineup.Swap(sel.Index, i)
	}
	in.selection = OrderSelection{Index: i}
	return nil
}

func (in *Interaction) tapAvailable(p domain.Player) {
	if sel, ok := in.selection.(AvailableSelection); ok && sel.Player.ID == p.ID {
		in.selection = nil
		return
	}
	in.selection = AvailableSelection{Player: p}
}

func (in *Interaction) tapReturn() error {
	sel, ok := in.selection.(PlayerSelection)
	if !ok {
		return nil
	}
	in.selection = nil
	return in.lineup.UnassignPlayer(sel.Index)
}
