package lineup

import "math"

// DefaultDragThreshold is how far (in pixels, on either axis) a touch must
// travel before it counts as a drag.
const DefaultDragThreshold = 5.0

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type touch struct {
	origin Point
	item   DragItem
	tap    Target
	isDrag bool
}

// Gesture tells taps from drags on touch input and forwards the result to
// an Interaction. It owns no lineup state.
type Gesture struct {
	in        *Interaction
	threshold float64
	active    *touch
}

func NewGesture(in *Interaction, threshold float64) *Gesture {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &Gesture{in: in, threshold: threshold}
}

// Start records a touch on an element. item is what a drag would carry;
// tap is the region a plain tap resolves to.
func (g *Gesture) Start(at Point, item DragItem, tap Target) {
	g.active = &touch{origin: at, item: item, tap: tap}
}

// Move reports the touch position and the region under it. The returned
// value says whether the caller should suppress scrolling.
func (g *Gesture) Move(at Point, over Target) bool {
	t := g.active
	if t == nil {
		return false
	}
	if !t.isDrag {
		dx := math.Abs(at.X - t.origin.X)
		dy := math.Abs(at.Y - t.origin.Y)
		if dx <= g.threshold && dy <= g.threshold {
			return false
		}
		if t.item == nil {
			return false
		}
		t.isDrag = true
		g.in.StartDrag(t.item)
	}
	if over.isSlot() || over.Kind == TargetReturn {
		g.in.DragOver(over)
	} else {
		g.in.DragOver(Target{})
	}
	return true
}

// End finishes the gesture. A drag drops on the last hovered region; a
// touch that never crossed the threshold is dispatched as a tap.
func (g *Gesture) End() error {
	t := g.active
	g.active = nil
	if t == nil {
		return nil
	}
	if t.isDrag {
		if g.in.State() != StateDragging {
			return nil
		}
		return g.in.DropOnHover()
	}
	return g.in.Tap(t.tap)
}

// Cancel abandons the gesture without a drop or a tap.
func (g *Gesture) Cancel() {
	if g.active != nil && g.active.isDrag {
		g.in.CancelDrag()
	}
	g.active = nil
}

func (g *Gesture) Active() bool { return g.active != nil }

func (g *Gesture) Dragging() bool { return g.active != nil && g.active.isDrag }
