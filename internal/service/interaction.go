package service

import (
	"context"
	"fmt"

	"lineup-manager/internal/domain"
	"lineup-manager/internal/lineup"
)

// Wire names for targets, selections and drag items.
const (
	KindNone      = "none"
	KindPlayer    = "player"
	KindLabel     = "label"
	KindOrder     = "order"
	KindAvailable = "available"
	KindReturn    = "return"
	KindSlot      = "slot"
)

// TargetInput names a region of the lineup screen. PlayerID is only used
// for available-list targets.
type TargetInput struct {
	Kind     string `json:"kind"`
	Index    int    `json:"index"`
	PlayerID string `json:"playerId,omitempty"`
}

// ItemInput names what a drag carries: a slot (kind "slot") or a registry
// player from the available list (kind "player").
type ItemInput struct {
	Kind     string `json:"kind"`
	Index    int    `json:"index"`
	PlayerID string `json:"playerId,omitempty"`
}

func (s *LineupService) Tap(ctx context.Context, in TargetInput) error {
	return s.mutate(ctx, "tap", func() error {
		t, err := s.resolveTarget(ctx, in)
		if err != nil {
			return err
		}
		return s.input.Tap(t)
	})
}

func (s *LineupService) DragStart(ctx context.Context, in ItemInput) error {
	return s.mutate(ctx, "drag_start", func() error {
		item, err := s.resolveItem(ctx, in)
		if err != nil {
			return err
		}
		s.input.StartDrag(item)
		return nil
	})
}

func (s *LineupService) DragOver(ctx context.Context, in TargetInput) error {
	return s.mutate(ctx, "drag_over", func() error {
		t, err := s.resolveTarget(ctx, in)
		if err != nil {
			return err
		}
		s.input.DragOver(t)
		return nil
	})
}

func (s *LineupService) Drop(ctx context.Context, in TargetInput) error {
	return s.mutate(ctx, "drop", func() error {
		t, err := s.resolveTarget(ctx, in)
		if err != nil {
			return err
		}
		return s.input.Drop(t)
	})
}

func (s *LineupService) CancelDrag(ctx context.Context) error {
	return s.mutate(ctx, "drag_cancel", func() error {
		s.input.CancelDrag()
		return nil
	})
}

// TouchStart begins a touch on an element. item may be nil for elements
// that cannot be dragged.
func (s *LineupService) TouchStart(ctx context.Context, at lineup.Point, item *ItemInput, tap TargetInput) error {
	return s.mutate(ctx, "touch_start", func() error {
		var dragItem lineup.DragItem
		if item != nil {
			var err error
			if dragItem, err = s.resolveItem(ctx, *item); err != nil {
				return err
			}
		}
		t, err := s.resolveTarget(ctx, tap)
		if err != nil {
			return err
		}
		s.gesture.Start(at, dragItem, t)
		return nil
	})
}

// TouchMove reports whether the client should suppress scrolling.
func (s *LineupService) TouchMove(ctx context.Context, at lineup.Point, over TargetInput) (bool, error) {
	var preventScroll bool
	err := s.mutate(ctx, "touch_move", func() error {
		t, err := s.resolveTarget(ctx, over)
		if err != nil {
			return err
		}
		preventScroll = s.gesture.Move(at, t)
		return nil
	})
	return preventScroll, err
}

func (s *LineupService) TouchEnd(ctx context.Context) error {
	return s.mutate(ctx, "touch_end", func() error { return s.gesture.End() })
}

func (s *LineupService) TouchCancel(ctx context.Context) error {
	return s.mutate(ctx, "touch_cancel", func() error {
		s.gesture.Cancel()
		return nil
	})
}

// resolveTarget and resolveItem read the registry, so they run inside
// mutate.
func (s *LineupService) resolveTarget(ctx context.Context, in TargetInput) (lineup.Target, error) {
	switch in.Kind {
	case "", KindNone:
		return lineup.Target{}, nil
	case KindPlayer:
		return lineup.Target{Kind: lineup.TargetSlotPlayer, Index: in.Index}, nil
	case KindLabel:
		return lineup.Target{Kind: lineup.TargetSlotLabel, Index: in.Index}, nil
	case KindOrder:
		return lineup.Target{Kind: lineup.TargetSlotOrder, Index: in.Index}, nil
	case KindReturn:
		return lineup.Target{Kind: lineup.TargetReturn}, nil
	case KindAvailable:
		p, err := s.lookupAvailable(ctx, in.PlayerID)
		if err != nil {
			return lineup.Target{}, err
		}
		return lineup.Target{Kind: lineup.TargetAvailable, Player: p}, nil
	}
	return lineup.Target{}, fmt.Errorf("%w: kind %q", ErrInvalidTarget, in.Kind)
}

func (s *LineupService) resolveItem(ctx context.Context, in ItemInput) (lineup.DragItem, error) {
	switch in.Kind {
	case KindSlot:
		return lineup.SlotDrag{Index: in.Index}, nil
	case KindPlayer:
		p, err := s.lookupAvailable(ctx, in.PlayerID)
		if err != nil {
			return nil, err
		}
		return lineup.PlayerDrag{Player: p}, nil
	}
	return nil, fmt.Errorf("%w: drag item %q", ErrInvalidTarget, in.Kind)
}

// lookupAvailable resolves a registry player that is not already in the
// lineup. Callers hold s.mu.
func (s *LineupService) lookupAvailable(ctx context.Context, id string) (domain.Player, error) {
	p, err := s.lookupPlayer(ctx, id)
	if err != nil {
		return domain.Player{}, err
	}
	if s.lineup.IndexOf(p.ID) >= 0 {
		return domain.Player{}, fmt.Errorf("%w: player %s is already in the lineup", ErrInvalidTarget, p.ID)
	}
	return p, nil
}

func targetView(t lineup.Target) *TargetInput {
	switch t.Kind {
	case lineup.TargetSlotPlayer:
		return &TargetInput{Kind: KindPlayer, Index: t.Index}
	case lineup.TargetSlotLabel:
		return &TargetInput{Kind: KindLabel, Index: t.Index}
	case lineup.TargetSlotOrder:
		return &TargetInput{Kind: KindOrder, Index: t.Index}
	case lineup.TargetAvailable:
		return &TargetInput{Kind: KindAvailable, PlayerID: t.Player.ID}
	case lineup.TargetReturn:
		return &TargetInput{Kind: KindReturn}
	}
	return nil
}

func selectionView(sel lineup.Selection) *TargetInput {
	switch v := sel.(type) {
	case lineup.PlayerSelection:
		return &TargetInput{Kind: KindPlayer, Index: v.Index}
	case lineup.LabelSelection:
		return &TargetInput{Kind: KindLabel, Index: v.Index}
	case lineup.OrderSelection:
		return &TargetInput{Kind: KindOrder, Index: v.Index}
	case lineup.AvailableSelection:
		return &TargetInput{Kind: KindAvailable, PlayerID: v.Player.ID}
	}
	return nil
}

func itemView(item lineup.DragItem) *ItemInput {
	switch v := item.(type) {
	case lineup.SlotDrag:
		return &ItemInput{Kind: KindSlot, Index: v.Index}
	case lineup.PlayerDrag:
		return &ItemInput{Kind: KindPlayer, PlayerID: v.Player.ID}
	}
	return nil
}
