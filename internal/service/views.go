package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"lineup-manager/internal/constants"
	"lineup-manager/internal/domain"
	"lineup-manager/internal/lineup"
)

type SlotView struct {
	Order     int            `json:"order"`
	Label     string         `json:"label"`
	Player    *domain.Player `json:"player"`
	Removable bool           `json:"removable"`
}

type InteractionView struct {
	State     string       `json:"state"`
	Selection *TargetInput `json:"selection,omitempty"`
	Dragging  *ItemInput   `json:"dragging,omitempty"`
	Hover     *TargetInput `json:"hover,omitempty"`
}

type LineupView struct {
	Revision    uint64              `json:"revision"`
	Slots       []SlotView          `json:"slots"`
	Available   []domain.Player     `json:"available"`
	Interaction InteractionView     `json:"interaction"`
	Warnings    []lineup.LabelCount `json:"warnings"`
}

type InningRow struct {
	Order    int      `json:"order"`
	PlayerID string   `json:"playerId"`
	Name     string   `json:"name"`
	Number   string   `json:"number"`
	Label    string   `json:"label"`
	Innings  []string `json:"innings"`
}

type InningsView struct {
	Rows            []InningRow            `json:"rows"`
	Counts          []map[string]int       `json:"counts"`
	Inconsistencies []lineup.Inconsistency `json:"inconsistencies"`
}

// Lineup returns the batting order, the players not in it (sorted by
// order) and the current interaction state.
func (s *LineupService) Lineup(ctx context.Context, order lineup.SortOrder) (LineupView, error) {
	players, err := s.registry(ctx)
	if err != nil {
		return LineupView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return LineupView{}, err
	}

	slots := s.lineup.Slots()
	view := LineupView{
		Revision:  s.lineup.Revision(),
		Slots:     make([]SlotView, len(slots)),
		Available: lineup.Available(players, s.lineup, order),
		Interaction: InteractionView{
			State:     s.input.State().String(),
			Selection: selectionView(s.input.Selection()),
			Dragging:  itemView(s.input.Dragging()),
			Hover:     targetView(s.input.Hover()),
		},
		Warnings: s.lineup.LabelWarnings(),
	}
	for i, slot := range slots {
		view.Slots[i] = SlotView{
			Order:     i + 1,
			Label:     slot.Label,
			Player:    slot.Player,
			Removable: s.lineup.CanRemoveSlot(i),
		}
	}
	if view.Warnings == nil {
		view.Warnings = []lineup.LabelCount{}
	}
	return view, nil
}

// Innings returns one row per lineup player in batting order, plus the
// per-inning label tallies.
func (s *LineupService) Innings(ctx context.Context) (InningsView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return InningsView{}, err
	}

	view := InningsView{
		Rows:            []InningRow{},
		Counts:          make([]map[string]int, 0, lineup.Innings),
		Inconsistencies: lineup.Inconsistencies(s.lineup, s.innings),
	}
	for i, slot := range s.lineup.Slots() {
		if slot.Player == nil {
			continue
		}
		view.Rows = append(view.Rows, InningRow{
			Order:    i + 1,
			PlayerID: slot.Player.ID,
			Name:     slot.Player.Name,
			Number:   slot.Player.Number,
			Label:    slot.Label,
			Innings:  append([]string(nil), s.innings[slot.Player.ID]...),
		})
	}
	for _, c := range lineup.PositionCounts(s.lineup, s.innings) {
		view.Counts = append(view.Counts, c)
	}
	if view.Inconsistencies == nil {
		view.Inconsistencies = []lineup.Inconsistency{}
	}
	return view, nil
}

// LineupTable renders the batting order as an aligned text table.
func (s *LineupService) LineupTable(ctx context.Context) (string, error) {
	view, err := s.Lineup(ctx, lineup.SortDefault)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPOS\tNO\tNAME")
	for _, slot := range view.Slots {
		number, name := "", "-"
		if slot.Player != nil {
			number, name = slot.Player.Number, slot.Player.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", slot.Order, slot.Label, number, name)
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}
	for _, w := range view.Warnings {
		fmt.Fprintf(&buf, "warning: %s appears %d times\n", w.Label, w.Count)
	}
	return buf.String(), nil
}

// InningsTable renders the inning roster as an aligned text table.
func (s *LineupService) InningsTable(ctx context.Context) (string, error) {
	view, err := s.Innings(ctx)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 1, ' ', 0)
	header := []string{"#", "NAME"}
	for i := 1; i <= lineup.Innings; i++ {
		header = append(header, fmt.Sprint(i))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range view.Rows {
		cells := append([]string{fmt.Sprint(row.Order), row.Name}, row.Innings...)
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}
	for _, inc := range view.Inconsistencies {
		fmt.Fprintf(&buf, "inning %d: %s x%d\n", inc.Inning, inc.Label, inc.Count)
	}
	return buf.String(), nil
}

func (s *LineupService) registry(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.players.List(ctx)
}
