package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"lineup-manager/internal/constants"
	"lineup-manager/internal/domain"
	"lineup-manager/internal/lineup"
)

var csvHeader = []string{"name", "number", "mainPosition", "subPosition1", "subPosition2"}

// Import reads players from a roster CSV and appends them to the registry.
// Rows that are short or nameless are skipped; unknown positions fall back
// to pitcher (main) or none (sub).
func (s *PlayerService) Import(ctx context.Context, r io.Reader) ([]domain.Player, error) {
	records, err := readRecords(io.LimitReader(r, constants.MaxImportBytes))
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, fmt.Errorf("%w: no data rows", ErrInvalidCSV)
	}

	header := records[0]
	if len(header) < 3 || cleanField(header[0]) != "name" || cleanField(header[2]) != "mainPosition" {
		return nil, fmt.Errorf("%w: header must be %s", ErrInvalidCSV, strings.Join(csvHeader, ","))
	}

	var players []domain.Player
	skipped := 0
	for _, rec := range records[1:] {
		if len(rec) < len(csvHeader) {
			skipped++
			continue
		}
		name := cleanField(rec[0])
		if name == "" {
			skipped++
			continue
		}
		p := domain.Player{
			Name:         name,
			Number:       cleanField(rec[1]),
			MainPosition: csvPosition(rec[2], domain.PositionPitcher),
			SubPosition1: csvPosition(rec[3], domain.PositionNone),
			SubPosition2: csvPosition(rec[4], domain.PositionNone),
		}
		p.Normalize()
		players = append(players, p)
	}

	if len(players) == 0 {
		return nil, fmt.Errorf("%w: no valid players", ErrInvalidCSV)
	}

	added, err := s.appendPlayers(ctx, players)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("imported", len(added)).Int("skipped", skipped).Msg("players imported")
	return added, nil
}

// Export writes every registered player as CSV.
func (s *PlayerService) Export(ctx context.Context, w io.Writer) error {
	players, err := s.List(ctx, lineup.SortDefault)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, p := range players {
		row := []string{p.Name, p.Number, string(p.MainPosition), string(p.SubPosition1), string(p.SubPosition2)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTemplate writes an empty roster CSV with one example row.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeader)
	_ = cw.Write([]string{"山田 太郎", "1", string(domain.PositionPitcher), string(domain.PositionOutfielder), string(domain.PositionNone)})
	cw.Flush()
	return cw.Error()
}

func readRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func cleanField(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

func csvPosition(s string, fallback domain.Position) domain.Position {
	p, ok := domain.ParsePosition(cleanField(s))
	if !ok || (p == domain.PositionNone && fallback != domain.PositionNone) {
		return fallback
	}
	return p
}
