package domain

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

type Position string

const (
	PositionPitcher    Position = "ピッチャー"
	PositionCatcher    Position = "キャッチャー"
	PositionInfielder  Position = "内野手"
	PositionOutfielder Position = "外野手"
	PositionNone       Position = "なし"
)

// MainPositions is also the category ranking used by position sorts.
var MainPositions = []Position{
	PositionPitcher,
	PositionCatcher,
	PositionInfielder,
	PositionOutfielder,
}

var SubPositions = append([]Position{PositionNone}, MainPositions...)

var positionAliases = map[string]Position{
	"pitcher":    PositionPitcher,
	"p":          PositionPitcher,
	"catcher":    PositionCatcher,
	"c":          PositionCatcher,
	"infielder":  PositionInfielder,
	"if":         PositionInfielder,
	"outfielder": PositionOutfielder,
	"of":         PositionOutfielder,
	"none":       PositionNone,
	"":           PositionNone,
}

// ParsePosition accepts the stored value or an English alias.
func ParsePosition(s string) (Position, bool) {
	s = strings.TrimSpace(s)
	for _, p := range SubPositions {
		if string(p) == s {
			return p, true
		}
	}
	p, ok := positionAliases[strings.ToLower(s)]
	return p, ok
}

func (p Position) Valid() bool {
	for _, s := range SubPositions {
		if s == p {
			return true
		}
	}
	return false
}

type Player struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Number       string   `json:"number"`
	MainPosition Position `json:"mainPosition"`
	SubPosition1 Position `json:"subPosition1"`
	SubPosition2 Position `json:"subPosition2"`
}

// Normalize resets sub positions that repeat the main position or each
// other, and clears sub2 when sub1 is unset.
func (p *Player) Normalize() {
	if p.SubPosition1 == "" || p.SubPosition1 == p.MainPosition {
		p.SubPosition1 = PositionNone
	}
	if p.SubPosition2 == "" || p.SubPosition2 == p.MainPosition || p.SubPosition2 == p.SubPosition1 {
		p.SubPosition2 = PositionNone
	}
	if p.SubPosition1 == PositionNone {
		p.SubPosition2 = PositionNone
	}
}

// Positions returns the player's set capabilities in main, sub1, sub2 order.
func (p Player) Positions() []Position {
	out := make([]Position, 0, 3)
	for _, pos := range []Position{p.MainPosition, p.SubPosition1, p.SubPosition2} {
		if pos != PositionNone && pos != "" {
			out = append(out, pos)
		}
	}
	return out
}

// ParseNumber reads the leading integer of a jersey number. Full-width
// digits are folded first.
func ParseNumber(s string) (int, bool) {
	s = strings.TrimSpace(width.Fold.String(s))
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

type MatchDetails struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Venue    string `json:"venue"`
	Opponent string `json:"opponent"`
}

func (m MatchDetails) IsZero() bool {
	return m == MatchDetails{}
}
