package mines

import (
	"fmt"
	"strings"
)

type Difficulty struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Mines int `json:"mines"`
}

var (
	Beginner     = Difficulty{Rows: 9, Cols: 9, Mines: 10}
	Intermediate = Difficulty{Rows: 16, Cols: 16, Mines: 40}
	Expert       = Difficulty{Rows: 16, Cols: 30, Mines: 99}
)

const (
	customMinSide        = 5
	customMaxSide        = 30
	customMaxMinePercent = 35
)

func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "beginner":
		return Beginner, nil
	case "intermediate":
		return Intermediate, nil
	case "expert":
		return Expert, nil
	default:
		return Difficulty{}, fmt.Errorf(
			"unknown difficulty %q: must be one of 'beginner', 'intermediate', 'expert'",
			name,
		)
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Custom clamps player-chosen parameters: sides to [5, 30], mines to at
// least one and at most 35% of the cells.
func Custom(rows, cols, mines int) Difficulty {
	rows = clamp(rows, customMinSide, customMaxSide)
	cols = clamp(cols, customMinSide, customMaxSide)
	maxMines := rows * cols * customMaxMinePercent / 100
	return Difficulty{
		Rows:  rows,
		Cols:  cols,
		Mines: clamp(mines, 1, maxMines),
	}
}

func (d Difficulty) String() string {
	return fmt.Sprintf("%dx%d(%d)", d.Rows, d.Cols, d.Mines)
}

func (d Difficulty) Validate() error {
	return validateParams(d.Rows, d.Cols, d.Mines)
}
