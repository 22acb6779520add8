package mines

import "fmt"

const (
	ReasonForcedMine  = "All remaining adjacent cells must be mines"
	ReasonAllFlagged  = "All mines are already flagged"
	reasonNeighbourFm = "Based on adjacent cell with %d mines"
)

type Confidence string

const (
	High   Confidence = "High"
	Medium Confidence = "Medium"
	Low    Confidence = "Low"
)

func ConfidenceOf(probability float64) Confidence {
	switch {
	case probability == 0:
		return High
	case probability < 0.3:
		return Medium
	default:
		return Low
	}
}

// CellProbability is the local estimate that a concealed cell holds a mine.
// An empty Reason with a zero Probability means no revealed number touches
// the cell, so nothing is known about it.
type CellProbability struct {
	Coord
	Probability float64
	Reason      string
}

type SuggestedMove struct {
	Row         int        `json:"row"`
	Col         int        `json:"col"`
	Probability float64    `json:"probability"`
	Confidence  Confidence `json:"confidence"`
	Reason      string     `json:"reason"`
}

/*
Estimate scores every concealed, unflagged cell in row-major order using
only the revealed numbers around it, each considered on its own.

For a revealed number N next to the candidate, with `hidden` concealed and
`flagged` flagged neighbours of N:

  - N - flagged == hidden forces every hidden neighbour to be a mine. The
    candidate gets 1 and no later neighbour can lower it.
  - N == flagged means N is satisfied; it contributes 0.
  - otherwise N contributes (N - flagged) / hidden and the candidate keeps
    the largest contribution seen.

This is not a solver: overlapping constraints are never combined.
*/
func Estimate(b *Board) []CellProbability {
	estimates := make([]CellProbability, 0)
	for i := range b.content {
		if b.visibility[i] != Concealed {
			continue
		}
		estimates = append(estimates, b.estimateCell(i))
	}
	return estimates
}

func (b *Board) estimateCell(i int) CellProbability {
	est := CellProbability{Coord: b.coord(i)}
	forced := false

	for n := range b.neighbours(i) {
		if b.visibility[n] != Revealed || b.content[n].IsMine() {
			continue
		}
		hidden, flagged := b.countAround(n)
		mines := int(b.content[n])

		switch {
		case forced:
			// a forced mine is final
		case mines-flagged == hidden:
			est.Probability = 1
			est.Reason = ReasonForcedMine
			forced = true
		case mines == flagged:
			if est.Probability == 0 {
				est.Reason = ReasonAllFlagged
			}
		case hidden > 0:
			p := float64(mines-flagged) / float64(hidden)
			if p > est.Probability {
				est.Probability = p
				est.Reason = fmt.Sprintf(reasonNeighbourFm, mines)
			}
		}
	}
	return est
}

func (b *Board) countAround(i int) (hidden, flagged int) {
	for j := range b.neighbours(i) {
		switch b.visibility[j] {
		case Concealed:
			hidden++
		case Flagged:
			flagged++
		}
	}
	return
}

// SuggestMove picks the concealed cell least likely to be a mine, breaking
// ties by row-major order. ok is false when there is nothing left to open.
func SuggestMove(b *Board) (move SuggestedMove, ok bool) {
	var best *CellProbability
	estimates := Estimate(b)
	for k := range estimates {
		if best == nil || estimates[k].Probability < best.Probability {
			best = &estimates[k]
		}
	}
	if best == nil {
		return SuggestedMove{}, false
	}
	return SuggestedMove{
		Row:         best.Row,
		Col:         best.Col,
		Probability: best.Probability,
		Confidence:  ConfidenceOf(best.Probability),
		Reason:      best.Reason,
	}, true
}
