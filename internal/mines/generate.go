package mines

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func validateParams(rows, cols, mineCount int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if mineCount < 0 || mineCount >= rows*cols {
		return fmt.Errorf(
			"%w: got %d for %dx%d", ErrInvalidMineCount, mineCount, rows, cols,
		)
	}
	return nil
}

// recoverAssertion turns a panicking [AssertionError] into a returned error.
// Any other panic is propagated.
func recoverAssertion(board **Board, err *error) {
	r := recover()
	if r == nil {
		return
	}
	var ae AssertionError
	if e, ok := r.(error); ok && errors.As(e, &ae) {
		*board, *err = nil, ae
		return
	}
	panic(r)
}

// Generate places mineCount mines uniformly at random, rerolling on
// collisions, and fills in neighbour counts. A nil r falls back to the
// global source.
func Generate(rows, cols, mineCount int, r *rand.Rand) (board *Board, err error) {
	if err := validateParams(rows, cols, mineCount); err != nil {
		return nil, err
	}
	defer recoverAssertion(&board, &err)

	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}

	board = newBoard(rows, cols, mineCount)
	placed := 0
	for placed < mineCount {
		i := intN(rows)*cols + intN(cols)
		if board.content[i].IsMine() {
			continue
		}
		board.content[i] = Mine
		placed++
	}
	board.countNeighbours()
	board.verify()

	Log.WithFields(logrus.Fields{
		"rows": rows, "cols": cols, "mines": mineCount,
	}).Debug("generated board")

	return board, nil
}

// FromLayout builds a board with mines at exactly the given coordinates.
// Duplicates are collapsed. Unlike Generate it accepts a board with no safe
// cell; the first reveal on it simply loses.
func FromLayout(rows, cols int, mines []Coord) (board *Board, err error) {
	if err := validateParams(rows, cols, 0); err != nil {
		return nil, err
	}
	defer recoverAssertion(&board, &err)

	board = newBoard(rows, cols, 0)
	for _, m := range mines {
		i, err := board.index(m.Row, m.Col)
		if err != nil {
			return nil, err
		}
		if !board.content[i].IsMine() {
			board.content[i] = Mine
			board.mineCount++
		}
	}
	board.countNeighbours()
	board.verify()
	return board, nil
}

func (b *Board) countNeighbours() {
	for i := range b.content {
		if b.content[i].IsMine() {
			continue
		}
		n := 0
		for j := range b.neighbours(i) {
			if b.content[j].IsMine() {
				n++
			}
		}
		b.content[i] = Content(n)
	}
}

// panics [AssertionError]
func (b *Board) verify() {
	if len(b.content) != b.rows*b.cols || len(b.visibility) != len(b.content) {
		panic(AssertionError{"buffer size does not match dimensions"})
	}
	mines := 0
	for i, c := range b.content {
		if c.IsMine() {
			mines++
			continue
		}
		n := 0
		for j := range b.neighbours(i) {
			if b.content[j].IsMine() {
				n++
			}
		}
		if int(c) != n {
			Log.WithFields(logrus.Fields{
				"cell": b.coord(i), "content": c, "expected": n,
			}).Error("assertion failed: neighbour count mismatch")
			panic(AssertionError{fmt.Sprintf(
				"cell %s holds %d but has %d mined neighbours", b.coord(i), c, n,
			)})
		}
	}
	if mines != b.mineCount {
		panic(AssertionError{fmt.Sprintf(
			"board holds %d mines, want %d", mines, b.mineCount,
		)})
	}
}
