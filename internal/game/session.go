// Package game drives a single minesweeper game: it owns the current board,
// applies moves to it and moves the status from ongoing to won or lost.
package game

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/vancomm/minesweeper-hint/internal/mines"
)

// HintDebounce is how long a computed hint is reused for the same position.
const HintDebounce = time.Second

var ErrGameOver = errors.New("game is over")

type Session struct {
	Board      *mines.Board
	Difficulty mines.Difficulty
	Status     mines.Status
	Moves      int
	HintsUsed  int
	StartedAt  time.Time
	EndedAt    time.Time

	// Last hint handed out, kept with the session so the debounce survives
	// a save and reload.
	LastHint     *mines.SuggestedMove
	LastHintAt   time.Time
	LastHintMove int
}

func New(d mines.Difficulty, r *rand.Rand, now time.Time) (*Session, error) {
	board, err := mines.Generate(d.Rows, d.Cols, d.Mines, r)
	if err != nil {
		return nil, fmt.Errorf("unable to generate board %s: %w", d, err)
	}
	return FromBoard(board, now), nil
}

func FromBoard(board *mines.Board, now time.Time) *Session {
	return &Session{
		Board: board,
		Difficulty: mines.Difficulty{
			Rows:  board.Rows(),
			Cols:  board.Cols(),
			Mines: board.MineCount(),
		},
		Status:    board.Status(),
		StartedAt: now,
	}
}

func (s *Session) RemainingFlags() int {
	return s.Board.RemainingFlags()
}

func (s *Session) Over() bool {
	return s.Status.Terminal()
}

type move func(b *mines.Board, row, col int) (*mines.Board, error)

func (s *Session) apply(m move, row, col int, now time.Time) error {
	if s.Over() {
		return ErrGameOver
	}
	next, err := m(s.Board, row, col)
	if err != nil {
		return err
	}
	if next != s.Board {
		s.Moves++
	}
	s.Board = next
	s.settle(now)
	return nil
}

// settle moves an ongoing game into a terminal state if the board calls for
// it. Terminal states are never left.
func (s *Session) settle(now time.Time) {
	if s.Over() {
		return
	}
	switch {
	case s.Board.Exploded():
		s.end(mines.Lost, now)
	case s.Board.IsWon():
		s.end(mines.Won, now)
	}
}

func (s *Session) end(status mines.Status, now time.Time) {
	s.Status = status
	s.EndedAt = now
	s.Board = s.Board.RevealMines()
	s.LastHint = nil
}

func (s *Session) Open(row, col int, now time.Time) error {
	return s.apply((*mines.Board).Reveal, row, col, now)
}

func (s *Session) Flag(row, col int, now time.Time) error {
	return s.apply((*mines.Board).ToggleFlag, row, col, now)
}

func (s *Session) Chord(row, col int, now time.Time) error {
	return s.apply((*mines.Board).Chord, row, col, now)
}

func (s *Session) Forfeit(now time.Time) error {
	if s.Over() {
		return ErrGameOver
	}
	s.end(mines.Lost, now)
	return nil
}

// Hint returns the estimator's suggestion for the current board. A request
// repeated within [HintDebounce] with no move in between gets the cached
// answer.
func (s *Session) Hint(now time.Time) (mines.SuggestedMove, bool, error) {
	if s.Over() {
		return mines.SuggestedMove{}, false, ErrGameOver
	}
	if s.LastHint != nil && s.LastHintMove == s.Moves && now.Sub(s.LastHintAt) < HintDebounce {
		return *s.LastHint, true, nil
	}

	move, ok := mines.SuggestMove(s.Board)
	if !ok {
		s.LastHint = nil
		return move, false, nil
	}
	s.LastHint = &move
	s.LastHintAt = now
	s.LastHintMove = s.Moves
	s.HintsUsed++
	return move, true, nil
}

func (s *Session) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Decode(buf []byte) (*Session, error) {
	var s Session
	if err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&s); err != nil {
		return nil, err
	}
	if s.Board == nil {
		return nil, fmt.Errorf("decoded session has no board")
	}
	return &s, nil
}
