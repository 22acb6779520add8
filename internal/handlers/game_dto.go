package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-hint/internal/game"
	"github.com/vancomm/minesweeper-hint/internal/mines"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type NewGameDTO struct {
	Difficulty string `schema:"difficulty"`
	Rows       int    `schema:"rows"`
	Cols       int    `schema:"cols"`
	Mines      int    `schema:"mines"`
}

func ParseNewGameDTO(src url.Values) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Resolve maps the request onto board parameters. An empty difficulty means
// beginner; custom parameters are clamped.
func (dto NewGameDTO) Resolve() (mines.Difficulty, error) {
	switch strings.ToLower(dto.Difficulty) {
	case "":
		return mines.Beginner, nil
	case "custom":
		return mines.Custom(dto.Rows, dto.Cols, dto.Mines), nil
	default:
		return mines.ParseDifficulty(dto.Difficulty)
	}
}

type GameMove int

const (
	Open GameMove = iota
	Flag
	Chord
)

func ParseGameMove(s string) (GameMove, error) {
	switch s {
	case "open":
		return Open, nil
	case "flag":
		return Flag, nil
	case "chord":
		return Chord, nil
	default:
		return 0, fmt.Errorf("invalid move %q: must be one of 'open', 'flag', 'chord'", s)
	}
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	Row  int    `schema:"row,required"`
	Col  int    `schema:"col,required"`
}

func ParseMoveDTO(src url.Values) (GameMove, MoveDTO, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return 0, dto, err
	}
	move, err := ParseGameMove(dto.Move)
	return move, dto, err
}

func (m GameMove) apply(s *game.Session, row, col int, now time.Time) error {
	switch m {
	case Flag:
		return s.Flag(row, col, now)
	case Chord:
		return s.Chord(row, col, now)
	default:
		return s.Open(row, col, now)
	}
}

type GameSessionDTO struct {
	GameSessionId  string         `json:"game_session_id"`
	Grid           mines.GridView `json:"grid"`
	Rows           int            `json:"rows"`
	Cols           int            `json:"cols"`
	Mines          int            `json:"mines"`
	RemainingFlags int            `json:"remaining_flags"`
	Status         string         `json:"status"`
	Moves          int            `json:"moves"`
	HintsUsed      int            `json:"hints_used"`
	StartedAt      int64          `json:"started_at"`
	EndedAt        *int64         `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(gameSessionId int64, s *game.Session) *GameSessionDTO {
	var endedAt *int64
	if s.Over() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId:  strconv.FormatInt(gameSessionId, 10),
		Grid:           s.Board.View(),
		Rows:           s.Difficulty.Rows,
		Cols:           s.Difficulty.Cols,
		Mines:          s.Difficulty.Mines,
		RemainingFlags: s.RemainingFlags(),
		Status:         s.Status.String(),
		Moves:          s.Moves,
		HintsUsed:      s.HintsUsed,
		StartedAt:      s.StartedAt.UnixMilli(),
		EndedAt:        endedAt,
	}
}

type HintDTO struct {
	Hint *mines.SuggestedMove `json:"hint"`
}
