package mines

import (
	"fmt"
	"iter"
	"strconv"
)

type Status int8

const (
	Ongoing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// Board is an immutable snapshot of a game grid. Operations that change
// visibility return a new Board and leave the receiver untouched.
type Board struct {
	rows, cols int
	mineCount  int
	flagged    int
	content    []Content
	visibility []Visibility
}

func newBoard(rows, cols, mineCount int) *Board {
	return &Board{
		rows:       rows,
		cols:       cols,
		mineCount:  mineCount,
		content:    make([]Content, rows*cols),
		visibility: make([]Visibility, rows*cols),
	}
}

func (b *Board) Rows() int      { return b.rows }
func (b *Board) Cols() int      { return b.cols }
func (b *Board) MineCount() int { return b.mineCount }

// RemainingFlags is the mine count minus the number of flags placed. It goes
// negative when the player places more flags than there are mines.
func (b *Board) RemainingFlags() int {
	return b.mineCount - b.flagged
}

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.rows && 0 <= col && col < b.cols
}

func (b *Board) index(row, col int) (int, error) {
	if !b.InBounds(row, col) {
		return 0, fmt.Errorf(
			"%w: (%d,%d) on %dx%d board",
			ErrInvalidCoordinate, row, col, b.rows, b.cols,
		)
	}
	return row*b.cols + col, nil
}

func (b *Board) coord(i int) Coord {
	return Coord{Row: i / b.cols, Col: i % b.cols}
}

func (b *Board) At(row, col int) (Cell, error) {
	i, err := b.index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return Cell{Content: b.content[i], Visibility: b.visibility[i]}, nil
}

func (b *Board) cell(i int) Cell {
	return Cell{Content: b.content[i], Visibility: b.visibility[i]}
}

// neighbours yields the flat indices of the in-bounds 8-neighbourhood of i in
// row-major order.
func (b *Board) neighbours(i int) iter.Seq[int] {
	row, col := i/b.cols, i%b.cols
	return func(yield func(int) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				rr, cc := row+dr, col+dc
				if !b.InBounds(rr, cc) {
					continue
				}
				if !yield(rr*b.cols + cc) {
					return
				}
			}
		}
	}
}

func (b *Board) Clone() *Board {
	c := *b
	c.content = make([]Content, len(b.content))
	copy(c.content, b.content)
	c.visibility = make([]Visibility, len(b.visibility))
	copy(c.visibility, b.visibility)
	return &c
}

// Reveal opens the cell at row:col. Opening a cell with no mined neighbours
// opens its concealed neighbours as well, transitively. Revealed and flagged
// cells are left as they are.
func (b *Board) Reveal(row, col int) (*Board, error) {
	i, err := b.index(row, col)
	if err != nil {
		return nil, err
	}
	if b.visibility[i] != Concealed {
		return b, nil
	}
	next := b.Clone()
	next.open(i)
	return next, nil
}

func (b *Board) open(starts ...int) {
	visited := make([]bool, len(b.content))
	stack := make([]int, 0, len(starts))
	for _, i := range starts {
		if !visited[i] && b.visibility[i] == Concealed {
			visited[i] = true
			stack = append(stack, i)
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		b.visibility[i] = Revealed
		if b.content[i] != 0 {
			continue
		}
		for j := range b.neighbours(i) {
			if !visited[j] && b.visibility[j] == Concealed {
				visited[j] = true
				stack = append(stack, j)
			}
		}
	}
}

func (b *Board) ToggleFlag(row, col int) (*Board, error) {
	i, err := b.index(row, col)
	if err != nil {
		return nil, err
	}
	next := b
	switch b.visibility[i] {
	case Concealed:
		next = b.Clone()
		next.visibility[i] = Flagged
		next.flagged++
	case Flagged:
		next = b.Clone()
		next.visibility[i] = Concealed
		next.flagged--
	}
	return next, nil
}

// Chord opens every concealed neighbour of a revealed number whose flagged
// neighbour count already matches it. Anything else is a no-op.
func (b *Board) Chord(row, col int) (*Board, error) {
	i, err := b.index(row, col)
	if err != nil {
		return nil, err
	}
	if b.visibility[i] != Revealed || b.content[i].IsMine() {
		return b, nil
	}

	flags := 0
	concealed := make([]int, 0, 8)
	for j := range b.neighbours(i) {
		switch b.visibility[j] {
		case Flagged:
			flags++
		case Concealed:
			concealed = append(concealed, j)
		}
	}
	if flags != int(b.content[i]) || len(concealed) == 0 {
		return b, nil
	}

	next := b.Clone()
	next.open(concealed...)
	return next, nil
}

// IsWon reports whether every safe cell is revealed and every mine is flagged.
func (b *Board) IsWon() bool {
	for i, c := range b.content {
		switch b.visibility[i] {
		case Revealed:
			if c.IsMine() {
				return false
			}
		case Flagged:
			if !c.IsMine() {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Exploded reports whether a mine has been revealed.
func (b *Board) Exploded() bool {
	for i, c := range b.content {
		if c.IsMine() && b.visibility[i] == Revealed {
			return true
		}
	}
	return false
}

func (b *Board) Status() Status {
	if b.Exploded() {
		return Lost
	}
	if b.IsWon() {
		return Won
	}
	return Ongoing
}

// RevealMines returns a copy with every concealed mine revealed. Flags are
// kept so a finished board still shows what the player marked.
func (b *Board) RevealMines() *Board {
	next := b.Clone()
	for i, c := range next.content {
		if c.IsMine() && next.visibility[i] == Concealed {
			next.visibility[i] = Revealed
		}
	}
	return next
}

func (b *Board) View() GridView {
	view := make(GridView, len(b.content))
	for i := range b.content {
		view[i] = b.cell(i).View()
	}
	return view
}

// Board implements [fmt.Stringer]
func (b *Board) String() string {
	return b.View().ToString(b.cols)
}
