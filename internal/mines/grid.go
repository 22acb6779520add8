package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// Content is the immutable value of a cell: 0-8 for the number of mined
// neighbours, or [Mine].
type Content int8

const Mine Content = -1

func (c Content) IsMine() bool {
	return c == Mine
}

type Visibility int8

const (
	Concealed Visibility = iota
	Revealed
	Flagged
)

func (v Visibility) String() string {
	switch v {
	case Concealed:
		return "concealed"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "visibility(" + strconv.Itoa(int(v)) + ")"
	}
}

type Cell struct {
	Content    Content
	Visibility Visibility
}

type Coord struct {
	Row, Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// CellView is what a player is allowed to see of a cell.
type CellView int8

const (
	ViewConcealed CellView = -2
	ViewFlagged   CellView = -1
	ViewMine      CellView = 64
	/*
	 * 0 to 8 mean the cell is revealed and has that many mined
	 * neighbours.
	 */
)

func (v CellView) String() string {
	switch {
	case v == ViewConcealed:
		return " "
	case v == ViewFlagged:
		return "F"
	case v == ViewMine:
		return "*"
	case v == 0:
		return "."
	case 0 < v && v <= 8:
		return strconv.Itoa(int(v))
	default:
		return "!"
	}
}

func (c Cell) View() CellView {
	switch c.Visibility {
	case Flagged:
		return ViewFlagged
	case Revealed:
		if c.Content.IsMine() {
			return ViewMine
		}
		return CellView(c.Content)
	default:
		return ViewConcealed
	}
}

type GridView []CellView

func (g GridView) ToString(cols int) string {
	var b strings.Builder
	for row := range len(g) / cols {
		for col := range cols {
			fmt.Fprint(&b, g[row*cols+col].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
