package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

type boardState struct {
	Rows, Cols, MineCount int
	Content               []Content
	Visibility            []Visibility
}

// [Board] implements [gob.GobEncoder]
func (b *Board) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(boardState{
		Rows:       b.rows,
		Cols:       b.cols,
		MineCount:  b.mineCount,
		Content:    b.content,
		Visibility: b.visibility,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// [Board] implements [gob.GobDecoder]
func (b *Board) GobDecode(data []byte) error {
	var s boardState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	if s.Rows < 1 || s.Cols < 1 ||
		len(s.Content) != s.Rows*s.Cols ||
		len(s.Visibility) != len(s.Content) {
		return fmt.Errorf(
			"malformed board state: %dx%d with %d cells",
			s.Rows, s.Cols, len(s.Content),
		)
	}

	flagged := 0
	for _, v := range s.Visibility {
		if v == Flagged {
			flagged++
		}
	}
	*b = Board{
		rows:       s.Rows,
		cols:       s.Cols,
		mineCount:  s.MineCount,
		flagged:    flagged,
		content:    s.Content,
		visibility: s.Visibility,
	}
	return nil
}

func (b *Board) Bytes() ([]byte, error) {
	return b.GobEncode()
}

func DecodeBoard(buf []byte) (*Board, error) {
	var b Board
	if err := b.GobDecode(buf); err != nil {
		return nil, err
	}
	return &b, nil
}
