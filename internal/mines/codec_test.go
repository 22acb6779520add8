package mines

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardBytes(t *testing.T) {
	b := mustLayout(t, 3, 4, Coord{0, 0}, Coord{2, 3})
	b = apply(t, b, []Coord{{0, 3}}, []Coord{{0, 0}, {1, 1}})

	buf, err := b.Bytes()
	require.NoError(t, err)

	decoded, err := DecodeBoard(buf)
	require.NoError(t, err)
	assert.Equal(t, b.String(), decoded.String())
	assert.Equal(t, b.MineCount(), decoded.MineCount())
	assert.Equal(t, b.RemainingFlags(), decoded.RemainingFlags())
	assert.Equal(t, b.Status(), decoded.Status())
	assert.Equal(t, b.content, decoded.content)
}

func TestBoardAsGobField(t *testing.T) {
	type wrapper struct {
		Board *Board
		Moves int
	}
	b := mustLayout(t, 2, 2, Coord{1, 1})

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(wrapper{b, 3}))

	var w wrapper
	require.NoError(t, gob.NewDecoder(&buf).Decode(&w))
	assert.Equal(t, 3, w.Moves)
	assert.Equal(t, b.String(), w.Board.String())
}

func TestDecodeBoardRejectsMalformed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(boardState{
		Rows: 2, Cols: 2, MineCount: 1,
		Content:    make([]Content, 3),
		Visibility: make([]Visibility, 3),
	}))
	_, err := DecodeBoard(buf.Bytes())
	assert.Error(t, err)

	_, err = DecodeBoard([]byte("garbage"))
	assert.Error(t, err)
}
