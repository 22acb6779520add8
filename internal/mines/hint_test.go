package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, b *Board, reveal []Coord, flag []Coord) *Board {
	t.Helper()
	var err error
	for _, c := range flag {
		b, err = b.ToggleFlag(c.Row, c.Col)
		require.NoError(t, err)
	}
	for _, c := range reveal {
		b, err = b.Reveal(c.Row, c.Col)
		require.NoError(t, err)
	}
	return b
}

func TestConfidenceThresholds(t *testing.T) {
	tests := []struct {
		p    float64
		want Confidence
	}{
		{0, High},
		{0.01, Medium},
		{0.125, Medium},
		{0.29, Medium},
		{0.3, Low},
		{0.5, Low},
		{1, Low},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, ConfidenceOf(test.p), "p = %v", test.p)
	}
}

func TestSuggestForcedMine(t *testing.T) {
	b := mustLayout(t, 1, 2, Coord{0, 1})
	b = apply(t, b, []Coord{{0, 0}}, nil)

	move, ok := SuggestMove(b)
	require.True(t, ok)
	assert.Equal(t, SuggestedMove{
		Row: 0, Col: 1,
		Probability: 1,
		Confidence:  Low,
		Reason:      ReasonForcedMine,
	}, move)
}

func TestSuggestSatisfiedNeighbour(t *testing.T) {
	b := mustLayout(t, 1, 3, Coord{0, 0})
	b = apply(t, b, []Coord{{0, 1}}, []Coord{{0, 0}})

	move, ok := SuggestMove(b)
	require.True(t, ok)
	assert.Equal(t, SuggestedMove{
		Row: 0, Col: 2,
		Probability: 0,
		Confidence:  High,
		Reason:      ReasonAllFlagged,
	}, move)
}

func TestSuggestFraction(t *testing.T) {
	b := mustLayout(t, 3, 3, Coord{0, 0})
	b = apply(t, b, []Coord{{1, 1}}, nil)

	estimates := Estimate(b)
	require.Len(t, estimates, 8)
	for _, est := range estimates {
		assert.InDelta(t, 0.125, est.Probability, 1e-9)
		assert.Equal(t, "Based on adjacent cell with 1 mines", est.Reason)
	}

	move, ok := SuggestMove(b)
	require.True(t, ok)
	assert.Equal(t, 0, move.Row)
	assert.Equal(t, 0, move.Col)
	assert.Equal(t, Medium, move.Confidence)
}

func TestSuggestPrefersLowestProbability(t *testing.T) {
	// 2 3 2
	// * * *   row 1 hidden, row 2 is far away and unknown
	b := mustLayout(t, 4, 3, Coord{1, 0}, Coord{1, 1}, Coord{1, 2})
	b = apply(t, b, []Coord{{0, 0}, {0, 1}, {0, 2}}, nil)

	move, ok := SuggestMove(b)
	require.True(t, ok)
	assert.Equal(t, 2, move.Row)
	assert.Equal(t, 0, move.Col)
	assert.Equal(t, float64(0), move.Probability)
	assert.Equal(t, High, move.Confidence)
	assert.Empty(t, move.Reason)

	byCoord := map[Coord]CellProbability{}
	for _, est := range Estimate(b) {
		byCoord[est.Coord] = est
	}
	assert.Equal(t, float64(1), byCoord[Coord{1, 1}].Probability)
	assert.Equal(t, ReasonForcedMine, byCoord[Coord{1, 1}].Reason)
}

func TestSuggestFirstInRowMajorOnTies(t *testing.T) {
	b := mustLayout(t, 3, 4, Coord{2, 3})
	move, ok := SuggestMove(b)
	require.True(t, ok)
	assert.Equal(t, 0, move.Row)
	assert.Equal(t, 0, move.Col)
	assert.Equal(t, High, move.Confidence)
	assert.Empty(t, move.Reason)
}

func TestForcedMineOverridesLaterNeighbours(t *testing.T) {
	// mine at 0:1, the flag at 0:2 is wrong
	b := mustLayout(t, 2, 3, Coord{0, 1})
	b = apply(t, b,
		[]Coord{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		[]Coord{{0, 2}},
	)

	estimates := Estimate(b)
	require.Len(t, estimates, 1)
	assert.Equal(t, Coord{0, 1}, estimates[0].Coord)
	assert.Equal(t, float64(1), estimates[0].Probability)
	assert.Equal(t, ReasonForcedMine, estimates[0].Reason)
}

func TestSuggestNothingLeft(t *testing.T) {
	b := mustLayout(t, 2, 2)
	b = apply(t, b, []Coord{{0, 0}}, nil)
	_, ok := SuggestMove(b)
	assert.False(t, ok)

	b = mustLayout(t, 1, 2, Coord{0, 0})
	b = apply(t, b, []Coord{{0, 1}}, []Coord{{0, 0}})
	_, ok = SuggestMove(b)
	assert.False(t, ok)
}

func TestSuggestIgnoresGameStatus(t *testing.T) {
	b := mustLayout(t, 2, 2, Coord{0, 0})
	b = apply(t, b, []Coord{{0, 0}}, nil)
	require.Equal(t, Lost, b.Status())

	move, ok := SuggestMove(b)
	require.True(t, ok)
	assert.Equal(t, 0, move.Row)
	assert.Equal(t, 1, move.Col)
}

func TestEstimateIsReadOnly(t *testing.T) {
	b := mustLayout(t, 4, 4, Coord{0, 0}, Coord{3, 3})
	b = apply(t, b, []Coord{{1, 1}, {2, 2}}, []Coord{{0, 0}})
	before := b.String()
	flags := b.RemainingFlags()

	first, ok := SuggestMove(b)
	require.True(t, ok)
	second, ok := SuggestMove(b)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, before, b.String())
	assert.Equal(t, flags, b.RemainingFlags())
}
