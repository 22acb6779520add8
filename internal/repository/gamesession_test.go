package repository

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestSetClause(t *testing.T) {
	status := "won"
	ended := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	state := []byte{1, 2, 3}

	clause, args := UpdateGameSessionParams{
		Status: &status, EndedAt: &ended, State: &state,
	}.SetClause()

	assert.Equal(t, "updated_at = now(), status = @status, ended_at = @ended_at, state = @state", clause)
	assert.Equal(t, pgx.NamedArgs{"status": "won", "ended_at": ended, "state": state}, args)
}

func TestSetClauseOnlyTouchesUpdatedAt(t *testing.T) {
	clause, args := UpdateGameSessionParams{}.SetClause()
	assert.Equal(t, "updated_at = now()", clause)
	assert.Empty(t, args)
}
