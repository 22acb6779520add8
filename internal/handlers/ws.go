package handlers

import (
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-hint/internal/game"
	"github.com/vancomm/minesweeper-hint/internal/metrics"
	"github.com/vancomm/minesweeper-hint/internal/mines"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"c": 2,
	"h": 0,
	"r": 0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrCommandNargs   = errors.New("invalid number of arguments")
)

type WSResponse struct {
	Session *GameSessionDTO      `json:"session"`
	Hint    *mines.SuggestedMove `json:"hint,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// executeCommand runs one command against the session. A hint, if one was
// asked for and found, is returned.
func (g *GameHandler) executeCommand(s *game.Session, c string) (*mines.SuggestedMove, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil, nil
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return nil, ErrCommandNargs
	}

	now := g.now()
	switch parts[0] {
	case "o", "f", "c":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return nil, err
		}
		move := map[string]GameMove{"o": Open, "f": Flag, "c": Chord}[parts[0]]
		return nil, move.apply(s, row, col, now)
	case "h":
		hint, found, err := s.Hint(now)
		if err != nil || !found {
			return nil, err
		}
		metrics.HintsServed.WithLabelValues(string(hint.Confidence)).Inc()
		return &hint, nil
	case "r":
		return nil, s.Forfeit(now)
	}
	return nil, nil
}

func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	log := g.logger(r)

	record, _, ok := g.load(w, r)
	if !ok {
		return
	}
	if err := authorize(r, record); err != nil {
		sendErrorOrLog(w, log, statusFor(err), err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer c.Close()

	log = log.WithField("gameSessionId", record.GameSessionId)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		// HTTP requests may have changed the session since the last message
		current, session, err := g.fetch(r.Context(), record.GameSessionId)
		if err != nil {
			log.WithError(err).Error("unable to reload game session")
			return
		}
		record = current

		var response WSResponse
		for _, command := range byPiece(strings.TrimSpace(string(message)), "\n") {
			hint, err := g.executeCommand(session, command)
			if err != nil {
				log.WithError(err).WithField("command", command).Debug("command rejected")
				response.Error = err.Error()
				break
			}
			if hint != nil {
				response.Hint = hint
			}
		}

		if err := g.save(r.Context(), record, session); err != nil {
			log.WithError(err).Error("unable to save game session")
			return
		}
		response.Session = NewGameSessionDTO(record.GameSessionId, session)
		if err := c.WriteJSON(response); err != nil {
			log.WithError(err).Warn("write")
			return
		}
	}
}
