package handlers

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-hint/internal/config"
	"github.com/vancomm/minesweeper-hint/internal/game"
	"github.com/vancomm/minesweeper-hint/internal/metrics"
	"github.com/vancomm/minesweeper-hint/internal/middleware"
	"github.com/vancomm/minesweeper-hint/internal/mines"
	"github.com/vancomm/minesweeper-hint/internal/ratelimit"
	"github.com/vancomm/minesweeper-hint/internal/repository"
)

var (
	ErrForbidden       = errors.New("game session belongs to another player")
	ErrHintRateLimited = errors.New("hint rate limit exceeded")
)

type SessionStore interface {
	CreateGameSession(context.Context, repository.CreateGameSessionParams) (*repository.GameSession, error)
	FetchGameSession(ctx context.Context, gameSessionId int64) (*repository.GameSession, error)
	UpdateGameSession(ctx context.Context, gameSessionId int64, params repository.UpdateGameSessionParams) (*repository.GameSession, error)
}

type GameHandler struct {
	log     logrus.FieldLogger
	store   SessionStore
	ws      *config.WebSocket
	limiter ratelimit.Limiter
	now     func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGameHandler(
	log logrus.FieldLogger,
	store SessionStore,
	ws *config.WebSocket,
	limiter ratelimit.Limiter,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:     log,
		store:   store,
		ws:      ws,
		limiter: limiter,
		now:     func() time.Time { return time.Now().UTC() },
		rnd:     rnd,
	}
}

// statusFor maps session and engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, mines.ErrInvalidCoordinate),
		errors.Is(err, mines.ErrInvalidDimensions),
		errors.Is(err, mines.ErrInvalidMineCount):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (g *GameHandler) logger(r *http.Request) logrus.FieldLogger {
	return middleware.RequestLogger(r.Context(), g.log)
}

func (g *GameHandler) newSession(d mines.Difficulty) (*game.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return game.New(d, g.rnd, g.now())
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	log := g.logger(r)

	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, log, http.StatusBadRequest, err)
		return
	}
	difficulty, err := dto.Resolve()
	if err != nil {
		sendErrorOrLog(w, log, http.StatusBadRequest, err)
		return
	}

	session, err := g.newSession(difficulty)
	if err != nil {
		log.WithError(err).Error("unable to generate a new game")
		sendErrorOrLog(w, log, statusFor(err), err)
		return
	}
	state, err := session.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to encode game session")
		return
	}

	params := repository.CreateGameSessionParams{
		Rows:      difficulty.Rows,
		Cols:      difficulty.Cols,
		MineCount: difficulty.Mines,
		Status:    session.Status.String(),
		State:     state,
		StartedAt: session.StartedAt,
	}
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		params.PlayerId = &claims.PlayerId
	}
	record, err := g.store.CreateGameSession(r.Context(), params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to create game session")
		return
	}

	metrics.GamesStarted.WithLabelValues(difficultyLabel(dto.Difficulty)).Inc()
	log.WithFields(logrus.Fields{
		"gameSessionId": record.GameSessionId,
		"difficulty":    difficulty.String(),
	}).Info("new game")

	sendJSONOrLog(w, log, http.StatusCreated, NewGameSessionDTO(record.GameSessionId, session))
}

func difficultyLabel(name string) string {
	switch name = strings.ToLower(name); name {
	case "":
		return "beginner"
	case "beginner", "intermediate", "expert", "custom":
		return name
	default:
		return "other"
	}
}

// load fetches and decodes the session named in the path. It writes the
// error response itself and reports whether the caller may proceed.
func (g *GameHandler) load(w http.ResponseWriter, r *http.Request) (*repository.GameSession, *game.Session, bool) {
	log := g.logger(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendErrorOrLog(w, log, http.StatusBadRequest, fmt.Errorf("invalid game session id %q", r.PathValue("id")))
		return nil, nil, false
	}
	record, session, err := g.fetch(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).WithField("gameSessionId", id).Error("unable to load game session")
		return nil, nil, false
	}
	return record, session, true
}

func (g *GameHandler) fetch(ctx context.Context, id int64) (*repository.GameSession, *game.Session, error) {
	record, err := g.store.FetchGameSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	session, err := game.Decode(record.State)
	if err != nil {
		return nil, nil, fmt.Errorf("stored game session is corrupt: %w", err)
	}
	return record, session, nil
}

// authorize rejects changes to a session owned by someone other than the
// caller. Anonymous sessions accept anyone.
func authorize(r *http.Request, record *repository.GameSession) error {
	if record.PlayerId == nil {
		return nil
	}
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok || claims.PlayerId != *record.PlayerId {
		return ErrForbidden
	}
	return nil
}

// save persists the session and counts games that just finished.
func (g *GameHandler) save(
	ctx context.Context, record *repository.GameSession, session *game.Session,
) error {
	state, err := session.Bytes()
	if err != nil {
		return fmt.Errorf("unable to encode game session: %w", err)
	}
	status := session.Status.String()
	params := repository.UpdateGameSessionParams{
		Status: &status,
		State:  &state,
	}
	if session.Over() {
		params.EndedAt = &session.EndedAt
	}
	if _, err := g.store.UpdateGameSession(ctx, record.GameSessionId, params); err != nil {
		return fmt.Errorf("unable to update game session: %w", err)
	}
	if session.Over() && record.Status != status {
		metrics.GamesFinished.WithLabelValues(status).Inc()
	}
	record.Status = status
	record.State = state
	return nil
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	record, session, ok := g.load(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger(r), http.StatusOK, NewGameSessionDTO(record.GameSessionId, session))
}

func (g *GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	log := g.logger(r)

	move, dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, log, http.StatusBadRequest, err)
		return
	}
	record, session, ok := g.load(w, r)
	if !ok {
		return
	}
	if err := authorize(r, record); err != nil {
		sendErrorOrLog(w, log, statusFor(err), err)
		return
	}
	if err := move.apply(session, dto.Row, dto.Col, g.now()); err != nil {
		sendErrorOrLog(w, log, statusFor(err), err)
		return
	}
	if err := g.save(r.Context(), record, session); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to save move")
		return
	}
	sendJSONOrLog(w, log, http.StatusOK, NewGameSessionDTO(record.GameSessionId, session))
}

func (g *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	log := g.logger(r)

	record, session, ok := g.load(w, r)
	if !ok {
		return
	}
	if err := authorize(r, record); err != nil {
		sendErrorOrLog(w, log, statusFor(err), err)
		return
	}
	if !g.limiter.Allow(r.Context(), "hint:"+strconv.FormatInt(record.GameSessionId, 10)) {
		metrics.HintsLimited.Inc()
		sendErrorOrLog(w, log, http.StatusTooManyRequests, ErrHintRateLimited)
		return
	}
	hint, found, err := session.Hint(g.now())
	if err != nil {
		sendErrorOrLog(w, log, statusFor(err), err)
		return
	}
	if !found {
		sendJSONOrLog(w, log, http.StatusOK, HintDTO{})
		return
	}
	if err := g.save(r.Context(), record, session); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to save hint usage")
		return
	}
	metrics.HintsServed.WithLabelValues(string(hint.Confidence)).Inc()
	sendJSONOrLog(w, log, http.StatusOK, HintDTO{Hint: &hint})
}

func (g *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	log := g.logger(r)

	record, session, ok := g.load(w, r)
	if !ok {
		return
	}
	if err := authorize(r, record); err != nil {
		sendErrorOrLog(w, log, statusFor(err), err)
		return
	}
	if err := session.Forfeit(g.now()); err != nil {
		sendErrorOrLog(w, log, statusFor(err), err)
		return
	}
	if err := g.save(r.Context(), record, session); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to save forfeit")
		return
	}
	sendJSONOrLog(w, log, http.StatusOK, NewGameSessionDTO(record.GameSessionId, session))
}
