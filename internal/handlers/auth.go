package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweeper-hint/internal/config"
	"github.com/vancomm/minesweeper-hint/internal/middleware"
	"github.com/vancomm/minesweeper-hint/internal/repository"
)

type PlayerStore interface {
	CreatePlayer(context.Context, repository.CreatePlayerParams) (*repository.Player, error)
	FetchPlayer(ctx context.Context, username string) (*repository.Player, error)
}

type Auth struct {
	log     logrus.FieldLogger
	store   PlayerStore
	cookies *config.Cookies
}

func NewAuth(log logrus.FieldLogger, store PlayerStore, cookies *config.Cookies) *Auth {
	return &Auth{
		log:     log,
		store:   store,
		cookies: cookies,
	}
}

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

var (
	ErrBadAuthBody        = errors.New("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = errors.New("password too long")
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func (a *Auth) Status(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(r.Context(), a.log)

	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		log.Debug("no valid auth cookies, clearing")
		a.cookies.Clear(w)
		sendJSONOrLog(w, log, http.StatusOK, Status{LoggedIn: false})
		return
	}
	if err := a.cookies.Refresh(w, claims); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to refresh auth cookies")
		return
	}
	sendJSONOrLog(w, log, http.StatusOK, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerId, claims.Username},
	})
}

func credentials(r *http.Request) (username, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", ErrBadAuthBody
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" {
		return "", "", ErrBadAuthBody
	}
	if len(password) > maxPasswordBytes {
		return "", "", ErrBadPasswordTooLong
	}
	return username, password, nil
}

func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(r.Context(), a.log)

	username, password, err := credentials(r)
	if err != nil {
		sendErrorOrLog(w, log, http.StatusBadRequest, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to hash password")
		return
	}

	player, err := a.store.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendErrorOrLog(w, log, http.StatusConflict, ErrUsernameTaken)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to insert player")
		return
	}

	a.login(w, r, player)
}

func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(r.Context(), a.log)

	username, password, err := credentials(r)
	if err != nil {
		sendErrorOrLog(w, log, http.StatusBadRequest, err)
		return
	}

	player, err := a.store.FetchPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		sendErrorOrLog(w, log, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to fetch player")
		return
	}
	if err := bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password)); err != nil {
		sendErrorOrLog(w, log, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	a.login(w, r, player)
}

func (a *Auth) login(w http.ResponseWriter, r *http.Request, player *repository.Player) {
	log := middleware.RequestLogger(r.Context(), a.log)

	if err := a.cookies.Refresh(w, config.NewPlayerClaims(player.PlayerId, player.Username)); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to set auth cookies")
		return
	}
	sendJSONOrLog(w, log, http.StatusOK, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{player.PlayerId, player.Username},
	})
}

func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
