package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/metrics"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/sessions"
)

var (
	ErrUnauthorized   = fmt.Errorf("missing or foreign session token")
	ErrGameInProgress = fmt.Errorf("game is still in progress")
)

// statusCode maps a handler error onto an HTTP status. Engine errors are all
// caused by the request, so anything unrecognised is a bad request.
func statusCode(err error) int {
	switch {
	case errors.Is(err, sessions.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sessions.ErrFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, mines.ErrSessionOver), errors.Is(err, ErrGameInProgress):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

type GameHandler struct {
	logger   *slog.Logger
	sessions *sessions.Registry
	jwt      *config.JWT
	ws       *config.WebSocket

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	registry *sessions.Registry,
	jwt *config.JWT,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger:   logger,
		sessions: registry,
		jwt:      jwt,
		ws:       ws,
		rnd:      rnd,
	}
}

// newRand forks a generator for one game; rand.Rand is not safe to share.
func (g *GameHandler) newRand() *rand.Rand {
	g.rndMu.Lock()
	defer g.rndMu.Unlock()
	return rand.New(rand.NewPCG(g.rnd.Uint64(), g.rnd.Uint64()))
}

func (g *GameHandler) sendError(w http.ResponseWriter, err error) {
	sendStatusJSONOrLog(w, g.logger, statusCode(err), wrapError(err))
}

// entry resolves the {id} path variable and checks that the request carries
// that session's token.
func (g *GameHandler) entry(r *http.Request) (*sessions.Entry, error) {
	id := mux.Vars(r)["id"]
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok || claims.SessionId() != id {
		return nil, ErrUnauthorized
	}
	return g.sessions.Get(id)
}

// apply plays one move and keeps the metrics current.
func (g *GameHandler) apply(e *sessions.Entry, m mines.Move) (sessions.State, error) {
	var before mines.Status
	state, err := e.Do(func(s *mines.Session) error {
		before = s.Status()
		_, err := s.Apply(m)
		return err
	})

	result := state.Status.String()
	if err != nil {
		result = "error"
	}
	metrics.Moves.WithLabelValues(m.Mode.String(), result).Inc()

	if !before.Over() && state.Status.Over() {
		metrics.GamesFinished.WithLabelValues(state.Status.String()).Inc()
		g.logger.Debug(
			"game over",
			slog.String("id", e.ID),
			slog.String("status", state.Status.String()),
		)
	}
	return state, err
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query())
	if err != nil {
		g.sendError(w, err)
		return
	}

	game, err := dto.Session(g.newRand())
	if err != nil {
		g.sendError(w, err)
		return
	}

	e, err := g.sessions.Add(game)
	if err != nil {
		g.logger.Warn("unable to register session", slog.Any("error", err))
		g.sendError(w, err)
		return
	}

	token, err := g.jwt.Sign(g.jwt.NewSessionClaims(e.ID))
	if err != nil {
		g.sessions.Remove(e.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to sign session token", slog.Any("error", err))
		return
	}

	metrics.GamesStarted.Inc()

	g.logger.Debug(
		"created game",
		slog.String("id", e.ID),
		slog.Int("width", game.Width()),
		slog.Int("height", game.Height()),
		slog.Int("mines", game.MineCount()),
	)

	result := NewGameSessionDTO(e.ID, e.Peek())
	result.Token = token
	sendStatusJSONOrLog(w, g.logger, http.StatusCreated, result)
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	e, err := g.entry(r)
	if err != nil {
		g.sendError(w, err)
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(e.ID, e.Peek()))
}

func (g *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	e, err := g.entry(r)
	if err != nil {
		g.sendError(w, err)
		return
	}

	move, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		g.sendError(w, err)
		return
	}

	state, err := g.apply(e, move)
	if err != nil {
		g.sendError(w, err)
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(e.ID, state))
}

func (g *GameHandler) Solution(w http.ResponseWriter, r *http.Request) {
	e, err := g.entry(r)
	if err != nil {
		g.sendError(w, err)
		return
	}

	state := e.Peek()
	if state.Solution == nil {
		g.sendError(w, ErrGameInProgress)
		return
	}
	sendJSONOrLog(w, g.logger, NewSolutionDTO(e.ID, state))
}

func (g *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	e, err := g.entry(r)
	if err != nil {
		g.sendError(w, err)
		return
	}

	var result HintDTO
	state, _ := e.Do(func(s *mines.Session) error {
		if h, ok := s.Hint(); ok {
			result = HintDTO{Found: true, X: h.X, Y: h.Y, Mine: h.Mine}
		}
		return nil
	})
	if state.Status.Over() {
		g.sendError(w, mines.ErrSessionOver)
		return
	}
	sendJSONOrLog(w, g.logger, result)
}
