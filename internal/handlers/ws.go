package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/sessions"
)

type wsCommand string

const (
	wsGet    wsCommand = "g"
	wsReveal wsCommand = "r"
	wsOpen   wsCommand = "o"
	wsFlag   wsCommand = "f"
)

var ErrUnknownCommand = errors.New("unknown command")

func parseXY(args []string) (x int, y int, err error) {
	if len(args) != 2 {
		err = fmt.Errorf("expected 2 coordinates, got %d", len(args))
		return
	}
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

// parseCommand reads one line of the socket protocol. A nil move means the
// client only asked for the current state.
func parseCommand(line string) (*mines.Move, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, ErrUnknownCommand
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]

	var mode mines.Mode
	switch cmd {
	case wsGet:
		return nil, nil
	case wsReveal, wsOpen:
		mode = mines.ModeReveal
	case wsFlag:
		mode = mines.ModeFlag
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, cmd)
	}

	x, y, err := parseXY(args)
	if err != nil {
		return nil, err
	}
	return &mines.Move{X: x, Y: y, Mode: mode}, nil
}

// execute runs every line of one message and stops at the first failure.
func (g *GameHandler) execute(e *sessions.Entry, message string) (sessions.State, error) {
	var (
		state sessions.State
		moved bool
	)
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		move, err := parseCommand(line)
		if err != nil {
			return state, err
		}
		if move == nil {
			continue
		}
		state, err = g.apply(e, *move)
		if err != nil {
			return state, err
		}
		moved = true
	}
	if !moved {
		state = e.Peek()
	}
	return state, nil
}

func (g *GameHandler) wsRunGameLoop(conn *websocket.Conn, e *sessions.Entry) error {
	conn.SetReadLimit(g.ws.ReadLimit)
	for {
		conn.SetReadDeadline(time.Now().Add(g.ws.IdleLimit))
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		e.Touch()
		if _, err := g.sessions.Get(e.ID); err != nil {
			if werr := conn.WriteJSON(wrapError(err)); werr != nil {
				return fmt.Errorf("unable to write json: %w", werr)
			}
			return err
		}
		if mt != websocket.TextMessage {
			continue
		}

		state, err := g.execute(e, string(buf))
		if err != nil {
			g.logger.Debug("rejected ws command", slog.Any("error", err))
			if err := conn.WriteJSON(wrapError(err)); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
			continue
		}

		if err := conn.WriteJSON(NewGameSessionDTO(e.ID, state)); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	e, err := g.entry(r)
	if err != nil {
		g.sendError(w, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	g.logger.Debug("established WS connection", slog.String("id", e.ID))

	err = g.wsRunGameLoop(conn, e)
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return
	}
	if errors.Is(err, sessions.ErrNotFound) {
		g.logger.Debug("ws session went away", slog.String("id", e.ID))
		return
	}
	g.logger.Warn("error in ws loop", slog.Any("error", err))
}
