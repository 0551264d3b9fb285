package mines

import (
	"fmt"
	"log/slog"
	"strings"
)

var Log *slog.Logger = slog.Default()

type Status int

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Status) Over() bool {
	return s != Playing
}

type Mode uint8

const (
	ModeReveal Mode = iota + 1
	ModeFlag
)

func (m Mode) String() string {
	switch m {
	case ModeReveal:
		return "reveal"
	case ModeFlag:
		return "flag"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "reveal", "open":
		return ModeReveal, nil
	case "flag":
		return ModeFlag, nil
	default:
		return 0, fmt.Errorf("move %q must be 'reveal' or 'flag': %w", s, ErrInvalidMove)
	}
}

type Move struct {
	X, Y int
	Mode Mode
}

// Session is one game: a board with its mines placed and counted, and the
// state machine driven by the player's moves. A Session is not safe for
// concurrent use.
type Session struct {
	board     *Board
	status    Status
	guessMode bool
}

type Option func(*Session)

// WithGuessMode makes flag moves binding: flagging a mine marks it as found,
// flagging a safe square opens it.
func WithGuessMode() Option {
	return func(s *Session) {
		s.guessMode = true
	}
}

func NewSession(width, height int, policy MinePolicy, opts ...Option) (*Session, error) {
	board, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	if err := policy.Place(board); err != nil {
		return nil, err
	}
	Annotate(board)

	s := &Session{board: board, status: Playing}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) Status() Status  { return s.status }
func (s *Session) Width() int      { return s.board.width }
func (s *Session) Height() int     { return s.board.height }
func (s *Session) MineCount() int  { return s.board.mines }
func (s *Session) GuessMode() bool { return s.guessMode }

// Remaining is the number of safe squares still covered.
func (s *Session) Remaining() int { return s.board.safeLeft }

func (s *Session) Reveal(x, y int) (Status, error) {
	return s.Apply(Move{X: x, Y: y, Mode: ModeReveal})
}

func (s *Session) Flag(x, y int) (Status, error) {
	return s.Apply(Move{X: x, Y: y, Mode: ModeFlag})
}

// Apply runs one move to completion. A rejected move leaves the session
// untouched.
func (s *Session) Apply(m Move) (Status, error) {
	if s.status.Over() {
		return s.status, ErrSessionOver
	}
	i, err := s.board.Index(m.X, m.Y)
	if err != nil {
		return s.status, err
	}

	switch m.Mode {
	case ModeReveal:
		s.open(i)
	case ModeFlag:
		if s.guessMode {
			s.guess(i)
		} else {
			s.board.toggleFlag(i)
		}
	default:
		return s.status, fmt.Errorf("mode %d: %w", m.Mode, ErrInvalidMove)
	}
	return s.status, nil
}

func (s *Session) open(i int) {
	if s.board.reveal(i) {
		s.status = Lost
		Log.Debug("mine hit", "at", s.board.Point(i))
		return
	}
	if s.board.safeLeft == 0 {
		s.status = Won
		Log.Debug("board cleared", "mines", s.board.mines)
	}
}

func (s *Session) guess(i int) {
	b := s.board
	if b.status[i].Revealed() {
		return
	}
	if b.cells[i] == Mine {
		b.status[i] = RevealedMine
		return
	}
	s.open(i)
}

// Grid is a read-only copy of one layer of the board, indexed like the
// board itself.
type Grid[T any] struct {
	Width, Height int
	Cells         []T
}

// At returns the cell at (x, y). Both must be in range; it does not check
// and panics or reads the wrong row otherwise. Check with Board.InBounds first.
func (g Grid[T]) At(x, y int) T {
	return g.Cells[x+y*g.Width]
}

// Snapshot copies the player's view of the board.
func (s *Session) Snapshot() Grid[CellStatus] {
	cells := make([]CellStatus, len(s.board.status))
	copy(cells, s.board.status)
	return Grid[CellStatus]{s.board.width, s.board.height, cells}
}

// Solution copies the true board. Presenters show it once the game is over.
func (s *Session) Solution() Grid[Cell] {
	cells := make([]Cell, len(s.board.cells))
	copy(cells, s.board.cells)
	return Grid[Cell]{s.board.width, s.board.height, cells}
}
