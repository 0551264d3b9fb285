package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/render"
)

var (
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	wonStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	lostStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

type model struct {
	params mines.GameParams
	opts   []mines.Option
	rnd    *rand.Rand
	log    *logrus.Logger

	game   *mines.Session
	cursor mines.Point
	games  int
	err    error
	note   string
}

func newModel(
	params mines.GameParams,
	opts []mines.Option,
	rnd *rand.Rand,
	log *logrus.Logger,
) (model, error) {
	m := model{params: params, opts: opts, rnd: rnd, log: log}
	return m.newGame()
}

func (m model) newGame() (model, error) {
	game, err := m.params.NewSession(m.rnd, m.opts...)
	if err != nil {
		return m, err
	}
	m.game = game
	m.games++
	m.err = nil
	m.note = ""
	m.log.WithFields(logrus.Fields{
		"game":   m.games,
		"params": m.params.Seed(),
		"guess":  game.GuessMode(),
	}).Info("new game")
	return m, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) move(dx, dy int) model {
	x, y := m.cursor.X+dx, m.cursor.Y+dy
	if m.game.Width() > 0 && m.game.Height() > 0 {
		m.cursor.X = min(max(x, 0), m.game.Width()-1)
		m.cursor.Y = min(max(y, 0), m.game.Height()-1)
	}
	return m
}

func (m model) apply(mode mines.Mode) model {
	move := mines.Move{X: m.cursor.X, Y: m.cursor.Y, Mode: mode}
	status, err := m.game.Apply(move)
	m.err = err
	fields := logrus.Fields{
		"game":   m.games,
		"move":   mode.String(),
		"square": m.cursor.String(),
		"status": status.String(),
	}
	if err != nil {
		m.log.WithFields(fields).WithError(err).Warn("move rejected")
	} else if status.Over() {
		m.log.WithFields(fields).Info("game over")
	} else {
		m.log.WithFields(fields).Debug("move")
	}
	return m
}

// hint moves the cursor to a square the clues decide.
func (m model) hint() model {
	h, ok := m.game.Hint()
	if !ok {
		m.note = "no safe deduction, time to guess"
		return m
	}
	m.cursor = h.Point
	if h.Mine {
		m.note = fmt.Sprintf("%s is a mine", h.Point)
	} else {
		m.note = fmt.Sprintf("%s is safe", h.Point)
	}
	m.log.WithFields(logrus.Fields{"game": m.games, "hint": m.note}).Debug("hint")
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.note = ""

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m = m.move(0, -1)
	case "down", "j":
		m = m.move(0, 1)
	case "left", "h":
		m = m.move(-1, 0)
	case "right", "l":
		m = m.move(1, 0)
	case " ", "enter":
		m = m.apply(mines.ModeReveal)
	case "f":
		m = m.apply(mines.ModeFlag)
	case "?":
		if !m.game.Status().Over() {
			m = m.hint()
		}
	case "n":
		if !m.game.Status().Over() {
			break
		}
		next, err := m.newGame()
		if err != nil {
			m.err = err
			break
		}
		m = next
	}
	return m, nil
}

func (m model) board() mines.Grid[string] {
	view := m.game.Snapshot()
	if m.game.Status().Over() {
		return render.Final(view, m.game.Solution())
	}
	return render.View(view)
}

func (m model) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d, %d mines, %d safe squares left\n\n",
		m.game.Width(), m.game.Height(), m.game.MineCount(), m.game.Remaining())

	over := m.game.Status().Over()
	b.WriteString(render.Text(m.board(), render.Options{
		Axes: true,
		Decorate: func(p mines.Point, glyph string) string {
			if !over && p == m.cursor {
				return cursorStyle.Render(glyph)
			}
			return glyph
		},
	}))
	b.WriteString("\n")

	switch m.game.Status() {
	case mines.Won:
		b.WriteString(wonStyle.Render("You won!"))
	case mines.Lost:
		b.WriteString(lostStyle.Render("You hit a mine."))
	default:
		fmt.Fprintf(&b, "cursor at %s", m.cursor)
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.note != "" {
		b.WriteString(m.note)
		b.WriteString("\n")
	}

	if over {
		b.WriteString(helpStyle.Render("n: new game • q: quit"))
	} else {
		b.WriteString(helpStyle.Render("arrows/hjkl: move • space: reveal • f: flag • ?: hint • q: quit"))
	}
	b.WriteString("\n")
	return b.String()
}
