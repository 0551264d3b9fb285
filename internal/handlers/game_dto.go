package handlers

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/render"
	"github.com/vancomm/minesweeper/internal/sessions"
)

// MaxBoardSize caps the number of squares a client may ask for.
const MaxBoardSize = 100 * 100

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type CreateNewGameDTO struct {
	Width     int    `schema:"width"`
	Height    int    `schema:"height"`
	MineCount int    `schema:"mine_count"`
	Level     string `schema:"level"`
	Mines     string `schema:"mines"`
	GuessMode bool   `schema:"guess_mode"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func parseIndices(s string) ([]int, error) {
	var indices []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		i, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("mine index %q is not an int", field)
		}
		indices = append(indices, i)
	}
	return indices, nil
}

// Session builds the game the client asked for. A level wins over explicit
// dimensions, and a mine list wins over a mine count.
func (dto CreateNewGameDTO) Session(r *rand.Rand) (*mines.Session, error) {
	var opts []mines.Option
	if dto.GuessMode {
		opts = append(opts, mines.WithGuessMode())
	}

	if dto.Level != "" {
		params, err := mines.ParseLevel(dto.Level)
		if err != nil {
			return nil, err
		}
		return params.NewSession(r, opts...)
	}

	if dto.Width > 0 && dto.Height > 0 && dto.Width > MaxBoardSize/dto.Height {
		return nil, fmt.Errorf(
			"board of %dx%d squares is larger than %d: %w",
			dto.Width, dto.Height, MaxBoardSize, mines.ErrOutOfRange,
		)
	}

	if dto.Mines != "" {
		indices, err := parseIndices(dto.Mines)
		if err != nil {
			return nil, err
		}
		return mines.NewSession(dto.Width, dto.Height, mines.FixedPattern{Indices: indices}, opts...)
	}

	params := mines.GameParams{Width: dto.Width, Height: dto.Height, MineCount: dto.MineCount}
	return params.NewSession(r, opts...)
}

type MoveDTO struct {
	X    int    `schema:"x,required"`
	Y    int    `schema:"y,required"`
	Move string `schema:"move"`
}

func ParseMoveDTO(src map[string][]string) (mines.Move, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return mines.Move{}, err
	}
	if dto.Move == "" {
		dto.Move = mines.ModeReveal.String()
	}
	mode, err := mines.ParseMode(dto.Move)
	if err != nil {
		return mines.Move{}, err
	}
	return mines.Move{X: dto.X, Y: dto.Y, Mode: mode}, nil
}

type GameSessionDTO struct {
	GameSessionId string             `json:"game_session_id"`
	Token         string             `json:"token,omitempty"`
	Status        mines.Status       `json:"status"`
	Width         int                `json:"width"`
	Height        int                `json:"height"`
	MineCount     int                `json:"mine_count"`
	Remaining     int                `json:"remaining"`
	GuessMode     bool               `json:"guess_mode"`
	Grid          []mines.CellStatus `json:"grid"`
	Board         string             `json:"board"`
	StartedAt     int64              `json:"started_at"`
	EndedAt       *int64             `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(id string, s sessions.State) *GameSessionDTO {
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	board := render.View(s.View)
	if s.Solution != nil {
		board = render.Final(s.View, *s.Solution)
	}
	return &GameSessionDTO{
		GameSessionId: id,
		Status:        s.Status,
		Width:         s.Width,
		Height:        s.Height,
		MineCount:     s.MineCount,
		Remaining:     s.Remaining,
		GuessMode:     s.GuessMode,
		Grid:          s.View.Cells,
		Board:         render.Text(board, render.Options{}),
		StartedAt:     s.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}

// SolutionDTO is the true board: -1 for a mine, the neighbour count otherwise.
type SolutionDTO struct {
	GameSessionId string       `json:"game_session_id"`
	Status        mines.Status `json:"status"`
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	Grid          []mines.Cell `json:"grid"`
	Board         string       `json:"board"`
}

func NewSolutionDTO(id string, s sessions.State) *SolutionDTO {
	return &SolutionDTO{
		GameSessionId: id,
		Status:        s.Status,
		Width:         s.Width,
		Height:        s.Height,
		Grid:          s.Solution.Cells,
		Board:         render.Text(render.Solution(*s.Solution), render.Options{}),
	}
}

type HintDTO struct {
	Found bool `json:"found"`
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Mine  bool `json:"mine"`
}
