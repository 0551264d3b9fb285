package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	level   = flag.String("level", "", "beginner, medium, advanced or expert (or 1 to 4)")
	board   = flag.String("params", "", "board as width:height:mines, overrides the level")
	width   = flag.Int("width", 0, "board width, overrides the level")
	height  = flag.Int("height", 0, "board height, overrides the level")
	count   = flag.Int("mines", -1, "number of mines, overrides the level")
	seed    = flag.Uint64("seed", 0, "seed for reproducible boards, 0 picks one at random")
	guess   = flag.Bool("guess", false, "flagging a mine reveals it, flagging a safe square opens it")
	logFile = flag.String("log", "", "write logs to this file, rotated")
)

// newLogger keeps the terminal for the game: entries go to a rotated file
// or nowhere.
func newLogger(filename string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.DebugLevel)
	if filename == "" {
		log.SetLevel(logrus.PanicLevel)
		return log, nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   filename,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	log.AddHook(hook)
	return log, nil
}

func gameParams() (mines.GameParams, error) {
	params := mines.Levels[mines.Beginner]
	if *level != "" {
		var err error
		if params, err = mines.ParseLevel(*level); err != nil {
			return params, err
		}
	}
	if *board != "" {
		p, err := mines.ParseSeed(*board)
		if err != nil {
			return params, err
		}
		params = *p
	}
	if *width > 0 {
		params.Width = *width
	}
	if *height > 0 {
		params.Height = *height
	}
	if *count >= 0 {
		params.MineCount = *count
	}
	return params, nil
}

func run() error {
	flag.Parse()

	log, err := newLogger(*logFile)
	if err != nil {
		return err
	}

	engineLog := log.WriterLevel(logrus.DebugLevel)
	defer engineLog.Close()
	mines.Log = slog.New(slog.NewTextHandler(engineLog, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	params, err := gameParams()
	if err != nil {
		return err
	}

	rnd := mines.NewRand()
	if *seed != 0 {
		rnd = rand.New(rand.NewPCG(*seed, *seed))
	}

	var opts []mines.Option
	if *guess {
		opts = append(opts, mines.WithGuessMode())
	}

	m, err := newModel(params, opts, rnd, log)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "sweep:", err)
		os.Exit(1)
	}
}
