package mines

import "fmt"

var (
	ErrOutOfRange       = fmt.Errorf("out of range")
	ErrIndexOutOfRange  = fmt.Errorf("mine index %w", ErrOutOfRange)
	ErrInvalidMineCount = fmt.Errorf("invalid mine count")
	ErrInvalidMove      = fmt.Errorf("invalid move")
	ErrSessionOver      = fmt.Errorf("session over")
)
