package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove marks a move that is well formed but not legal in the
	// current state. The seat is asked again.
	ErrInvalidMove = errors.New("invalid move")

	// ErrMalformedMove is returned when a Move cannot be constructed at all
	ErrMalformedMove = errors.New("malformed move")

	// ErrInvalidConfig is returned by NewGame and Config.Validate
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMatchFinished is returned when a round is requested but fewer than
	// two seats can still play
	ErrMatchFinished = errors.New("match finished")
)

// MoveError describes why a move was rejected. Reason is written for the
// agent that proposed the move and is fed back on its next attempt.
type MoveError struct {
	Seat   int
	Move   Move
	Reason string
}

func (e *MoveError) Error() string { return e.Reason }

func (e *MoveError) Unwrap() error { return ErrInvalidMove }

func rejectf(seat int, m Move, format string, args ...any) error {
	return &MoveError{Seat: seat, Move: m, Reason: fmt.Sprintf(format, args...)}
}
