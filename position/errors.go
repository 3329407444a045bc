package position

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching. The concrete error types below unwrap to them.
var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrEmptySquare   = errors.New("empty square")
	ErrInvalidColor  = errors.New("invalid color")
	ErrMalformedFEN  = errors.New("malformed FEN")
)

// InvalidSquareError reports square text that does not name one of a1..h8.
type InvalidSquareError struct {
	Input string
}

func (e *InvalidSquareError) Error() string {
	return fmt.Sprintf("invalid square %q", e.Input)
}

func (e *InvalidSquareError) Is(target error) bool { return target == ErrInvalidSquare }

// EmptySquareError reports a query against a square that holds no piece.
type EmptySquareError struct {
	Square Square
}

func (e *EmptySquareError) Error() string {
	return fmt.Sprintf("no piece on square %s", e.Square)
}

func (e *EmptySquareError) Is(target error) bool { return target == ErrEmptySquare }

// InvalidColorError reports color text other than "white" or "black".
type InvalidColorError struct {
	Input string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color %q: must be white or black", e.Input)
}

func (e *InvalidColorError) Is(target error) bool { return target == ErrInvalidColor }

// MalformedFENError is returned when a FEN string cannot be turned into a board.
type MalformedFENError struct {
	FEN string
	Err error
}

func (e *MalformedFENError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed FEN %q", e.FEN)
	}
	return fmt.Sprintf("malformed FEN %q: %v", e.FEN, e.Err)
}

func (e *MalformedFENError) Unwrap() error { return e.Err }

func (e *MalformedFENError) Is(target error) bool { return target == ErrMalformedFEN }

// ErrIllegalMove is returned when a move is not legal in the given position.
var ErrIllegalMove = errors.New("illegal move")
