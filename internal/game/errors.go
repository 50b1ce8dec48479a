package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the recoverable validation failures of Apply. None of
// them leaves the state modified.
type ErrorKind int

const (
	// NotYourTurn: the submitting player does not own the current turn.
	NotYourTurn ErrorKind = iota + 1
	// IllegalRaiseSize: a raise increment below the minimum raise.
	IllegalRaiseSize
	// GameAlreadyComplete: the match has finished.
	GameAlreadyComplete
)

var (
	ErrNotYourTurn         = errors.New("not your turn")
	ErrIllegalRaiseSize    = errors.New("illegal raise size")
	ErrGameAlreadyComplete = errors.New("game already complete")
	ErrInvalidConfig       = errors.New("invalid match config")
)

func (k ErrorKind) String() string {
	switch k {
	case NotYourTurn:
		return "NotYourTurn"
	case IllegalRaiseSize:
		return "IllegalRaiseSize"
	case GameAlreadyComplete:
		return "GameAlreadyComplete"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case NotYourTurn:
		return ErrNotYourTurn
	case IllegalRaiseSize:
		return ErrIllegalRaiseSize
	case GameAlreadyComplete:
		return ErrGameAlreadyComplete
	default:
		return nil
	}
}

// ActionError is returned by Apply when a submission is rejected. It unwraps
// to the matching sentinel so callers can use errors.Is.
type ActionError struct {
	Kind     ErrorKind
	PlayerID string
	Detail   string
}

func (e *ActionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: player %q", e.Kind.sentinel(), e.PlayerID)
	}
	return fmt.Sprintf("%s: player %q: %s", e.Kind.sentinel(), e.PlayerID, e.Detail)
}

func (e *ActionError) Unwrap() error {
	return e.Kind.sentinel()
}

func reject(kind ErrorKind, playerID, format string, args ...any) error {
	return &ActionError{Kind: kind, PlayerID: playerID, Detail: fmt.Sprintf(format, args...)}
}
