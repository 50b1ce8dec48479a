package game

import (
	"fmt"
	"strings"
)

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

var streetNames = [...]string{"preflop", "flop", "turn", "river", "showdown"}

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return fmt.Sprintf("street(%d)", int(s))
	}
	return streetNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Street) MarshalText() ([]byte, error) {
	if s < Preflop || s > Showdown {
		return nil, fmt.Errorf("invalid street %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Street) UnmarshalText(b []byte) error {
	for i, name := range streetNames {
		if name == string(b) {
			*s = Street(i)
			return nil
		}
	}
	return fmt.Errorf("invalid street %q", b)
}

// ActionKind is an action as the engine applies it. Submitted strings are
// mapped onto these by Normalize; "bet" is not a kind of its own.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
	AllIn
)

var actionNames = [...]string{"fold", "check", "call", "raise", "all-in"}

func (a ActionKind) String() string {
	if a < Fold || a > AllIn {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a ActionKind) MarshalText() ([]byte, error) {
	if a < Fold || a > AllIn {
		return nil, fmt.Errorf("invalid action %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the same
// spellings as ParseActionKind.
func (a *ActionKind) UnmarshalText(b []byte) error {
	kind, ok := ParseActionKind(string(b))
	if !ok {
		return fmt.Errorf("invalid action %q", b)
	}
	*a = kind
	return nil
}

// ParseActionKind maps a submitted action string onto a kind. "bet" is a
// synonym for raise. The second result is false for unrecognised strings.
func ParseActionKind(s string) (ActionKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return Fold, true
	case "check":
		return Check, true
	case "call":
		return Call, true
	case "raise", "bet":
		return Raise, true
	case "all-in", "allin", "all_in":
		return AllIn, true
	default:
		return Check, false
	}
}

// Action is one submission from a player. Kind is the raw action string as
// received; Amount is the raise increment above the bet to match and is
// ignored for other kinds. Reasoning is free text the author may attach; it
// is stored in the action log and redacted from other viewers.
type Action struct {
	PlayerID  string `json:"playerId"`
	Kind      string `json:"action"`
	Amount    int    `json:"amount,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

// Config holds the parameters of a match.
type Config struct {
	StartingChips int   `json:"startingChips"`
	SmallBlind    int   `json:"smallBlind"`
	BigBlind      int   `json:"bigBlind"`
	MaxHands      int   `json:"maxHands"`
	Seed          int64 `json:"seed"`
}

// Validate checks that the configuration describes a playable match.
func (c Config) Validate() error {
	switch {
	case c.StartingChips <= 0:
		return fmt.Errorf("%w: starting chips must be positive", ErrInvalidConfig)
	case c.SmallBlind <= 0:
		return fmt.Errorf("%w: small blind must be positive", ErrInvalidConfig)
	case c.BigBlind < c.SmallBlind:
		return fmt.Errorf("%w: big blind must be at least the small blind", ErrInvalidConfig)
	case c.MaxHands < 1:
		return fmt.Errorf("%w: max hands must be at least 1", ErrInvalidConfig)
	}
	return nil
}
