package poker

import (
	"fmt"
	"strings"
)

// Rank is a card rank from Two (2) through Ace (14).
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankChars = "23456789TJQKA"

// String returns the single-character rank notation.
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Name returns the rank's English name, e.g. "King".
func (r Rank) Name() string {
	if r < Two || r > Ace {
		return "Unknown"
	}
	return [...]string{
		"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
		"Nine", "Ten", "Jack", "Queen", "King", "Ace",
	}[r-Two]
}

// Plural returns the plural rank name used in hand descriptions.
func (r Rank) Plural() string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

// Suit is one of the four card suits.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const suitChars = "cdhs"

func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string(suitChars[s])
}

// Card is an immutable playing card packed into one byte: rank<<2 | suit.
// The zero value is Unknown, the placeholder used for hidden cards.
type Card uint8

// Unknown is the placeholder for a card the viewer may not see.
const Unknown Card = 0

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(uint8(rank)<<2 | uint8(suit&3))
}

// Rank returns the card rank (2-14), or 0 for Unknown.
func (c Card) Rank() Rank {
	return Rank(c >> 2)
}

// Suit returns the card suit.
func (c Card) Suit() Suit {
	return Suit(c & 3)
}

// Known reports whether the card is a real card rather than the placeholder.
func (c Card) Known() bool {
	r := c.Rank()
	return r >= Two && r <= Ace
}

// String returns the two character notation, e.g. "As" or "Td". Unknown
// cards render as "??".
func (c Card) String() string {
	if !c.Known() {
		return "??"
	}
	return c.Rank().String() + c.Suit().String()
}

// MarshalText implements encoding.TextMarshaler.
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Card) UnmarshalText(b []byte) error {
	if string(b) == "??" {
		*c = Unknown
		return nil
	}
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a string like "As" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Unknown, fmt.Errorf("invalid card string: %q", s)
	}

	idx := strings.IndexByte(rankChars, upper(s[0]))
	if idx < 0 {
		return Unknown, fmt.Errorf("invalid rank: %c", s[0])
	}

	var suit Suit
	switch s[1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return Unknown, fmt.Errorf("invalid suit: %c", s[1])
	}

	return NewCard(Two+Rank(idx), suit), nil
}

// ParseCards parses a space separated list of cards, e.g. "As Kd 7c".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests
// and fixed tables.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
