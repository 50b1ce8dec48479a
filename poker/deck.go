package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// ErrDeckExhausted is returned when more cards are requested than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered sequence of cards consumed front to back. It is a plain
// value so it can live inside a serializable game snapshot; dealing returns
// the remaining deck rather than mutating the receiver.
type Deck struct {
	Cards []Card `json:"cards"`
}

// OrderedDeck returns all 52 cards in suit-major, rank-minor order.
func OrderedDeck() Deck {
	cards := make([]Card, 0, DeckSize)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return Deck{Cards: cards}
}

// NewDeck creates a deck shuffled with the provided RNG. The RNG is required
// so that shuffles are reproducible from a seed.
func NewDeck(rng *rand.Rand) Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := OrderedDeck()
	// Fisher-Yates
	for i := len(d.Cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
	return d
}

// NewDeckFromCards builds a deck whose next cards are exactly the given ones,
// in order. Used to stack the deck for deterministic scenarios.
func NewDeckFromCards(cards []Card) (Deck, error) {
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if !c.Known() {
			return Deck{}, fmt.Errorf("invalid card in deck: %v", c)
		}
		if seen[c] {
			return Deck{}, fmt.Errorf("duplicate card in deck: %v", c)
		}
		seen[c] = true
	}
	return Deck{Cards: append([]Card(nil), cards...)}, nil
}

// Deal returns the next n cards and the deck that remains afterwards.
func (d Deck) Deal(n int) ([]Card, Deck, error) {
	if n < 0 || n > len(d.Cards) {
		return nil, d, fmt.Errorf("deal %d of %d: %w", n, len(d.Cards), ErrDeckExhausted)
	}
	dealt := append([]Card(nil), d.Cards[:n]...)
	return dealt, Deck{Cards: d.Cards[n:]}, nil
}

// Burn discards the next n cards. It is Deal under another name so the
// caller's intent reads clearly.
func (d Deck) Burn(n int) ([]Card, Deck, error) {
	return d.Deal(n)
}

// Remaining returns the number of undealt cards.
func (d Deck) Remaining() int {
	return len(d.Cards)
}

// Clone returns a deck that shares no memory with d.
func (d Deck) Clone() Deck {
	if d.Cards == nil {
		return Deck{}
	}
	return Deck{Cards: append([]Card(nil), d.Cards...)}
}
