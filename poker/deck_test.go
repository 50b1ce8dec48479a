package poker

import (
	"errors"
	"testing"

	"github.com/lox/headsup/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHasAllCardsOnce(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(7))
	require.Equal(t, DeckSize, d.Remaining())

	seen := make(map[Card]bool)
	for _, c := range d.Cards {
		require.True(t, c.Known())
		require.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
	}
}

func TestNewDeckIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()
	a := NewDeck(randutil.New(42))
	b := NewDeck(randutil.New(42))
	c := NewDeck(randutil.New(43))

	assert.Equal(t, a.Cards, b.Cards)
	assert.NotEqual(t, a.Cards, c.Cards)
	assert.NotEqual(t, OrderedDeck().Cards, a.Cards, "deck should be shuffled")
}

func TestDealNeverOverlaps(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(1))
	seen := make(map[Card]bool)

	for _, n := range []int{2, 2, 3, 1, 1, 1, 1} {
		var cards []Card
		var err error
		cards, d, err = d.Deal(n)
		require.NoError(t, err)
		require.Len(t, cards, n)
		for _, c := range cards {
			require.False(t, seen[c], "card %s dealt twice", c)
			seen[c] = true
		}
	}
	assert.Equal(t, DeckSize-11, d.Remaining())
}

func TestDealDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(3))
	before := d.Clone()

	_, rest, err := d.Deal(5)
	require.NoError(t, err)
	assert.Equal(t, before.Cards, d.Cards)
	assert.Equal(t, DeckSize-5, rest.Remaining())
}

func TestDealExhausted(t *testing.T) {
	t.Parallel()
	d, err := NewDeckFromCards(MustParseCards("As Kd"))
	require.NoError(t, err)

	_, _, err = d.Deal(3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeckExhausted))

	burnt, rest, err := d.Burn(1)
	require.NoError(t, err)
	assert.Equal(t, "As", FormatCards(burnt))
	assert.Equal(t, "Kd", FormatCards(rest.Cards))
}

func TestNewDeckFromCardsRejectsDuplicates(t *testing.T) {
	t.Parallel()
	_, err := NewDeckFromCards(MustParseCards("As As"))
	require.Error(t, err)

	_, err = NewDeckFromCards([]Card{Unknown})
	require.Error(t, err)
}
