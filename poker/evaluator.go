package poker

import (
	"fmt"
	"sort"
)

// Category enumerates the poker hand categories ordered from weakest to
// strongest. A royal flush is the ace-high StraightFlush; see Score.IsRoyal.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Score is a totally ordered hand strength: the category first, then up to
// five tie-break ranks in decreasing significance. Unused tie-break slots are
// zero. Two scores with the same category and tie-breaks are equal no matter
// which suits produced them.
type Score struct {
	Category Category `json:"category"`
	Ranks    [5]Rank  `json:"ranks"`
}

// IsRoyal reports whether the score is a royal flush (10 through Ace suited).
func (s Score) IsRoyal() bool {
	return s.Category == StraightFlush && s.Ranks[0] == Ace
}

// High returns the most significant tie-break rank. For straights this is
// the top card of the run, which is Five for the wheel.
func (s Score) High() Rank {
	return s.Ranks[0]
}

// String describes the hand, e.g. "Full House, Kings over Nines".
func (s Score) String() string {
	r := s.Ranks
	switch s.Category {
	case StraightFlush:
		if s.IsRoyal() {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", r[0].Name())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", r[0].Plural())
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", r[0].Plural(), r[1].Plural())
	case Flush:
		return fmt.Sprintf("Flush, %s high", r[0].Name())
	case Straight:
		return fmt.Sprintf("Straight, %s high", r[0].Name())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", r[0].Plural())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", r[0].Plural(), r[1].Plural())
	case Pair:
		return fmt.Sprintf("Pair of %s", r[0].Plural())
	case HighCard:
		return fmt.Sprintf("High Card, %s", r[0].Name())
	default:
		return "Unknown"
	}
}

// Compare compares two scores and returns 1 if a wins, -1 if b wins, 0 for tie.
func Compare(a, b Score) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	for i := range a.Ranks {
		if a.Ranks[i] > b.Ranks[i] {
			return 1
		}
		if a.Ranks[i] < b.Ranks[i] {
			return -1
		}
	}
	return 0
}

// Evaluate5 scores exactly five cards.
func Evaluate5(cards [5]Card) Score {
	var counts [Ace + 1]int
	flush := true
	for i, c := range cards {
		counts[c.Rank()]++
		if i > 0 && c.Suit() != cards[0].Suit() {
			flush = false
		}
	}

	// Group ranks by multiplicity, larger groups first, then higher ranks.
	type group struct {
		rank  Rank
		count int
	}
	groups := make([]group, 0, 5)
	for r := Ace; r >= Two; r-- {
		if counts[r] > 0 {
			groups = append(groups, group{rank: r, count: counts[r]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	var s Score
	for i, g := range groups {
		s.Ranks[i] = g.rank
	}

	if len(groups) == 5 {
		high, straight := straightHigh(groups[0].rank, groups[4].rank, counts)
		switch {
		case straight && flush:
			return Score{Category: StraightFlush, Ranks: [5]Rank{high}}
		case flush:
			s.Category = Flush
			return s
		case straight:
			return Score{Category: Straight, Ranks: [5]Rank{high}}
		default:
			s.Category = HighCard
			return s
		}
	}

	switch groups[0].count {
	case 4:
		s.Category = FourOfAKind
	case 3:
		if groups[1].count == 2 {
			s.Category = FullHouse
		} else {
			s.Category = ThreeOfAKind
		}
	case 2:
		if groups[1].count == 2 {
			s.Category = TwoPair
		} else {
			s.Category = Pair
		}
	}
	return s
}

// straightHigh reports whether five distinct ranks form a straight and the
// rank of its top card. The wheel (A-2-3-4-5) plays five high.
func straightHigh(top, bottom Rank, counts [Ace + 1]int) (Rank, bool) {
	if top-bottom == 4 {
		return top, true
	}
	if top == Ace && counts[Two] == 1 && counts[Three] == 1 && counts[Four] == 1 && counts[Five] == 1 {
		return Five, true
	}
	return 0, false
}

// Best5Of returns the best score among every five card subset of cards,
// together with the five cards that make it. Between five and seven cards are
// accepted; seven cards means 21 subsets.
func Best5Of(cards []Card) (Score, [5]Card, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return Score{}, [5]Card{}, fmt.Errorf("best hand needs 5 to 7 cards, got %d", n)
	}
	for _, c := range cards {
		if !c.Known() {
			return Score{}, [5]Card{}, fmt.Errorf("cannot evaluate unknown card")
		}
	}

	var (
		best     Score
		bestHand [5]Card
		found    bool
	)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						hand := [5]Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						s := Evaluate5(hand)
						if !found || Compare(s, best) > 0 {
							best, bestHand, found = s, hand, true
						}
					}
				}
			}
		}
	}
	return best, bestHand, nil
}
