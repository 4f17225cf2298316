// Package evaluator ranks Texas Hold'em hands into the ten standard
// categories, from high card up to royal flush.
//
// Comparison is category-only: two hands in the same category tie, no
// kicker resolution is attempted. This mirrors the engine's simplified
// showdown rules and keeps Result values directly comparable by their
// numeric Value.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-advisor/internal/deck"
)

// Category is the hand category, ordered weakest to strongest.
type Category int

const (
	// Incomplete is the degenerate result for fewer than five cards.
	// It ranks below every real category.
	Incomplete Category = iota
	HighCard
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the snake_case category name used on the wire and in
// hand histories.
func (c Category) String() string {
	switch c {
	case Incomplete:
		return "incomplete"
	case HighCard:
		return "high_card"
	case OnePair:
		return "one_pair"
	case TwoPair:
		return "two_pair"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	case RoyalFlush:
		return "royal_flush"
	default:
		return "unknown"
	}
}

// Describe returns a human readable category description.
func (c Category) Describe() string {
	switch c {
	case Incomplete:
		return "Incomplete Hand"
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
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
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Result is a derived evaluation of hole plus board cards. It is
// recomputed on demand, never stored in round state.
type Result struct {
	Category    Category
	Value       int
	Description string
	RankCounts  map[int]int
	SuitCounts  map[deck.Suit]int
}

// foldedValue ranks below every real hand, including Incomplete, so
// folded actors never win a showdown.
const foldedValue = -1

// Evaluate ranks the combination of hole and board cards. Fewer than
// five total cards yields the degenerate Incomplete result.
func Evaluate(hole, board []deck.Card) Result {
	cards := make([]deck.Card, 0, len(hole)+len(board))
	cards = append(cards, hole...)
	cards = append(cards, board...)

	rankCounts := make(map[int]int, len(cards))
	suitCounts := make(map[deck.Suit]int, 4)
	for _, c := range cards {
		rankCounts[c.Value()]++
		suitCounts[c.Suit]++
	}

	if len(cards) < 5 {
		return Result{
			Category:    Incomplete,
			Value:       int(Incomplete),
			Description: Incomplete.Describe(),
			RankCounts:  rankCounts,
			SuitCounts:  suitCounts,
		}
	}

	category := categorize(cards, rankCounts, suitCounts)

	return Result{
		Category:    category,
		Value:       int(category),
		Description: category.Describe(),
		RankCounts:  rankCounts,
		SuitCounts:  suitCounts,
	}
}

func categorize(cards []deck.Card, rankCounts map[int]int, suitCounts map[deck.Suit]int) Category {
	flushSuit, hasFlush := flushSuit(suitCounts)

	if hasFlush {
		// Straight flush detection runs on the flush-suit subset only.
		var suited []int
		for _, c := range cards {
			if c.Suit == flushSuit {
				suited = append(suited, c.Value())
			}
		}
		if high, ok := straightHigh(suited); ok {
			if high == int(deck.Ace) {
				return RoyalFlush
			}
			return StraightFlush
		}
	}

	if hasCount(rankCounts, 4) {
		return FourOfAKind
	}

	// A full house needs a three-count plus a separate two-count.
	if trips, ok := highestWithCount(rankCounts, 3); ok {
		for rank, count := range rankCounts {
			if rank != trips && count >= 2 {
				return FullHouse
			}
		}
	}

	if hasFlush {
		return Flush
	}

	var values []int
	for rank := range rankCounts {
		values = append(values, rank)
	}
	if _, ok := straightHigh(values); ok {
		return Straight
	}

	if hasCount(rankCounts, 3) {
		return ThreeOfAKind
	}

	pairs := 0
	for _, count := range rankCounts {
		if count == 2 {
			pairs++
		}
	}
	switch {
	case pairs >= 2:
		return TwoPair
	case pairs == 1:
		return OnePair
	}

	return HighCard
}

// flushSuit returns any suit with five or more cards across the
// combined set. A flush can be made with zero hole cards if the board
// alone is five-suited.
func flushSuit(suitCounts map[deck.Suit]int) (deck.Suit, bool) {
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		if suitCounts[suit] >= 5 {
			return suit, true
		}
	}
	return 0, false
}

// straightHigh finds five consecutive distinct rank values and returns
// the top value of the straight. The wheel (A-2-3-4-5) reports a high
// card of 5.
func straightHigh(values []int) (int, bool) {
	present := make(map[int]bool, len(values))
	hasAce := false
	for _, v := range values {
		present[v] = true
		if v == int(deck.Ace) {
			hasAce = true
		}
	}

	distinct := make([]int, 0, len(present))
	for v := range present {
		distinct = append(distinct, v)
	}
	if hasAce {
		// The ace also plays low for wheel detection.
		distinct = append(distinct, 1)
	}
	sort.Ints(distinct)

	best := 0
	run := 1
	for i := 1; i < len(distinct); i++ {
		if distinct[i] == distinct[i-1]+1 {
			run++
			if run >= 5 && distinct[i] > best {
				best = distinct[i]
			}
		} else if distinct[i] != distinct[i-1] {
			run = 1
		}
	}

	if best == 0 {
		return 0, false
	}
	return best, true
}

func hasCount(rankCounts map[int]int, n int) bool {
	for _, count := range rankCounts {
		if count == n {
			return true
		}
	}
	return false
}

func highestWithCount(rankCounts map[int]int, n int) (int, bool) {
	best := -1
	for rank, count := range rankCounts {
		if count == n && rank > best {
			best = rank
		}
	}
	return best, best >= 0
}

// Compare compares two results by category value only and returns
// +1, -1 or 0. Same-category hands tie regardless of kickers.
func Compare(a, b Result) int {
	switch {
	case a.Value > b.Value:
		return 1
	case a.Value < b.Value:
		return -1
	default:
		return 0
	}
}

// Winners evaluates each actor's hole cards against the shared board
// and returns the seat indices of every actor tied at the maximum
// value. Folded actors rank below all real hands via a sentinel.
func Winners(holes [][]deck.Card, board []deck.Card, folded []bool) ([]int, error) {
	if len(holes) != len(folded) {
		return nil, fmt.Errorf("evaluator: %d hole sets but %d fold flags", len(holes), len(folded))
	}

	best := foldedValue
	var winners []int
	for i, hole := range holes {
		value := foldedValue
		if !folded[i] {
			value = Evaluate(hole, board).Value
		}
		switch {
		case value > best:
			best = value
			winners = []int{i}
		case value == best && value > foldedValue:
			winners = append(winners, i)
		}
	}
	return winners, nil
}
