// Package classification analyses board texture for the advisory
// request: a coordinated ("wet") board supports straights or flushes,
// a dry one does not.
package classification

import (
	"sort"

	"github.com/lox/holdem-advisor/internal/deck"
)

// Texture is the board texture classification.
type Texture int

const (
	Unknown Texture = iota // preflop, no board to classify
	Dry
	Wet
)

func (t Texture) String() string {
	switch t {
	case Dry:
		return "dry"
	case Wet:
		return "wet"
	default:
		return "unknown"
	}
}

// Classify reports the texture of a board. Preflop (no board cards)
// is unknown. A post-flop board is wet when any two consecutive unique
// ranks sit within a straight-supporting gap of four, or any suit
// appears at least twice; otherwise it is dry.
func Classify(board []deck.Card) Texture {
	if len(board) == 0 {
		return Unknown
	}

	suitCounts := make(map[deck.Suit]int, 4)
	rankSet := make(map[int]bool, len(board))
	for _, c := range board {
		suitCounts[c.Suit]++
		rankSet[c.Value()] = true
	}

	for _, count := range suitCounts {
		if count >= 2 {
			return Wet
		}
	}

	ranks := make([]int, 0, len(rankSet))
	for r := range rankSet {
		ranks = append(ranks, r)
	}
	sort.Ints(ranks)

	for i := 1; i < len(ranks); i++ {
		if ranks[i]-ranks[i-1] <= 4 {
			return Wet
		}
	}

	return Dry
}
