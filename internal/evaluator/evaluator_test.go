package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-advisor/internal/deck"
)

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name     string
		hole     string
		board    string
		category Category
		value    int
	}{
		{"royal flush", "AhKh", "QhJhTh9d8c", RoyalFlush, 10},
		{"straight flush", "9h8h", "7h6h5hAdKc", StraightFlush, 9},
		{"four of a kind", "2c2d", "2h2s5c7d9s", FourOfAKind, 8},
		{"full house", "KsKh", "KdQcQh2s3d", FullHouse, 7},
		{"flush", "Ah2h", "7h9hJh3c4d", Flush, 6},
		{"straight", "9c8d", "7h6s5c2d2h", Straight, 5},
		{"wheel straight", "Ah2c", "3d4s5cKhQd", Straight, 5},
		{"three of a kind", "7c7d", "7hKs2c3d9h", ThreeOfAKind, 4},
		{"two pair", "AcAd", "KsKh2c7d9s", TwoPair, 3},
		{"one pair", "3h3d", "5c7d9sJcKh", OnePair, 2},
		{"high card", "Ah7c", "2d5s9cJhKd", HighCard, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(deck.MustParseCards(tt.hole), deck.MustParseCards(tt.board))
			assert.Equal(t, tt.category, result.Category)
			assert.Equal(t, tt.value, result.Value)
			assert.Equal(t, tt.category.String(), result.Category.String())
		})
	}
}

func TestEvaluateIncomplete(t *testing.T) {
	// Fewer than five total cards yields the degenerate lowest result.
	result := Evaluate(deck.MustParseCards("AhKh"), nil)
	assert.Equal(t, Incomplete, result.Category)
	assert.Equal(t, 0, result.Value)

	result = Evaluate(deck.MustParseCards("AhKh"), deck.MustParseCards("QhJh"))
	assert.Equal(t, Incomplete, result.Category)
}

func TestFlushFromBoardAlone(t *testing.T) {
	// The flush check runs over the combined set, so a five-suited
	// board makes a flush with zero hole cards.
	result := Evaluate(deck.MustParseCards("2c3d"), deck.MustParseCards("4h7h9hJhKh"))
	assert.Equal(t, Flush, result.Category)
}

func TestWheelStraightFlush(t *testing.T) {
	result := Evaluate(deck.MustParseCards("Ah2h"), deck.MustParseCards("3h4h5hKcQd"))
	assert.Equal(t, StraightFlush, result.Category)
}

func TestRoyalFlushRequiresAceHighSuited(t *testing.T) {
	// King-high straight flush is not royal.
	result := Evaluate(deck.MustParseCards("KhQh"), deck.MustParseCards("JhTh9h2c3d"))
	assert.Equal(t, StraightFlush, result.Category)
}

func TestFullHouseNeedsSeparatePair(t *testing.T) {
	// Trips with no second pair is three of a kind, not a full house.
	result := Evaluate(deck.MustParseCards("7c7d"), deck.MustParseCards("7h2c3d9sKh"))
	assert.Equal(t, ThreeOfAKind, result.Category)
}

func TestRankAndSuitCounts(t *testing.T) {
	result := Evaluate(deck.MustParseCards("AhAd"), deck.MustParseCards("Ac2h3h4h5s"))
	assert.Equal(t, 3, result.RankCounts[14])
	assert.Equal(t, 4, result.SuitCounts[deck.Hearts])
}

func TestCompare(t *testing.T) {
	flush := Evaluate(deck.MustParseCards("Ah2h"), deck.MustParseCards("7h9hJh3c4d"))
	pair := Evaluate(deck.MustParseCards("3h3d"), deck.MustParseCards("5c7d9sJcKh"))

	assert.Equal(t, 1, Compare(flush, pair))
	assert.Equal(t, -1, Compare(pair, flush))

	// Category-only comparison: different pairs still tie.
	otherPair := Evaluate(deck.MustParseCards("KcKd"), deck.MustParseCards("5c7d9sJc2h"))
	assert.Equal(t, 0, Compare(pair, otherPair))
}

func TestWinners(t *testing.T) {
	board := deck.MustParseCards("5c7d9sJcKh")
	holes := [][]deck.Card{
		deck.MustParseCards("3h3d"), // one pair
		deck.MustParseCards("Ah2c"), // high card
		deck.MustParseCards("6h6d"), // one pair, ties on category
	}

	winners, err := Winners(holes, board, []bool{false, false, false})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, winners)
}

func TestWinnersExcludesFolded(t *testing.T) {
	board := deck.MustParseCards("5c7d9sJcKh")
	holes := [][]deck.Card{
		deck.MustParseCards("3h3d"),
		deck.MustParseCards("Ah2c"),
	}

	winners, err := Winners(holes, board, []bool{true, false})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, winners)
}

func TestWinnersLengthMismatch(t *testing.T) {
	_, err := Winners([][]deck.Card{deck.MustParseCards("AhKh")}, nil, []bool{false, false})
	require.Error(t, err)
}
