package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/holdem-advisor/internal/deck"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		board   string
		texture Texture
	}{
		{"preflop", "", Unknown},
		{"rainbow disconnected", "2c7dQh", Dry},
		{"two of a suit", "2c7cQh", Wet},
		{"connected ranks", "8c9dQh", Wet},
		{"gap of four still supports straights", "5c9dKh", Wet},
		{"turn card pairs a suit", "2c7dQhTd", Wet},
		{"broadway turn", "2c7dQsTh", Wet}, // T and Q gap is 2
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var board []deck.Card
			if tt.board != "" {
				board = deck.MustParseCards(tt.board)
			}
			assert.Equal(t, tt.texture, Classify(board))
		})
	}
}

func TestClassifyDryNeedsWideGapsAndRainbow(t *testing.T) {
	// 2, 7, Q: gaps of 5 each, three different suits.
	assert.Equal(t, Dry, Classify(deck.MustParseCards("2h7dQc")))
}

func TestTextureString(t *testing.T) {
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "dry", Dry.String())
	assert.Equal(t, "wet", Wet.String())
}
