package history

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHand() Hand {
	return Hand{
		ID:         "8b1f9a3c",
		PlayedAt:   time.Date(2025, 3, 14, 15, 9, 2, 0, time.UTC),
		Variant:    "NT",
		Difficulty: "normal",
		Players: []Player{
			{Name: "You", Seat: 0, Human: true, StartingStack: 1000, FinalStack: 1120, HoleCards: "AsKh"},
			{Name: "Bot1", Seat: 1, StartingStack: 1000, FinalStack: 940, HoleCards: "7d2c"},
			{Name: "Bot2", Seat: 2, StartingStack: 1000, FinalStack: 940, HoleCards: "QcQd"},
		},
		Actions: []string{
			"d dh p1 AsKh",
			"d dh p2 7d2c",
			"d dh p3 QcQd",
			"p1 cbr 20",
			"p2 f",
			"p3 cc",
			"d db Qh7s2h",
			"p1 cc",
			"p3 cbr 40",
			"p1 cc",
		},
		Board:   "Qh7s2h",
		Pot:     120,
		Winners: []int{0},
		Payouts: []int{120},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	hand := sampleHand()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, hand))
	assert.Contains(t, buf.String(), `variant = "NT"`)
	assert.Contains(t, buf.String(), `"p3 cbr 40"`)

	var decoded Hand
	require.NoError(t, Decode(&buf, &decoded))
	assert.Equal(t, hand, decoded)
}

func TestHandFilename(t *testing.T) {
	hand := sampleHand()
	assert.Equal(t, "20250314-150902-8b1f9a3c.toml", hand.Filename())
}

func TestRecorderWritesFile(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(filepath.Join(dir, "hands"))
	require.NoError(t, err)

	hand := sampleHand()
	require.NoError(t, rec.Record(hand))

	data, err := os.ReadFile(filepath.Join(dir, "hands", hand.Filename()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `id = "8b1f9a3c"`)
}
