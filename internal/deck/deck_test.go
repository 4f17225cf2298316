package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-advisor/internal/randutil"
)

func TestNewDeckIsPermutationOf52(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		d := New(randutil.New(seed))
		require.Equal(t, 52, d.Remaining())

		seen := make(map[Card]bool)
		for d.Remaining() > 0 {
			c, err := d.Deal()
			require.NoError(t, err)
			assert.False(t, seen[c], "duplicate card %v with seed %d", c, seed)
			seen[c] = true
		}
		assert.Len(t, seen, 52)
	}
}

func TestShuffleIsSeeded(t *testing.T) {
	a := New(randutil.New(42))
	b := New(randutil.New(42))

	for a.Remaining() > 0 {
		ca, err := a.Deal()
		require.NoError(t, err)
		cb, err := b.Deal()
		require.NoError(t, err)
		assert.Equal(t, ca, cb)
	}
}

func TestDealExhaustion(t *testing.T) {
	d := New(randutil.New(1))

	_, err := d.DealN(52)
	require.NoError(t, err)

	_, err = d.Deal()
	assert.ErrorIs(t, err, ErrInsufficientCards)

	err = d.Burn()
	assert.ErrorIs(t, err, ErrInsufficientCards)
}

func TestDealNRejectsOversizedRequest(t *testing.T) {
	d := New(randutil.New(1))
	_, err := d.DealN(40)
	require.NoError(t, err)

	// 12 left, asking for 13 must not partially deal
	_, err = d.DealN(13)
	assert.ErrorIs(t, err, ErrInsufficientCards)
	assert.Equal(t, 12, d.Remaining())
}

func TestBurnConsumesOneCard(t *testing.T) {
	d := NewOrdered()
	first, err := d.Deal()
	require.NoError(t, err)

	d2 := NewOrdered()
	require.NoError(t, d2.Burn())
	second, err := d2.Deal()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 50, d2.Remaining())
}

func TestStackedDeckDealsInOrder(t *testing.T) {
	cards := MustParseCards("AhKh2c")
	d := Stacked(cards)

	for i := range cards {
		c, err := d.Deal()
		require.NoError(t, err)
		assert.Equal(t, cards[i], c)
	}
	_, err := d.Deal()
	assert.ErrorIs(t, err, ErrInsufficientCards)
}
