package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrInsufficientCards is returned when a deal or burn asks for more
// cards than the deck has left. A hand that hits this is unrecoverable
// and must be abandoned.
var ErrInsufficientCards = errors.New("deck: insufficient cards")

// Deck is an ordered sequence of 52 unique cards, consumed
// front-to-back as cards are dealt. It is a value type: copying a Deck
// copies the read position, and dealt cards are never written back, so
// copies may share the underlying card storage safely.
type Deck struct {
	cards []Card
	next  int
}

// New creates a standard 52-card deck shuffled with the provided RNG.
func New(rng *rand.Rand) Deck {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}

	// Fisher-Yates
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return Deck{cards: cards}
}

// NewOrdered creates an unshuffled deck. Used by tests that need a
// known card order.
func NewOrdered() Deck {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return Deck{cards: cards}
}

// Stacked creates a deck that deals the given cards in order. Used by
// tests that need exact hole cards and boards.
func Stacked(cards []Card) Deck {
	copied := make([]Card, len(cards))
	copy(copied, cards)
	return Deck{cards: copied}
}

// Deal removes and returns the top card from the deck.
func (d *Deck) Deal() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrInsufficientCards
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// DealN deals n cards from the top of the deck.
func (d *Deck) DealN(n int) ([]Card, error) {
	if d.next+n > len(d.cards) {
		return nil, ErrInsufficientCards
	}
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = d.cards[d.next]
		d.next++
	}
	return cards, nil
}

// Burn discards the top card. Street transitions burn exactly one card
// before dealing board cards.
func (d *Deck) Burn() error {
	if d.next >= len(d.cards) {
		return ErrInsufficientCards
	}
	d.next++
	return nil
}

// Remaining returns the number of cards left in the deck.
func (d Deck) Remaining() int {
	return len(d.cards) - d.next
}
