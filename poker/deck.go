package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrDeckExhausted is returned when more cards are requested than remain in the deck
var ErrDeckExhausted = errors.New("deck exhausted")

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// Deck represents a standard 52-card deck consumed from the front
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a fresh deck in suit-major generation order. It is not
// shuffled; call Shuffle before dealing.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{rng: rng, cards: make([]Card, 0, DeckSize)}
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewStackedDeck returns a deck that deals cards in the given order. Shuffle
// only rewinds it, so every round sees the same sequence.
func NewStackedDeck(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// NewShuffledDeck creates a fresh deck and shuffles it
func NewShuffledDeck(rng *rand.Rand) *Deck {
	d := NewDeck(rng)
	d.Shuffle()
	return d
}

// Shuffle returns every card to the deck and permutes it using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	if d.rng == nil {
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the next n cards
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot deal %d cards", n)
	}
	if d.next+n > len(d.cards) {
		return nil, fmt.Errorf("%w: requested %d, %d remaining", ErrDeckExhausted, n, d.CardsRemaining())
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

// Remaining returns a copy of the undealt cards in deal order
func (d *Deck) Remaining() []Card {
	out := make([]Card, d.CardsRemaining())
	copy(out, d.cards[d.next:])
	return out
}
