package cards

import (
	"math/rand"
	"time"
)

// Deck is an ordered stack of cards. Cards are dealt from the end.
type Deck struct {
	cards []Card
}

// NewDeck builds the 52 card deck and shuffles it with rng.
// A nil rng uses a time seeded source.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	d := &Deck{cards: Standard52()}
	// rand.Shuffle is a Fisher-Yates pass
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// NewStackedDeck returns a deck that deals the given cards in order.
func NewStackedDeck(order ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(order))}
	for i, c := range order {
		d.cards[len(order)-1-i] = c
	}
	return d
}

// Standard52 returns every suit x value combination, unshuffled.
func Standard52() []Card {
	deck := make([]Card, 0, len(Suits)*len(Values))
	for _, suit := range Suits {
		for _, value := range Values {
			deck = append(deck, Card{Suit: suit, Value: value})
		}
	}
	return deck
}

// Deal removes and returns the next card. ok is false when the deck is empty.
func (d *Deck) Deal() (card Card, ok bool) {
	if d == nil || len(d.cards) == 0 {
		return Card{}, false
	}
	card = d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Len returns the number of cards left.
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.cards)
}

// Remaining returns a copy of the undealt cards in deal order.
func (d *Deck) Remaining() []Card {
	out := make([]Card, 0, d.Len())
	for i := d.Len() - 1; i >= 0; i-- {
		out = append(out, d.cards[i])
	}
	return out
}
