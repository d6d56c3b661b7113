package cards

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Suits lists the four suits in deck-building order
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Value represents a card value
type Value string

const (
	Ace   Value = "A"
	King  Value = "K"
	Queen Value = "Q"
	Jack  Value = "J"
	Ten   Value = "10"
	Nine  Value = "9"
	Eight Value = "8"
	Seven Value = "7"
	Six   Value = "6"
	Five  Value = "5"
	Four  Value = "4"
	Three Value = "3"
	Two   Value = "2"
)

// Values lists the thirteen values from lowest to highest
var Values = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var valueRanks = map[Value]int{
	Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7, Eight: 8,
	Nine: 9, Ten: 10, Jack: 11, Queen: 12, King: 13, Ace: 14,
}

// Card represents a playing card
type Card struct {
	Suit  Suit  `json:"suit"`
	Value Value `json:"rank"`
}

// Rank returns the ordinal of the card value, 2 through 14. Aces are always high.
func (c Card) Rank() int {
	return valueRanks[c.Value]
}

// String returns the string representation of a card
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Value, c.Suit)
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Value == other.Value
}

// CardFromString creates a card from a string representation
// e.g., "10♠" or "10s" or "10S" -> Card{Suit: Spades, Value: Ten}
func CardFromString(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %s", s)
	}

	var suit Suit
	var value string
	switch {
	case strings.HasSuffix(s, string(Spades)), strings.HasSuffix(s, "s"), strings.HasSuffix(s, "S"):
		suit = Spades
	case strings.HasSuffix(s, string(Hearts)), strings.HasSuffix(s, "h"), strings.HasSuffix(s, "H"):
		suit = Hearts
	case strings.HasSuffix(s, string(Diamonds)), strings.HasSuffix(s, "d"), strings.HasSuffix(s, "D"):
		suit = Diamonds
	case strings.HasSuffix(s, string(Clubs)), strings.HasSuffix(s, "c"), strings.HasSuffix(s, "C"):
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %s", s)
	}

	if strings.HasSuffix(s, string(suit)) {
		value = strings.TrimSuffix(s, string(suit))
	} else {
		value = s[:len(s)-1]
	}

	v := Value(strings.ToUpper(value))
	if _, ok := valueRanks[v]; !ok {
		return Card{}, fmt.Errorf("invalid card value: %s", value)
	}

	return Card{Suit: suit, Value: v}, nil
}

// MustParse parses a space separated list of cards and panics on malformed input.
// Intended for fixtures.
func MustParse(s string) []Card {
	fields := strings.Fields(s)
	out := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := CardFromString(f)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// Cards represents a collection of playing cards
type Cards []Card

func (cards Cards) String() string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
