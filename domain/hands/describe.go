package hands

import "fmt"

var singular = map[int]string{
	2: "Two", 3: "Three", 4: "Four", 5: "Five", 6: "Six", 7: "Seven", 8: "Eight",
	9: "Nine", 10: "Ten", 11: "Jack", 12: "Queen", 13: "King", 14: "Ace",
}

var plural = map[int]string{
	2: "Twos", 3: "Threes", 4: "Fours", 5: "Fives", 6: "Sixes", 7: "Sevens", 8: "Eights",
	9: "Nines", 10: "Tens", 11: "Jacks", 12: "Queens", 13: "Kings", 14: "Aces",
}

// Describe renders a rank for display, e.g. "Two Pair (Kings and Fives)".
func Describe(r Rank) string {
	if len(r) < 2 || r[0] < int(HighCard) || r[0] > int(StraightFlush) {
		return "Unknown"
	}
	c := Category(r[0])

	switch c {
	case HighCard, Straight, Flush, StraightFlush:
		return fmt.Sprintf("%s (%s high)", c, singular[r[1]])
	case OnePair, ThreeOfAKind, FourOfAKind:
		return fmt.Sprintf("%s (%s)", c, plural[r[1]])
	case TwoPair:
		if len(r) < 3 {
			break
		}
		return fmt.Sprintf("%s (%s and %s)", c, plural[r[1]], plural[r[2]])
	case FullHouse:
		if len(r) < 3 {
			break
		}
		return fmt.Sprintf("%s (%s full of %s)", c, plural[r[1]], plural[r[2]])
	}
	return "Unknown"
}
