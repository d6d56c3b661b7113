package hands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lazharichir/holdem/domain/cards"
)

// Category is the class of a five card hand, weakest first
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	"High Card", "One Pair", "Two Pair", "Three of a Kind",
	"Straight", "Flush", "Full House", "Four of a Kind", "Straight Flush",
}

func (c Category) String() string {
	if c < HighCard || c > StraightFlush {
		return "Unknown"
	}
	return categoryNames[c]
}

// ErrNotEnoughCards is returned when fewer than five cards are available.
var ErrNotEnoughCards = errors.New("not enough cards to evaluate a hand")

// Rank is the comparable strength of a hand: the category followed by
// tiebreak ranks, most significant first.
type Rank []int

// Category returns the hand class encoded in the first slot.
func (r Rank) Category() Category {
	if len(r) == 0 {
		return HighCard
	}
	return Category(r[0])
}

// Hand is an evaluated five card hand
type Hand struct {
	Rank  Rank         `json:"rank"`
	Cards []cards.Card `json:"cards"`
}

// RankOf ranks exactly five cards.
func RankOf(hand []cards.Card) (Rank, error) {
	if len(hand) != 5 {
		return nil, fmt.Errorf("rank of %d cards: %w", len(hand), ErrNotEnoughCards)
	}

	values := make([]int, 5)
	for i, c := range hand {
		values[i] = c.Rank()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	groups := groupByValue(values)
	flush := isFlush(hand)
	straight := len(groups) == 5 && values[0]-values[4] == 4

	switch {
	case straight && flush:
		return Rank{int(StraightFlush), values[0]}, nil
	case groups[0].count == 4:
		return Rank{int(FourOfAKind), groups[0].value, groups[1].value}, nil
	case groups[0].count == 3 && groups[1].count == 2:
		return Rank{int(FullHouse), groups[0].value, groups[1].value}, nil
	case flush:
		return append(Rank{int(Flush)}, values...), nil
	case straight:
		return Rank{int(Straight), values[0]}, nil
	case groups[0].count == 3:
		return Rank{int(ThreeOfAKind), groups[0].value, groups[1].value, groups[2].value}, nil
	case groups[0].count == 2 && groups[1].count == 2:
		return Rank{int(TwoPair), groups[0].value, groups[1].value, groups[2].value}, nil
	case groups[0].count == 2:
		return Rank{int(OnePair), groups[0].value, groups[1].value, groups[2].value, groups[3].value}, nil
	default:
		return append(Rank{int(HighCard)}, values...), nil
	}
}

type valueGroup struct {
	value int
	count int
}

// groupByValue collapses descending values into groups ordered by
// size and then by value, so the quad, trip or pairs come first.
func groupByValue(values []int) []valueGroup {
	var groups []valueGroup
	for _, v := range values {
		if n := len(groups); n > 0 && groups[n-1].value == v {
			groups[n-1].count++
			continue
		}
		groups = append(groups, valueGroup{value: v, count: 1})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})
	return groups
}

func isFlush(hand []cards.Card) bool {
	for _, c := range hand[1:] {
		if c.Suit != hand[0].Suit {
			return false
		}
	}
	return true
}

// BestHandOf finds the strongest five card subset of the hole and
// community cards combined.
func BestHandOf(hole, community []cards.Card) (Hand, error) {
	pool := make([]cards.Card, 0, len(hole)+len(community))
	pool = append(pool, hole...)
	pool = append(pool, community...)
	if len(pool) < 5 {
		return Hand{}, ErrNotEnoughCards
	}

	var best Hand
	for _, combo := range combinations(len(pool), 5) {
		hand := make([]cards.Card, 5)
		for i, idx := range combo {
			hand[i] = pool[idx]
		}
		rank, err := RankOf(hand)
		if err != nil {
			return Hand{}, err
		}
		if best.Rank == nil || Compare(rank, best.Rank) > 0 {
			best = Hand{Rank: rank, Cards: hand}
		}
	}
	return best, nil
}

// Compare orders two ranks lexicographically. Missing slots count as 0.
// It returns 1 when a is stronger, -1 when b is, and 0 on a tie.
func Compare(a, b Rank) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			return compareInt(x, y)
		}
	}
	return 0
}

func compareInt(a, b int) int {
	if a > b {
		return 1
	}
	if a < b {
		return -1
	}
	return 0
}

// combinations generates all possible combinations of k elements from a set of n
func combinations(n, k int) [][]int {
	if k > n {
		return nil
	}

	var result [][]int
	var combine func(int, []int)

	combine = func(start int, current []int) {
		if len(current) == k {
			combo := make([]int, k)
			copy(combo, current)
			result = append(result, combo)
			return
		}

		for i := start; i < n; i++ {
			current = append(current, i)
			combine(i+1, current)
			current = current[:len(current)-1]
		}
	}

	combine(0, []int{})
	return result
}
