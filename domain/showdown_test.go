package domain

import (
	"testing"

	"github.com/lazharichir/holdem/domain/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCards(name, hole string) *Player {
	return &Player{Name: name, Chips: 100, HoleCards: cards.MustParse(hole), IsInCurrentHand: true}
}

func TestEvaluate(t *testing.T) {
	board := cards.MustParse("K♥ 9♠ 4♣ 3♦ J♥")

	t.Run("best hand wins", func(t *testing.T) {
		alice := withCards("alice", "2♣ 7♦")
		bob := withCards("bob", "A♠ A♦")
		res := Evaluate([]*Player{alice, bob}, board)

		require.Len(t, res.Winners, 1)
		assert.Same(t, bob, res.Winners[0].Player)
		assert.Equal(t, "One Pair (Aces)", res.Winners[0].Description)
		assert.True(t, res.IsWinner(bob))
		assert.False(t, res.IsWinner(alice))
		assert.False(t, res.ByDefault)
		assert.Len(t, res.Evaluations, 2)
	})

	t.Run("ties keep seating order", func(t *testing.T) {
		a := withCards("a", "2♣ 5♦")
		b := withCards("b", "2♦ 5♣")
		c := withCards("c", "6♦ 7♣")
		res := Evaluate([]*Player{a, b, c}, cards.MustParse("A♠ A♥ K♠ K♥ Q♦"))

		require.Len(t, res.Winners, 3)
		assert.Same(t, a, res.Winners[0].Player)
		assert.Same(t, b, res.Winners[1].Player)
	})

	t.Run("missing cards never win against a real hand", func(t *testing.T) {
		short := &Player{Name: "short", HoleCards: cards.MustParse("A♠")}
		bob := withCards("bob", "2♣ 7♦")
		res := Evaluate([]*Player{short, bob}, cards.MustParse("K♥ 9♠ 4♣"))

		require.Len(t, res.Winners, 1)
		assert.Same(t, bob, res.Winners[0].Player)
		last := res.Evaluations[len(res.Evaluations)-1]
		assert.False(t, last.Valid)
		assert.Equal(t, "No valid hand", last.Description)
	})

	t.Run("single player wins by default", func(t *testing.T) {
		only := withCards("only", "2♣ 7♦")
		res := Evaluate([]*Player{only}, nil)
		assert.True(t, res.ByDefault)
		assert.True(t, res.IsWinner(only))
	})
}

func TestDistribute(t *testing.T) {
	a, b, c := &Player{Name: "a"}, &Player{Name: "b"}, &Player{Name: "c"}

	payouts := Distribute(100, []*Player{a, b, c})
	require.Len(t, payouts, 3)
	assert.Equal(t, 34, payouts[0].Amount)
	assert.Equal(t, 33, payouts[1].Amount)
	assert.Equal(t, 33, payouts[2].Amount)

	total := 0
	for _, p := range Distribute(1001, []*Player{a, b}) {
		total += p.Amount
	}
	assert.Equal(t, 1001, total)

	assert.Nil(t, Distribute(0, []*Player{a}))
	assert.Nil(t, Distribute(50, nil))
}
