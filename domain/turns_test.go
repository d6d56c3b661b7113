package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlindPositions(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		dealer int
		want   Blinds
	}{
		{name: "heads-up dealer posts small blind", n: 2, dealer: 0, want: Blinds{Dealer: 0, Small: 0, Big: 1, FirstToAct: 0}},
		{name: "heads-up second hand", n: 2, dealer: 1, want: Blinds{Dealer: 1, Small: 1, Big: 0, FirstToAct: 1}},
		{name: "three handed", n: 3, dealer: 0, want: Blinds{Dealer: 0, Small: 1, Big: 2, FirstToAct: 0}},
		{name: "six handed wraps", n: 6, dealer: 4, want: Blinds{Dealer: 4, Small: 5, Big: 0, FirstToAct: 1}},
		{name: "stale dealer index", n: 3, dealer: 5, want: Blinds{Dealer: 2, Small: 0, Big: 1, FirstToAct: 2}},
		{name: "empty", n: 0, dealer: 3, want: Blinds{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BlindPositions(tt.n, tt.dealer))
		})
	}
}

func seats(n int) []*Player {
	out := make([]*Player, n)
	for i := range out {
		out[i] = &Player{ID: i + 1, Chips: 100}
	}
	return out
}

func TestFirstToActForPhase(t *testing.T) {
	ps := seats(4)
	assert.Equal(t, 3, FirstToActForPhase(ps, 0, PhasePreflop))
	assert.Equal(t, 1, FirstToActForPhase(ps, 0, PhaseFlop))

	ps[1].Folded = true
	assert.Equal(t, 2, FirstToActForPhase(ps, 0, PhaseTurn))

	heads := seats(2)
	assert.Equal(t, 0, FirstToActForPhase(heads, 0, PhasePreflop))
	assert.Equal(t, 1, FirstToActForPhase(heads, 0, PhaseRiver))
}

func TestNextPlayer(t *testing.T) {
	t.Run("skips folded seats and wraps", func(t *testing.T) {
		ps := seats(4)
		ps[3].Folded = true
		ps[0].Folded = true
		next, outcome := NextPlayer(ps, 2)
		assert.Equal(t, TurnNext, outcome)
		assert.Equal(t, 1, next)
	})

	t.Run("all in seats are returned", func(t *testing.T) {
		ps := seats(3)
		ps[1].Chips = 0
		next, outcome := NextPlayer(ps, 0)
		assert.Equal(t, TurnNext, outcome)
		assert.Equal(t, 1, next)
	})

	t.Run("one player left ends the hand", func(t *testing.T) {
		ps := seats(3)
		ps[0].Folded = true
		ps[2].Folded = true
		_, outcome := NextPlayer(ps, 1)
		assert.Equal(t, TurnHandEnd, outcome)
	})

	t.Run("nobody can act", func(t *testing.T) {
		ps := seats(2)
		ps[0].Chips = 0
		ps[1].Chips = 0
		_, outcome := NextPlayer(ps, 0)
		assert.Equal(t, TurnPhaseAdvance, outcome)
	})
}
