package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, s := range []string{"fold", "CALL", " check ", "Raise"} {
		_, err := ParseAction(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseAction("bet")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		chips, bet int
		action     Action
		amount     int
		currentBet int
		want       int
		wantErr    error
	}{
		{name: "fold is always legal", chips: 100, action: ActionFold, currentBet: 40, want: 0},
		{name: "call the difference", chips: 100, bet: 10, action: ActionCall, currentBet: 40, want: 30},
		{name: "short stack calls all in", chips: 25, action: ActionCall, currentBet: 40, want: 25},
		{name: "call with nothing to call", chips: 100, bet: 20, action: ActionCall, currentBet: 20, want: 0},
		{name: "call without chips", chips: 0, action: ActionCall, currentBet: 40, wantErr: ErrNoChips},
		{name: "check when matched", chips: 100, bet: 20, action: ActionCheck, currentBet: 20, want: 0},
		{name: "check facing a bet", chips: 100, bet: 10, action: ActionCheck, currentBet: 20, wantErr: ErrIllegalCheck},
		{name: "minimum raise", chips: 100, bet: 10, action: ActionRaise, amount: 30, currentBet: 20, want: 30},
		{name: "raise too small", chips: 100, bet: 10, action: ActionRaise, amount: 29, currentBet: 20, wantErr: ErrRaiseTooSmall},
		{name: "raise exceeds stack", chips: 50, action: ActionRaise, amount: 60, currentBet: 20, wantErr: ErrInsufficientChips},
		{name: "all in below minimum", chips: 15, action: ActionRaise, amount: 15, currentBet: 20, want: 15},
		{name: "zero raise", chips: 100, action: ActionRaise, amount: 0, currentBet: 20, wantErr: ErrInvalidAmount},
		{name: "unknown action", chips: 100, action: Action("bet"), wantErr: ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Player{Chips: tt.chips, Bet: tt.bet}
			got, err := Validate(p, tt.action, tt.amount, tt.currentBet, 20)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_RejectionMessages(t *testing.T) {
	p := &Player{Chips: 100, Bet: 10}

	_, err := Validate(p, ActionCheck, 0, 40, 20)
	var rejected *RejectedActionError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, 30, rejected.Amount)
	assert.Equal(t, "cannot check, must call 30", err.Error())

	_, err = Validate(p, ActionRaise, 35, 40, 20)
	assert.Equal(t, "minimum raise is 50", err.Error())
}

func TestApply(t *testing.T) {
	t.Run("raise moves chips and sets the bet", func(t *testing.T) {
		gs := NewGameState(10)
		gs.CurrentBet = 20
		p := &Player{Chips: 100, Bet: 20}

		Apply(p, ActionRaise, 40, gs)
		assert.Equal(t, 60, p.Chips)
		assert.Equal(t, 60, p.Bet)
		assert.Equal(t, 40, gs.Pot)
		assert.Equal(t, 60, gs.CurrentBet)
		assert.Equal(t, 1, gs.ActionsInRound)
	})

	t.Run("short all in leaves the current bet", func(t *testing.T) {
		gs := NewGameState(10)
		gs.CurrentBet = 100
		p := &Player{Chips: 30}

		Apply(p, ActionCall, 30, gs)
		assert.True(t, p.AllIn())
		assert.Equal(t, 100, gs.CurrentBet)
		assert.Equal(t, 30, gs.Pot)
	})

	t.Run("fold and check still count", func(t *testing.T) {
		gs := NewGameState(10)
		p := &Player{Chips: 100}
		Apply(p, ActionCheck, 0, gs)
		Apply(p, ActionFold, 0, gs)
		assert.True(t, p.Folded)
		assert.Equal(t, 2, gs.ActionsInRound)
		assert.Equal(t, 100, p.Chips)
	})
}

func TestIsRoundComplete(t *testing.T) {
	players := func(bets ...int) []*Player {
		out := make([]*Player, len(bets))
		for i, b := range bets {
			out[i] = &Player{Chips: 100, Bet: b}
		}
		return out
	}

	t.Run("unmatched bets", func(t *testing.T) {
		gs := &GameState{CurrentBet: 20, ActionsInRound: 5}
		assert.False(t, IsRoundComplete(players(20, 10, 20), gs))
	})

	t.Run("matched but not everyone acted", func(t *testing.T) {
		gs := &GameState{CurrentBet: 0, ActionsInRound: 2}
		assert.False(t, IsRoundComplete(players(0, 0, 0), gs))
		gs.ActionsInRound = 3
		assert.True(t, IsRoundComplete(players(0, 0, 0), gs))
	})

	t.Run("heads-up needs two actions", func(t *testing.T) {
		gs := &GameState{CurrentBet: 20, ActionsInRound: 1}
		assert.False(t, IsRoundComplete(players(20, 20), gs))
		gs.ActionsInRound = 2
		assert.True(t, IsRoundComplete(players(20, 20), gs))
	})

	t.Run("folded players are ignored", func(t *testing.T) {
		ps := players(20, 5, 20)
		ps[1].Folded = true
		gs := &GameState{CurrentBet: 20, ActionsInRound: 2}
		assert.True(t, IsRoundComplete(ps, gs))
	})

	t.Run("all in players need not match", func(t *testing.T) {
		ps := players(100, 40)
		ps[1].Chips = 0
		gs := &GameState{CurrentBet: 100, ActionsInRound: 2}
		assert.True(t, IsRoundComplete(ps, gs))
	})

	t.Run("single player left", func(t *testing.T) {
		ps := players(20, 0)
		ps[1].Folded = true
		assert.True(t, IsRoundComplete(ps, &GameState{CurrentBet: 20}))
	})
}
