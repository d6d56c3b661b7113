package domain

import (
	"github.com/lazharichir/holdem/domain/cards"
)

// Phase is a step of the hand state machine
type Phase string

const (
	PhaseWaiting      Phase = "waiting"
	PhasePreflop      Phase = "preflop"
	PhaseFlop         Phase = "flop"
	PhaseTurn         Phase = "turn"
	PhaseRiver        Phase = "river"
	PhaseShowdown     Phase = "showdown"
	PhaseWaitingRebuy Phase = "waiting_rebuy"
)

// Next returns the phase that follows p during a hand.
func (p Phase) Next() Phase {
	switch p {
	case PhasePreflop:
		return PhaseFlop
	case PhaseFlop:
		return PhaseTurn
	case PhaseTurn:
		return PhaseRiver
	case PhaseRiver:
		return PhaseShowdown
	}
	return PhaseWaiting
}

// IsBetting reports whether players act in this phase.
func (p Phase) IsBetting() bool {
	switch p {
	case PhasePreflop, PhaseFlop, PhaseTurn, PhaseRiver:
		return true
	}
	return false
}

// HandActive reports whether a hand is being played or settled.
func (p Phase) HandActive() bool {
	return p.IsBetting() || p == PhaseShowdown
}

// communityCardsFor is how many board cards are dealt on entering a phase.
func communityCardsFor(p Phase) int {
	switch p {
	case PhaseFlop:
		return 3
	case PhaseTurn, PhaseRiver:
		return 1
	}
	return 0
}

// GameState is the per-hand state of a room.
type GameState struct {
	Phase              Phase
	HandID             string
	HandNumber         int
	Pot                int
	CurrentBet         int
	CurrentPlayerIndex int
	DealerIndex        int
	CommunityCards     []cards.Card
	SmallBlind         int
	BigBlind           int
	ActionsInRound     int
	TurnTimeLeft       int
}

func NewGameState(smallBlind int) *GameState {
	if smallBlind <= 0 {
		smallBlind = 10
	}
	return &GameState{
		Phase:      PhaseWaiting,
		SmallBlind: smallBlind,
		BigBlind:   smallBlind * 2,
	}
}

// StartHand enters preflop with an empty pot and board.
func (gs *GameState) StartHand(handID string) {
	gs.HandID = handID
	gs.HandNumber++
	gs.Phase = PhasePreflop
	gs.Pot = 0
	gs.CommunityCards = nil
	gs.CurrentPlayerIndex = 0
	gs.ResetRound()
}

// ResetRound clears the betting round. Player bets are reset by the caller.
func (gs *GameState) ResetRound() {
	gs.CurrentBet = 0
	gs.ActionsInRound = 0
}

// Advance moves one phase forward and resets the round.
func (gs *GameState) Advance() Phase {
	gs.Phase = gs.Phase.Next()
	gs.ResetRound()
	return gs.Phase
}

// EndHand returns to waiting. The dealer index and hand counter are kept.
func (gs *GameState) EndHand() {
	gs.Phase = PhaseWaiting
	gs.HandID = ""
	gs.Pot = 0
	gs.CommunityCards = nil
	gs.CurrentPlayerIndex = 0
	gs.TurnTimeLeft = 0
	gs.ResetRound()
}

// DoubleBlinds is the blind schedule step.
func (gs *GameState) DoubleBlinds() {
	gs.SmallBlind *= 2
	gs.BigBlind = gs.SmallBlind * 2
}
