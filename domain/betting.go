package domain

import (
	"fmt"
	"strings"
)

// Action is a betting decision
type Action string

const (
	ActionFold  Action = "fold"
	ActionCall  Action = "call"
	ActionCheck Action = "check"
	ActionRaise Action = "raise"
)

// ParseAction accepts the wire names, case-insensitively.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionFold, ActionCall, ActionCheck, ActionRaise:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Validate checks an action against the betting state and returns the number
// of chips it moves. For a raise, amount is the chips added by this action,
// not the new total.
func Validate(p *Player, action Action, amount, currentBet, bigBlind int) (int, error) {
	toCall := currentBet - p.Bet
	if toCall < 0 {
		toCall = 0
	}

	switch action {
	case ActionFold:
		return 0, nil

	case ActionCall:
		if p.Chips <= 0 {
			return 0, reject(action, ErrNoChips, 0)
		}
		// short stacks call all-in
		if p.Chips < toCall {
			return p.Chips, nil
		}
		return toCall, nil

	case ActionCheck:
		if p.Bet != currentBet {
			return 0, reject(action, ErrIllegalCheck, toCall)
		}
		return 0, nil

	case ActionRaise:
		if amount <= 0 {
			return 0, reject(action, ErrInvalidAmount, amount)
		}
		if amount > p.Chips {
			return 0, reject(action, ErrInsufficientChips, p.Chips)
		}
		if amount == p.Chips {
			return amount, nil
		}
		if minRaise := toCall + bigBlind; amount < minRaise {
			return 0, reject(action, ErrRaiseTooSmall, minRaise)
		}
		return amount, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

// Apply commits a validated action. Every action counts towards the round.
func Apply(p *Player, action Action, amount int, gs *GameState) {
	switch action {
	case ActionFold:
		p.Folded = true
	case ActionCall, ActionRaise:
		commit(p, amount, gs)
	}
	gs.ActionsInRound++
}

// commit moves chips from a player into the pot. An all-in below the
// current bet leaves currentBet alone.
func commit(p *Player, amount int, gs *GameState) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	if amount < 0 {
		amount = 0
	}
	p.Chips -= amount
	p.Bet += amount
	gs.Pot += amount
	if p.Bet > gs.CurrentBet {
		gs.CurrentBet = p.Bet
	}
	return amount
}

// IsRoundComplete decides whether the betting round is over for players.
func IsRoundComplete(players []*Player, gs *GameState) bool {
	live := nonFolded(players)
	if len(live) <= 1 {
		return true
	}

	allIn := true
	matched := true
	for _, p := range live {
		if !p.AllIn() {
			allIn = false
			if p.Bet != gs.CurrentBet {
				matched = false
			}
		}
	}
	if allIn {
		return true
	}
	if !matched {
		return false
	}
	// heads-up: both players have had a real chance to act
	if len(live) == 2 && gs.ActionsInRound >= 2 {
		return true
	}
	return gs.ActionsInRound >= len(live)
}
