package main

import (
	"math/rand"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/cards"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/domain/hands"
)

// strength buckets a holding: 0 weak, 1 playable, 2 strong.
func strength(hole, board []cards.Card) int {
	if len(hole) < 2 {
		return 0
	}
	if len(board) == 0 {
		switch {
		case hole[0].Rank() == hole[1].Rank():
			return 2
		case hole[0].Rank() >= 12 || hole[1].Rank() >= 12:
			return 1
		}
		return 0
	}

	best, err := hands.BestHandOf(hole, board)
	if err != nil {
		return 0
	}
	switch c := best.Rank.Category(); {
	case c >= hands.TwoPair:
		return 2
	case c == hands.OnePair:
		return 1
	}
	return 0
}

// decide picks an action for p. Raises are always the minimum.
func decide(p events.PlayerView, gs events.GameStateView, rng *rand.Rand) (domain.Action, int) {
	toCall := gs.CurrentBet - p.Bet
	s := strength(p.Cards, gs.CommunityCards)
	minRaise := toCall + gs.BigBlind

	if s == 2 && p.Chips > minRaise && rng.Intn(2) == 0 {
		return domain.ActionRaise, minRaise
	}
	if toCall <= 0 {
		return domain.ActionCheck, 0
	}
	if s == 0 && toCall > 2*gs.BigBlind {
		return domain.ActionFold, 0
	}
	return domain.ActionCall, 0
}
