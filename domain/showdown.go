package domain

import (
	"sort"

	"github.com/lazharichir/holdem/domain/cards"
	"github.com/lazharichir/holdem/domain/hands"
)

const noValidHand = "No valid hand"

// Evaluation is one player's best hand at showdown.
type Evaluation struct {
	Player      *Player
	Hand        hands.Hand
	Description string
	// Valid is false when the player's cards could not form five cards.
	Valid bool
}

// ShowdownResult lists evaluations best first. Winners is the leading group
// of equal hands.
type ShowdownResult struct {
	Evaluations []Evaluation
	Winners     []Evaluation
	// ByDefault is set when a single player was left and no hands were compared.
	ByDefault bool
}

// Evaluate ranks the hands of the remaining players.
func Evaluate(players []*Player, community []cards.Card) ShowdownResult {
	if len(players) == 0 {
		return ShowdownResult{}
	}
	if len(players) == 1 {
		only := Evaluation{Player: players[0]}
		return ShowdownResult{Winners: []Evaluation{only}, ByDefault: true}
	}

	evals := make([]Evaluation, 0, len(players))
	for _, p := range players {
		best, err := hands.BestHandOf(p.HoleCards, community)
		if err != nil {
			evals = append(evals, Evaluation{Player: p, Description: noValidHand})
			continue
		}
		evals = append(evals, Evaluation{
			Player:      p,
			Hand:        best,
			Description: hands.Describe(best.Rank),
			Valid:       true,
		})
	}

	// stable, so equal hands keep seating order
	sort.SliceStable(evals, func(i, j int) bool {
		return hands.Compare(evals[i].Hand.Rank, evals[j].Hand.Rank) > 0
	})

	winners := []Evaluation{evals[0]}
	for _, e := range evals[1:] {
		if hands.Compare(e.Hand.Rank, evals[0].Hand.Rank) != 0 {
			break
		}
		winners = append(winners, e)
	}

	return ShowdownResult{Evaluations: evals, Winners: winners}
}

// IsWinner reports whether p is among the winners.
func (r ShowdownResult) IsWinner(p *Player) bool {
	for _, w := range r.Winners {
		if w.Player == p {
			return true
		}
	}
	return false
}

// Payout is the share of the pot a winner receives.
type Payout struct {
	Player *Player
	Amount int
}

// Distribute splits pot between winners, in evaluation order. The odd chips
// go one each to the first winners.
func Distribute(pot int, winners []*Player) []Payout {
	if len(winners) == 0 || pot <= 0 {
		return nil
	}
	share := pot / len(winners)
	remainder := pot % len(winners)

	payouts := make([]Payout, len(winners))
	for i, w := range winners {
		amount := share
		if i < remainder {
			amount++
		}
		payouts[i] = Payout{Player: w, Amount: amount}
	}
	return payouts
}
