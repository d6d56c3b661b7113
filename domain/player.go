package domain

import (
	"github.com/lazharichir/holdem/domain/cards"
	"github.com/lazharichir/holdem/domain/events"
)

// Player represents a seated player in a room
type Player struct {
	ID              int
	Handle          string
	Name            string
	Chips           int
	HoleCards       []cards.Card
	Folded          bool
	Bet             int
	IsConnected     bool
	IsSittingOut    bool
	IsInCurrentHand bool
	RebuyCount      int
}

// AllIn reports whether the player has no chips behind.
func (p *Player) AllIn() bool {
	return p.Chips == 0
}

// Contending reports whether the player still contests the current pot.
func (p *Player) Contending() bool {
	return p.IsInCurrentHand && !p.Folded
}

// resetForNewHand clears the per-hand state.
func (p *Player) resetForNewHand() {
	p.HoleCards = nil
	p.Bet = 0
	p.Folded = false
}

func (p *Player) view(reveal bool) events.PlayerView {
	v := events.PlayerView{
		ID:              p.ID,
		Handle:          p.Handle,
		Name:            p.Name,
		Chips:           p.Chips,
		Bet:             p.Bet,
		Folded:          p.Folded,
		IsConnected:     p.IsConnected,
		IsSittingOut:    p.IsSittingOut,
		IsInCurrentHand: p.IsInCurrentHand,
		RebuyCount:      p.RebuyCount,
	}
	if reveal && p.Contending() {
		v.Cards = append([]cards.Card(nil), p.HoleCards...)
	}
	return v
}

func nonFolded(players []*Player) []*Player {
	var out []*Player
	for _, p := range players {
		if !p.Folded {
			out = append(out, p)
		}
	}
	return out
}

// ableToAct counts non-folded players that still have chips to bet.
func ableToAct(players []*Player) int {
	n := 0
	for _, p := range players {
		if !p.Folded && !p.AllIn() {
			n++
		}
	}
	return n
}
