package domain

// PlayerRegistry owns the players seated in a room, in seating order.
type PlayerRegistry struct {
	players       []*Player
	nextID        int
	startingChips int
}

func NewPlayerRegistry(startingChips int) *PlayerRegistry {
	return &PlayerRegistry{startingChips: startingChips}
}

// Add seats a new player with the starting stake. A handle that is already
// seated is reconnected instead and keeps its chips.
func (r *PlayerRegistry) Add(handle, name string) *Player {
	if p := r.Get(handle); p != nil {
		p.IsConnected = true
		if name != "" {
			p.Name = name
		}
		return p
	}

	r.nextID++
	p := &Player{
		ID:          r.nextID,
		Handle:      handle,
		Name:        name,
		Chips:       r.startingChips,
		IsConnected: true,
	}
	r.players = append(r.players, p)
	return p
}

// Get returns the player seated under handle, or nil.
func (r *PlayerRegistry) Get(handle string) *Player {
	for _, p := range r.players {
		if p.Handle == handle {
			return p
		}
	}
	return nil
}

// Remove deletes a player. It is only legal between hands.
func (r *PlayerRegistry) Remove(handle string, handActive bool) error {
	if handActive {
		return ErrHandInProgress
	}
	for i, p := range r.players {
		if p.Handle == handle {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// MarkDisconnected keeps the player for mid-hand bookkeeping.
func (r *PlayerRegistry) MarkDisconnected(handle string) *Player {
	p := r.Get(handle)
	if p != nil {
		p.IsConnected = false
	}
	return p
}

func (r *PlayerRegistry) Len() int { return len(r.players) }

func (r *PlayerRegistry) All() []*Player {
	return r.filter(func(*Player) bool { return true })
}

func (r *PlayerRegistry) Connected() []*Player {
	return r.filter(func(p *Player) bool { return p.IsConnected })
}

// Eligible are the players who can be dealt into the next hand.
func (r *PlayerRegistry) Eligible() []*Player {
	return r.filter(func(p *Player) bool {
		return p.IsConnected && !p.IsSittingOut && p.Chips > 0
	})
}

func (r *PlayerRegistry) InHand() []*Player {
	return r.filter(func(p *Player) bool { return p.IsInCurrentHand })
}

// Active is the player view turn positions index into. During a hand it is
// the connected players dealt in, between hands the connected players not
// sitting out.
func (r *PlayerRegistry) Active(handActive bool) []*Player {
	if handActive {
		return r.filter(func(p *Player) bool { return p.IsInCurrentHand && p.IsConnected })
	}
	return r.filter(func(p *Player) bool { return p.IsConnected && !p.IsSittingOut })
}

// MarkInHand deals the given players into a new hand.
func (r *PlayerRegistry) MarkInHand(players []*Player) {
	for _, p := range players {
		p.resetForNewHand()
		p.IsInCurrentHand = true
	}
}

// ClearHandFlags ends the hand for everyone.
func (r *PlayerRegistry) ClearHandFlags() {
	for _, p := range r.players {
		p.resetForNewHand()
		p.IsInCurrentHand = false
	}
}

// ClampNegativeChips floors every stack and bet at zero and returns the
// players that needed it.
func (r *PlayerRegistry) ClampNegativeChips() []*Player {
	var clamped []*Player
	for _, p := range r.players {
		if p.Chips < 0 || p.Bet < 0 {
			if p.Chips < 0 {
				p.Chips = 0
			}
			if p.Bet < 0 {
				p.Bet = 0
			}
			clamped = append(clamped, p)
		}
	}
	return clamped
}

// PurgeDisconnected removes players who left mid-hand. Only call between hands.
func (r *PlayerRegistry) PurgeDisconnected() []*Player {
	var gone []*Player
	kept := r.players[:0]
	for _, p := range r.players {
		if p.IsConnected {
			kept = append(kept, p)
		} else {
			gone = append(gone, p)
		}
	}
	for i := len(kept); i < len(r.players); i++ {
		r.players[i] = nil
	}
	r.players = kept
	return gone
}

func (r *PlayerRegistry) filter(keep func(*Player) bool) []*Player {
	out := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
