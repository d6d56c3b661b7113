package domain

// Blinds are the seat positions for a hand, as indices into the active view.
type Blinds struct {
	Dealer     int
	Small      int
	Big        int
	FirstToAct int
}

// BlindPositions computes the button, blinds and preflop first actor for n
// players. Heads-up the dealer posts the small blind and acts first.
func BlindPositions(n, dealerIndex int) Blinds {
	if n <= 0 {
		return Blinds{}
	}
	dealer := mod(dealerIndex, n)
	if n == 2 {
		return Blinds{
			Dealer:     dealer,
			Small:      dealer,
			Big:        (dealer + 1) % n,
			FirstToAct: dealer,
		}
	}
	return Blinds{
		Dealer:     dealer,
		Small:      (dealer + 1) % n,
		Big:        (dealer + 2) % n,
		FirstToAct: (dealer + 3) % n,
	}
}

// FirstToActForPhase returns the opening seat of a betting round. After the
// flop the first non-folded seat left of the dealer opens.
func FirstToActForPhase(players []*Player, dealerIndex int, phase Phase) int {
	n := len(players)
	if n == 0 {
		return 0
	}
	start := mod(dealerIndex+1, n)
	if phase == PhasePreflop {
		start = BlindPositions(n, dealerIndex).FirstToAct
	}
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if !players[idx].Folded {
			return idx
		}
	}
	return start
}

// TurnOutcome is what NextPlayer decided.
type TurnOutcome int

const (
	// TurnNext means the returned index acts next.
	TurnNext TurnOutcome = iota
	// TurnHandEnd means a single player is left in the hand.
	TurnHandEnd
	// TurnPhaseAdvance means nobody can act in this round any more.
	TurnPhaseAdvance
)

// NextPlayer finds the seat after current that still holds cards. All-in
// players are returned too; the caller passes over them.
func NextPlayer(players []*Player, current int) (int, TurnOutcome) {
	n := len(players)
	live := nonFolded(players)
	if len(live) == 1 {
		return current, TurnHandEnd
	}
	if len(live) == 0 || ableToAct(players) == 0 {
		return current, TurnPhaseAdvance
	}
	for i := 1; i <= n; i++ {
		idx := mod(current+i, n)
		if !players[idx].Folded {
			return idx, TurnNext
		}
	}
	return current, TurnPhaseAdvance
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
