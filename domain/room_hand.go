package domain

import (
	"github.com/google/uuid"
	"github.com/lazharichir/holdem/domain/cards"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/sirupsen/logrus"
)

// ReasonAllFolded is the handEnded reason when the pot is won uncontested.
const ReasonAllFolded = "all other players folded"

func (r *Room) handLog() *logrus.Entry {
	return r.log.WithFields(logrus.Fields{"hand": r.state.HandNumber, "phase": r.state.Phase})
}

// startHand deals a new hand to every eligible player holding more than
// minChipsToPlay.
func (r *Room) startHand() bool {
	var eligible []*Player
	for _, p := range r.players.Eligible() {
		if p.Chips > r.settings.MinChipsToPlay {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) < 2 {
		return false
	}

	r.stopTurnTimer()
	r.seq++
	r.runningOut = false
	r.players.ClearHandFlags()
	r.players.MarkInHand(eligible)
	r.state.StartHand(uuid.NewString())
	r.deck = r.cfg.NewDeck()

	view := r.players.Active(true)
	blinds := BlindPositions(len(view), r.state.DealerIndex)
	r.dealHoleCards(view, blinds.Dealer+1)

	small := commit(view[blinds.Small], r.state.SmallBlind, r.state)
	big := commit(view[blinds.Big], r.state.BigBlind, r.state)
	if len(view) == 2 {
		// the big blind is the first of the two heads-up actions
		r.state.ActionsInRound = 1
	}
	r.setCurrent(view, blinds.FirstToAct)

	r.handLog().WithFields(logrus.Fields{
		"players": len(view),
		"dealer":  view[blinds.Dealer].Name,
		"sb":      small,
		"bb":      big,
	}).Info("hand started")

	r.emit(events.GameStarted{RoomID: r.ID, GameState: r.gameStateView(), Players: r.playerViews()})
	for _, p := range view {
		r.emit(events.HoleCardsDealt{RoomID: r.ID, Handle: p.Handle, Cards: append([]cards.Card(nil), p.HoleCards...)})
	}
	r.proceed()
	return true
}

// dealHoleCards deals two rounds of one card each, starting at seat from.
func (r *Room) dealHoleCards(view []*Player, from int) {
	n := len(view)
	for round := 0; round < 2; round++ {
		for i := 0; i < n; i++ {
			p := view[mod(from+i, n)]
			c, ok := r.deck.Deal()
			if !ok {
				r.handLog().WithField("player", p.Name).Warn("deck empty while dealing hole cards")
				continue
			}
			p.HoleCards = append(p.HoleCards, c)
		}
	}
}

func (r *Room) dealCommunity(n int) {
	for i := 0; i < n; i++ {
		c, ok := r.deck.Deal()
		if !ok {
			r.handLog().Warn("deck empty while dealing the board")
			return
		}
		r.state.CommunityCards = append(r.state.CommunityCards, c)
	}
}

// restoreTurn re-derives the current index from the anchored player. If that
// player has left the view, the turn moves to the next seat still holding
// cards. Call it before anything that reads the turn.
func (r *Room) restoreTurn() []*Player {
	view := r.players.Active(r.state.Phase.HandActive())
	if len(view) == 0 {
		r.state.CurrentPlayerIndex = 0
		r.currentID = 0
		return view
	}
	for i, p := range view {
		if p.ID == r.currentID {
			r.state.CurrentPlayerIndex = i
			return view
		}
	}

	idx := mod(r.state.CurrentPlayerIndex, len(view))
	for i := 0; i < len(view); i++ {
		if j := (idx + i) % len(view); !view[j].Folded {
			idx = j
			break
		}
	}
	r.log.WithFields(logrus.Fields{"from": r.currentID, "index": idx}).Debug("turn index restored")
	r.setCurrent(view, idx)
	return view
}

func (r *Room) setCurrent(view []*Player, idx int) {
	if len(view) == 0 {
		r.state.CurrentPlayerIndex = 0
		r.currentID = 0
		return
	}
	idx = mod(idx, len(view))
	r.state.CurrentPlayerIndex = idx
	r.currentID = view[idx].ID
}

func (r *Room) currentPlayer() *Player {
	view := r.players.Active(r.state.Phase.HandActive())
	for _, p := range view {
		if p.ID == r.currentID {
			return p
		}
	}
	return nil
}

// proceed settles the turn after the state changed: it ends the hand or the
// round when nothing is left to play, passes over all-in players and
// otherwise hands the turn to the current player.
func (r *Room) proceed() {
	view := r.restoreTurn()
	for guard := 0; guard <= 2*len(view)+1; guard++ {
		if len(nonFolded(view)) <= 1 {
			r.endHandEarly()
			return
		}
		if IsRoundComplete(view, r.state) {
			r.advancePhase()
			return
		}

		cur := view[r.state.CurrentPlayerIndex]
		if !cur.Folded && !cur.AllIn() {
			r.startTurnTimer()
			r.emitGameUpdate()
			return
		}

		if !cur.Folded {
			// an all-in seat has nothing to decide but still counts
			r.state.ActionsInRound++
		}
		next, outcome := NextPlayer(view, r.state.CurrentPlayerIndex)
		switch outcome {
		case TurnHandEnd:
			r.endHandEarly()
			return
		case TurnPhaseAdvance:
			r.advancePhase()
			return
		}
		r.setCurrent(view, next)
	}

	r.handLog().Warn("no player could take the turn, advancing")
	r.advancePhase()
}

func (r *Room) act(handle string, action Action, amount int) error {
	if !r.state.Phase.IsBetting() || r.runningOut {
		return ErrNoActiveHand
	}
	p := r.players.Get(handle)
	if p == nil {
		return ErrPlayerNotFound
	}

	view := r.restoreTurn()
	if len(view) == 0 || view[r.state.CurrentPlayerIndex] != p {
		return ErrNotYourTurn
	}

	chips, err := Validate(p, action, amount, r.state.CurrentBet, r.state.BigBlind)
	if err != nil {
		r.handLog().WithFields(logrus.Fields{"player": p.Name, "action": action, "amount": amount}).
			WithError(err).Debug("action rejected")
		return err
	}

	r.stopTurnTimer()
	Apply(p, action, chips, r.state)
	r.clampChips()
	r.handLog().WithFields(logrus.Fields{
		"player": p.Name, "action": action, "chips": chips, "pot": r.state.Pot,
	}).Info("player acted")

	if action == ActionFold && len(nonFolded(view)) == 1 {
		r.endHandEarly()
		return nil
	}
	if IsRoundComplete(view, r.state) {
		r.advancePhase()
		return nil
	}

	next, outcome := NextPlayer(view, r.state.CurrentPlayerIndex)
	switch outcome {
	case TurnHandEnd:
		r.endHandEarly()
	case TurnPhaseAdvance:
		r.advancePhase()
	default:
		r.setCurrent(view, next)
		r.proceed()
	}
	return nil
}

// foldDeparted folds a player who left mid-round and repairs the turn.
func (r *Room) foldDeparted(p *Player) {
	wasCurrent := p.ID == r.currentID
	p.Folded = true

	view := r.restoreTurn()
	switch {
	case len(nonFolded(r.players.InHand())) <= 1:
		r.endHandEarly()
	case r.runningOut:
	case wasCurrent:
		r.stopTurnTimer()
		r.proceed()
	case IsRoundComplete(view, r.state):
		r.advancePhase()
	}
}

func (r *Room) advancePhase() {
	r.stopTurnTimer()
	view := r.players.Active(true)
	if len(nonFolded(view)) <= 1 {
		r.endHandEarly()
		return
	}
	for _, p := range r.players.InHand() {
		p.Bet = 0
	}

	if r.state.Phase != PhaseRiver && ableToAct(view) < 2 {
		r.runout()
		return
	}

	phase := r.state.Advance()
	if phase == PhaseShowdown {
		r.settle()
		return
	}
	r.dealCommunity(communityCardsFor(phase))
	r.setCurrent(view, FirstToActForPhase(view, r.state.DealerIndex, phase))
	r.handLog().WithField("board", cards.Cards(r.state.CommunityCards).String()).Info("phase advanced")
	r.proceed()
}

// runout deals the rest of the board when no more betting is possible and
// shows it before the showdown.
func (r *Room) runout() {
	r.runningOut = true
	for r.state.Phase != PhaseRiver {
		r.dealCommunity(communityCardsFor(r.state.Advance()))
	}
	r.handLog().WithField("board", cards.Cards(r.state.CommunityCards).String()).Info("all in, running out the board")
	r.emitGameUpdate()
	r.afterHand(r.cfg.RunoutDelay, r.settle)
}

func (r *Room) settle() {
	r.stopTurnTimer()
	r.runningOut = false
	r.state.Phase = PhaseShowdown
	r.state.ResetRound()

	live := nonFolded(r.players.InHand())
	result := Evaluate(live, r.state.CommunityCards)
	winners := make([]*Player, len(result.Winners))
	names := make([]string, len(result.Winners))
	for i, w := range result.Winners {
		winners[i] = w.Player
		names[i] = w.Player.Name
	}

	pot := r.state.Pot
	payouts := Distribute(pot, winners)
	for _, pay := range payouts {
		pay.Player.Chips += pay.Amount
		r.state.Pot -= pay.Amount
	}
	r.clampChips()

	winAmount := pot
	if len(winners) > 1 {
		winAmount = pot / len(winners)
	}
	winningHand := ""
	if len(result.Winners) > 0 {
		winningHand = result.Winners[0].Description
	}

	evaluations := make([]events.HandEvaluation, len(result.Evaluations))
	for i, e := range result.Evaluations {
		evaluations[i] = events.HandEvaluation{
			PlayerName:      e.Player.Name,
			Handle:          e.Player.Handle,
			Cards:           append([]cards.Card(nil), e.Player.HoleCards...),
			BestHand:        e.Hand.Cards,
			HandDescription: e.Description,
			IsWinner:        result.IsWinner(e.Player),
		}
	}

	r.handLog().WithFields(logrus.Fields{"winners": names, "pot": pot, "hand": winningHand}).Info("showdown")

	r.emit(events.ShowdownResult{
		RoomID:          r.ID,
		GameState:       r.gameStateView(),
		Players:         r.playerViews(),
		Winners:         names,
		WinAmount:       winAmount,
		WinningHand:     winningHand,
		SplitPot:        len(winners) > 1,
		HandEvaluations: evaluations,
	})
	r.emitGameUpdate()

	ended := events.HandEnded{
		RoomID:          r.ID,
		HandID:          r.state.HandID,
		WinAmount:       winAmount,
		WinningHand:     winningHand,
		SplitPot:        len(winners) > 1,
		HandEvaluations: evaluations,
	}
	if len(names) == 1 {
		ended.Winner = names[0]
	} else {
		ended.Winners = names
	}
	r.afterHand(r.settings.ShowdownDelay(), func() { r.finishHand(ended) })
}

func (r *Room) finishHand(ended events.HandEnded) {
	ended.GameState = r.gameStateView()
	ended.Players = r.playerViews()
	r.emit(ended)
	r.resetForNextHand()
	r.afterHand(r.settings.NextHandDelay(), r.startNextHand)
}

// endHandEarly awards the pot to the last player holding cards.
func (r *Room) endHandEarly() {
	r.stopTurnTimer()
	r.runningOut = false
	live := nonFolded(r.players.InHand())
	pot := r.state.Pot

	ended := events.HandEnded{
		RoomID:    r.ID,
		HandID:    r.state.HandID,
		WinAmount: pot,
		Reason:    ReasonAllFolded,
	}
	if len(live) == 1 {
		live[0].Chips += pot
		r.state.Pot = 0
		ended.Winner = live[0].Name
		r.handLog().WithFields(logrus.Fields{"winner": live[0].Name, "pot": pot}).Info("hand won uncontested")
	} else {
		r.handLog().WithField("remaining", len(live)).Warn("hand ended early without a single winner")
	}
	r.clampChips()

	ended.GameState = r.gameStateView()
	ended.Players = r.playerViews()
	r.emit(ended)
	r.resetForNextHand()
	r.afterHand(r.settings.NextHandDelay(), r.startNextHand)
}

func (r *Room) resetForNextHand() {
	if active := r.players.Active(true); len(active) >= 2 {
		r.state.DealerIndex = (r.state.DealerIndex + 1) % len(active)
	}
	r.stopTurnTimer()
	r.runningOut = false
	r.state.EndHand()
	r.players.ClearHandFlags()
	r.deck = nil
	r.currentID = 0
	r.seq++

	if gone := r.players.PurgeDisconnected(); len(gone) > 0 {
		for _, p := range gone {
			r.log.WithField("player", p.Name).Info("removed disconnected player")
		}
		r.emit(events.PlayersUpdate{RoomID: r.ID, Players: r.playerViews()})
	}
	r.emitGameUpdate()
}

// maybeAutoStart schedules a hand once enough players are seated.
func (r *Room) maybeAutoStart() {
	if r.startPending || r.state.Phase != PhaseWaiting || len(r.players.Eligible()) < 2 {
		return
	}
	r.startPending = true
	r.after(r.cfg.AutoStartDelay, func() {
		r.startPending = false
		r.startNextHand()
	})
}

// startNextHand handles short stacks and starts a hand if at least two
// players have enough chips.
func (r *Room) startNextHand() {
	if r.closed || r.state.Phase != PhaseWaiting {
		return
	}
	r.applyBlindSchedule()

	connected := r.players.Connected()
	var broke []*Player
	for _, p := range connected {
		if p.IsSittingOut || p.Chips > r.settings.MinChipsToPlay {
			continue
		}
		switch {
		case r.settings.AutoRebuy:
			if r.settings.RebuyAllowed(p.RebuyCount) {
				r.grantRebuy(p, r.settings.RebuyAmount)
			} else {
				p.IsSittingOut = true
				r.log.WithField("player", p.Name).Info("rebuy limit reached, sitting out")
			}
		case r.settings.RebuyAllowed(p.RebuyCount):
			broke = append(broke, p)
		default:
			p.IsSittingOut = true
			r.log.WithField("player", p.Name).Info("rebuy limit reached, sitting out")
		}
	}

	if len(broke) > 0 && len(connected) >= 2 {
		r.requestRebuys(broke, connected)
		return
	}

	ready := 0
	for _, p := range connected {
		if !p.IsSittingOut && p.Chips > r.settings.MinChipsToPlay {
			ready++
		}
	}
	if ready >= 2 && r.startHand() {
		return
	}

	r.log.WithField("ready", ready).Info("not enough players for a hand")
	if len(connected) >= 2 {
		r.emit(events.WaitingForPlayers{
			RoomID:    r.ID,
			Reason:    "Players need more chips to continue",
			AutoRebuy: r.settings.AutoRebuy,
			MinChips:  r.settings.MinChipsToPlay,
			GameState: r.gameStateView(),
			Players:   r.playerViews(),
		})
	}
}

// applyBlindSchedule doubles the blinds every BlindIncreaseInterval hands.
func (r *Room) applyBlindSchedule() {
	interval := r.settings.BlindIncreaseInterval
	played := r.state.HandNumber
	if interval <= 0 || played == 0 || played%interval != 0 || r.lastBlindStep == played {
		return
	}
	r.lastBlindStep = played
	r.state.DoubleBlinds()
	r.log.WithFields(logrus.Fields{"sb": r.state.SmallBlind, "bb": r.state.BigBlind}).Info("blinds increased")
	r.emit(events.BlindsIncreased{
		RoomID:     r.ID,
		HandNumber: played,
		SmallBlind: r.state.SmallBlind,
		BigBlind:   r.state.BigBlind,
	})
}

func (r *Room) clampChips() {
	for _, p := range r.players.ClampNegativeChips() {
		r.handLog().WithField("player", p.Name).Warn("negative chips clamped to zero")
	}
	if r.state.Pot < 0 {
		r.handLog().WithField("pot", r.state.Pot).Warn("negative pot clamped to zero")
		r.state.Pot = 0
	}
}
