package domain

import (
	"fmt"
	"strings"

	"github.com/lazharichir/holdem/domain/events"
	"github.com/sirupsen/logrus"
)

const gameEndedMessage = "Game ended - not enough players with chips to continue"

// requestRebuys pauses the room until every short-stacked player has
// decided whether to buy back in.
func (r *Room) requestRebuys(broke, connected []*Player) {
	r.state.Phase = PhaseWaitingRebuy
	r.pendingRebuys = make(map[string]bool, len(broke))
	names := make([]string, len(broke))
	for i, p := range broke {
		r.pendingRebuys[p.Handle] = true
		names[i] = p.Name
	}
	r.log.WithField("players", names).Info("waiting for rebuys")

	gs, players := r.gameStateView(), r.playerViews()
	for _, p := range broke {
		r.emit(events.RebuyRequest{
			RoomID:      r.ID,
			Handle:      p.Handle,
			Message:     fmt.Sprintf("You have %d chips left. Would you like to buy more chips to continue playing?", p.Chips),
			Chips:       p.Chips,
			RebuyAmount: r.settings.RebuyAmount,
			GameState:   gs,
			Players:     players,
		})
	}
	for _, p := range connected {
		if r.pendingRebuys[p.Handle] {
			continue
		}
		r.emit(events.WaitingForRebuys{
			RoomID:       r.ID,
			Handle:       p.Handle,
			Message:      fmt.Sprintf("Waiting for %s to decide on buying more chips...", strings.Join(names, ", ")),
			BrokePlayers: names,
			GameState:    gs,
			Players:      players,
		})
	}
	r.emitGameUpdate()
}

func (r *Room) rebuy(handle string, buy bool, amount int) error {
	if r.state.Phase != PhaseWaitingRebuy || !r.pendingRebuys[handle] {
		return ErrNoRebuyPending
	}
	p := r.players.Get(handle)
	if p == nil {
		return ErrPlayerNotFound
	}

	delete(r.pendingRebuys, handle)
	if buy {
		r.grantRebuy(p, r.settings.RebuyChips(amount))
		r.emit(events.RebuyResult{RoomID: r.ID, Handle: handle, Success: true, NewChips: p.Chips, RebuyCount: p.RebuyCount})
	} else {
		p.IsSittingOut = true
		r.log.WithField("player", p.Name).Info("rebuy declined, sitting out")
		r.emit(events.PlayersUpdate{RoomID: r.ID, Players: r.playerViews()})
	}

	if len(r.pendingRebuys) == 0 {
		r.continueAfterRebuys()
	}
	return nil
}

func (r *Room) continueAfterRebuys() {
	r.state.Phase = PhaseWaiting
	if r.startHand() {
		return
	}
	r.log.Info(gameEndedMessage)
	r.emit(events.GameEnded{
		RoomID:    r.ID,
		Message:   gameEndedMessage,
		GameState: r.gameStateView(),
		Players:   r.playerViews(),
	})
}

// grantRebuy resets a stack to chips and counts the rebuy.
func (r *Room) grantRebuy(p *Player, chips int) {
	p.Chips = chips
	p.RebuyCount++
	p.IsSittingOut = false
	r.log.WithFields(logrus.Fields{"player": p.Name, "chips": chips, "count": p.RebuyCount}).Info("player rebought")
	r.emit(events.PlayerRebuy{
		RoomID:       r.ID,
		PlayerHandle: p.Handle,
		PlayerName:   p.Name,
		NewChips:     p.Chips,
		RebuyCount:   p.RebuyCount,
	})
	r.emitGameUpdate()
}

// requestRebuy is a manual top-up. The outcome is also sent to the player.
func (r *Room) requestRebuy(handle string) error {
	err := r.tryRequestRebuy(handle)
	if err != nil {
		r.emit(events.RebuyResult{RoomID: r.ID, Handle: handle, Success: false, Error: err.Error()})
	}
	return err
}

func (r *Room) tryRequestRebuy(handle string) error {
	p := r.players.Get(handle)
	if p == nil {
		return ErrPlayerNotFound
	}
	if r.state.Phase.HandActive() {
		return ErrHandInProgress
	}
	if r.state.Phase == PhaseWaitingRebuy && r.pendingRebuys[handle] {
		return r.rebuy(handle, true, 0)
	}
	if p.Chips > r.settings.MinChipsToPlay {
		return ErrRebuyNotNeeded
	}
	if !r.settings.RebuyAllowed(p.RebuyCount) {
		return fmt.Errorf("%w (%d)", ErrRebuyLimit, r.settings.MaxRebuyCount)
	}

	r.grantRebuy(p, r.settings.RebuyAmount)
	r.emit(events.RebuyResult{RoomID: r.ID, Handle: handle, Success: true, NewChips: p.Chips, RebuyCount: p.RebuyCount})
	r.maybeAutoStart()
	return nil
}
