package domain

import (
	"time"

	"github.com/lazharichir/holdem/domain/events"
	"github.com/sirupsen/logrus"
)

// startTurnTimer arms the one second countdown for the current player.
func (r *Room) startTurnTimer() {
	r.stopTurnTimer()
	cur := r.currentPlayer()
	if cur == nil || !r.state.Phase.IsBetting() || r.runningOut || cur.AllIn() {
		return
	}

	r.state.TurnTimeLeft = int(r.cfg.TurnTimeLimit / time.Second)
	r.emit(events.TurnTimer{RoomID: r.ID, TimeLeft: r.state.TurnTimeLeft, CurrentPlayerHandle: cur.Handle})
	r.armTick(cur.ID, cur.Handle)
}

func (r *Room) armTick(playerID int, handle string) {
	turn := r.turnSeq
	r.turnTimer = r.cfg.Clock.AfterFunc(time.Second, func() {
		r.post(func() {
			if r.closed || r.turnSeq != turn || r.currentID != playerID {
				return
			}
			r.state.TurnTimeLeft--
			r.emit(events.TurnTimer{RoomID: r.ID, TimeLeft: r.state.TurnTimeLeft, CurrentPlayerHandle: handle})
			if r.state.TurnTimeLeft > 0 {
				r.armTick(playerID, handle)
				return
			}
			r.stopTurnTimer()
			r.timeout(handle)
		})
	})
}

// stopTurnTimer cancels the countdown. A tick already queued is ignored
// because the turn sequence moved on.
func (r *Room) stopTurnTimer() {
	r.turnSeq++
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
	r.state.TurnTimeLeft = 0
}

// timeout folds the player exactly as if they had folded themselves.
func (r *Room) timeout(handle string) {
	r.handLog().WithField("handle", handle).Info("turn timed out, folding")
	if err := r.act(handle, ActionFold, 0); err != nil {
		r.handLog().WithFields(logrus.Fields{"handle": handle}).WithError(err).Warn("timeout fold failed")
	}
}
