// Command holdemsim plays bot hands on an in-process room and renders them
// in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/cards"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/domain/settings"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

func main() {
	bots := flag.Int("bots", 4, "number of bot players (2-9)")
	handsToPlay := flag.Int("hands", 5, "hands to play before stopping")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for the deck and the bots")
	chips := flag.Int("chips", 1000, "starting chips")
	blind := flag.Int("blind", 10, "small blind")
	verbose := flag.Bool("v", false, "log room internals")
	flag.Parse()

	if *bots < 2 || *bots > 9 {
		pterm.Error.Println("bots must be between 2 and 9")
		os.Exit(2)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	pterm.DefaultHeader.WithFullWidth().Println("Hold'em simulator")
	pterm.Info.Printfln("%d bots, %d hands, seed %d", *bots, *handsToPlay, *seed)

	if err := run(*bots, *handsToPlay, *seed, *chips, *blind, logger); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

type simulation struct {
	room   *domain.Room
	render *renderer
	rng    *rand.Rand

	turns   chan string
	rebuys  chan string
	done    chan struct{}
	once   sync.Once
	played int
	stopAt int
}

func run(bots, handsToPlay int, seed int64, chips, blind int, logger *logrus.Logger) error {
	deckRNG := rand.New(rand.NewSource(seed))
	s := settings.Default()
	s.AutoRebuy = true
	s.ShowdownDuration = settings.MinShowdownDuration
	s.HandEndDelay = settings.MinHandEndDelay

	cfg := domain.RoomConfig{
		TurnTimeLimit: 10 * time.Second,
		StartingChips: chips,
		SmallBlind:    blind,
		Settings:      s,
		Logger:        logger,
		NewDeck:       func() *cards.Deck { return cards.NewDeck(deckRNG) },
	}

	sim := &simulation{
		render: &renderer{},
		rng:    rand.New(rand.NewSource(seed + 1)),
		turns:  make(chan string, 64),
		rebuys: make(chan string, 16),
		done:   make(chan struct{}),
		stopAt: handsToPlay,
	}
	sim.room = domain.NewRoom("sim", cfg, sim.handle)

	for i := 1; i <= bots; i++ {
		if err := sim.room.Join(fmt.Sprintf("bot-%d", i), fmt.Sprintf("Bot %d", i)); err != nil {
			sim.room.Close()
			return err
		}
	}

	sim.drive()
	snap, err := sim.room.Snapshot()
	sim.room.Close()
	if err != nil {
		return err
	}
	sim.render.standings(snap.Players)
	return nil
}

// handle runs on the room goroutine. It must not call back into the room.
func (sim *simulation) handle(e events.Event) {
	switch ev := e.(type) {
	case events.GameStarted:
		sim.render.handStarted(ev)
	case events.GameUpdate:
		sim.render.update(ev)
		if h := ev.GameState.CurrentPlayerHandle; h != "" {
			select {
			case sim.turns <- h:
			default:
			}
		}
	case events.ShowdownResult:
		sim.render.showdown(ev)
	case events.HandEnded:
		sim.render.handEnded(ev)
		sim.played++
		if sim.played >= sim.stopAt {
			sim.stop()
		}
	case events.RebuyRequest:
		select {
		case sim.rebuys <- ev.Handle:
		default:
		}
	case events.GameEnded:
		pterm.Warning.Println(ev.Message)
		sim.stop()
	}
}

func (sim *simulation) stop() {
	sim.once.Do(func() { close(sim.done) })
}

// drive plays each bot's turn until enough hands are done.
func (sim *simulation) drive() {
	for {
		select {
		case <-sim.done:
			return
		case handle := <-sim.rebuys:
			if err := sim.room.Rebuy(handle, true, 0); err != nil && !errors.Is(err, domain.ErrNoRebuyPending) {
				pterm.Warning.Printfln("%s could not rebuy: %v", handle, err)
			}
		case handle := <-sim.turns:
			sim.play(handle)
		}
	}
}

func (sim *simulation) play(handle string) {
	snap, err := sim.room.Snapshot()
	if err != nil || snap.GameState.CurrentPlayerHandle != handle {
		return
	}
	for _, p := range snap.Players {
		if p.Handle != handle {
			continue
		}
		action, amount := decide(p, snap.GameState, sim.rng)
		err := sim.room.Act(handle, action, amount)
		if err != nil && !errors.Is(err, domain.ErrNotYourTurn) && !errors.Is(err, domain.ErrNoActiveHand) {
			pterm.Warning.Printfln("%s %s rejected: %v", p.Name, action, err)
		}
		return
	}
}
