package domain

import (
	"fmt"
	"math/rand"
	"runtime/debug"
	"time"

	"github.com/lazharichir/holdem/domain/cards"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/domain/settings"
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
)

// RoomConfig holds the fixed parameters of a room.
type RoomConfig struct {
	TurnTimeLimit  time.Duration
	StartingChips  int
	SmallBlind     int
	AutoStartDelay time.Duration
	RunoutDelay    time.Duration
	Settings       settings.Settings

	Clock  Clock
	Logger *logrus.Logger
	// NewDeck returns the deck for each hand. Defaults to a shuffled deck.
	NewDeck func() *cards.Deck
}

// DefaultRoomConfig returns the standard table parameters.
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		TurnTimeLimit:  30 * time.Second,
		StartingChips:  1000,
		SmallBlind:     10,
		AutoStartDelay: time.Second,
		RunoutDelay:    2 * time.Second,
		Settings:       settings.Default(),
	}
}

func (c RoomConfig) withDefaults() RoomConfig {
	def := DefaultRoomConfig()
	if c.TurnTimeLimit < time.Second {
		c.TurnTimeLimit = def.TurnTimeLimit
	}
	if c.StartingChips <= 0 {
		c.StartingChips = def.StartingChips
	}
	if c.SmallBlind <= 0 {
		c.SmallBlind = def.SmallBlind
	}
	if c.AutoStartDelay <= 0 {
		c.AutoStartDelay = def.AutoStartDelay
	}
	if c.RunoutDelay <= 0 {
		c.RunoutDelay = def.RunoutDelay
	}
	if c.Settings == (settings.Settings{}) {
		c.Settings = def.Settings
	}
	if c.Clock == nil {
		c.Clock = RealClock
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	if c.NewDeck == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		c.NewDeck = func() *cards.Deck { return cards.NewDeck(rng) }
	}
	return c
}

// Room is one table. All of its state is owned by a single goroutine and
// every operation is a closure run on that goroutine, one at a time.
type Room struct {
	ID string

	cfg      RoomConfig
	log      *logrus.Entry
	settings settings.Settings
	players  *PlayerRegistry
	state    *GameState
	deck     *cards.Deck

	// currentID anchors the turn to a player so the index can be re-derived
	// when the active view changes.
	currentID int
	// seq changes whenever a hand starts or ends; continuations scheduled
	// for an older value are dropped.
	seq           uint64
	turnSeq       uint64
	turnTimer     Timer
	timers        map[Timer]struct{}
	runningOut    bool
	startPending  bool
	pendingRebuys map[string]bool
	lastBlindStep int

	eventHandlers []events.EventHandler

	inbox  chan func()
	done   chan struct{}
	closed bool
}

// NewRoom creates a room and starts its goroutine.
func NewRoom(id string, cfg RoomConfig, handlers ...events.EventHandler) *Room {
	cfg = cfg.withDefaults()
	r := &Room{
		ID:            id,
		cfg:           cfg,
		log:           cfg.Logger.WithField("room", id),
		settings:      cfg.Settings,
		players:       NewPlayerRegistry(cfg.StartingChips),
		state:         NewGameState(cfg.SmallBlind),
		timers:        make(map[Timer]struct{}),
		pendingRebuys: make(map[string]bool),
		eventHandlers: handlers,
		inbox:         make(chan func(), 64),
		done:          make(chan struct{}),
	}
	go r.run()
	r.log.Info("room opened")
	return r
}

func (r *Room) run() {
	defer close(r.done)
	for fn := range r.inbox {
		r.safely(fn)
		if r.closed {
			return
		}
	}
}

func (r *Room) safely(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.WithField("panic", rec).Errorf("room handler panicked\n%s", debug.Stack())
		}
	}()
	fn()
}

// do runs fn on the room goroutine and waits for it.
func (r *Room) do(fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case r.inbox <- task:
	case <-r.done:
		return ErrRoomClosed
	}

	select {
	case <-finished:
		return nil
	case <-r.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrRoomClosed
		}
	}
}

// post queues fn without waiting. Used by timers.
func (r *Room) post(fn func()) {
	select {
	case r.inbox <- fn:
	case <-r.done:
	}
}

// after schedules fn on the room goroutine.
func (r *Room) after(d time.Duration, fn func()) {
	var t Timer
	t = r.cfg.Clock.AfterFunc(d, func() {
		r.post(func() {
			delete(r.timers, t)
			if r.closed {
				return
			}
			fn()
		})
	})
	r.timers[t] = struct{}{}
}

// afterHand is after, but dropped if the hand it belongs to is over.
func (r *Room) afterHand(d time.Duration, fn func()) {
	seq := r.seq
	r.after(d, func() {
		if r.seq != seq {
			r.log.Debug("stale continuation dropped")
			return
		}
		fn()
	})
}

// AddEventHandler registers a handler for every event the room emits.
func (r *Room) AddEventHandler(handler events.EventHandler) error {
	return r.do(func() {
		r.eventHandlers = append(r.eventHandlers, handler)
	})
}

func (r *Room) emit(event events.Event) {
	if r.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		r.log.WithField("event", event.Name()).Debug(litter.Sdump(event))
	}
	for _, handler := range r.eventHandlers {
		handler(event)
	}
}

// Join seats a player, or reconnects one that is already seated.
func (r *Room) Join(handle, name string) error {
	var err error
	if doErr := r.do(func() { err = r.join(handle, name) }); doErr != nil {
		return doErr
	}
	return err
}

// Leave removes a player and returns how many connected players remain.
func (r *Room) Leave(handle string) (int, error) {
	return r.depart(handle, "left")
}

// Disconnect is Leave for a dropped connection.
func (r *Room) Disconnect(handle string) (int, error) {
	return r.depart(handle, "disconnected")
}

func (r *Room) depart(handle, why string) (int, error) {
	var remaining int
	var err error
	if doErr := r.do(func() { remaining, err = r.leave(handle, why) }); doErr != nil {
		return 0, doErr
	}
	return remaining, err
}

// Act applies a betting action for the player behind handle.
func (r *Room) Act(handle string, action Action, amount int) error {
	var err error
	if doErr := r.do(func() { err = r.act(handle, action, amount) }); doErr != nil {
		return doErr
	}
	return err
}

// Rebuy answers a rebuy request. Declining sits the player out.
func (r *Room) Rebuy(handle string, buy bool, amount int) error {
	var err error
	if doErr := r.do(func() { err = r.rebuy(handle, buy, amount) }); doErr != nil {
		return doErr
	}
	return err
}

// RequestRebuy tops up a short stack between hands.
func (r *Room) RequestRebuy(handle string) error {
	var err error
	if doErr := r.do(func() { err = r.requestRebuy(handle) }); doErr != nil {
		return doErr
	}
	return err
}

// UpdateSettings merges patch into the room settings and returns the result.
func (r *Room) UpdateSettings(patch map[string]any) (settings.Settings, error) {
	var s settings.Settings
	err := r.do(func() { s = r.updateSettings(patch) })
	return s, err
}

// Settings returns the room settings and sends them to handle.
func (r *Room) Settings(handle string) (settings.Settings, error) {
	var s settings.Settings
	err := r.do(func() {
		s = r.settings
		if handle != "" {
			r.emit(events.SettingsData{RoomID: r.ID, Handle: handle, Settings: s})
		}
	})
	return s, err
}

// Snapshot is a copy of the room state, hole cards included.
type Snapshot struct {
	RoomID    string
	GameState events.GameStateView
	Players   []events.PlayerView
	Settings  settings.Settings
	Connected int
}

func (r *Room) Snapshot() (Snapshot, error) {
	var snap Snapshot
	err := r.do(func() {
		players := r.players.All()
		views := make([]events.PlayerView, len(players))
		for i, p := range players {
			views[i] = p.view(false)
			views[i].Cards = append([]cards.Card(nil), p.HoleCards...)
		}
		snap = Snapshot{
			RoomID:    r.ID,
			GameState: r.gameStateView(),
			Players:   views,
			Settings:  r.settings,
			Connected: len(r.players.Connected()),
		}
	})
	return snap, err
}

// Close stops the room. Pending timers are cancelled and later calls fail
// with ErrRoomClosed.
func (r *Room) Close() {
	if err := r.do(r.shutdown); err != nil {
		return
	}
	<-r.done
}

// Done is closed once the room goroutine has exited.
func (r *Room) Done() <-chan struct{} { return r.done }

func (r *Room) shutdown() {
	if r.closed {
		return
	}
	r.closed = true
	r.seq++
	r.stopTurnTimer()
	for t := range r.timers {
		t.Stop()
	}
	r.timers = nil
	r.log.Info("room closed")
}

func (r *Room) join(handle, name string) error {
	if handle == "" {
		return fmt.Errorf("join: %w", ErrPlayerNotFound)
	}
	if name == "" {
		name = "Player"
	}

	rejoin := r.players.Get(handle) != nil
	p := r.players.Add(handle, name)
	r.log.WithFields(logrus.Fields{"player": p.Name, "id": p.ID, "rejoin": rejoin}).Info("player joined")

	r.emit(events.PlayersUpdate{RoomID: r.ID, Players: r.playerViews()})
	r.emitGameUpdate()
	r.maybeAutoStart()
	return nil
}

func (r *Room) leave(handle, why string) (int, error) {
	p := r.players.Get(handle)
	if p == nil {
		return len(r.players.Connected()), ErrPlayerNotFound
	}
	log := r.log.WithFields(logrus.Fields{"player": p.Name, "id": p.ID})

	if !r.state.Phase.HandActive() {
		if err := r.players.Remove(handle, false); err != nil {
			log.WithError(err).Warn("remove failed")
		}
		log.Infof("player %s", why)
	} else {
		r.players.MarkDisconnected(handle)
		log.Infof("player %s mid-hand", why)
		if p.Contending() && r.state.Phase.IsBetting() {
			r.foldDeparted(p)
		}
	}

	if r.state.Phase == PhaseWaitingRebuy && r.pendingRebuys[handle] {
		delete(r.pendingRebuys, handle)
		if len(r.pendingRebuys) == 0 {
			r.continueAfterRebuys()
		}
	}

	if !r.closed {
		r.emit(events.PlayersUpdate{RoomID: r.ID, Players: r.playerViews()})
		r.emitGameUpdate()
	}
	return len(r.players.Connected()), nil
}

func (r *Room) updateSettings(patch map[string]any) settings.Settings {
	res := r.settings.Apply(patch)
	for _, key := range res.Ignored {
		r.log.WithField("key", key).Warn("unknown setting ignored")
	}
	for key, reason := range res.Invalid {
		r.log.WithFields(logrus.Fields{"key": key, "reason": reason}).Warn("invalid setting ignored")
	}
	for _, key := range res.Clamped {
		r.log.WithField("key", key).Warn("setting clamped to its minimum")
	}
	r.settings = res.Settings
	r.log.WithField("settings", fmt.Sprintf("%+v", r.settings)).Info("settings updated")
	r.emit(events.SettingsUpdated{RoomID: r.ID, Settings: r.settings})
	return r.settings
}

func (r *Room) playerViews() []events.PlayerView {
	reveal := r.state.Phase == PhaseShowdown
	players := r.players.All()
	views := make([]events.PlayerView, len(players))
	for i, p := range players {
		views[i] = p.view(reveal)
	}
	return views
}

func (r *Room) gameStateView() events.GameStateView {
	v := events.GameStateView{
		HandID:             r.state.HandID,
		HandNumber:         r.state.HandNumber,
		Phase:              string(r.state.Phase),
		Pot:                r.state.Pot,
		CurrentBet:         r.state.CurrentBet,
		CurrentPlayerIndex: r.state.CurrentPlayerIndex,
		DealerIndex:        r.state.DealerIndex,
		CommunityCards:     append([]cards.Card{}, r.state.CommunityCards...),
		SmallBlind:         r.state.SmallBlind,
		BigBlind:           r.state.BigBlind,
		ActionsInRound:     r.state.ActionsInRound,
		TurnTimeLeft:       r.state.TurnTimeLeft,
	}
	if r.state.Phase.IsBetting() && !r.runningOut {
		if p := r.currentPlayer(); p != nil {
			v.CurrentPlayerHandle = p.Handle
		}
	}
	return v
}

func (r *Room) emitGameUpdate() {
	r.emit(events.GameUpdate{RoomID: r.ID, GameState: r.gameStateView(), Players: r.playerViews()})
}
