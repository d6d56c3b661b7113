package domain

import (
	"errors"
	"sort"
	"sync"

	"github.com/lazharichir/holdem/domain/events"
	"github.com/sirupsen/logrus"
)

// Lobby is the registry of open rooms. A room is created by its first join
// and torn down when its last connected player goes.
type Lobby struct {
	cfg RoomConfig
	log *logrus.Entry

	mu       sync.Mutex
	rooms    map[string]*Room
	memberOf map[string]string // handle -> room id
	store    events.EventStore

	eventHandlers []events.EventHandler
}

// NewLobby creates an empty lobby whose rooms use cfg.
func NewLobby(cfg RoomConfig) *Lobby {
	cfg = cfg.withDefaults()
	return &Lobby{
		cfg:      cfg,
		log:      cfg.Logger.WithField("component", "lobby"),
		rooms:    make(map[string]*Room),
		memberOf: make(map[string]string),
	}
}

// AddEventHandler adds a handler for the events of every room. Register
// handlers before the first join.
func (l *Lobby) AddEventHandler(handler events.EventHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eventHandlers = append(l.eventHandlers, handler)
}

// UseEventStore records every room event in store until the room closes.
func (l *Lobby) UseEventStore(store events.EventStore) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store = store
}

// handleRoomEvent fans room events out. It runs on the room goroutine.
func (l *Lobby) handleRoomEvent(event events.Event) {
	if l.store != nil {
		if err := l.store.Append(event); err != nil {
			l.log.WithError(err).Warn("event not recorded")
		}
	}
	for _, handler := range l.eventHandlers {
		handler(event)
	}
}

// Join puts handle in roomID, creating the room if needed. A handle already
// in another room leaves it first.
func (l *Lobby) Join(roomID, handle, name string) (*Room, error) {
	if roomID == "" {
		return nil, errors.New("room id is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if current, ok := l.memberOf[handle]; ok && current != roomID {
		l.departLocked(handle, false)
	}

	room, ok := l.rooms[roomID]
	if !ok {
		room = NewRoom(roomID, l.cfg, l.handleRoomEvent)
		l.rooms[roomID] = room
		l.log.WithField("room", roomID).Info("room created")
	}

	if err := room.Join(handle, name); err != nil {
		if !ok {
			l.closeLocked(roomID)
		}
		return nil, err
	}
	l.memberOf[handle] = roomID
	return room, nil
}

// Leave takes handle out of its room.
func (l *Lobby) Leave(handle string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.departLocked(handle, false)
}

// Disconnect is Leave for a dropped connection.
func (l *Lobby) Disconnect(handle string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.departLocked(handle, true)
}

func (l *Lobby) departLocked(handle string, dropped bool) error {
	roomID, ok := l.memberOf[handle]
	if !ok {
		return ErrNotInRoom
	}
	delete(l.memberOf, handle)

	room, ok := l.rooms[roomID]
	if !ok {
		return ErrNotInRoom
	}

	var remaining int
	var err error
	if dropped {
		remaining, err = room.Disconnect(handle)
	} else {
		remaining, err = room.Leave(handle)
	}
	if errors.Is(err, ErrRoomClosed) {
		remaining = 0
	} else if err != nil {
		return err
	}

	if remaining == 0 {
		l.closeLocked(roomID)
	}
	return nil
}

func (l *Lobby) closeLocked(roomID string) {
	room, ok := l.rooms[roomID]
	if !ok {
		return
	}
	room.Close()
	delete(l.rooms, roomID)
	for handle, id := range l.memberOf {
		if id == roomID {
			delete(l.memberOf, handle)
		}
	}
	if l.store != nil {
		l.store.Drop(roomID)
	}
	l.log.WithField("room", roomID).Info("room removed")
}

// RoomOf returns the room handle is in.
func (l *Lobby) RoomOf(handle string) (*Room, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	roomID, ok := l.memberOf[handle]
	if !ok {
		return nil, ErrNotInRoom
	}
	room, ok := l.rooms[roomID]
	if !ok {
		return nil, ErrNotInRoom
	}
	return room, nil
}

// Room looks a room up by id.
func (l *Lobby) Room(roomID string) (*Room, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	room, ok := l.rooms[roomID]
	return room, ok
}

// Rooms returns the open rooms ordered by id.
func (l *Lobby) Rooms() []*Room {
	l.mu.Lock()
	defer l.mu.Unlock()
	rooms := make([]*Room, 0, len(l.rooms))
	for _, room := range l.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms
}

// Close tears every room down.
func (l *Lobby) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id := range l.rooms {
		l.closeLocked(id)
	}
}

// History returns the recorded broadcast events of a room, oldest first.
// Targeted events are left out so private cards never leak.
func (l *Lobby) History(roomID string) ([]events.Event, error) {
	l.mu.Lock()
	store := l.store
	l.mu.Unlock()
	if store == nil {
		return nil, nil
	}

	all, err := store.LoadEvents(roomID)
	if err != nil {
		return nil, err
	}
	public := all[:0]
	for _, e := range all {
		if events.ExtractTarget(e) == "" {
			public = append(public, e)
		}
	}
	return public, nil
}
