package domain

import (
	"testing"

	"github.com/lazharichir/holdem/domain/events"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLobby(t *testing.T) (*Lobby, *recorder) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	lobby := NewLobby(RoomConfig{Clock: &fakeClock{}, Logger: logger})
	rec := &recorder{}
	lobby.AddEventHandler(rec.handle)
	t.Cleanup(lobby.Close)
	return lobby, rec
}

func TestLobby_JoinCreatesRoom(t *testing.T) {
	lobby, rec := newTestLobby(t)

	first, err := lobby.Join("r1", "h1", "alice")
	require.NoError(t, err)
	second, err := lobby.Join("r1", "h2", "bob")
	require.NoError(t, err)
	assert.Same(t, first, second)

	room, err := lobby.RoomOf("h2")
	require.NoError(t, err)
	assert.Same(t, first, room)

	byID, ok := lobby.Room("r1")
	assert.True(t, ok)
	assert.Same(t, first, byID)

	update := findEventOfType[events.PlayersUpdate](t, rec)
	assert.Equal(t, "r1", update.RoomID)
	assert.Len(t, update.Players, 2)

	_, err = lobby.Join("", "h3", "cara")
	assert.Error(t, err)
}

func TestLobby_LastPlayerOutClosesRoom(t *testing.T) {
	lobby, _ := newTestLobby(t)
	room, err := lobby.Join("r1", "h1", "alice")
	require.NoError(t, err)
	_, err = lobby.Join("r1", "h2", "bob")
	require.NoError(t, err)

	require.NoError(t, lobby.Leave("h1"))
	_, ok := lobby.Room("r1")
	assert.True(t, ok)

	require.NoError(t, lobby.Disconnect("h2"))
	_, ok = lobby.Room("r1")
	assert.False(t, ok)
	<-room.Done()

	assert.ErrorIs(t, lobby.Leave("h2"), ErrNotInRoom)
	_, err = lobby.RoomOf("h1")
	assert.ErrorIs(t, err, ErrNotInRoom)
}

func TestLobby_FailedJoinDropsNewRoom(t *testing.T) {
	lobby, _ := newTestLobby(t)

	_, err := lobby.Join("r1", "", "alice")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	_, ok := lobby.Room("r1")
	assert.False(t, ok)
	assert.Empty(t, lobby.Rooms())

	room, err := lobby.Join("r2", "h1", "alice")
	require.NoError(t, err)
	_, err = lobby.Join("r2", "", "bob")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	kept, ok := lobby.Room("r2")
	require.True(t, ok, "a failed join leaves an existing room alone")
	assert.Same(t, room, kept)
}

func TestLobby_JoinOtherRoomLeavesFirst(t *testing.T) {
	lobby, _ := newTestLobby(t)
	_, err := lobby.Join("r1", "h1", "alice")
	require.NoError(t, err)
	_, err = lobby.Join("r2", "h1", "alice")
	require.NoError(t, err)

	_, ok := lobby.Room("r1")
	assert.False(t, ok, "r1 had no one left")

	rooms := lobby.Rooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, "r2", rooms[0].ID)
}

func TestLobby_EventStore(t *testing.T) {
	lobby, _ := newTestLobby(t)
	store := events.NewInMemoryEventStore(0)
	lobby.UseEventStore(store)

	_, err := lobby.Join("r1", "h1", "alice")
	require.NoError(t, err)
	recorded, err := store.LoadEvents("r1")
	require.NoError(t, err)
	assert.NotEmpty(t, recorded)

	require.NoError(t, lobby.Leave("h1"))
	recorded, err = store.LoadEvents("r1")
	require.NoError(t, err)
	assert.Empty(t, recorded)
}

func TestLobby_RoomsAreSorted(t *testing.T) {
	lobby, _ := newTestLobby(t)
	for i, id := range []string{"charlie", "alpha", "bravo"} {
		_, err := lobby.Join(id, string(rune('a'+i)), "p")
		require.NoError(t, err)
	}

	var ids []string
	for _, r := range lobby.Rooms() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, ids)

	lobby.Close()
	assert.Empty(t, lobby.Rooms())
}

func TestLobby_HistoryHidesTargetedEvents(t *testing.T) {
	lobby, _ := newTestLobby(t)
	history, err := lobby.History("r1")
	require.NoError(t, err)
	assert.Empty(t, history, "no store configured")

	lobby.UseEventStore(events.NewInMemoryEventStore(0))
	room, err := lobby.Join("r1", "h1", "alice")
	require.NoError(t, err)
	_, err = room.Settings("h1")
	require.NoError(t, err)

	history, err = lobby.History("r1")
	require.NoError(t, err)
	require.NotEmpty(t, history)
	for _, e := range history {
		assert.NotEqual(t, "settingsData", e.Name())
	}
}
