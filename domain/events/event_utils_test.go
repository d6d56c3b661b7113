package events_test

import (
	"testing"

	"github.com/lazharichir/holdem/domain/events"
	"github.com/stretchr/testify/assert"
)

type noRoomID struct {
	OtherField string
}

func (noRoomID) Name() string { return "noRoomID" }

func TestExtractRoomID(t *testing.T) {
	t.Run("struct with RoomID field", func(t *testing.T) {
		e := events.TurnTimer{RoomID: "room123"}
		assert.Equal(t, "room123", events.ExtractRoomID(e))
	})

	t.Run("pointer to struct with RoomID field", func(t *testing.T) {
		e := &events.GameUpdate{RoomID: "roomPointer"}
		assert.Equal(t, "roomPointer", events.ExtractRoomID(e))
	})

	t.Run("struct without RoomID field", func(t *testing.T) {
		assert.Equal(t, "", events.ExtractRoomID(noRoomID{OtherField: "noID"}))
	})

	t.Run("nil pointer", func(t *testing.T) {
		var e *events.GameUpdate
		assert.Equal(t, "", events.ExtractRoomID(e))
	})
}

func TestExtractTarget(t *testing.T) {
	t.Run("targeted event", func(t *testing.T) {
		e := events.SettingsData{RoomID: "r", Handle: "h1"}
		assert.Equal(t, "h1", events.ExtractTarget(e))
	})

	t.Run("broadcast event", func(t *testing.T) {
		assert.Equal(t, "", events.ExtractTarget(events.PlayerRebuy{RoomID: "r", PlayerHandle: "h1"}))
		assert.Equal(t, "", events.ExtractTarget(events.GameUpdate{RoomID: "r"}))
	})
}
