package events

import (
	"encoding/json"

	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/sirupsen/logrus"
)

// EventEnvelope wraps an event with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Encode marshals event inside its envelope.
func Encode(event events.Event) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(EventEnvelope{Name: event.Name(), Payload: payload})
}

// Dispatcher handles routing events to clients
type Dispatcher struct {
	connMgr *connection.Manager
	log     *logrus.Entry
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, log *logrus.Entry) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
		log:     log,
	}
}

// HandleEvent sends a targeted event to its one recipient and anything else
// to everyone in the event's room.
func (d *Dispatcher) HandleEvent(event events.Event) {
	data, err := Encode(event)
	if err != nil {
		d.log.WithError(err).WithField("event", event.Name()).Error("failed to encode event")
		return
	}

	if target := events.ExtractTarget(event); target != "" {
		if !d.connMgr.SendToClient(target, data) {
			d.log.WithFields(logrus.Fields{"event": event.Name(), "client": target}).Debug("recipient not reachable")
		}
		return
	}

	if roomID := events.ExtractRoomID(event); roomID != "" {
		sent := d.connMgr.SendToRoom(roomID, data)
		d.log.WithFields(logrus.Fields{"event": event.Name(), "room": roomID, "sent": sent}).Trace("event dispatched")
		return
	}

	d.log.WithField("event", event.Name()).Warn("event has no recipient")
}
