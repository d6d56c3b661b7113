package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/commands"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownCommand = errors.New("unknown command type")
	ErrMissingRoomID  = errors.New("roomId is required")
)

// Envelope is an inbound message: a command name and its arguments.
type Envelope struct {
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload"`
}

// CommandRouter routes incoming commands to the appropriate handler
type CommandRouter struct {
	lobby    *domain.Lobby
	connMgr  *connection.Manager
	onReject events.EventHandler
	log      *logrus.Entry
}

// NewCommandRouter creates a new command router. Rejected commands are
// reported to the sender through onReject.
func NewCommandRouter(lobby *domain.Lobby, connMgr *connection.Manager, onReject events.EventHandler, log *logrus.Entry) *CommandRouter {
	return &CommandRouter{
		lobby:    lobby,
		connMgr:  connMgr,
		onReject: onReject,
		log:      log,
	}
}

// HandleCommand processes an incoming command message
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		err = fmt.Errorf("malformed command: %w", err)
		r.reject(client, "", err)
		return err
	}

	if err := r.route(client, env); err != nil {
		r.reject(client, env.Name, err)
		return fmt.Errorf("%s: %w", env.Name, err)
	}
	return nil
}

func (r *CommandRouter) reject(client *connection.Client, name string, err error) {
	r.log.WithFields(logrus.Fields{"client": client.ID, "command": name}).WithError(err).Debug("command rejected")
	if r.onReject == nil {
		return
	}
	r.onReject(events.CommandRejected{
		RoomID:  r.connMgr.RoomOf(client.ID),
		Handle:  client.ID,
		Command: name,
		Reason:  err.Error(),
	})
}

func decode(payload map[string]any, cmd commands.Command) error {
	if payload == nil {
		return nil
	}
	if err := mapstructure.WeakDecode(payload, cmd); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func (r *CommandRouter) route(client *connection.Client, env Envelope) error {
	switch env.Name {
	case commands.JoinRoom{}.Name():
		var cmd commands.JoinRoom
		if err := decode(env.Payload, &cmd); err != nil {
			return err
		}
		return r.handleJoinRoom(client, cmd)

	case commands.LeaveRoom{}.Name():
		return r.handleLeaveRoom(client)

	case commands.PlayerAction{}.Name():
		var cmd commands.PlayerAction
		if err := decode(env.Payload, &cmd); err != nil {
			return err
		}
		return r.handlePlayerAction(client, cmd)

	case commands.Rebuy{}.Name():
		var cmd commands.Rebuy
		if err := decode(env.Payload, &cmd); err != nil {
			return err
		}
		return r.withRoom(client, func(room *domain.Room) error {
			return room.Rebuy(client.ID, cmd.BuyChips, cmd.ChipAmount)
		})

	case commands.UpdateSettings{}.Name():
		var cmd commands.UpdateSettings
		if err := decode(env.Payload, &cmd); err != nil {
			return err
		}
		return r.withRoom(client, func(room *domain.Room) error {
			_, err := room.UpdateSettings(cmd.Settings)
			return err
		})

	case commands.GetSettings{}.Name():
		return r.withRoom(client, func(room *domain.Room) error {
			_, err := room.Settings(client.ID)
			return err
		})

	case commands.RequestRebuy{}.Name():
		return r.withRoom(client, func(room *domain.Room) error {
			return room.RequestRebuy(client.ID)
		})

	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, env.Name)
	}
}

func (r *CommandRouter) withRoom(client *connection.Client, fn func(*domain.Room) error) error {
	room, err := r.lobby.RoomOf(client.ID)
	if err != nil {
		return err
	}
	return fn(room)
}

func (r *CommandRouter) handleJoinRoom(client *connection.Client, cmd commands.JoinRoom) error {
	if cmd.RoomID == "" {
		return ErrMissingRoomID
	}

	// route the room's broadcasts to the client before the join emits them
	previous := r.connMgr.RoomOf(client.ID)
	r.connMgr.SetRoom(client.ID, cmd.RoomID)
	if _, err := r.lobby.Join(cmd.RoomID, client.ID, cmd.PlayerName); err != nil {
		r.connMgr.SetRoom(client.ID, previous)
		return err
	}
	r.log.WithFields(logrus.Fields{"client": client.ID, "room": cmd.RoomID}).Info("client joined room")
	return nil
}

func (r *CommandRouter) handleLeaveRoom(client *connection.Client) error {
	err := r.lobby.Leave(client.ID)
	r.connMgr.SetRoom(client.ID, "")
	return err
}

func (r *CommandRouter) handlePlayerAction(client *connection.Client, cmd commands.PlayerAction) error {
	action, err := domain.ParseAction(cmd.Action)
	if err != nil {
		return err
	}
	return r.withRoom(client, func(room *domain.Room) error {
		return room.Act(client.ID, action, cmd.Amount)
	})
}

// Disconnect removes a client whose socket closed from its room.
func (r *CommandRouter) Disconnect(client *connection.Client) {
	err := r.lobby.Disconnect(client.ID)
	if err != nil && !errors.Is(err, domain.ErrNotInRoom) {
		r.log.WithField("client", client.ID).WithError(err).Warn("disconnect failed")
	}
}
