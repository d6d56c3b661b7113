package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/lazharichir/holdem/server/events"
	"github.com/lazharichir/holdem/server/handlers"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 4096

	shutdownWait = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server represents the WebSocket server
type Server struct {
	lobby      *domain.Lobby
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *events.Dispatcher
	log        *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID          string   `json:"id"`
	PlayerCount int      `json:"playerCount"`
	Connected   int      `json:"connected"`
	Players     []string `json:"players"`
	Phase       string   `json:"phase"`
	HandNumber  int      `json:"handNumber"`
	SmallBlind  int      `json:"smallBlind"`
	BigBlind    int      `json:"bigBlind"`
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

// NewServer wires the socket transport to lobby. The connection manager runs
// until Close.
func NewServer(lobby *domain.Lobby, logger *logrus.Logger) *Server {
	log := logger.WithField("component", "server")
	connMgr := connection.NewManager(log)
	dispatcher := events.NewDispatcher(connMgr, log)
	cmdRouter := handlers.NewCommandRouter(lobby, connMgr, dispatcher.HandleEvent, log)

	lobby.AddEventHandler(dispatcher.HandleEvent)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		lobby:      lobby,
		connMgr:    connMgr,
		cmdRouter:  cmdRouter,
		dispatcher: dispatcher,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
	}
	go connMgr.Start(ctx)
	return s
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/rooms", corsMiddleware(s.handleGetRooms))
	mux.HandleFunc("/api/rooms/history", corsMiddleware(s.handleRoomHistory))
	return mux
}

// Run serves on addr until ctx is cancelled, then drains the HTTP server
// and closes every room.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("starting server")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close drops every client and closes the lobby's rooms.
func (s *Server) Close() {
	s.cancel()
	s.lobby.Close()
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	// the client id doubles as the player handle in rooms
	client := &connection.Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	s.log.WithFields(logrus.Fields{"client": client.ID, "remote": r.RemoteAddr}).Info("client connected")

	select {
	case s.connMgr.Register <- client:
	case <-s.ctx.Done():
		conn.Close()
		return
	}

	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads messages from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.cmdRouter.Disconnect(client)
		select {
		case s.connMgr.Unregister <- client:
		case <-s.ctx.Done():
		}
		client.Conn.Close()
		s.log.WithField("client", client.ID).Info("client disconnected")
	}()

	client.Conn.SetReadLimit(maxMessage)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.WithField("client", client.ID).WithError(err).Warn("read failed")
			}
			return
		}

		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			s.log.WithField("client", client.ID).WithError(err).Debug("command failed")
		}
	}
}

// writePump sends queued messages and keeps the connection alive with pings.
func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.log.WithField("client", client.ID).WithError(err).Warn("write failed")
				return
			}
		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleGetRooms lists the open rooms
func (s *Server) handleGetRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rooms := s.lobby.Rooms()
	response := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		snap, err := room.Snapshot()
		if err != nil {
			// closed between listing and snapshot
			continue
		}
		names := make([]string, 0, len(snap.Players))
		for _, p := range snap.Players {
			names = append(names, p.Name)
		}
		response = append(response, RoomResponse{
			ID:          snap.RoomID,
			PlayerCount: len(snap.Players),
			Connected:   snap.Connected,
			Players:     names,
			Phase:       snap.GameState.Phase,
			HandNumber:  snap.GameState.HandNumber,
			SmallBlind:  snap.GameState.SmallBlind,
			BigBlind:    snap.GameState.BigBlind,
		})
	}

	writeJSON(w, s.log, response)
}

// handleRoomHistory returns the recent public events of a room
func (s *Server) handleRoomHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	roomID := r.URL.Query().Get("id")
	if roomID == "" {
		http.Error(w, "Room id is required", http.StatusBadRequest)
		return
	}

	history, err := s.lobby.History(roomID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]json.RawMessage, 0, len(history))
	for _, e := range history {
		data, err := events.Encode(e)
		if err != nil {
			s.log.WithError(err).WithField("event", e.Name()).Warn("history event not encoded")
			continue
		}
		response = append(response, data)
	}
	writeJSON(w, s.log, response)
}

func writeJSON(w http.ResponseWriter, log *logrus.Entry, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("response not written")
	}
}
