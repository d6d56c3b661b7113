package events

import (
	"github.com/lazharichir/holdem/domain/cards"
	"github.com/lazharichir/holdem/domain/settings"
)

// Broadcast events

type PlayersUpdate struct {
	RoomID  string       `json:"roomId"`
	Players []PlayerView `json:"players"`
}

func (e PlayersUpdate) Name() string { return "playersUpdate" }

type GameUpdate struct {
	RoomID    string        `json:"roomId"`
	GameState GameStateView `json:"gameState"`
	Players   []PlayerView  `json:"players"`
}

func (e GameUpdate) Name() string { return "gameUpdate" }

type GameStarted struct {
	RoomID    string        `json:"roomId"`
	GameState GameStateView `json:"gameState"`
	Players   []PlayerView  `json:"players"`
}

func (e GameStarted) Name() string { return "gameStarted" }

type ShowdownResult struct {
	RoomID          string           `json:"roomId"`
	GameState       GameStateView    `json:"gameState"`
	Players         []PlayerView     `json:"players"`
	Winners         []string         `json:"winners"`
	WinAmount       int              `json:"winAmount"`
	WinningHand     string           `json:"winningHand,omitempty"`
	SplitPot        bool             `json:"splitPot"`
	HandEvaluations []HandEvaluation `json:"handEvaluations,omitempty"`
}

func (e ShowdownResult) Name() string { return "showdownResult" }

type HandEnded struct {
	RoomID          string           `json:"roomId"`
	HandID          string           `json:"handId"`
	Winner          string           `json:"winner,omitempty"`
	Winners         []string         `json:"winners,omitempty"`
	WinAmount       int              `json:"winAmount"`
	WinningHand     string           `json:"winningHand,omitempty"`
	SplitPot        bool             `json:"splitPot"`
	Reason          string           `json:"reason,omitempty"`
	HandEvaluations []HandEvaluation `json:"handEvaluations,omitempty"`
	GameState       GameStateView    `json:"gameState"`
	Players         []PlayerView     `json:"players"`
}

func (e HandEnded) Name() string { return "handEnded" }

type TurnTimer struct {
	RoomID              string `json:"roomId"`
	TimeLeft            int    `json:"timeLeft"`
	CurrentPlayerHandle string `json:"currentPlayerHandle"`
}

func (e TurnTimer) Name() string { return "turnTimer" }

type SettingsUpdated struct {
	RoomID   string            `json:"roomId"`
	Settings settings.Settings `json:"settings"`
}

func (e SettingsUpdated) Name() string { return "settingsUpdated" }

type GameEnded struct {
	RoomID    string        `json:"roomId"`
	Message   string        `json:"message"`
	GameState GameStateView `json:"gameState"`
	Players   []PlayerView  `json:"players"`
}

func (e GameEnded) Name() string { return "gameEnded" }

type PlayerRebuy struct {
	RoomID       string `json:"roomId"`
	PlayerHandle string `json:"playerHandle"`
	PlayerName   string `json:"playerName"`
	NewChips     int    `json:"newChips"`
	RebuyCount   int    `json:"rebuyCount"`
}

func (e PlayerRebuy) Name() string { return "playerRebuy" }

type BlindsIncreased struct {
	RoomID     string `json:"roomId"`
	HandNumber int    `json:"handNumber"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`
}

func (e BlindsIncreased) Name() string { return "blindsIncreased" }

type WaitingForPlayers struct {
	RoomID    string        `json:"roomId"`
	Reason    string        `json:"reason"`
	AutoRebuy bool          `json:"autoRebuy"`
	MinChips  int           `json:"minChips"`
	GameState GameStateView `json:"gameState"`
	Players   []PlayerView  `json:"players"`
}

func (e WaitingForPlayers) Name() string { return "waitingForPlayers" }

// Targeted events carry the Handle of their only recipient.

type HoleCardsDealt struct {
	RoomID string       `json:"roomId"`
	Handle string       `json:"-"`
	Cards  []cards.Card `json:"cards"`
}

func (e HoleCardsDealt) Name() string { return "holeCards" }

type RebuyRequest struct {
	RoomID      string        `json:"roomId"`
	Handle      string        `json:"-"`
	Message     string        `json:"message"`
	Chips       int           `json:"chips"`
	RebuyAmount int           `json:"rebuyAmount"`
	GameState   GameStateView `json:"gameState"`
	Players     []PlayerView  `json:"players"`
}

func (e RebuyRequest) Name() string { return "rebuyRequest" }

type WaitingForRebuys struct {
	RoomID       string        `json:"roomId"`
	Handle       string        `json:"-"`
	Message      string        `json:"message"`
	BrokePlayers []string      `json:"brokePlayers"`
	GameState    GameStateView `json:"gameState"`
	Players      []PlayerView  `json:"players"`
}

func (e WaitingForRebuys) Name() string { return "waitingForRebuys" }

type SettingsData struct {
	RoomID   string            `json:"roomId"`
	Handle   string            `json:"-"`
	Settings settings.Settings `json:"settings"`
}

func (e SettingsData) Name() string { return "settingsData" }

type RebuyResult struct {
	RoomID     string `json:"roomId"`
	Handle     string `json:"-"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	NewChips   int    `json:"newChips,omitempty"`
	RebuyCount int    `json:"rebuyCount,omitempty"`
}

func (e RebuyResult) Name() string { return "rebuyResult" }

type CommandRejected struct {
	RoomID  string `json:"roomId,omitempty"`
	Handle  string `json:"-"`
	Command string `json:"command"`
	Reason  string `json:"reason"`
}

func (e CommandRejected) Name() string { return "commandRejected" }
