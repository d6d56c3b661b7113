package events

import "github.com/lazharichir/holdem/domain/cards"

// PlayerView is the public shape of a seated player.
// Cards are only filled in once hands are revealed at showdown.
type PlayerView struct {
	ID              int          `json:"id"`
	Handle          string       `json:"handle"`
	Name            string       `json:"name"`
	Chips           int          `json:"chips"`
	Bet             int          `json:"bet"`
	Folded          bool         `json:"folded"`
	IsConnected     bool         `json:"isConnected"`
	IsSittingOut    bool         `json:"isSittingOut"`
	IsInCurrentHand bool         `json:"isInCurrentHand"`
	RebuyCount      int          `json:"rebuyCount"`
	Cards           []cards.Card `json:"cards,omitempty"`
}

// GameStateView is the public shape of the room's game state.
type GameStateView struct {
	HandID              string       `json:"handId,omitempty"`
	HandNumber          int          `json:"handNumber"`
	Phase               string       `json:"phase"`
	Pot                 int          `json:"pot"`
	CurrentBet          int          `json:"currentBet"`
	CurrentPlayerIndex  int          `json:"currentPlayerIndex"`
	CurrentPlayerHandle string       `json:"currentPlayerHandle,omitempty"`
	DealerIndex         int          `json:"dealerIndex"`
	CommunityCards      []cards.Card `json:"communityCards"`
	SmallBlind          int          `json:"smallBlind"`
	BigBlind            int          `json:"bigBlind"`
	ActionsInRound      int          `json:"actionsInRound"`
	TurnTimeLeft        int          `json:"turnTimeLeft"`
}

// HandEvaluation is one player's revealed hand at showdown.
type HandEvaluation struct {
	PlayerName      string       `json:"playerName"`
	Handle          string       `json:"handle"`
	Cards           []cards.Card `json:"cards"`
	BestHand        []cards.Card `json:"bestHand,omitempty"`
	HandDescription string       `json:"handDescription"`
	IsWinner        bool         `json:"isWinner"`
}
