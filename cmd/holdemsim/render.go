package main

import (
	"strconv"
	"strings"

	"github.com/lazharichir/holdem/domain/cards"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/pterm/pterm"
)

// renderer prints room events. It only runs on the room goroutine.
type renderer struct {
	phase string
}

func boardString(board []cards.Card) string {
	if len(board) == 0 {
		return "-"
	}
	return cards.Cards(board).String()
}

func (r *renderer) handStarted(e events.GameStarted) {
	r.phase = e.GameState.Phase
	pterm.DefaultSection.Printfln("Hand #%d  blinds %d/%d", e.GameState.HandNumber, e.GameState.SmallBlind, e.GameState.BigBlind)

	data := pterm.TableData{{"Seat", "Player", "Chips", "Bet"}}
	for i, p := range e.Players {
		seat := strconv.Itoa(i)
		if i == e.GameState.DealerIndex {
			seat += " (D)"
		}
		data = append(data, []string{seat, p.Name, strconv.Itoa(p.Chips), strconv.Itoa(p.Bet)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (r *renderer) update(e events.GameUpdate) {
	if e.GameState.Phase == r.phase {
		return
	}
	r.phase = e.GameState.Phase
	switch r.phase {
	case "flop", "turn", "river":
		pterm.Info.Printfln("%-5s %s  pot %d", strings.ToUpper(r.phase), boardString(e.GameState.CommunityCards), e.GameState.Pot)
	}
}

func (r *renderer) showdown(e events.ShowdownResult) {
	var b strings.Builder
	for _, ev := range e.HandEvaluations {
		name := ev.PlayerName
		if ev.IsWinner {
			name = pterm.LightGreen(name)
		}
		b.WriteString(pterm.Sprintfln("%s  %s  %s", name, cards.Cards(ev.Cards).String(), ev.HandDescription))
	}
	b.WriteString(pterm.Sprintfln("board %s", boardString(e.GameState.CommunityCards)))
	title := "|SHOWDOWN|"
	if e.SplitPot {
		title = "|SPLIT POT|"
	}
	pterm.DefaultBox.WithHorizontalPadding(4).WithTitle(pterm.LightYellow(title)).WithTitleTopCenter().Println(b.String())
}

func (r *renderer) handEnded(e events.HandEnded) {
	switch {
	case e.Reason != "":
		pterm.Success.Printfln("%s takes %d, %s", e.Winner, e.WinAmount, e.Reason)
	case e.Winner != "":
		pterm.Success.Printfln("%s wins %d with %s", e.Winner, e.WinAmount, e.WinningHand)
	default:
		pterm.Success.Printfln("%s split %d", strings.Join(e.Winners, ", "), e.WinAmount)
	}
}

func (r *renderer) standings(players []events.PlayerView) {
	bars := make([]pterm.Bar, 0, len(players))
	for _, p := range players {
		bars = append(bars, pterm.Bar{Label: p.Name, Value: p.Chips})
	}
	pterm.DefaultSection.Println("Standings")
	pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Render()
}
