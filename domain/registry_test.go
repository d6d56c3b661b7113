package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRegistry_Add(t *testing.T) {
	reg := NewPlayerRegistry(1000)
	a := reg.Add("h1", "alice")
	b := reg.Add("h2", "bob")

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 1000, a.Chips)
	assert.True(t, a.IsConnected)

	require.NoError(t, reg.Remove("h1", false))
	c := reg.Add("h3", "cara")
	assert.Equal(t, 3, c.ID, "ids are never reused")

	b.Chips = 40
	b.IsConnected = false
	again := reg.Add("h2", "bobby")
	assert.Same(t, b, again)
	assert.True(t, again.IsConnected)
	assert.Equal(t, 40, again.Chips)
	assert.Equal(t, "bobby", again.Name)
	assert.Equal(t, 2, reg.Len())
}

func TestPlayerRegistry_Remove(t *testing.T) {
	reg := NewPlayerRegistry(1000)
	reg.Add("h1", "alice")

	assert.ErrorIs(t, reg.Remove("h1", true), ErrHandInProgress)
	assert.ErrorIs(t, reg.Remove("nobody", false), ErrPlayerNotFound)
	assert.NoError(t, reg.Remove("h1", false))
	assert.Nil(t, reg.Get("h1"))
}

func TestPlayerRegistry_Views(t *testing.T) {
	reg := NewPlayerRegistry(1000)
	a := reg.Add("a", "alice")
	b := reg.Add("b", "bob")
	c := reg.Add("c", "cara")
	d := reg.Add("d", "dan")

	b.IsSittingOut = true
	c.Chips = 0
	reg.MarkInHand([]*Player{a, c, d})
	reg.MarkDisconnected("d")

	assert.Len(t, reg.All(), 4)
	assert.Equal(t, []*Player{a, b, c}, reg.Connected())
	assert.Equal(t, []*Player{a}, reg.Eligible())
	assert.Equal(t, []*Player{a, c, d}, reg.InHand())
	assert.Equal(t, []*Player{a, c}, reg.Active(true))
	assert.Equal(t, []*Player{a, c}, reg.Active(false))
}

func TestPlayerRegistry_Bulk(t *testing.T) {
	reg := NewPlayerRegistry(1000)
	a := reg.Add("a", "alice")
	b := reg.Add("b", "bob")
	reg.MarkInHand([]*Player{a, b})
	a.Folded = true
	a.Bet = 20
	b.Chips = -5

	clamped := reg.ClampNegativeChips()
	assert.Equal(t, []*Player{b}, clamped)
	assert.Equal(t, 0, b.Chips)

	reg.ClearHandFlags()
	assert.False(t, a.Folded)
	assert.Zero(t, a.Bet)
	assert.Empty(t, reg.InHand())

	reg.MarkDisconnected("a")
	gone := reg.PurgeDisconnected()
	assert.Equal(t, []*Player{a}, gone)
	assert.Equal(t, []*Player{b}, reg.All())
}
