package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		cfg := fromLookup(lookupFrom(nil), logger)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		cfg := fromLookup(lookupFrom(map[string]string{
			"HOLDEM_ADDR":           ":9000",
			"HOLDEM_LOG_LEVEL":      "debug",
			"HOLDEM_TURN_SECONDS":   "15",
			"HOLDEM_STARTING_CHIPS": "500",
			"HOLDEM_SMALL_BLIND":    "5",
		}), logger)
		assert.Equal(t, ":9000", cfg.Addr)
		assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
		assert.Equal(t, 15*time.Second, cfg.TurnTimeLimit)
		assert.Equal(t, 500, cfg.StartingChips)
		assert.Equal(t, 5, cfg.SmallBlind)
	})

	t.Run("malformed values keep defaults and warn", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		cfg := fromLookup(lookupFrom(map[string]string{
			"HOLDEM_LOG_LEVEL":    "loud",
			"HOLDEM_TURN_SECONDS": "-3",
			"HOLDEM_SMALL_BLIND":  "ten",
		}), logger)
		assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
		assert.Equal(t, 30*time.Second, cfg.TurnTimeLimit)
		assert.Equal(t, 10, cfg.SmallBlind)
		assert.Len(t, hook.AllEntries(), 3)
	})

	t.Run("0 disables history", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		cfg := fromLookup(lookupFrom(map[string]string{"HOLDEM_EVENT_HISTORY": "0"}), logger)
		assert.Zero(t, cfg.EventHistory)
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("negative history keeps default", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		cfg := fromLookup(lookupFrom(map[string]string{"HOLDEM_EVENT_HISTORY": "-1"}), logger)
		assert.Equal(t, 200, cfg.EventHistory)
		assert.Len(t, hook.AllEntries(), 1)
	})
}

func TestRoomConfig(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := Default()
	cfg.SmallBlind = 25
	rc := cfg.RoomConfig(logger)
	assert.Equal(t, 25, rc.SmallBlind)
	assert.Equal(t, 1000, rc.StartingChips)
	assert.Same(t, logger, rc.Logger)
}
