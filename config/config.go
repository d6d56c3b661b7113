// Package config reads process settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/lazharichir/holdem/domain"
	"github.com/sirupsen/logrus"
)

// Config is the process configuration.
type Config struct {
	Addr          string
	LogLevel      logrus.Level
	TurnTimeLimit time.Duration
	StartingChips int
	SmallBlind    int
	EventHistory  int
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:          ":7777",
		LogLevel:      logrus.InfoLevel,
		TurnTimeLimit: 30 * time.Second,
		StartingChips: 1000,
		SmallBlind:    10,
		EventHistory:  200,
	}
}

// FromEnv overlays HOLDEM_* variables on the defaults. Malformed values are
// reported through log and the default is kept.
func FromEnv(log logrus.FieldLogger) Config {
	return fromLookup(os.LookupEnv, log)
}

func fromLookup(lookup func(string) (string, bool), log logrus.FieldLogger) Config {
	cfg := Default()

	if v, ok := lookup("HOLDEM_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("HOLDEM_LOG_LEVEL"); ok && v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			log.WithError(err).Warn("invalid HOLDEM_LOG_LEVEL, using info")
		} else {
			cfg.LogLevel = level
		}
	}

	intVar := func(key string, dst *int, floor int) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < floor {
			log.WithField("value", v).Warnf("invalid %s, using %d", key, *dst)
			return
		}
		*dst = n
	}

	seconds := int(cfg.TurnTimeLimit / time.Second)
	intVar("HOLDEM_TURN_SECONDS", &seconds, 1)
	cfg.TurnTimeLimit = time.Duration(seconds) * time.Second
	intVar("HOLDEM_STARTING_CHIPS", &cfg.StartingChips, 1)
	intVar("HOLDEM_SMALL_BLIND", &cfg.SmallBlind, 1)
	// 0 turns the history off
	intVar("HOLDEM_EVENT_HISTORY", &cfg.EventHistory, 0)

	return cfg
}

// RoomConfig turns the process configuration into room parameters.
func (c Config) RoomConfig(logger *logrus.Logger) domain.RoomConfig {
	rc := domain.DefaultRoomConfig()
	rc.TurnTimeLimit = c.TurnTimeLimit
	rc.StartingChips = c.StartingChips
	rc.SmallBlind = c.SmallBlind
	rc.Logger = logger
	return rc
}
