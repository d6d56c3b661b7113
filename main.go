package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lazharichir/holdem/config"
	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/server"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.FromEnv(logger)
	logger.SetLevel(cfg.LogLevel)
	logger.WithFields(logrus.Fields{
		"addr":          cfg.Addr,
		"turnSeconds":   int(cfg.TurnTimeLimit.Seconds()),
		"startingChips": cfg.StartingChips,
		"smallBlind":    cfg.SmallBlind,
	}).Info("starting holdem server")

	lobby := domain.NewLobby(cfg.RoomConfig(logger))
	if cfg.EventHistory > 0 {
		lobby.UseEventStore(events.NewInMemoryEventStore(cfg.EventHistory))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.NewServer(lobby, logger)
	if err := s.Run(ctx, cfg.Addr); err != nil {
		logger.WithError(err).Fatal("server failed")
	}
	logger.Info("server stopped")
}
