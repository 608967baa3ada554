package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/battleship-duel/api"
	"github.com/saeidalz13/battleship-duel/internal/config"
	"github.com/saeidalz13/battleship-duel/internal/logger"
	mb "github.com/saeidalz13/battleship-duel/models/battleship"
	mc "github.com/saeidalz13/battleship-duel/models/connection"
	"github.com/saeidalz13/battleship-duel/models/record"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("battleship exited")
		os.Exit(1)
	}
}

// Creating the file truncates whatever a previous match left behind.
func writeFleetFile(path string, layout mb.FleetLayout) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return record.WriteFleetFile(f, layout)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	placerOpts := []mb.PlacerOption{mb.WithMaxAttempts(cfg.Game.MaxPlacementAttempts)}
	if cfg.Game.Seed != 0 {
		placerOpts = append(placerOpts, mb.WithSeed(cfg.Game.Seed))
	}

	gameManager := mb.NewBattleshipGameManager()
	match, err := gameManager.CreateMatch(mb.WithPlacer(mb.NewPlacer(placerOpts...)))
	if err != nil {
		return err
	}
	defer gameManager.TerminateMatch(match.Uuid())

	layoutOne, layoutTwo := match.Layouts()
	if err := writeFleetFile(cfg.Record.PlayerOneFleet, layoutOne); err != nil {
		return err
	}
	if err := writeFleetFile(cfg.Record.PlayerTwoFleet, layoutTwo); err != nil {
		return err
	}

	recordFile, err := os.Create(cfg.Record.Path)
	if err != nil {
		return err
	}
	defer recordFile.Close()

	var processorOpts []api.ProcessorOption
	if cfg.Spectate.Enabled {
		sessionManager := mc.NewBattleshipSessionManager()
		go sessionManager.CleanupPeriodically(ctx)

		server := api.NewServer(
			gameManager,
			sessionManager,
			api.WithPort(cfg.Spectate.Port),
			api.WithStage(cfg.Stage),
			api.WithRecordPath(cfg.Record.Path),
			api.WithAllowedOrigins(cfg.Spectate.AllowedOrigins),
			api.WithRateLimit(cfg.Spectate.RequestsPerSecond, cfg.Spectate.BurstSize),
		)
		go func() {
			if err := server.Start(); err != nil {
				log.Error().Err(err).Msg("spectator server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()

		processorOpts = append(processorOpts, api.WithBroadcaster(sessionManager))
		log.Info().Str("matchUuid", match.Uuid()).Msg("spectators can follow /battleship/{matchUuid}/ws")
	}

	console := NewConsole(os.Stdin, os.Stdout)
	rp := api.NewRequestProcessor(match, record.NewWriter(recordFile), console, console, processorOpts...)

	_, err = rp.Run(ctx)
	return err
}
