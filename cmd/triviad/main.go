package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"trivia/buzz"
	"trivia/config"
	"trivia/game"
	"trivia/network"
	"trivia/score"
	"trivia/session"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	bank, err := game.LoadBank(cfg.QuestionFile)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.QuestionFile).Msg("question file unusable, using built-in question")
		bank = game.DefaultBank()
	}

	registry := session.NewRegistry()
	ledger := score.NewLedger()
	arb := buzz.NewArbitrator(registry)
	coord := session.NewCoordinator(registry, arb, ledger, bank)

	srv := network.NewServer(cfg.Host, cfg.TCPPort, cfg.UDPPort, registry, ledger, arb)
	if err := srv.Bind(); err != nil {
		log.Fatal().Err(err).Msg("failed to bind channels")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Run(ctx); err != nil {
			log.Error().Err(err).Msg("network layer stopped")
			stop()
		}
	}()

	log.Info().
		Str("host", cfg.Host).
		Int("tcp_port", cfg.TCPPort).
		Int("udp_port", cfg.UDPPort).
		Int("questions", bank.Remaining()).
		Msg("trivia server running")

	if err := coord.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("coordinator stopped")
	}
	stop()

	registry.Shutdown()
	log.Info().Msg("server shut down")
}
