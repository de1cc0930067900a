package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"example.com/war_relay/internal/config"
	"example.com/war_relay/internal/httpapi"
	"example.com/war_relay/internal/ws"
)

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	seed := uint64(time.Now().UnixNano())
	relay, err := ws.NewRelay(
		ws.WithRNG(rand.New(rand.NewSource(seed))),
		ws.WithBroadcastBuffer(cfg.BroadcastBuffer),
		ws.WithInputBuffer(cfg.InputBuffer),
		ws.WithOriginPatterns(cfg.OriginPatterns()...),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start relay")
	}
	log.Info().Uint64("seed", seed).Msg("match dealt")

	e := httpapi.NewRouter(relay, cfg.AllowOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	relay.Close()
}
