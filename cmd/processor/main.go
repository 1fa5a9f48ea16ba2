package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Amritansu-Adi/klantroef/pkg/processor"
	"github.com/Amritansu-Adi/klantroef/platform/config"
	"github.com/Amritansu-Adi/klantroef/platform/database"
	"github.com/Amritansu-Adi/klantroef/platform/kafka"
	"github.com/Amritansu-Adi/klantroef/platform/logger"
	"github.com/Amritansu-Adi/klantroef/store"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.Environment)

	log.Info().Msg("starting view stats processor")

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	repo := store.NewGormStore(db)

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	skipKafka := os.Getenv("KAFKA_SKIP") == "true"

	if !skipKafka {
		viewProcessor := processor.NewViewStatsProcessor(kafka.NewConfig(cfg), repo)

		go func() {
			if err := viewProcessor.Start(ctx); err != nil {
				if ctx.Err() == nil {
					log.Error().Err(err).Msg("view processor stopped")
					log.Info().Msg("retrying in 10 seconds")
					time.Sleep(10 * time.Second)
				}
			}
		}()

		<-sigChan
		log.Info().Msg("received shutdown signal, stopping")

		cancel()

		if err := viewProcessor.Stop(); err != nil {
			log.Error().Err(err).Msg("error stopping view processor")
		}
	} else {
		log.Info().Msg("running in development mode without kafka")

		<-sigChan
		log.Info().Msg("received shutdown signal, stopping")
		cancel()
	}

	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("error closing database connection")
	}

	log.Info().Msg("view stats processor stopped")
}
