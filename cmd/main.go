// Package main runs the interactive ledger on stdin and stdout.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger, closer, err := middleware.GetLogger(config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create logger")
	}
	defer closer.Close()

	ctx := logger.WithContext(context.Background())

	accountRepo := accountrepo.NewRepoJSON(config.DataFile)
	if err := accountRepo.Init(ctx); err != nil {
		logger.Fatal().Stack().Err(err).Str("path", config.DataFile).Msg("cannot initialize account store")
	}

	accountService := accountservice.New(accountRepo)
	accountHandler := accountdelivery.NewHandler(accountService, os.Stdin, os.Stdout, accountdelivery.Options{
		Currency:    config.Currency,
		ClearScreen: config.ClearScreen,
		Logger:      logger,
	})

	logger.Debug().Str("data_file", config.DataFile).Msg("LEDGER HAS STARTED")

	if err := accountHandler.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("menu loop failed")
	}
}
