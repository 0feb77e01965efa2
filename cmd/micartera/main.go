package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/eugenekweb/micartera/internal/cli"
	"github.com/eugenekweb/micartera/internal/config"
	"github.com/eugenekweb/micartera/internal/repository/file"
	"github.com/eugenekweb/micartera/internal/service"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize repositories; a storage directory we cannot create is the
	// only fatal startup condition.
	userRepo, err := file.NewUserRepository(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize user storage")
	}
	walletRepo, err := file.NewWalletRepository(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize wallet storage")
	}

	// Initialize services
	validator, err := service.NewValidator(cfg.Validation)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compile validation patterns")
	}
	notifications := service.NewNotificationService()
	authService := service.NewAuthService(userRepo, validator, service.NewBcryptHasher())
	walletService := service.NewWalletService(walletRepo, validator, notifications, cfg.LowBalanceThreshold)
	transactionService := service.NewTransactionService(cfg.DefaultPeriodMonths)
	session := service.NewSession(userRepo, walletRepo)

	app := cli.New(cfg, session, authService, walletService, transactionService, notifications)

	// Emergency-shutdown path: an unhandled panic in the prompt loop still
	// flushes the current session to disk before the process dies.
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Unhandled error, saving session")
			if err := session.SaveAndClose(); err != nil {
				log.Error().Err(err).Msg("Emergency save failed")
			}
			os.Exit(1)
		}
	}()

	if err := app.Run(); err != nil {
		log.Fatal().Err(err).Msg("Console loop failed")
	}
}
