package cmd

import (
	"context"
	"fmt"

	"bicho/application"
	"bicho/config"
	"bicho/database"
	"bicho/domain/entities"
	"bicho/domain/interfaces"
	"bicho/infrastructure"
	"bicho/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Running migrations...")
	if err := database.MigrateUp(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var eventPublisher interfaces.EventPublisher
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsClient.Close()
		eventPublisher = infrastructure.NewNATSEventPublisher(natsClient)
	} else {
		log.Warn("No NATS servers configured, events will not be published")
		eventPublisher = infrastructure.NewNoopEventPublisher()
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, eventPublisher)

	bonusHandler := application.NewBonusHandler(uowFactory, cfg.SignupBonus, cfg.FirstDepositBonus)
	settlementHandler := application.NewSettlementHandler(uowFactory, entities.DefaultGameModes())

	if natsClient != nil {
		consumer := application.NewDrawClosedConsumer(settlementHandler)
		if err := consumer.Start(ctx, natsClient); err != nil {
			return fmt.Errorf("failed to start draw closed consumer: %w", err)
		}
	}

	sweepWorker := application.NewBonusSweepWorker(bonusHandler, cfg.BonusSweepSpec)
	if err := sweepWorker.Start(ctx); err != nil {
		return err
	}
	defer sweepWorker.Stop()

	log.WithField("environment", cfg.Environment).Info("Settlement core running")
	<-ctx.Done()

	log.Info("Shutting down...")
	return nil
}
