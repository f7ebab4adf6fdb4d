package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kiwidressing/Maruschedule/internal/messaging/kafka/consumer"
	"github.com/kiwidressing/Maruschedule/internal/rollup"
	"github.com/kiwidressing/Maruschedule/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer feeds archived-week events into the company rollups.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	rollupRepo := rollup.NewRepository(gormDB)
	rollupService := rollup.NewService(sqlDB, rollupRepo)

	weekArchived := consumer.NewWeekArchivedConsumer(
		[]string{kafkaBroker},
		"shiftboard-rollup",
		rollupService,
	)
	defer weekArchived.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := weekArchived.Run(ctx); err != nil {
			logger.Error("week archived consumer stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
