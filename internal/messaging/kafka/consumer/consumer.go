package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/kiwidressing/Maruschedule/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// WeekArchivedHandler applies one archived-week event to the read model.
// Implementations must be idempotent; the consumer redelivers on restart.
type WeekArchivedHandler interface {
	HandleWeekArchived(ctx context.Context, event events.WeekArchivedEvent) error
}

type WeekArchivedConsumer struct {
	reader  *kafkago.Reader
	handler WeekArchivedHandler
	logger  *zap.Logger
}

func NewWeekArchivedConsumer(brokers []string, groupID string, handler WeekArchivedHandler) *WeekArchivedConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    events.WeekArchivedTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &WeekArchivedConsumer{
		reader:  reader,
		handler: handler,
		logger:  zap.L().Named("kafka.consumer.week_archived"),
	}
}

func (c *WeekArchivedConsumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started", zap.String("topic", events.WeekArchivedTopic))

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				c.logger.Info("consumer stopped")
				return nil
			}
			return err
		}

		var event events.WeekArchivedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("malformed message skipped",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := c.handler.HandleWeekArchived(ctx, event); err != nil {
			c.logger.Error("handle week archived failed",
				zap.String("archive_id", event.ArchiveID),
				zap.String("user_id", event.UserID),
				zap.Error(err),
			)
			continue
		}

		c.logger.Info("week archived applied",
			zap.String("archive_id", event.ArchiveID),
			zap.String("company_id", event.CompanyID),
			zap.String("week_start", event.WeekStart),
		)
	}
}

func (c *WeekArchivedConsumer) Close() error {
	return c.reader.Close()
}
