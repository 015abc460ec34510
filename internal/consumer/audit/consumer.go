package audit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"go-shopadmin/internal/domain/model"
	"go-shopadmin/internal/logging"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Event is the wire form of one audit message on the Kafka topic. The HTTP
// middleware produces it; this consumer persists it.
type Event struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	IP        string    `json:"ip"`
	Data      string    `json:"data"`
	Timestamp time.Time `json:"ts"`
}

type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Consumer reads audit events from Kafka and writes audit rows.
type Consumer struct {
	reader *kafkaGo.Reader
	db     *gorm.DB
	logger *logging.Logger
}

func NewConsumer(cfg Config, db *gorm.DB, logger *logging.Logger) *Consumer {
	r := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
	return &Consumer{reader: r, db: db, logger: logger}
}

// Run blocks until ctx is cancelled or the reader is closed. Malformed
// messages are logged and skipped so one bad event cannot wedge the group.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var ev Event
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.logger.Warn("audit_event_unmarshal_failed",
				zap.Error(err),
				zap.Int64("offset", msg.Offset))
			continue
		}
		ts := ev.Timestamp
		if ts.IsZero() {
			ts = msg.Time
		}
		rec := model.AuditRecord{
			UserID:    ev.UserID,
			Username:  ev.Username,
			Method:    ev.Method,
			Path:      ev.Path,
			Status:    ev.Status,
			IP:        ev.IP,
			Data:      ev.Data,
			DateAdded: ts,
		}
		if err := c.db.WithContext(ctx).Create(&rec).Error; err != nil {
			c.logger.Error("audit_record_persist_failed",
				zap.Error(err),
				zap.Int64("user_id", ev.UserID),
				zap.String("path", ev.Path))
			continue
		}
	}
}

func (c *Consumer) Close() error { return c.reader.Close() }

// AutoMigrate creates the audit table when schema management is enabled.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.AuditRecord{})
}
