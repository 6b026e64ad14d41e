package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/cropet-service/internal/config"
	"github.com/couchcryptid/cropet-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes crop parameter records to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured crop topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadTable publishes one message per crop, in column order, in a single
// WriteMessages call.
func (w *Writer) LoadTable(ctx context.Context, snap domain.Snapshot) error {
	msgs, err := tableMessages(snap)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish crop table: %w", err)
	}
	w.logger.Debug("crop table published", "topic", w.writer.Topic, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func tableMessages(snap domain.Snapshot) ([]kafkago.Message, error) {
	ids := snap.Table.IDs()
	msgs := make([]kafkago.Message, 0, len(ids))
	for _, id := range ids {
		rec, _ := snap.Table.Get(id)
		msg, err := serializeToMessage(id, rec, snap.LoadedAt)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// serializeToMessage marshals a crop record into a Kafka message keyed by crop id.
func serializeToMessage(id int, rec domain.CropParameters, loadedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize crop %d: %w", id, err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.Itoa(id)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "crop_name", Value: []byte(rec.Name)},
			{Key: "season", Value: []byte(rec.Season)},
			{Key: "loaded_at", Value: []byte(loadedAt.Format(time.RFC3339))},
		},
	}, nil
}
