package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/parcel-balance-map/internal/config"
	"github.com/couchcryptid/parcel-balance-map/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes dataset snapshots to a Kafka topic, one message per parcel.
// It implements loader.SnapshotPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured snapshot topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishSnapshot serializes every parcel of the dataset and publishes them
// in a single WriteMessages call. Messages are keyed by normalized parcel id
// so a compacted topic keeps the latest state per parcel.
func (w *Writer) PublishSnapshot(ctx context.Context, ds *domain.Dataset) error {
	msgs, err := snapshotMessages(ds)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	w.logger.Info("snapshot published", "topic", w.writer.Topic, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// parcelSnapshot is the message payload: the record plus its map key and color.
type parcelSnapshot struct {
	PlaceID string       `json:"place_id"`
	Color   domain.Color `json:"color"`
	BuiltAt time.Time    `json:"built_at"`
	domain.ParcelRecord
}

func snapshotMessages(ds *domain.Dataset) ([]kafkago.Message, error) {
	ids := ds.IDs()
	msgs := make([]kafkago.Message, 0, len(ids))
	for _, id := range ids {
		rec, _ := ds.Lookup(id)
		msg, err := serializeToMessage(id, rec, ds.BuiltAt())
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// serializeToMessage marshals one parcel into a Kafka message.
func serializeToMessage(placeID string, rec domain.ParcelRecord, builtAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(parcelSnapshot{
		PlaceID:      placeID,
		Color:        domain.ColorFor(balanceOrNil(rec)),
		BuiltAt:      builtAt,
		ParcelRecord: rec,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize parcel %s: %w", placeID, err)
	}
	return kafkago.Message{
		Key:   []byte(placeID),
		Value: data,
		Time:  builtAt,
		Headers: []kafkago.Header{
			{Key: "in_debt", Value: []byte(strconv.FormatBool(rec.InDebt()))},
			{Key: "built_at", Value: []byte(builtAt.Format(time.RFC3339))},
		},
	}, nil
}

func balanceOrNil(rec domain.ParcelRecord) *float64 {
	if !rec.HasBalance() {
		return nil
	}
	return rec.Balance
}
