// Package kafka publishes enrichment results to a Kafka topic so other
// trip-planner services (map sync, exporters) can consume them. Publishing
// is optional and best-effort: the enrichment service works identically with
// no brokers configured.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/mgegen15-dev/ireland-planner/internal/config"
	"github.com/mgegen15-dev/ireland-planner/internal/domain"
)

// Event kinds carried in the "event_kind" message header.
const (
	KindScrape  = "scrape"
	KindGeocode = "geocode"
)

// GeocodeEvent is the published form of one batch-geocoding resolution.
type GeocodeEvent struct {
	ID         string  `json:"id"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Location   string  `json:"location"`
	ResolvedAt string  `json:"resolvedAt"`
}

// Writer produces enrichment events to the configured topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishScrape publishes one scraped record, keyed by source URL.
func (w *Writer) PublishScrape(ctx context.Context, rec domain.ScrapedRecord) error {
	msg, err := serializeScrape(rec)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

// PublishUpdates publishes one message per resolved item in a single
// WriteMessages call, keyed by item ID.
func (w *Writer) PublishUpdates(ctx context.Context, updates map[string]domain.GeocodeUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, 0, len(updates))
	for id, update := range updates {
		msg, err := serializeUpdate(id, update)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func serializeScrape(rec domain.ScrapedRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize scraped record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.URL),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_kind", Value: []byte(KindScrape)},
			{Key: "scraped_at", Value: []byte(rec.ScrapedAt.Format(time.RFC3339))},
		},
	}, nil
}

func serializeUpdate(id string, update domain.GeocodeUpdate) (kafkago.Message, error) {
	event := GeocodeEvent{
		ID:         id,
		Lat:        update.Lat,
		Lng:        update.Lng,
		Location:   update.Location,
		ResolvedAt: domain.Now().Format(time.RFC3339),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize geocode update: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(id),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_kind", Value: []byte(KindGeocode)},
		},
	}, nil
}
