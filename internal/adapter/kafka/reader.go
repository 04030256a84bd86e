package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hydtwin/citizen-report-etl/internal/config"
	"github.com/hydtwin/citizen-report-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes messages from the source Kafka topic as part of a consumer
// group. It implements pipeline.BatchExtractor.
type Reader struct {
	reader        *kafkago.Reader
	logger        *slog.Logger
	flushInterval time.Duration
}

// NewReader creates a Kafka consumer for the configured source topic.
// Offsets are committed explicitly through RawEvent.Commit, not auto-committed.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.KafkaSourceTopic,
		GroupID:        cfg.KafkaGroupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // explicit commits only
	})
	return &Reader{
		reader:        r,
		logger:        logger,
		flushInterval: cfg.BatchFlushInterval,
	}
}

// ExtractBatch fetches up to batchSize messages. The first fetch blocks until
// a message arrives or the context is cancelled; once the batch has started,
// it is flushed after flushInterval even if not full, so a trickle of reports
// does not sit in the extractor indefinitely.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error) {
	first, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]domain.RawEvent, 0, batchSize)
	events = append(events, r.mapMessageToRawEvent(first))

	fillCtx, cancel := context.WithTimeout(ctx, r.flushInterval)
	defer cancel()

	for len(events) < batchSize {
		msg, err := r.reader.FetchMessage(fillCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				break
			}
			// Return what we have; the failed fetch will be retried next cycle.
			r.logger.Warn("batch fill fetch failed", "error", err, "batch_size", len(events))
			break
		}
		events = append(events, r.mapMessageToRawEvent(msg))
	}

	return events, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessageToRawEvent converts a Kafka message into a domain RawEvent with a
// commit closure bound to this reader's consumer group.
func (r *Reader) mapMessageToRawEvent(msg kafkago.Message) domain.RawEvent {
	raw := mapMessageToRawEvent(msg)
	raw.Commit = func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
	return raw
}

func mapMessageToRawEvent(msg kafkago.Message) domain.RawEvent {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return domain.RawEvent{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
