// Package kafka publishes case notifications to a Kafka topic so external
// channels (mail, web push) can fan them out without polling the database.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"appealboard/internal/notify"
	id "appealboard/pkg/domain"
)

// producer is the slice of *kgo.Client the broadcast path needs; narrowed so
// tests can substitute a capturing fake.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Publisher owns the shared Kafka client. It does not broadcast itself:
// Broadcast hands out a single-delivery notifier, because addressee state must
// not be shared across concurrent transitions.
type Publisher struct {
	client   *kgo.Client
	producer producer
	topic    string
	logger   *slog.Logger
	now      func() time.Time
}

type envelope struct {
	AddresseeID string `json:"addressee_id"`
	Message     string `json:"message"`
	Level       string `json:"level"`
	SentAt      string `json:"sent_at"`
}

func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchMaxBytes(1<<20),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Publisher{client: client, producer: client, topic: topic, logger: logger, now: time.Now}, nil
}

// EnsureTopic creates the notification topic if the cluster does not have it.
func (p *Publisher) EnsureTopic(ctx context.Context, partitions int32) error {
	adm := kadm.NewClient(p.client)
	resp, err := adm.CreateTopic(ctx, partitions, 1, nil, p.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", p.topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", p.topic, resp.Err)
	}
	return nil
}

// Broadcast returns a notifier scoped to one delivery over the shared client.
func (p *Publisher) Broadcast() *Broadcast {
	return &Broadcast{pub: p}
}

func (p *Publisher) Close() {
	p.client.Close()
}

// Broadcast is a BroadcastNotifier that produces one record per addressee.
// Records are keyed by addressee so per-user ordering is preserved.
type Broadcast struct {
	pub        *Publisher
	addressees []id.UserID
}

func (b *Broadcast) SetAddressees(addressees []id.UserID) {
	b.addressees = addressees
}

// Notify produces one record per addressee and waits for broker acks.
func (b *Broadcast) Notify(ctx context.Context, message string, level notify.Level) error {
	sentAt := b.pub.now().UTC().Format(time.RFC3339)
	records := make([]*kgo.Record, 0, len(b.addressees))
	for _, userID := range b.addressees {
		payload, err := json.Marshal(envelope{
			AddresseeID: userID.String(),
			Message:     message,
			Level:       string(level),
			SentAt:      sentAt,
		})
		if err != nil {
			return fmt.Errorf("marshal notification: %w", err)
		}
		records = append(records, &kgo.Record{
			Key:   []byte(userID.String()),
			Value: payload,
		})
	}
	if len(records) == 0 {
		return nil
	}
	results := b.pub.producer.ProduceSync(ctx, records...)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("produce notifications: %w", err)
	}
	b.pub.logger.DebugContext(ctx, "notifications published",
		slog.String("topic", b.pub.topic),
		slog.Int("count", len(records)),
	)
	return nil
}
