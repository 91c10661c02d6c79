package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"appealboard/internal/notify"
	id "appealboard/pkg/domain"
)

type fakeProducer struct {
	mu      sync.Mutex
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.mu.Lock()
	defer f.mu.Unlock()
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		f.records = append(f.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func (f *fakeProducer) produced() []*kgo.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*kgo.Record, len(f.records))
	copy(out, f.records)
	return out
}

func testPublisher(fake *fakeProducer) *Publisher {
	return &Publisher{
		producer: fake,
		topic:    "case-notifications",
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: func() time.Time {
			return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
		},
	}
}

func TestBroadcastProducesOneKeyedRecordPerAddressee(t *testing.T) {
	fake := &fakeProducer{}
	pub := testPublisher(fake)
	first, second := id.NewUserID(), id.NewUserID()

	b := pub.Broadcast()
	b.SetAddressees([]id.UserID{first, second})
	require.NoError(t, b.Notify(context.Background(), "meeting confirmed", notify.LevelSuccess))

	records := fake.produced()
	require.Len(t, records, 2)
	assert.Equal(t, first.String(), string(records[0].Key))
	assert.Equal(t, second.String(), string(records[1].Key))

	var env envelope
	require.NoError(t, json.Unmarshal(records[0].Value, &env))
	assert.Equal(t, first.String(), env.AddresseeID)
	assert.Equal(t, "meeting confirmed", env.Message)
	assert.Equal(t, "success", env.Level)
	assert.Equal(t, "2026-06-01T08:00:00Z", env.SentAt)
}

func TestBroadcastWithoutAddresseesProducesNothing(t *testing.T) {
	fake := &fakeProducer{}
	pub := testPublisher(fake)

	require.NoError(t, pub.Broadcast().Notify(context.Background(), "nobody home", notify.LevelInfo))
	assert.Empty(t, fake.produced())
}

func TestBroadcastReturnsProduceError(t *testing.T) {
	fake := &fakeProducer{err: assert.AnError}
	pub := testPublisher(fake)

	b := pub.Broadcast()
	b.SetAddressees([]id.UserID{id.NewUserID()})
	err := b.Notify(context.Background(), "will not land", notify.LevelError)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBroadcastsFromOnePublisherAreIndependent(t *testing.T) {
	fake := &fakeProducer{}
	pub := testPublisher(fake)
	collegium, leadership := id.NewUserID(), id.NewUserID()

	// Two deliveries over the shared client must keep their own addressees.
	roleDelivery := pub.Broadcast()
	genericDelivery := pub.Broadcast()
	roleDelivery.SetAddressees([]id.UserID{collegium})
	genericDelivery.SetAddressees([]id.UserID{leadership})

	require.NoError(t, roleDelivery.Notify(context.Background(), "you are on the collegium", notify.LevelInfo))
	require.NoError(t, genericDelivery.Notify(context.Background(), "stage changed", notify.LevelInfo))

	records := fake.produced()
	require.Len(t, records, 2)
	assert.Equal(t, collegium.String(), string(records[0].Key))
	assert.Equal(t, leadership.String(), string(records[1].Key))
}
