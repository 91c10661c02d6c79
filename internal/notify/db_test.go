package notify

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "appealboard/pkg/domain"
)

func fixedNow() time.Time {
	return time.Date(2026, 6, 1, 8, 0, 0, 0, time.FixedZone("EET", 2*3600))
}

func TestDBUserNotifier(t *testing.T) {
	store := NewMemoryStore()
	notifier := NewDBUserNotifier(store, fixedNow)
	userID := id.NewUserID()

	require.NoError(t, notifier.Notify(context.Background(), "case moved on", userID))

	records, err := store.ListByAddressee(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "case moved on", records[0].Message)
	assert.Equal(t, LevelInfo, records[0].Level)
	assert.Equal(t, fixedNow().UTC(), records[0].CreatedAt)
}

func TestDBBroadcastNotifierOneRecordPerAddressee(t *testing.T) {
	store := NewMemoryStore()
	notifier := NewDBBroadcastNotifier(store, fixedNow)
	first, second := id.NewUserID(), id.NewUserID()

	notifier.SetAddressees([]id.UserID{first, second})
	require.NoError(t, notifier.Notify(context.Background(), "meeting confirmed", LevelSuccess))

	all := store.All()
	require.Len(t, all, 2)
	for _, rec := range all {
		assert.Equal(t, "meeting confirmed", rec.Message)
		assert.Equal(t, LevelSuccess, rec.Level)
	}

	mine, err := store.ListByAddressee(context.Background(), first)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestDBBroadcastNotifierAddresseesAreReplaced(t *testing.T) {
	store := NewMemoryStore()
	notifier := NewDBBroadcastNotifier(store, fixedNow)
	stale, fresh := id.NewUserID(), id.NewUserID()

	notifier.SetAddressees([]id.UserID{stale})
	require.NoError(t, notifier.Notify(context.Background(), "first", LevelInfo))

	notifier.SetAddressees([]id.UserID{fresh})
	require.NoError(t, notifier.Notify(context.Background(), "second", LevelInfo))

	records, err := store.ListByAddressee(context.Background(), stale)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "first", records[0].Message)

	records, err = store.ListByAddressee(context.Background(), fresh)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Message)
}

func TestDBBroadcastNotifierConcurrentDeliveriesStayScoped(t *testing.T) {
	store := NewMemoryStore()
	const deliveries = 16

	// One notifier instance per delivery, as the orchestrator constructs them:
	// parallel deliveries must never leak each other's addressees.
	addressees := make([]id.UserID, deliveries)
	for i := range addressees {
		addressees[i] = id.NewUserID()
	}

	var wg sync.WaitGroup
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			notifier := NewDBBroadcastNotifier(store, fixedNow)
			notifier.SetAddressees([]id.UserID{addressees[i]})
			assert.NoError(t, notifier.Notify(context.Background(), fmt.Sprintf("delivery %d", i), LevelInfo))
		}(i)
	}
	wg.Wait()

	require.Len(t, store.All(), deliveries)
	for i, addressee := range addressees {
		records, err := store.ListByAddressee(context.Background(), addressee)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, fmt.Sprintf("delivery %d", i), records[0].Message)
	}
}

func TestDBBroadcastNotifierEmptyListIsQuiet(t *testing.T) {
	store := NewMemoryStore()
	notifier := NewDBBroadcastNotifier(store, nil)

	require.NoError(t, notifier.Notify(context.Background(), "nobody home", LevelInfo))
	assert.Empty(t, store.All())
}
