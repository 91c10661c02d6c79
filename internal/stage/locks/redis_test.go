//go:build integration

package locks

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "appealboard/pkg/domain"
	"appealboard/pkg/testutil/containers"
)

func leaseLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLeaseLockerMutualExclusion(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	locker := NewLease(rc.Client, leaseLogger())
	caseID := id.NewCaseID()
	ctx := context.Background()

	release, err := locker.Acquire(ctx, caseID)
	require.NoError(t, err)

	// A second acquire blocks until the lease is released.
	blockedCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(blockedCtx, caseID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()

	again, err := locker.Acquire(ctx, caseID)
	require.NoError(t, err)
	again()
}

func TestLeaseLockerReleaseIsScopedToHolder(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	locker := NewLease(rc.Client, leaseLogger())
	locker.ttl = 100 * time.Millisecond
	caseID := id.NewCaseID()
	ctx := context.Background()

	staleRelease, err := locker.Acquire(ctx, caseID)
	require.NoError(t, err)

	// Let the first lease expire, take a fresh one, then run the stale
	// release: the fresh lease must survive it.
	time.Sleep(150 * time.Millisecond)
	release, err := locker.Acquire(ctx, caseID)
	require.NoError(t, err)
	defer release()

	staleRelease()

	held, err := rc.Client.Exists(ctx, leaseKeyPrefix+caseID.String()).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, held)
}

func TestLeaseLockerIndependentCases(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	locker := NewLease(rc.Client, leaseLogger())
	ctx := context.Background()

	releaseA, err := locker.Acquire(ctx, id.NewCaseID())
	require.NoError(t, err)
	defer releaseA()

	quickCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	releaseB, err := locker.Acquire(quickCtx, id.NewCaseID())
	require.NoError(t, err)
	releaseB()
}
