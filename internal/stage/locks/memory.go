// Package locks provides the per-case mutual exclusion the orchestrator runs
// transitions under: sharded in-process locks for single-instance
// deployments, a redis lease for anything horizontally scaled.
package locks

import (
	"context"

	id "appealboard/pkg/domain"
)

// numShards trades memory for contention; cases hashing to the same shard
// serialize against each other, which is harmless.
const numShards = 128

// ShardedLocker distributes case locks over a fixed array of one-slot
// channels keyed by a hash of the case ID. Channels instead of mutexes so a
// blocked Acquire can still honor context cancellation.
type ShardedLocker struct {
	shards [numShards]chan struct{}
}

func NewSharded() *ShardedLocker {
	l := &ShardedLocker{}
	for i := range l.shards {
		l.shards[i] = make(chan struct{}, 1)
	}
	return l
}

func (l *ShardedLocker) Acquire(ctx context.Context, caseID id.CaseID) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shard := l.shards[hashString(caseID.String())%numShards]
	select {
	case shard <- struct{}{}:
		return func() { <-shard }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// hashString is FNV-1a.
func hashString(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
