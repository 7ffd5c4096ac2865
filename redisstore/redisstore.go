// Package redisstore implements a priority store whose items may be persisted to, and restored from, Redis.
//
// A snapshot is made up of a set '<prefix>:priorities' holding the (decimal) priorities which have items, and a list
// '<prefix>:bucket:<priority>' per priority holding its payloads in the order they should be popped.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slices"

	"github.com/couchbase/priority-store/errutil"
	"github.com/couchbase/priority-store/log"
	"github.com/couchbase/priority-store/memstore"
	"github.com/couchbase/priority-store/retry"
	"github.com/couchbase/priority-store/storage"
)

// Store keeps its live items in memory, 'Persist' replaces the snapshot in Redis and 'Restore' replaces the live items
// with those in the snapshot.
type Store struct {
	*memstore.Store

	client  redis.UniversalClient
	owned   bool
	options Options
	retryer retry.Retryer[struct{}]
}

var _ storage.Storage = (*Store)(nil)

// New returns an empty store which persists using the given client.
//
// NOTE: The client remains owned by the caller, closing the store will not close it.
func New(client redis.UniversalClient, options Options) *Store {
	options.defaults()

	store := &Store{
		Store:   memstore.New(),
		client:  client,
		options: options,
	}

	store.retryer = retry.NewRetryer[struct{}](retry.RetryerOptions[struct{}]{
		Algorithm:   retry.AlgorithmLinear,
		MaxRetries:  options.MaxRetries,
		ShouldRetry: func(_ *retry.Context, _ struct{}, err error) bool { return errors.Is(err, redis.TxFailedErr) },
		Log: func(ctx *retry.Context, _ struct{}, _ error) {
			log.Warnf("(Redis Store) Snapshot '%s' modified concurrently during attempt %d, retrying", options.KeyPrefix,
				ctx.Attempt())
		},
	})

	return store
}

// Dial connects to the Redis server described by the given options, returning a store which owns the connection.
func Dial(ctx context.Context, redisOptions *redis.Options, options Options) (*Store, error) {
	client := redis.NewClient(redisOptions)

	err := client.Ping(ctx).Err()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	store := New(client, options)
	store.owned = true

	return store, nil
}

func (s *Store) prioritiesKey() string {
	return s.options.KeyPrefix + ":priorities"
}

func (s *Store) bucketKey(priority string) string {
	return s.options.KeyPrefix + ":bucket:" + priority
}

// Persist replaces the snapshot in Redis with the current live items.
//
// NOTE: The previous snapshot is removed, and the new one written, in a single transaction.
func (s *Store) Persist(ctx context.Context) error {
	var (
		priorities []string
		buckets    = make(map[string][]any)
		total      int
	)

	// Items are visited in pop order, so each bucket is visited as a single run of items.
	s.Iter(func(item storage.Item) {
		priority := strconv.FormatUint(uint64(item.Priority), 10)

		if _, ok := buckets[priority]; !ok {
			priorities = append(priorities, priority)
		}

		buckets[priority] = append(buckets[priority], item.Payload)
		total++
	})

	_, err := s.retryer.DoWithContext(ctx, func(ctx *retry.Context) (struct{}, error) {
		return struct{}{}, s.client.Watch(ctx, func(tx *redis.Tx) error {
			previous, err := tx.SMembers(ctx, s.prioritiesKey()).Result()
			if err != nil {
				return fmt.Errorf("failed to get previous priorities: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				stale := make([]string, 0, len(previous)+1)
				stale = append(stale, s.prioritiesKey())

				for _, priority := range previous {
					stale = append(stale, s.bucketKey(priority))
				}

				pipe.Del(ctx, stale...)

				for _, priority := range priorities {
					pipe.RPush(ctx, s.bucketKey(priority), buckets[priority]...)
					pipe.SAdd(ctx, s.prioritiesKey(), priority)
				}

				return nil
			})

			return err
		}, s.prioritiesKey())
	})
	if err != nil {
		return fmt.Errorf("failed to persist items: %w", err)
	}

	log.Debugf("(Redis Store) Persisted %d item(s) in %d bucket(s) to '%s'", total, len(priorities),
		s.options.KeyPrefix)

	return nil
}

// Restore replaces the live items with those in the snapshot, a missing snapshot results in an empty store. The live
// items are untouched if the snapshot can't be read.
func (s *Store) Restore(ctx context.Context) error {
	var (
		priorities []storage.Priority
		payloads   []*redis.StringSliceCmd
	)

	_, err := s.retryer.DoWithContext(ctx, func(ctx *retry.Context) (struct{}, error) {
		return struct{}{}, s.client.Watch(ctx, func(tx *redis.Tx) error {
			var err error

			priorities, err = s.readPriorities(ctx, tx)
			if err != nil {
				return err
			}

			payloads = make([]*redis.StringSliceCmd, 0, len(priorities))

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				for _, priority := range priorities {
					payloads = append(payloads, pipe.LRange(ctx, s.bucketKey(strconv.Itoa(int(priority))), 0, -1))
				}

				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to get buckets: %w", err)
			}

			return nil
		}, s.prioritiesKey())
	})
	if err != nil {
		return fmt.Errorf("failed to restore items: %w", err)
	}

	s.Clear()

	var total int

	for i, priority := range priorities {
		for _, payload := range payloads[i].Val() {
			s.Push(priority, []byte(payload))
		}

		log.Tracef("(Redis Store) Restored %d item(s) with priority %d", len(payloads[i].Val()), priority)

		total += len(payloads[i].Val())
	}

	log.Debugf("(Redis Store) Restored %d item(s) from '%s'", total, s.options.KeyPrefix)

	return nil
}

// readPriorities returns the priorities in the snapshot, highest first.
func (s *Store) readPriorities(ctx context.Context, tx *redis.Tx) ([]storage.Priority, error) {
	members, err := tx.SMembers(ctx, s.prioritiesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get priorities: %w", err)
	}

	priorities := make([]storage.Priority, 0, len(members))

	for _, member := range members {
		priority, err := strconv.ParseUint(member, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("failed to parse priority '%s': %w", member, err)
		}

		priorities = append(priorities, storage.Priority(priority))
	}

	slices.Sort(priorities)
	reverse(priorities)

	return priorities, nil
}

// Close persists the live items if 'PersistOnClose' is set, and closes the client if it's owned by the store.
func (s *Store) Close() error {
	var errs errutil.MultiError

	if s.options.PersistOnClose {
		errs.Add(s.Persist(context.Background()))
	}

	if s.owned {
		if err := s.client.Close(); err != nil {
			errs.Add(fmt.Errorf("failed to close client: %w", err))
		}
	}

	return errs.ErrOrNil()
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
