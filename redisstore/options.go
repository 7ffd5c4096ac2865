package redisstore

import (
	"strings"

	"github.com/couchbase/priority-store/envvar"
	"github.com/couchbase/priority-store/log"
)

const (
	// DefaultKeyPrefix is the prefix of every key written by a store.
	DefaultKeyPrefix = "pqstore"

	// DefaultMaxRetries is the number of attempts made to persist/restore whilst another client is modifying the same
	// snapshot.
	DefaultMaxRetries = 5
)

// Options encapsulates the available options which can be used when creating a store.
type Options struct {
	// KeyPrefix namespaces the snapshot's keys, stores sharing a prefix share a snapshot. Defaults to
	// 'PQSTORE_REDIS_KEY_PREFIX' or 'DefaultKeyPrefix'.
	KeyPrefix string

	// MaxRetries is the number of attempts made to persist/restore when the snapshot is concurrently modified, defaults
	// to 'DefaultMaxRetries'.
	MaxRetries int

	// PersistOnClose indicates whether the live items should be persisted when the store is closed.
	PersistOnClose bool
}

func (o *Options) defaults() {
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}

	o.KeyPrefix = strings.TrimSuffix(o.KeyPrefix, ":")

	if o.KeyPrefix != "" {
		return
	}

	o.KeyPrefix = DefaultKeyPrefix

	if prefix, ok := envvar.GetString("PQSTORE_REDIS_KEY_PREFIX"); ok {
		log.Infof("(Redis Store) Set key prefix to: %s", prefix)
		o.KeyPrefix = strings.TrimSuffix(prefix, ":")
	}
}
