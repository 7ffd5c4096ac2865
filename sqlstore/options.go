package sqlstore

import (
	"time"

	"github.com/couchbase/priority-store/envvar"
	"github.com/couchbase/priority-store/log"
)

const (
	// DefaultMaxRetries is the number of attempts made to persist/restore whilst the database is locked.
	DefaultMaxRetries = 5

	// DefaultRetryDelay is the minimum back-off between attempts.
	DefaultRetryDelay = 50 * time.Millisecond

	// MaxInsertBatch is the largest number of rows inserted by a single statement.
	//
	// NOTE: Each row binds three variables, older SQLite versions limit a statement to 999 variables.
	MaxInsertBatch = 256

	// DefaultInsertBatch is the number of rows inserted by each statement when persisting.
	DefaultInsertBatch = MaxInsertBatch
)

// Options encapsulates the available options which can be used when opening a store.
type Options struct {
	// MaxRetries is the number of attempts made to persist/restore whilst the database is locked by another
	// thread/process. Defaults to 'PQSTORE_SQLITE_MAX_RETRIES' or 'DefaultMaxRetries'.
	MaxRetries int

	// RetryDelay is the minimum back-off between attempts. Defaults to 'PQSTORE_SQLITE_RETRY_DELAY' or
	// 'DefaultRetryDelay'.
	RetryDelay time.Duration

	// InsertBatch is the number of rows inserted per statement. Defaults to 'PQSTORE_SQLITE_INSERT_BATCH' or
	// 'DefaultInsertBatch', values above 'MaxInsertBatch' are capped.
	InsertBatch int

	// PersistOnClose indicates whether the live items should be persisted when the store is closed.
	PersistOnClose bool
}

func (o *Options) defaults() {
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries

		if maxRetries, ok := envvar.GetInt("PQSTORE_SQLITE_MAX_RETRIES"); ok && maxRetries > 0 {
			log.Infof("(SQLite Store) Set max retries to: %d", maxRetries)
			o.MaxRetries = maxRetries
		}
	}

	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay

		if delay, ok := envvar.GetDuration("PQSTORE_SQLITE_RETRY_DELAY"); ok && delay > 0 {
			log.Infof("(SQLite Store) Set retry delay to: %s", delay)
			o.RetryDelay = delay
		}
	}

	if o.InsertBatch <= 0 {
		o.InsertBatch = DefaultInsertBatch

		if batch, ok := envvar.GetInt("PQSTORE_SQLITE_INSERT_BATCH"); ok && batch > 0 && batch <= MaxInsertBatch {
			log.Infof("(SQLite Store) Set insert batch size to: %d", batch)
			o.InsertBatch = batch
		}
	}

	if o.InsertBatch > MaxInsertBatch {
		log.Warnf("(SQLite Store) Insert batch size %d exceeds the maximum, using: %d", o.InsertBatch, MaxInsertBatch)
		o.InsertBatch = MaxInsertBatch
	}
}
