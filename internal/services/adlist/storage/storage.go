package storage

import (
	"context"
	"fmt"
	"time"
)

// Entry is one ad-list subscription row.
//
// Address is the deduplication key: the store never holds two entries with
// the same address. Entries are created when a new URL is observed and are
// never mutated here; disabling or deleting them is the appliance's job.
type Entry struct {
	ID        int64
	Address   string
	Enabled   bool
	DateAdded time.Time
	Comment   string
}

// WriteError wraps a non-conflict storage failure with a remediation hint.
// The default store path lives under /etc/pihole, so permission errors are
// the common cause.
type WriteError struct {
	Op  string
	Err error
}

// Error formats the failed operation with the remediation hint.
func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v (try re-running with elevated privileges)", e.Op, e.Err)
}

// Unwrap exposes the underlying failure.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Store is the contract for ad-list persistence.
//
// A store is opened per operation and closed when the operation ends; there
// is no long-lived connection. Duplicate addresses are absorbed silently and
// are never an error.
type Store interface {
	Close() error

	// InsertAddress inserts one address if absent. It reports whether a new
	// row was created; an existing address yields (false, nil).
	InsertAddress(ctx context.Context, address string) (bool, error)

	// InsertAddresses inserts each address if absent and returns the number
	// of rows actually created. Duplicates within the input or against the
	// store do not count and do not abort the batch.
	InsertAddresses(ctx context.Context, addresses []string) (int, error)

	// ListEntries returns all entries ordered by insertion.
	ListEntries(ctx context.Context) ([]Entry, error)
}
