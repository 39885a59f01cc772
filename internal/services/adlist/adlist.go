// Package adlist reconciles ad-blocklist subscription URLs against the
// appliance's persistent store. The canonical source is a remote blob of
// newline-delimited URLs; operators can substitute a local file.
package adlist

import (
	"context"
	"fmt"
	"log"

	"github.com/louisbranch/holectl/internal/services/adlist/storage"
)

// Fetcher downloads a text resource.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// OpenStore opens the ad-list store for one operation. The syncer closes it
// before returning.
type OpenStore func() (storage.Store, error)

// Syncer resolves an ad-list source and merges it into the store.
type Syncer struct {
	Fetcher   Fetcher
	OpenStore OpenStore
	SourceURL string
}

// Update resolves the ad-list source and inserts every address into the
// store, returning the number of rows actually created.
//
// With an empty sourceFile the canonical SourceURL is fetched and parsed as
// a deduplicated set; otherwise sourceFile is read as an ordered sequence
// with duplicates left for the store to absorb. Any fetch, read, or store
// failure short-circuits.
func (s *Syncer) Update(ctx context.Context, sourceFile string) (int, error) {
	if s == nil || s.Fetcher == nil || s.OpenStore == nil {
		return 0, fmt.Errorf("syncer is not configured")
	}

	var addresses []string
	if sourceFile == "" {
		blob, err := s.Fetcher.Fetch(ctx, s.SourceURL)
		if err != nil {
			return 0, err
		}
		addresses = ParseBlob(blob)
	} else {
		var err error
		addresses, err = ReadSourceFile(sourceFile)
		if err != nil {
			return 0, err
		}
	}

	store, err := s.OpenStore()
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = store.Close()
	}()

	inserted, err := store.InsertAddresses(ctx, addresses)
	if err != nil {
		return inserted, err
	}
	log.Printf("added %d new ad-list sources", inserted)
	return inserted, nil
}
