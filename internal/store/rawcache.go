package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// SaveRawCache appends the unmodified API payload for audit. Entries are
// append-only; no deduplication, no retry. The caller treats the returned
// error as a status value — a cache failure never aborts or rolls back fact
// data already committed.
func (s *Store) SaveRawCache(apiURL string, payload json.RawMessage, fetchedAt time.Time) error {
	// lib/pq sends []byte as bytea; jsonb wants text.
	_, err := s.db.Exec(
		"INSERT INTO raw_api_cache (api_url, response_data, fetched_at) VALUES ($1, $2, $3)",
		apiURL, string(payload), fetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save raw API cache: %w", err)
	}
	return nil
}
