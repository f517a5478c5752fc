package store

import (
	"database/sql"
	"strconv"
)

// Store wraps the relational backend for the ingest pipeline and the read
// API. All pipeline steps receive it explicitly; there is no package-level
// connection state.
type Store struct {
	db *sql.DB
}

// New creates a Store on an open connection pool.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// execTx runs one statement in its own transaction. Each batch is its own
// unit of work, so a failure partway through a run leaves earlier batches
// durably applied.
func (s *Store) execTx(query string, args []interface{}) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(query, args...); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// codeMap loads a natural-code → surrogate-id mapping in one query.
func (s *Store) codeMap(query string) (map[string]int64, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[string]int64)
	for rows.Next() {
		var code string
		var id int64
		if err := rows.Scan(&code, &id); err != nil {
			return nil, err
		}
		m[code] = id
	}
	return m, rows.Err()
}

func (s *Store) stateCodeMap() (map[string]int64, error) {
	return s.codeMap("SELECT state_code, id FROM states")
}

func (s *Store) districtCodeMap() (map[string]int64, error) {
	return s.codeMap("SELECT district_code, id FROM districts")
}

// fieldString returns the first non-empty candidate field as a string.
// Numeric values are stringified; upstream payloads occasionally carry codes
// as numbers.
func fieldString(rec map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case int64:
			return strconv.FormatInt(v, 10)
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// splitIndexes yields [start, end) batch bounds over n items.
func splitIndexes(n, batchSize int) [][2]int {
	if batchSize < 1 {
		batchSize = 1
	}
	var bounds [][2]int
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		bounds = append(bounds, [2]int{start, end})
	}
	return bounds
}
