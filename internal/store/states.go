package store

import (
	"fmt"
	"log"
	"strings"
)

// statePair is one (natural code, display name) state reference.
type statePair struct {
	Code string
	Name string
}

// collectStatePairs extracts state references from normalized records,
// keeping the last-seen name per code. Records missing either field are
// ignored here; the fact pass still resolves them by code alone.
func collectStatePairs(records []map[string]interface{}) []statePair {
	byCode := make(map[string]int)
	var pairs []statePair
	for _, rec := range records {
		code := fieldString(rec, "state_code")
		name := fieldString(rec, "state_name")
		if code == "" || name == "" {
			continue
		}
		if i, seen := byCode[code]; seen {
			pairs[i].Name = name
			continue
		}
		byCode[code] = len(pairs)
		pairs = append(pairs, statePair{Code: code, Name: name})
	}
	return pairs
}

// UpsertStates writes state reference rows in batches, refreshing the display
// name on natural-key conflict. Returns the number of rows written.
func (s *Store) UpsertStates(records []map[string]interface{}, batchSize int) (int, error) {
	pairs := collectStatePairs(records)
	if len(pairs) == 0 {
		return 0, nil
	}

	written := 0
	for _, b := range splitIndexes(len(pairs), batchSize) {
		batch := pairs[b[0]:b[1]]
		query, args := buildStateUpsert(batch)
		if err := s.execTx(query, args); err != nil {
			return written, fmt.Errorf("failed to upsert states batch: %w", err)
		}
		written += len(batch)
	}
	return written, nil
}

func buildStateUpsert(batch []statePair) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO states (state_code, state_name) VALUES ")

	args := make([]interface{}, 0, len(batch)*2)
	for i, p := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d)", i*2+1, i*2+2)
		args = append(args, p.Code, p.Name)
	}
	sb.WriteString(" ON CONFLICT (state_code) DO UPDATE SET state_name = EXCLUDED.state_name, updated_at = now()")
	return sb.String(), args
}

// ensureStates guarantees every state referenced by the records exists,
// creating missing ones with an insert-or-ignore write so concurrent runs
// racing on the same code cannot error. Returns the refreshed code → id map.
func (s *Store) ensureStates(records []map[string]interface{}) (map[string]int64, error) {
	stateMap, err := s.stateCodeMap()
	if err != nil {
		return nil, fmt.Errorf("failed to load state map: %w", err)
	}

	missing := missingStatePairs(records, stateMap)
	if len(missing) == 0 {
		return stateMap, nil
	}

	query, args := buildStateInsertIgnore(missing)
	if err := s.execTx(query, args); err != nil {
		// A partial set of newly created states is acceptable; records
		// referencing states that still do not exist are dropped downstream.
		log.Printf("insert of %d missing states failed, continuing: %v", len(missing), err)
	}

	stateMap, err = s.stateCodeMap()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh state map: %w", err)
	}
	return stateMap, nil
}

// missingStatePairs collects referenced state codes absent from the map.
// Unlike collectStatePairs the display name may be empty here: a code-only
// reference still needs a parent row for the fact cascade.
func missingStatePairs(records []map[string]interface{}, have map[string]int64) []statePair {
	byCode := make(map[string]int)
	var missing []statePair
	for _, rec := range records {
		code := fieldString(rec, "state_code")
		if code == "" {
			continue
		}
		if _, ok := have[code]; ok {
			continue
		}
		name := fieldString(rec, "state_name")
		if i, seen := byCode[code]; seen {
			if name != "" {
				missing[i].Name = name
			}
			continue
		}
		byCode[code] = len(missing)
		missing = append(missing, statePair{Code: code, Name: name})
	}
	return missing
}

func buildStateInsertIgnore(batch []statePair) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO states (state_code, state_name) VALUES ")

	args := make([]interface{}, 0, len(batch)*2)
	for i, p := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d)", i*2+1, i*2+2)
		args = append(args, p.Code, p.Name)
	}
	sb.WriteString(" ON CONFLICT (state_code) DO NOTHING")
	return sb.String(), args
}
