package store

import (
	"fmt"
	"log"
	"strings"
)

// districtRef is one district reference with its owning state's natural code.
type districtRef struct {
	Code      string
	Name      string
	StateCode string
}

// collectDistrictRefs extracts district references from normalized records,
// keeping the last occurrence per district code. All three fields are
// required; incomplete references are dropped.
func collectDistrictRefs(records []map[string]interface{}) []districtRef {
	byCode := make(map[string]int)
	var refs []districtRef
	for _, rec := range records {
		ref := districtRef{
			Code:      fieldString(rec, "district_code"),
			Name:      fieldString(rec, "district_name"),
			StateCode: fieldString(rec, "state_code"),
		}
		if ref.Code == "" || ref.Name == "" || ref.StateCode == "" {
			continue
		}
		if i, seen := byCode[ref.Code]; seen {
			refs[i] = ref
			continue
		}
		byCode[ref.Code] = len(refs)
		refs = append(refs, ref)
	}
	return refs
}

// resolveDistrictRows binds district references to state ids. A district
// whose state code does not resolve is skipped silently: the pipeline never
// creates orphan rows.
func resolveDistrictRows(refs []districtRef, stateMap map[string]int64) []districtRow {
	var rows []districtRow
	for _, ref := range refs {
		stateID, ok := stateMap[ref.StateCode]
		if !ok {
			continue
		}
		rows = append(rows, districtRow{Code: ref.Code, Name: ref.Name, StateID: stateID})
	}
	return rows
}

type districtRow struct {
	Code    string
	Name    string
	StateID int64
}

// UpsertDistricts writes district reference rows in batches, refreshing the
// display name and owning state on natural-key conflict. Districts whose
// state cannot be resolved are skipped. Returns the number of rows written.
func (s *Store) UpsertDistricts(records []map[string]interface{}, batchSize int) (int, error) {
	refs := collectDistrictRefs(records)
	if len(refs) == 0 {
		return 0, nil
	}

	stateMap, err := s.stateCodeMap()
	if err != nil {
		return 0, fmt.Errorf("failed to load state map: %w", err)
	}

	rows := resolveDistrictRows(refs, stateMap)
	if skipped := len(refs) - len(rows); skipped > 0 {
		log.Printf("skipped %d districts with unresolvable state codes", skipped)
	}

	written := 0
	for _, b := range splitIndexes(len(rows), batchSize) {
		batch := rows[b[0]:b[1]]
		query, args := buildDistrictUpsert(batch)
		if err := s.execTx(query, args); err != nil {
			return written, fmt.Errorf("failed to upsert districts batch: %w", err)
		}
		written += len(batch)
	}
	return written, nil
}

func buildDistrictUpsert(batch []districtRow) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO districts (district_code, district_name, state_id) VALUES ")

	args := make([]interface{}, 0, len(batch)*3)
	for i, d := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3)
		args = append(args, d.Code, d.Name, d.StateID)
	}
	sb.WriteString(" ON CONFLICT (district_code) DO UPDATE SET district_name = EXCLUDED.district_name, state_id = EXCLUDED.state_id, updated_at = now()")
	return sb.String(), args
}

// ensureDistricts guarantees every resolvable district referenced by the
// records exists, then returns the refreshed code → id map. Districts whose
// owning state is not in stateMap are not created.
func (s *Store) ensureDistricts(records []map[string]interface{}, stateMap map[string]int64) (map[string]int64, error) {
	districtMap, err := s.districtCodeMap()
	if err != nil {
		return nil, fmt.Errorf("failed to load district map: %w", err)
	}

	missing := missingDistrictRows(records, districtMap, stateMap)
	if len(missing) == 0 {
		return districtMap, nil
	}

	query, args := buildDistrictInsertIgnore(missing)
	if err := s.execTx(query, args); err != nil {
		log.Printf("insert of %d missing districts failed, continuing: %v", len(missing), err)
	}

	districtMap, err = s.districtCodeMap()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh district map: %w", err)
	}
	return districtMap, nil
}

// missingDistrictRows collects district references absent from the district
// map whose owning state resolves. Last occurrence wins per code.
func missingDistrictRows(records []map[string]interface{}, have map[string]int64, stateMap map[string]int64) []districtRow {
	byCode := make(map[string]int)
	var missing []districtRow
	for _, rec := range records {
		code := fieldString(rec, "district_code")
		if code == "" {
			continue
		}
		if _, ok := have[code]; ok {
			continue
		}
		stateID, ok := stateMap[fieldString(rec, "state_code")]
		if !ok {
			continue
		}
		row := districtRow{Code: code, Name: fieldString(rec, "district_name"), StateID: stateID}
		if i, seen := byCode[code]; seen {
			missing[i] = row
			continue
		}
		byCode[code] = len(missing)
		missing = append(missing, row)
	}
	return missing
}

func buildDistrictInsertIgnore(batch []districtRow) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO districts (district_code, district_name, state_id) VALUES ")

	args := make([]interface{}, 0, len(batch)*3)
	for i, d := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3)
		args = append(args, d.Code, d.Name, d.StateID)
	}
	sb.WriteString(" ON CONFLICT (district_code) DO NOTHING")
	return sb.String(), args
}
