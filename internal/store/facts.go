package store

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// factMetricColumns lists every numeric metric column in schema order. The
// upsert statement sets each one, and rows are zero-filled for metrics the
// upstream payload omits.
var factMetricColumns = []string{
	"approved_labour_budget",
	"average_wage_rate_per_day_per_person",
	"average_days_of_employment_per_household",
	"differently_abled_persons_worked",
	"material_and_skilled_wages",
	"number_of_completed_works",
	"number_of_gp_with_nil_exp",
	"number_of_ongoing_works",
	"persondays_of_central_liability_so_far",
	"sc_persondays",
	"sc_workers_against_active_workers",
	"st_persondays",
	"st_workers_against_active_workers",
	"total_adm_expenditure",
	"total_exp",
	"total_households_worked",
	"total_individuals_worked",
	"total_num_of_active_job_cards",
	"total_num_of_active_workers",
	"total_num_of_hh_completed_100_day_wage_employment",
	"total_num_of_job_cards_issued",
	"total_num_of_workers",
	"total_num_of_works_takenup",
	"wages",
	"women_persondays",
	"percent_of_category_b_works",
	"percentage_of_expenditure_on_agriculture_allied_works",
	"percent_of_nrm_expenditure",
	"percentage_payments_generated_within_15_days",
}

// factRow is one fully-resolved fact record bound to a district id.
type factRow struct {
	DistrictID int64
	Metrics    map[string]interface{}
	Remarks    interface{} // string or nil
	RecordDate time.Time
}

// RowFailure records one fact row that failed even the per-row fallback.
type RowFailure struct {
	DistrictID int64
	Err        error
}

// UpsertResult summarizes one fact upsert pass. Failures are collected, not
// raised, so a single bad row never blocks the rest of the batch.
type UpsertResult struct {
	Written  int
	Failures []RowFailure
}

// prepareFactRows binds normalized records to district ids and collapses
// them to one row per district, last occurrence winning. Two raw records can
// reach the same district through different code spellings, so this dedup
// runs even after the pipeline-level pass. Records whose district does not
// resolve are dropped. Missing metrics default to zero.
func prepareFactRows(records []map[string]interface{}, districtMap map[string]int64, recordDate time.Time) []factRow {
	byID := make(map[int64]int)
	var rows []factRow
	for _, rec := range records {
		code := fieldString(rec, "district_code")
		if code == "" {
			continue
		}
		id, ok := districtMap[code]
		if !ok {
			continue
		}

		metrics := make(map[string]interface{}, len(factMetricColumns))
		for _, col := range factMetricColumns {
			if v, ok := rec[col]; ok && v != nil {
				metrics[col] = v
			} else {
				metrics[col] = int64(0)
			}
		}

		var remarks interface{}
		if r, ok := rec["remarks"].(string); ok && r != "" {
			remarks = r
		}

		row := factRow{DistrictID: id, Metrics: metrics, Remarks: remarks, RecordDate: recordDate}
		if i, seen := byID[id]; seen {
			rows[i] = row
			continue
		}
		byID[id] = len(rows)
		rows = append(rows, row)
	}
	return rows
}

// UpsertFacts writes fact rows with at most one row per district. Parent
// states and districts are created first as needed. Batches are written as
// independent transactions; a failed batch falls back to per-row writes so
// one bad row costs one row, not the whole batch.
func (s *Store) UpsertFacts(records []map[string]interface{}, batchSize int, recordDate time.Time) (UpsertResult, error) {
	var result UpsertResult
	if len(records) == 0 {
		return result, nil
	}

	stateMap, err := s.ensureStates(records)
	if err != nil {
		return result, err
	}
	districtMap, err := s.ensureDistricts(records, stateMap)
	if err != nil {
		return result, err
	}

	rows := prepareFactRows(records, districtMap, recordDate)
	if len(rows) == 0 {
		return result, nil
	}

	// Fast path: an empty table needs no conflict target. Semantically
	// equivalent to the upsert path because rows are already unique per
	// district id.
	var existing int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM mgnrega_data").Scan(&existing); err != nil {
		return result, fmt.Errorf("failed to count existing facts: %w", err)
	}
	withConflict := existing > 0

	for _, b := range splitIndexes(len(rows), batchSize) {
		batch := rows[b[0]:b[1]]
		query, args := buildFactInsert(batch, withConflict)
		err := s.execTx(query, args)
		if err == nil {
			result.Written += len(batch)
			continue
		}
		log.Printf("fact batch of %d rows failed, retrying per row: %v", len(batch), err)

		// Per-row fallback always uses the conflict form; a row from a
		// failed fast-path batch may have been committed by an earlier
		// partial attempt.
		for _, row := range batch {
			single := []factRow{row}
			query, args := buildFactInsert(single, true)
			if err := s.execTx(query, args); err != nil {
				result.Failures = append(result.Failures, RowFailure{DistrictID: row.DistrictID, Err: err})
				continue
			}
			result.Written++
		}
	}
	return result, nil
}

// buildFactInsert renders a multi-row insert for a batch. With withConflict
// set it upserts on the district-id unique constraint, setting every
// updatable column from the incoming row and refreshing updated_at.
func buildFactInsert(batch []factRow, withConflict bool) (string, []interface{}) {
	columns := make([]string, 0, len(factMetricColumns)+3)
	columns = append(columns, "district_id")
	columns = append(columns, factMetricColumns...)
	columns = append(columns, "remarks", "record_date")

	var sb strings.Builder
	sb.WriteString("INSERT INTO mgnrega_data (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") VALUES ")

	args := make([]interface{}, 0, len(batch)*len(columns))
	for i, row := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := range columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*len(columns)+j+1)
		}
		sb.WriteByte(')')

		args = append(args, row.DistrictID)
		for _, col := range factMetricColumns {
			args = append(args, row.Metrics[col])
		}
		args = append(args, row.Remarks, row.RecordDate)
	}

	if withConflict {
		sb.WriteString(" ON CONFLICT (district_id) DO UPDATE SET ")
		for i, col := range columns[1:] { // every column except the conflict key
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s = EXCLUDED.%s", col, col)
		}
		sb.WriteString(", updated_at = now()")
	}
	return sb.String(), args
}
