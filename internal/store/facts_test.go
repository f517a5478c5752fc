package store

import (
	"strings"
	"testing"
	"time"
)

var testDate = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

func TestPrepareFactRowsDedupByDistrictID(t *testing.T) {
	// Two records reaching the same district id must collapse to the
	// last-seen values, even if upstream dedup missed them.
	records := []map[string]interface{}{
		{"district_code": "2714", "wages": float64(100)},
		{"district_code": "2715", "wages": float64(200)},
		{"district_code": "2714", "wages": float64(300)},
	}
	districtMap := map[string]int64{"2714": 1, "2715": 2}

	got := prepareFactRows(records, districtMap, testDate)

	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].DistrictID != 1 || got[0].Metrics["wages"] != float64(300) {
		t.Errorf("got[0] = %+v, want district 1 with wages 300", got[0])
	}
	if got[1].DistrictID != 2 || got[1].Metrics["wages"] != float64(200) {
		t.Errorf("got[1] = %+v, want district 2 with wages 200", got[1])
	}
}

func TestPrepareFactRowsSkipsUnresolvedDistrict(t *testing.T) {
	records := []map[string]interface{}{
		{"district_code": "2714", "wages": float64(100)},
		{"district_code": "9999", "wages": float64(500)},
		{"wages": float64(900)}, // no district key at all
	}
	districtMap := map[string]int64{"2714": 1}

	got := prepareFactRows(records, districtMap, testDate)

	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1 (unresolvable districts skipped)", len(got))
	}
	if got[0].DistrictID != 1 {
		t.Errorf("district id = %d, want 1", got[0].DistrictID)
	}
}

func TestPrepareFactRowsZeroFillsMissingMetrics(t *testing.T) {
	records := []map[string]interface{}{
		{"district_code": "2714", "wages": float64(100), "total_exp": nil},
	}
	got := prepareFactRows(records, map[string]int64{"2714": 1}, testDate)

	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	row := got[0]
	if row.Metrics["wages"] != float64(100) {
		t.Errorf("wages = %v, want 100", row.Metrics["wages"])
	}
	// Explicit null and absent metrics both default to zero.
	if row.Metrics["total_exp"] != int64(0) {
		t.Errorf("total_exp = %v, want 0", row.Metrics["total_exp"])
	}
	if row.Metrics["approved_labour_budget"] != int64(0) {
		t.Errorf("approved_labour_budget = %v, want 0", row.Metrics["approved_labour_budget"])
	}
	if len(row.Metrics) != len(factMetricColumns) {
		t.Errorf("got %d metrics, want %d", len(row.Metrics), len(factMetricColumns))
	}
	if row.RecordDate != testDate {
		t.Errorf("record date = %v, want %v", row.RecordDate, testDate)
	}
}

func TestPrepareFactRowsRemarks(t *testing.T) {
	records := []map[string]interface{}{
		{"district_code": "2714", "remarks": "verified"},
		{"district_code": "2715", "remarks": ""},
		{"district_code": "2716"},
	}
	districtMap := map[string]int64{"2714": 1, "2715": 2, "2716": 3}

	got := prepareFactRows(records, districtMap, testDate)

	if got[0].Remarks != "verified" {
		t.Errorf("remarks = %v, want verified", got[0].Remarks)
	}
	if got[1].Remarks != nil {
		t.Errorf("empty remarks = %v, want nil", got[1].Remarks)
	}
	if got[2].Remarks != nil {
		t.Errorf("absent remarks = %v, want nil", got[2].Remarks)
	}
}

func TestBuildFactInsertConflictClause(t *testing.T) {
	rows := prepareFactRows([]map[string]interface{}{
		{"district_code": "2714", "wages": float64(100)},
	}, map[string]int64{"2714": 1}, testDate)

	query, args := buildFactInsert(rows, true)

	if !strings.Contains(query, "ON CONFLICT (district_id) DO UPDATE SET") {
		t.Errorf("query missing conflict clause: %s", query)
	}
	if !strings.Contains(query, "updated_at = now()") {
		t.Errorf("query does not refresh updated_at: %s", query)
	}
	// The conflict key itself is never in the update list.
	if strings.Contains(query, "district_id = EXCLUDED.district_id") {
		t.Errorf("conflict key must not be updated: %s", query)
	}
	// Every metric column is set from the incoming row.
	for _, col := range factMetricColumns {
		if !strings.Contains(query, col+" = EXCLUDED."+col) {
			t.Errorf("query missing update for %s", col)
		}
	}
	wantArgs := len(factMetricColumns) + 3 // district_id, metrics, remarks, record_date
	if len(args) != wantArgs {
		t.Errorf("got %d args, want %d", len(args), wantArgs)
	}
}

func TestBuildFactInsertFastPath(t *testing.T) {
	rows := prepareFactRows([]map[string]interface{}{
		{"district_code": "2714"},
		{"district_code": "2715"},
	}, map[string]int64{"2714": 1, "2715": 2}, testDate)

	query, args := buildFactInsert(rows, false)

	if strings.Contains(query, "ON CONFLICT") {
		t.Errorf("fast path must not carry a conflict clause: %s", query)
	}
	wantArgs := 2 * (len(factMetricColumns) + 3)
	if len(args) != wantArgs {
		t.Errorf("got %d args, want %d", len(args), wantArgs)
	}
}
