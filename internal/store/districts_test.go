package store

import (
	"strings"
	"testing"
)

func TestCollectDistrictRefsLastWins(t *testing.T) {
	records := []map[string]interface{}{
		{"district_code": "2714", "district_name": "NASIK", "state_code": "27"},
		{"district_code": "2714", "district_name": "NASHIK", "state_code": "27"},
	}

	got := collectDistrictRefs(records)

	if len(got) != 1 {
		t.Fatalf("got %d refs, want 1", len(got))
	}
	if got[0].Name != "NASHIK" {
		t.Errorf("name = %q, want last occurrence NASHIK", got[0].Name)
	}
}

func TestCollectDistrictRefsRequiresAllFields(t *testing.T) {
	records := []map[string]interface{}{
		{"district_code": "2714", "district_name": "NASHIK"},
		{"district_code": "2715", "state_code": "27"},
		{"district_name": "PUNE", "state_code": "27"},
	}
	if got := collectDistrictRefs(records); len(got) != 0 {
		t.Errorf("got %v, want no refs from incomplete records", got)
	}
}

func TestResolveDistrictRowsSkipsUnknownState(t *testing.T) {
	refs := []districtRef{
		{Code: "2714", Name: "NASHIK", StateCode: "27"},
		{Code: "9999", Name: "NOWHERE", StateCode: "99"},
	}
	stateMap := map[string]int64{"27": 5}

	got := resolveDistrictRows(refs, stateMap)

	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1 (orphan skipped)", len(got))
	}
	if got[0].Code != "2714" || got[0].StateID != 5 {
		t.Errorf("got %+v, want district 2714 bound to state id 5", got[0])
	}
}

func TestMissingDistrictRows(t *testing.T) {
	records := []map[string]interface{}{
		{"district_code": "2714", "district_name": "NASHIK", "state_code": "27"},
		{"district_code": "2715", "district_name": "PUNE", "state_code": "27"},
		{"district_code": "9999", "district_name": "NOWHERE", "state_code": "99"},
	}
	have := map[string]int64{"2714": 1}
	stateMap := map[string]int64{"27": 5}

	got := missingDistrictRows(records, have, stateMap)

	// 2714 exists, 9999's state is unresolvable; only 2715 is creatable.
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].Code != "2715" || got[0].StateID != 5 {
		t.Errorf("got %+v, want district 2715 bound to state id 5", got[0])
	}
}

func TestBuildDistrictUpsert(t *testing.T) {
	query, args := buildDistrictUpsert([]districtRow{
		{Code: "2714", Name: "NASHIK", StateID: 5},
	})

	if !strings.Contains(query, "ON CONFLICT (district_code) DO UPDATE SET district_name = EXCLUDED.district_name, state_id = EXCLUDED.state_id") {
		t.Errorf("query missing conflict-update clause: %s", query)
	}
	if len(args) != 3 {
		t.Errorf("got %d args, want 3", len(args))
	}
}

func TestBuildDistrictInsertIgnore(t *testing.T) {
	query, _ := buildDistrictInsertIgnore([]districtRow{{Code: "2714", Name: "NASHIK", StateID: 5}})
	if !strings.Contains(query, "ON CONFLICT (district_code) DO NOTHING") {
		t.Errorf("query missing conflict-ignore clause: %s", query)
	}
}
