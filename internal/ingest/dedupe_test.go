package ingest

import (
	"testing"
)

func rec(kv ...string) map[string]interface{} {
	m := make(map[string]interface{})
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func TestDedupeLastWins(t *testing.T) {
	records := []map[string]interface{}{
		rec("district_code", "2714", "wages", "100"),
		rec("district_code", "2715", "wages", "200"),
		rec("district_code", "2714", "wages", "300"),
	}

	got := DedupeLastWins(records, DistrictKey)

	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	// First occurrence position is kept, last occurrence values win.
	if got[0]["district_code"] != "2714" || got[0]["wages"] != "300" {
		t.Errorf("got[0] = %v, want district 2714 with wages 300", got[0])
	}
	if got[1]["district_code"] != "2715" || got[1]["wages"] != "200" {
		t.Errorf("got[1] = %v, want district 2715 with wages 200", got[1])
	}
}

func TestDedupeEmptyKeyPreserved(t *testing.T) {
	records := []map[string]interface{}{
		rec("district_code", "2714"),
		rec("remarks", "no district key"),
		rec("district_code", "2714"),
	}

	got := DedupeLastWins(records, DistrictKey)

	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	// Unkeyed records are never dropped and come first.
	if got[0]["remarks"] != "no district key" {
		t.Errorf("got[0] = %v, want the unkeyed record first", got[0])
	}
	if got[1]["district_code"] != "2714" {
		t.Errorf("got[1] = %v, want district 2714", got[1])
	}
}

func TestDedupeEmptyInput(t *testing.T) {
	if got := DedupeLastWins(nil, DistrictKey); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestStateKeyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]interface{}
		want string
	}{
		{name: "code preferred", rec: rec("state_code", "27", "state_name", "MAHARASHTRA"), want: "27"},
		{name: "name fallback", rec: rec("state_name", "MAHARASHTRA"), want: "MAHARASHTRA"},
		{name: "empty code falls through", rec: rec("state_code", "", "state_name", "MAHARASHTRA"), want: "MAHARASHTRA"},
		{name: "nothing present", rec: rec("wages", "100"), want: ""},
		{name: "numeric code stringified", rec: map[string]interface{}{"state_code": float64(27)}, want: "27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateKey(tt.rec); got != tt.want {
				t.Errorf("StateKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDistrictKeyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]interface{}
		want string
	}{
		{name: "code preferred", rec: rec("district_code", "2714", "district_name", "NASHIK"), want: "2714"},
		{name: "name fallback", rec: rec("district_name", "NASHIK"), want: "NASHIK"},
		{name: "nothing present", rec: rec(), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistrictKey(tt.rec); got != tt.want {
				t.Errorf("DistrictKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
