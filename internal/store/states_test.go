package store

import (
	"strings"
	"testing"
)

func TestCollectStatePairsLastNameWins(t *testing.T) {
	records := []map[string]interface{}{
		{"state_code": "27", "state_name": "MAH"},
		{"state_code": "29", "state_name": "KARNATAKA"},
		{"state_code": "27", "state_name": "MAHARASHTRA"},
	}

	got := collectStatePairs(records)

	if len(got) != 2 {
		t.Fatalf("got %d pairs, want 2", len(got))
	}
	if got[0].Code != "27" || got[0].Name != "MAHARASHTRA" {
		t.Errorf("got[0] = %+v, want code 27 name MAHARASHTRA", got[0])
	}
	if got[1].Code != "29" || got[1].Name != "KARNATAKA" {
		t.Errorf("got[1] = %+v, want code 29 name KARNATAKA", got[1])
	}
}

func TestCollectStatePairsRequiresBothFields(t *testing.T) {
	records := []map[string]interface{}{
		{"state_code": "27"},
		{"state_name": "KERALA"},
		{"state_code": "", "state_name": "GOA"},
	}
	if got := collectStatePairs(records); len(got) != 0 {
		t.Errorf("got %v, want no pairs from incomplete references", got)
	}
}

func TestMissingStatePairs(t *testing.T) {
	records := []map[string]interface{}{
		{"state_code": "27", "state_name": "MAHARASHTRA"},
		{"state_code": "29"}, // name-less reference still needs a parent row
		{"state_code": "32", "state_name": "KERALA"},
	}
	have := map[string]int64{"27": 1}

	got := missingStatePairs(records, have)

	if len(got) != 2 {
		t.Fatalf("got %d missing, want 2", len(got))
	}
	if got[0].Code != "29" || got[0].Name != "" {
		t.Errorf("got[0] = %+v, want code 29 with empty name", got[0])
	}
	if got[1].Code != "32" || got[1].Name != "KERALA" {
		t.Errorf("got[1] = %+v, want code 32 name KERALA", got[1])
	}
}

func TestMissingStatePairsNoneMissing(t *testing.T) {
	records := []map[string]interface{}{
		{"state_code": "27", "state_name": "MAHARASHTRA"},
	}
	if got := missingStatePairs(records, map[string]int64{"27": 1}); len(got) != 0 {
		t.Errorf("got %v, want no missing states", got)
	}
}

func TestBuildStateUpsert(t *testing.T) {
	query, args := buildStateUpsert([]statePair{
		{Code: "27", Name: "MAHARASHTRA"},
		{Code: "29", Name: "KARNATAKA"},
	})

	if !strings.Contains(query, "ON CONFLICT (state_code) DO UPDATE SET state_name = EXCLUDED.state_name") {
		t.Errorf("query missing conflict-update clause: %s", query)
	}
	if !strings.Contains(query, "($1, $2), ($3, $4)") {
		t.Errorf("query missing multi-row placeholders: %s", query)
	}
	if len(args) != 4 {
		t.Errorf("got %d args, want 4", len(args))
	}
}

func TestBuildStateInsertIgnore(t *testing.T) {
	query, _ := buildStateInsertIgnore([]statePair{{Code: "27", Name: ""}})
	if !strings.Contains(query, "ON CONFLICT (state_code) DO NOTHING") {
		t.Errorf("query missing conflict-ignore clause: %s", query)
	}
}

func TestSplitIndexes(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		batchSize int
		want      [][2]int
	}{
		{name: "exact multiple", n: 4, batchSize: 2, want: [][2]int{{0, 2}, {2, 4}}},
		{name: "remainder batch", n: 5, batchSize: 2, want: [][2]int{{0, 2}, {2, 4}, {4, 5}}},
		{name: "single batch", n: 3, batchSize: 500, want: [][2]int{{0, 3}}},
		{name: "empty", n: 0, batchSize: 500, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitIndexes(tt.n, tt.batchSize)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("bounds[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
