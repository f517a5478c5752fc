package ingest

import "strconv"

// DedupeLastWins collapses records to at most one per key, keeping the last
// occurrence in input order. A single fetch batch can contain corrected
// re-submissions for the same district, so later rows overwrite earlier ones.
// Records whose key extraction yields an empty key cannot be deduplicated;
// they are preserved and placed ahead of the keyed results.
func DedupeLastWins(records []map[string]interface{}, keyFn func(map[string]interface{}) string) []map[string]interface{} {
	if len(records) == 0 {
		return nil
	}

	keyed := make(map[string]map[string]interface{})
	var order []string
	var unkeyed []map[string]interface{}

	for _, rec := range records {
		k := keyFn(rec)
		if k == "" {
			unkeyed = append(unkeyed, rec)
			continue
		}
		if _, seen := keyed[k]; !seen {
			order = append(order, k)
		}
		keyed[k] = rec
	}

	out := make([]map[string]interface{}, 0, len(unkeyed)+len(order))
	out = append(out, unkeyed...)
	for _, k := range order {
		out = append(out, keyed[k])
	}
	return out
}

// StateKey extracts the state natural key from a normalized record, falling
// back to the display name when the upstream payload omits the code.
func StateKey(rec map[string]interface{}) string {
	return firstField(rec, "state_code", "state_name")
}

// DistrictKey extracts the district natural key from a normalized record.
func DistrictKey(rec map[string]interface{}) string {
	return firstField(rec, "district_code", "district_name")
}

// firstField returns the first non-empty candidate field, stringified.
func firstField(rec map[string]interface{}, keys ...string) string {
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
