package normalize

import (
	"sort"
	"strconv"
	"strings"
)

// keyAliases maps every known external field spelling onto its canonical
// column name. The upstream API is not consistent about casing or wording
// between financial years, so both the published spellings and the lowercase
// variants seen in older payloads are listed. Keys not present here fall back
// to mechanical normalization.
var keyAliases = map[string]string{
	// Published API spellings.
	"Approved_Labour_Budget":                                "approved_labour_budget",
	"Average_Wage_rate_per_day_per_person":                  "average_wage_rate_per_day_per_person",
	"Average_days_of_employment_provided_per_Household":     "average_days_of_employment_per_household",
	"Differently_abled_persons_worked":                      "differently_abled_persons_worked",
	"Material_and_skilled_Wages":                            "material_and_skilled_wages",
	"Number_of_Completed_Works":                             "number_of_completed_works",
	"Number_of_GPs_with_NIL_exp":                            "number_of_gp_with_nil_exp",
	"Number_of_Ongoing_Works":                               "number_of_ongoing_works",
	"Persondays_of_Central_Liability_so_far":                "persondays_of_central_liability_so_far",
	"SC_persondays":                                         "sc_persondays",
	"SC_workers_against_active_workers":                     "sc_workers_against_active_workers",
	"ST_persondays":                                         "st_persondays",
	"ST_workers_against_active_workers":                     "st_workers_against_active_workers",
	"Total_Adm_Expenditure":                                 "total_adm_expenditure",
	"Total_Exp":                                             "total_exp",
	"Total_Households_Worked":                               "total_households_worked",
	"Total_Individuals_Worked":                              "total_individuals_worked",
	"Total_No_of_Active_Job_Cards":                          "total_num_of_active_job_cards",
	"Total_No_of_Active_Workers":                            "total_num_of_active_workers",
	"Total_No_of_HHs_completed_100_Days_of_Wage_Employment": "total_num_of_hh_completed_100_day_wage_employment",
	"Total_No_of_JobCards_issued":                           "total_num_of_job_cards_issued",
	"Total_No_of_Workers":                                   "total_num_of_workers",
	"Total_No_of_Works_Takenup":                             "total_num_of_works_takenup",
	"Wages":                                                 "wages",
	"Women_Persondays":                                      "women_persondays",
	"percent_of_Category_B_Works":                           "percent_of_category_b_works",
	"percent_of_Expenditure_on_Agriculture_Allied_Works":    "percentage_of_expenditure_on_agriculture_allied_works",
	"percent_of_NRM_Expenditure":                            "percent_of_nrm_expenditure",
	"percentage_payments_gererated_within_15_days":          "percentage_payments_generated_within_15_days",

	// Identity fields.
	"State":    "state_name",
	"District": "district_name",

	// Lowercase variants whose mechanical form differs from the canonical name.
	"average_days_of_employment_provided_per_household":     "average_days_of_employment_per_household",
	"number_of_gps_with_nil_exp":                            "number_of_gp_with_nil_exp",
	"total_no_of_active_job_cards":                          "total_num_of_active_job_cards",
	"total_no_of_active_workers":                            "total_num_of_active_workers",
	"total_no_of_hhs_completed_100_days_of_wage_employment": "total_num_of_hh_completed_100_day_wage_employment",
	"total_no_of_jobcards_issued":                           "total_num_of_job_cards_issued",
	"total_no_of_workers":                                   "total_num_of_workers",
	"total_no_of_works_takenup":                             "total_num_of_works_takenup",
	"percent_of_expenditure_on_agriculture_allied_works":    "percentage_of_expenditure_on_agriculture_allied_works",
	"state":    "state_name",
	"district": "district_name",
}

// textFields are never numerically coerced; they stay strings.
var textFields = map[string]bool{
	"state_code":    true,
	"state_name":    true,
	"district_code": true,
	"district_name": true,
	"fin_year":      true,
	"month":         true,
	"remarks":       true,
}

// CanonicalKey resolves an external field name to its canonical column name.
// Unknown spellings fall back to mechanical normalization: lowercase with
// non-alphanumeric runs collapsed to a single underscore.
func CanonicalKey(key string) string {
	if canonical, ok := keyAliases[key]; ok {
		return canonical
	}
	mechanical := mechanicalKey(key)
	if canonical, ok := keyAliases[mechanical]; ok {
		return canonical
	}
	return mechanical
}

func mechanicalKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	lastUnderscore := true // suppress a leading underscore
	for _, r := range strings.ToLower(key) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// CoerceValue turns string-typed numbers into numeric types. Empty strings
// become nil, all-digit strings become int64, everything else that parses
// (after stripping thousands-separator commas) becomes float64, and strings
// that do not parse are kept trimmed. Non-string values pass through.
func CoerceValue(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if isAllDigits(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		// Too large for int64, fall through to the float path.
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return f
	}
	return s
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Record maps one raw API record onto canonical field names with coerced
// values. Identity fields keep their string form (trimmed). When two
// external spellings collide on the same canonical name, the first non-nil
// value in sorted key order wins. Pure function of its input.
func Record(raw map[string]interface{}) map[string]interface{} {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]interface{}, len(raw))
	for _, k := range keys {
		canonical := CanonicalKey(k)
		var val interface{}
		if textFields[canonical] {
			if s, ok := raw[k].(string); ok {
				val = strings.TrimSpace(s)
			} else {
				val = raw[k]
			}
		} else {
			val = CoerceValue(raw[k])
		}
		if existing, ok := out[canonical]; ok && existing != nil && existing != "" {
			continue
		}
		out[canonical] = val
	}
	return out
}

// Records normalizes a whole batch, preserving input order.
func Records(raw []map[string]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(raw))
	for _, r := range raw {
		out = append(out, Record(r))
	}
	return out
}
