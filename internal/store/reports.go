package store

import (
	"fmt"
	"strings"
)

// ListStates returns every state row.
func (s *Store) ListStates() ([]State, error) {
	rows, err := s.db.Query("SELECT id, state_code, state_name FROM states ORDER BY state_code")
	if err != nil {
		return nil, fmt.Errorf("failed to query states: %w", err)
	}
	defer rows.Close()

	var out []State
	for rows.Next() {
		var st State
		if err := rows.Scan(&st.ID, &st.StateCode, &st.StateName); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// ListDistricts returns every district row.
func (s *Store) ListDistricts() ([]District, error) {
	rows, err := s.db.Query("SELECT id, district_code, district_name, state_id FROM districts ORDER BY district_code")
	if err != nil {
		return nil, fmt.Errorf("failed to query districts: %w", err)
	}
	defer rows.Close()

	var out []District
	for rows.Next() {
		var d District
		if err := rows.Scan(&d.ID, &d.DistrictCode, &d.DistrictName, &d.StateID); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListFacts returns every fact row with district and state identity joined.
func (s *Store) ListFacts() ([]FactRecord, error) {
	query := fmt.Sprintf(`
		SELECT m.id, m.district_id, %s, m.remarks, m.record_date, m.data_fetched_on, m.updated_at,
		       d.district_name, d.district_code, st.state_name, st.state_code
		FROM mgnrega_data m
		JOIN districts d ON d.id = m.district_id
		JOIN states st ON st.id = d.state_id
		ORDER BY d.district_code`,
		"m."+strings.Join(factMetricColumns, ", m."))

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query facts: %w", err)
	}
	defer rows.Close()

	var out []FactRecord
	for rows.Next() {
		var f FactRecord
		err := rows.Scan(
			&f.ID, &f.DistrictID,
			&f.ApprovedLabourBudget,
			&f.AverageWageRatePerDayPerPerson,
			&f.AverageDaysOfEmploymentPerHousehold,
			&f.DifferentlyAbledPersonsWorked,
			&f.MaterialAndSkilledWages,
			&f.NumberOfCompletedWorks,
			&f.NumberOfGPWithNilExp,
			&f.NumberOfOngoingWorks,
			&f.PersondaysOfCentralLiabilitySoFar,
			&f.SCPersondays,
			&f.SCWorkersAgainstActiveWorkers,
			&f.STPersondays,
			&f.STWorkersAgainstActiveWorkers,
			&f.TotalAdmExpenditure,
			&f.TotalExp,
			&f.TotalHouseholdsWorked,
			&f.TotalIndividualsWorked,
			&f.TotalNumOfActiveJobCards,
			&f.TotalNumOfActiveWorkers,
			&f.TotalNumOfHHCompleted100DayWageEmployment,
			&f.TotalNumOfJobCardsIssued,
			&f.TotalNumOfWorkers,
			&f.TotalNumOfWorksTakenup,
			&f.Wages,
			&f.WomenPersondays,
			&f.PercentOfCategoryBWorks,
			&f.PercentageOfExpenditureOnAgricultureAllied,
			&f.PercentOfNRMExpenditure,
			&f.PercentagePaymentsGeneratedWithin15Days,
			&f.Remarks, &f.RecordDate, &f.DataFetchedOn, &f.UpdatedAt,
			&f.DistrictName, &f.DistrictCode, &f.StateName, &f.StateCode,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ListRawCache returns the most recent audit cache entries, newest first.
func (s *Store) ListRawCache(limit int) ([]RawCacheEntry, error) {
	if limit < 1 {
		limit = 100
	}
	rows, err := s.db.Query(
		"SELECT id, api_url, response_data, fetched_at FROM raw_api_cache ORDER BY fetched_at DESC LIMIT $1",
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw cache: %w", err)
	}
	defer rows.Close()

	var out []RawCacheEntry
	for rows.Next() {
		var e RawCacheEntry
		var payload []byte
		if err := rows.Scan(&e.ID, &e.APIURL, &payload, &e.FetchedAt); err != nil {
			return nil, err
		}
		e.ResponseData = payload
		out = append(out, e)
	}
	return out, rows.Err()
}

// Snapshot loads the full read-side dump for the API.
func (s *Store) Snapshot(cacheLimit int) (*Snapshot, error) {
	states, err := s.ListStates()
	if err != nil {
		return nil, err
	}
	districts, err := s.ListDistricts()
	if err != nil {
		return nil, err
	}
	facts, err := s.ListFacts()
	if err != nil {
		return nil, err
	}
	cache, err := s.ListRawCache(cacheLimit)
	if err != nil {
		return nil, err
	}
	return &Snapshot{States: states, Districts: districts, MGNREGAData: facts, RawAPICache: cache}, nil
}

// StateSummaries returns grouped sums and averages per state for KPIs.
func (s *Store) StateSummaries() ([]StateSummary, error) {
	rows, err := s.db.Query(`
		SELECT st.state_name, st.state_code,
		       COUNT(m.id),
		       COALESCE(SUM(m.total_exp), 0),
		       COALESCE(SUM(m.wages), 0),
		       COALESCE(SUM(m.total_households_worked), 0),
		       COALESCE(SUM(m.women_persondays), 0),
		       COALESCE(AVG(m.average_wage_rate_per_day_per_person), 0),
		       COALESCE(AVG(m.percentage_payments_generated_within_15_days), 0)
		FROM states st
		JOIN districts d ON d.state_id = st.id
		JOIN mgnrega_data m ON m.district_id = d.id
		GROUP BY st.state_name, st.state_code
		ORDER BY st.state_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query state summaries: %w", err)
	}
	defer rows.Close()

	var out []StateSummary
	for rows.Next() {
		var sum StateSummary
		err := rows.Scan(
			&sum.StateName, &sum.StateCode, &sum.Districts,
			&sum.TotalExp, &sum.TotalWages, &sum.TotalHouseholdsWorked,
			&sum.TotalWomenPersondays, &sum.AvgWageRate, &sum.AvgPaymentsWithin15Days,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
