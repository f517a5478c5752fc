package store

import (
	"encoding/json"
	"time"
)

// State is one administrative region.
type State struct {
	ID        int64  `json:"id"`
	StateCode string `json:"state_code"`
	StateName string `json:"state_name"`
}

// District is one sub-region owned by exactly one state.
type District struct {
	ID           int64  `json:"id"`
	DistrictCode string `json:"district_code"`
	DistrictName string `json:"district_name"`
	StateID      int64  `json:"state_id"`
}

// FactRecord is the latest MGNREGA snapshot for one district, with the
// district and state identity joined on for the read API.
type FactRecord struct {
	ID         int64 `json:"id"`
	DistrictID int64 `json:"district_id"`

	ApprovedLabourBudget                       int64   `json:"approved_labour_budget"`
	AverageWageRatePerDayPerPerson             float64 `json:"average_wage_rate_per_day_per_person"`
	AverageDaysOfEmploymentPerHousehold        float64 `json:"average_days_of_employment_per_household"`
	DifferentlyAbledPersonsWorked              int64   `json:"differently_abled_persons_worked"`
	MaterialAndSkilledWages                    float64 `json:"material_and_skilled_wages"`
	NumberOfCompletedWorks                     int64   `json:"number_of_completed_works"`
	NumberOfGPWithNilExp                       int64   `json:"number_of_gp_with_nil_exp"`
	NumberOfOngoingWorks                       int64   `json:"number_of_ongoing_works"`
	PersondaysOfCentralLiabilitySoFar          int64   `json:"persondays_of_central_liability_so_far"`
	SCPersondays                               int64   `json:"sc_persondays"`
	SCWorkersAgainstActiveWorkers              int64   `json:"sc_workers_against_active_workers"`
	STPersondays                               int64   `json:"st_persondays"`
	STWorkersAgainstActiveWorkers              int64   `json:"st_workers_against_active_workers"`
	TotalAdmExpenditure                        float64 `json:"total_adm_expenditure"`
	TotalExp                                   float64 `json:"total_exp"`
	TotalHouseholdsWorked                      int64   `json:"total_households_worked"`
	TotalIndividualsWorked                     int64   `json:"total_individuals_worked"`
	TotalNumOfActiveJobCards                   int64   `json:"total_num_of_active_job_cards"`
	TotalNumOfActiveWorkers                    int64   `json:"total_num_of_active_workers"`
	TotalNumOfHHCompleted100DayWageEmployment  int64   `json:"total_num_of_hh_completed_100_day_wage_employment"`
	TotalNumOfJobCardsIssued                   int64   `json:"total_num_of_job_cards_issued"`
	TotalNumOfWorkers                          int64   `json:"total_num_of_workers"`
	TotalNumOfWorksTakenup                     int64   `json:"total_num_of_works_takenup"`
	Wages                                      float64 `json:"wages"`
	WomenPersondays                            int64   `json:"women_persondays"`
	PercentOfCategoryBWorks                    float64 `json:"percent_of_category_b_works"`
	PercentageOfExpenditureOnAgricultureAllied float64 `json:"percentage_of_expenditure_on_agriculture_allied_works"`
	PercentOfNRMExpenditure                    float64 `json:"percent_of_nrm_expenditure"`
	PercentagePaymentsGeneratedWithin15Days    float64 `json:"percentage_payments_generated_within_15_days"`

	Remarks       *string    `json:"remarks"`
	RecordDate    time.Time  `json:"record_date"`
	DataFetchedOn time.Time  `json:"data_fetched_on"`
	UpdatedAt     *time.Time `json:"updated_at"`

	DistrictName string `json:"district_name"`
	DistrictCode string `json:"district_code"`
	StateName    string `json:"state_name"`
	StateCode    string `json:"state_code"`
}

// RawCacheEntry is one immutable audit record of an upstream call.
type RawCacheEntry struct {
	ID           int64           `json:"id"`
	APIURL       string          `json:"api_url"`
	ResponseData json.RawMessage `json:"response_data"`
	FetchedAt    time.Time       `json:"fetched_at"`
}

// StateSummary aggregates fact metrics per state for dashboard KPIs.
type StateSummary struct {
	StateName               string  `json:"state_name"`
	StateCode               string  `json:"state_code"`
	Districts               int64   `json:"districts"`
	TotalExp                float64 `json:"total_exp"`
	TotalWages              float64 `json:"total_wages"`
	TotalHouseholdsWorked   int64   `json:"total_households_worked"`
	TotalWomenPersondays    int64   `json:"total_women_persondays"`
	AvgWageRate             float64 `json:"avg_wage_rate_per_day_per_person"`
	AvgPaymentsWithin15Days float64 `json:"avg_percentage_payments_generated_within_15_days"`
}

// Snapshot is the full read-side dump served by the API.
type Snapshot struct {
	States      []State         `json:"states"`
	Districts   []District      `json:"districts"`
	MGNREGAData []FactRecord    `json:"mgnrega_data"`
	RawAPICache []RawCacheEntry `json:"raw_api_cache"`
}
