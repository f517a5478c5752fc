package db

import (
	"database/sql"
	"fmt"
)

// Schema for the MGNREGA statistics store. Natural keys (state_code,
// district_code, district_id on the fact table) carry unique constraints so
// the ingest pipeline can rely on ON CONFLICT targets.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS states (
	id          SERIAL PRIMARY KEY,
	state_code  TEXT NOT NULL,
	state_name  TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_states_state_code ON states (state_code);

CREATE TABLE IF NOT EXISTS districts (
	id            SERIAL PRIMARY KEY,
	district_code TEXT NOT NULL,
	district_name TEXT NOT NULL,
	state_id      INTEGER NOT NULL REFERENCES states(id) ON DELETE CASCADE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_districts_district_code ON districts (district_code);

CREATE TABLE IF NOT EXISTS mgnrega_data (
	id                                                    SERIAL PRIMARY KEY,
	district_id                                           INTEGER NOT NULL REFERENCES districts(id) ON DELETE CASCADE,
	approved_labour_budget                                BIGINT NOT NULL DEFAULT 0,
	average_wage_rate_per_day_per_person                  DOUBLE PRECISION NOT NULL DEFAULT 0,
	average_days_of_employment_per_household              DOUBLE PRECISION NOT NULL DEFAULT 0,
	differently_abled_persons_worked                      BIGINT NOT NULL DEFAULT 0,
	material_and_skilled_wages                            DOUBLE PRECISION NOT NULL DEFAULT 0,
	number_of_completed_works                             BIGINT NOT NULL DEFAULT 0,
	number_of_gp_with_nil_exp                             BIGINT NOT NULL DEFAULT 0,
	number_of_ongoing_works                               BIGINT NOT NULL DEFAULT 0,
	persondays_of_central_liability_so_far                BIGINT NOT NULL DEFAULT 0,
	sc_persondays                                         BIGINT NOT NULL DEFAULT 0,
	sc_workers_against_active_workers                     BIGINT NOT NULL DEFAULT 0,
	st_persondays                                         BIGINT NOT NULL DEFAULT 0,
	st_workers_against_active_workers                     BIGINT NOT NULL DEFAULT 0,
	total_adm_expenditure                                 DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_exp                                             DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_households_worked                               BIGINT NOT NULL DEFAULT 0,
	total_individuals_worked                              BIGINT NOT NULL DEFAULT 0,
	total_num_of_active_job_cards                         BIGINT NOT NULL DEFAULT 0,
	total_num_of_active_workers                           BIGINT NOT NULL DEFAULT 0,
	total_num_of_hh_completed_100_day_wage_employment     BIGINT NOT NULL DEFAULT 0,
	total_num_of_job_cards_issued                         BIGINT NOT NULL DEFAULT 0,
	total_num_of_workers                                  BIGINT NOT NULL DEFAULT 0,
	total_num_of_works_takenup                            BIGINT NOT NULL DEFAULT 0,
	wages                                                 DOUBLE PRECISION NOT NULL DEFAULT 0,
	women_persondays                                      BIGINT NOT NULL DEFAULT 0,
	percent_of_category_b_works                           DOUBLE PRECISION NOT NULL DEFAULT 0,
	percentage_of_expenditure_on_agriculture_allied_works DOUBLE PRECISION NOT NULL DEFAULT 0,
	percent_of_nrm_expenditure                            DOUBLE PRECISION NOT NULL DEFAULT 0,
	percentage_payments_generated_within_15_days          DOUBLE PRECISION NOT NULL DEFAULT 0,
	remarks                                               TEXT,
	record_date                                           TIMESTAMPTZ NOT NULL,
	data_fetched_on                                       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at                                            TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_mgnrega_district_id ON mgnrega_data (district_id);

CREATE TABLE IF NOT EXISTS raw_api_cache (
	id            SERIAL PRIMARY KEY,
	api_url       TEXT NOT NULL,
	response_data JSONB NOT NULL,
	fetched_at    TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates all tables and unique indexes if they do not exist.
func EnsureSchema(conn *sql.DB) error {
	if _, err := conn.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
