package analytics

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rgehrsitz/zusim/internal/domain"
)

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS simulation_analytics (
		id                TEXT PRIMARY KEY,
		recorded_at       TIMESTAMPTZ NOT NULL,
		simulation_type   TEXT NOT NULL,
		monthly_income    DOUBLE PRECISION NOT NULL,
		employment_type   TEXT NOT NULL,
		gender            TEXT NOT NULL,
		current_age       INTEGER NOT NULL,
		retirement_age    INTEGER NOT NULL,
		projected_pension DOUBLE PRECISION NOT NULL,
		years_of_work     DOUBLE PRECISION NOT NULL,
		postal_code       TEXT NOT NULL DEFAULT ''
	)
`

const insertEntrySQL = `
	INSERT INTO simulation_analytics (
		id, recorded_at, simulation_type, monthly_income, employment_type,
		gender, current_age, retirement_age, projected_pension, years_of_work, postal_code
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO NOTHING
`

const selectEntriesSQL = `
	SELECT id, recorded_at, simulation_type, monthly_income, employment_type,
		gender, current_age, retirement_age, projected_pension, years_of_work, postal_code
	FROM simulation_analytics
	ORDER BY recorded_at
`

// DB is the subset of a pgx pool the sink needs
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSink stores entries in the simulation_analytics table
type PostgresSink struct {
	db    DB
	close func()
}

// NewPostgresSink wraps an existing connection or pool
func NewPostgresSink(db DB) *PostgresSink {
	return &PostgresSink{db: db}
}

// OpenPostgresSink connects to dsn and makes sure the table exists
func OpenPostgresSink(ctx context.Context, dsn string) (*PostgresSink, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to analytics database: %w", err)
	}

	sink := &PostgresSink{db: pool, close: pool.Close}
	if err := sink.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return sink, nil
}

// EnsureSchema creates the analytics table when it is missing
func (p *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create analytics table: %w", err)
	}
	return nil
}

func (p *PostgresSink) Record(ctx context.Context, e domain.AnalyticsEntry) error {
	_, err := p.db.Exec(ctx, insertEntrySQL,
		e.ID, e.RecordedAt, string(e.Type), e.MonthlyIncome, string(e.EmploymentType),
		string(e.Gender), e.CurrentAge, e.RetirementAge, e.ProjectedPension, e.YearsOfWork, e.PostalCode,
	)
	if err != nil {
		return fmt.Errorf("failed to save analytics entry: %w", err)
	}
	return nil
}

func (p *PostgresSink) Entries(ctx context.Context) ([]domain.AnalyticsEntry, error) {
	rows, err := p.db.Query(ctx, selectEntriesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AnalyticsEntry
	for rows.Next() {
		var (
			e                                  domain.AnalyticsEntry
			simType, employmentType, genderStr string
		)
		if err := rows.Scan(&e.ID, &e.RecordedAt, &simType, &e.MonthlyIncome, &employmentType,
			&genderStr, &e.CurrentAge, &e.RetirementAge, &e.ProjectedPension, &e.YearsOfWork, &e.PostalCode); err != nil {
			return nil, fmt.Errorf("failed to scan analytics entry: %w", err)
		}
		e.Type = domain.SimulationMode(simType)
		e.EmploymentType = domain.EmploymentType(employmentType)
		e.Gender = domain.Gender(genderStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the pool opened by OpenPostgresSink
func (p *PostgresSink) Close() {
	if p.close != nil {
		p.close()
	}
}
