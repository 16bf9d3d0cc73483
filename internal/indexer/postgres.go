package indexer

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"
	"github.com/project-tktt/job-enricher/internal/domain"
)

// PostgresIndexer writes enriched jobs to PostgreSQL
type PostgresIndexer struct {
	db        *sql.DB
	tableName string
}

// NewPostgresIndexer creates a new PostgreSQL indexer
func NewPostgresIndexer(connStr string, tableName string) (*PostgresIndexer, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	indexer := &PostgresIndexer{
		db:        db,
		tableName: tableName,
	}

	// Ensure table exists
	if err := indexer.ensureTable(); err != nil {
		return nil, fmt.Errorf("ensure table: %w", err)
	}

	return indexer, nil
}

// ensureTable creates the enriched jobs table if it doesn't exist
func (i *PostgresIndexer) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			company TEXT,
			location TEXT,
			link TEXT,
			header_text TEXT,
			has_salary BOOLEAN DEFAULT FALSE,
			currency_raw TEXT,
			min_salary_raw DOUBLE PRECISION,
			max_salary_raw DOUBLE PRECISION,
			single_salary_raw DOUBLE PRECISION,
			salary_period TEXT,
			min_salary_annual_usd DOUBLE PRECISION,
			max_salary_annual_usd DOUBLE PRECISION,
			avg_salary_annual_usd DOUBLE PRECISION,
			salary_confidence DOUBLE PRECISION,
			experience_level TEXT,
			work_type TEXT,
			employment_type TEXT,
			country TEXT,
			programming_languages TEXT[],
			libraries TEXT[],
			analyst_tools TEXT[],
			cloud_platforms TEXT[],
			enriched_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`, i.tableName)

	_, err := i.db.Exec(query)
	return err
}

const upsertColumns = `
		id, title, description, company, location, link, header_text,
		has_salary, currency_raw, min_salary_raw, max_salary_raw, single_salary_raw,
		salary_period, min_salary_annual_usd, max_salary_annual_usd, avg_salary_annual_usd,
		salary_confidence, experience_level, work_type, employment_type, country,
		programming_languages, libraries, analyst_tools, cloud_platforms, enriched_at, updated_at`

const upsertConflict = `
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		company = EXCLUDED.company,
		location = EXCLUDED.location,
		link = EXCLUDED.link,
		header_text = EXCLUDED.header_text,
		has_salary = EXCLUDED.has_salary,
		currency_raw = EXCLUDED.currency_raw,
		min_salary_raw = EXCLUDED.min_salary_raw,
		max_salary_raw = EXCLUDED.max_salary_raw,
		single_salary_raw = EXCLUDED.single_salary_raw,
		salary_period = EXCLUDED.salary_period,
		min_salary_annual_usd = EXCLUDED.min_salary_annual_usd,
		max_salary_annual_usd = EXCLUDED.max_salary_annual_usd,
		avg_salary_annual_usd = EXCLUDED.avg_salary_annual_usd,
		salary_confidence = EXCLUDED.salary_confidence,
		experience_level = EXCLUDED.experience_level,
		work_type = EXCLUDED.work_type,
		employment_type = EXCLUDED.employment_type,
		country = EXCLUDED.country,
		programming_languages = EXCLUDED.programming_languages,
		libraries = EXCLUDED.libraries,
		analyst_tools = EXCLUDED.analyst_tools,
		cloud_platforms = EXCLUDED.cloud_platforms,
		enriched_at = EXCLUDED.enriched_at,
		updated_at = NOW()`

func (i *PostgresIndexer) upsertQuery() string {
	return fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16,
			$17, $18, $19, $20, $21,
			$22, $23, $24, $25, $26, NOW()
		)%s`, i.tableName, upsertColumns, upsertConflict)
}

func upsertArgs(job *domain.EnrichedJob) []any {
	return []any{
		DocID(job), job.Title, job.Description, job.Company, job.Location, job.Link, job.HeaderText,
		job.Salary.HasSalary, job.Salary.CurrencyRaw, job.Salary.MinRaw, job.Salary.MaxRaw, job.Salary.SingleRaw,
		job.Salary.Period, job.Salary.MinAnnualUSD, job.Salary.MaxAnnualUSD, job.Salary.AvgAnnualUSD,
		job.Salary.Confidence, job.ExperienceLevel, job.WorkType, job.EmploymentType, job.Country,
		pq.Array(job.Skills.ProgrammingLanguages), pq.Array(job.Skills.Libraries),
		pq.Array(job.Skills.AnalystTools), pq.Array(job.Skills.CloudPlatforms), job.EnrichedAt,
	}
}

// Index writes a single enriched job
func (i *PostgresIndexer) Index(ctx context.Context, job *domain.EnrichedJob) error {
	_, err := i.db.ExecContext(ctx, i.upsertQuery(), upsertArgs(job)...)
	return err
}

// BulkIndex writes multiple enriched jobs using a transaction
func (i *PostgresIndexer) BulkIndex(ctx context.Context, jobs []*domain.EnrichedJob) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, i.upsertQuery())
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, job := range jobs {
		if _, err := stmt.ExecContext(ctx, upsertArgs(job)...); err != nil {
			log.Printf("Error indexing job %s: %v", job.Link, err)
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// ListRecords streams the raw input columns of every stored job back
// out, page by page. Used by the re-enrichment command to replay the
// table through an updated pipeline.
func (i *PostgresIndexer) ListRecords(ctx context.Context, offset, limit int) ([]*domain.JobRecord, error) {
	query := fmt.Sprintf(`
		SELECT title, description, company, location, link, header_text
		FROM %s
		ORDER BY id
		OFFSET $1 LIMIT $2
	`, i.tableName)

	rows, err := i.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*domain.JobRecord
	for rows.Next() {
		var rec domain.JobRecord
		var description, company, location, link, headerText sql.NullString
		if err := rows.Scan(&rec.Title, &description, &company, &location, &link, &headerText); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Description = description.String
		rec.Company = company.String
		rec.Location = location.String
		rec.Link = link.String
		rec.HeaderText = headerText.String
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// Close closes the database connection
func (i *PostgresIndexer) Close() error {
	return i.db.Close()
}
