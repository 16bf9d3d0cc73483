// Package enrich turns raw job postings into enriched records: salary
// structure, seniority, work and employment type, country, and
// categorized skills. Enrichment is a pure per-record transform over
// read-only lookup tables; batch orchestration just maps it.
package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/project-tktt/job-enricher/internal/domain"
	"github.com/project-tktt/job-enricher/internal/enrich/classify"
	"github.com/project-tktt/job-enricher/internal/enrich/country"
	"github.com/project-tktt/job-enricher/internal/enrich/currency"
	"github.com/project-tktt/job-enricher/internal/enrich/obfuscate"
	"github.com/project-tktt/job-enricher/internal/enrich/salary"
	"github.com/project-tktt/job-enricher/internal/enrich/skills"
)

// RatesProvider hands out the current exchange-rate snapshot.
type RatesProvider interface {
	Rates() map[string]float64
}

// staticRates satisfies RatesProvider for tests and degraded startup.
type staticRates map[string]float64

func (s staticRates) Rates() map[string]float64 { return s }

// StaticRates wraps a fixed table as a RatesProvider.
func StaticRates(table map[string]float64) RatesProvider { return staticRates(table) }

// Enricher bundles the extractors and lookup tables for a run.
type Enricher struct {
	salaries  *salary.Extractor
	skills    *skills.Extractor
	countries *country.Resolver
	rates     RatesProvider
	keyCols   []obfuscate.KeyColumn
}

// New creates an Enricher. resolver may be built without a geocoder;
// rates may be nil, which disables conversion beyond USD passthrough.
func New(resolver *country.Resolver, rates RatesProvider) *Enricher {
	if rates == nil {
		rates = staticRates{"USD": 1.0}
	}
	return &Enricher{
		salaries:  salary.NewExtractor(),
		skills:    skills.NewExtractor(),
		countries: resolver,
		rates:     rates,
		keyCols:   obfuscate.DefaultKeyColumns,
	}
}

// validate enforces the batch-level contract: title and description are
// required on every record. Their absence is a caller bug, not noise.
func validate(rec *domain.JobRecord) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("record missing required field title (link=%q)", rec.Link)
	}
	if strings.TrimSpace(rec.Description) == "" {
		return fmt.Errorf("record missing required field description (link=%q)", rec.Link)
	}
	return nil
}

// Enrich transforms one record. The input is never mutated.
func (e *Enricher) Enrich(ctx context.Context, rec *domain.JobRecord) (*domain.EnrichedJob, error) {
	if err := validate(rec); err != nil {
		return nil, err
	}

	r := *rec
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)

	job := &domain.EnrichedJob{
		JobRecord:       r,
		Salary:          e.salaries.ExtractRecord(&r, e.rates.Rates()),
		ExperienceLevel: classify.Experience(r.Title, r.Description),
		WorkType:        classify.WorkTypeForRecord(&r),
		EmploymentType:  classify.EmploymentTypeForRecord(&r),
		Skills:          e.skills.Extract(r.Description),
		Country:         domain.CountryUnknown,
		EnrichedAt:      time.Now().UTC(),
	}
	if e.countries != nil {
		job.Country = e.countries.Resolve(ctx, r.Location)
	}
	return job, nil
}

// EnrichBatch filters obfuscated records, enriches the survivors, and
// runs the batch-wide currency standardization pass. Returns how many
// records were dropped by the obfuscation filter.
func (e *Enricher) EnrichBatch(ctx context.Context, records []*domain.JobRecord) ([]*domain.EnrichedJob, int, error) {
	kept, dropped := obfuscate.FilterRecords(records, e.keyCols)

	jobs := make([]*domain.EnrichedJob, 0, len(kept))
	for _, rec := range kept {
		job, err := e.Enrich(ctx, rec)
		if err != nil {
			return nil, dropped, err
		}
		jobs = append(jobs, job)
	}

	e.standardizeCurrencies(jobs)
	return jobs, dropped, nil
}

// standardizeCurrencies maps every extracted currency token to an ISO
// code, defaulting unresolved tokens to USD. A salary that somehow
// arrived without a currency (extraction never produces one, but stored
// rows from older runs can) is labeled with its resolved country's
// national currency; an extracted value is never overwritten, and a
// record without a salary never gains one here.
func (e *Enricher) standardizeCurrencies(jobs []*domain.EnrichedJob) {
	for _, job := range jobs {
		if !job.Salary.HasSalary {
			continue
		}
		if job.Salary.CurrencyRaw != "" {
			if iso := currency.Standardize(job.Salary.CurrencyRaw); iso != "" {
				job.Salary.CurrencyRaw = iso
			} else {
				job.Salary.CurrencyRaw = "USD"
			}
			continue
		}
		if cur, ok := country.CurrencyFor(job.Country); ok {
			job.Salary.CurrencyRaw = cur
		} else {
			job.Salary.CurrencyRaw = "USD"
		}
	}
}
