package enrich

import (
	"context"
	"testing"

	"github.com/project-tktt/job-enricher/internal/domain"
	"github.com/project-tktt/job-enricher/internal/enrich/country"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnricher() *Enricher {
	return New(country.NewResolver(nil), StaticRates(map[string]float64{
		"USD": 1.0,
		"MYR": 0.21,
	}))
}

func TestEnrich(t *testing.T) {
	e := newTestEnricher()

	job, err := e.Enrich(context.Background(), &domain.JobRecord{
		Title:       "Senior Data Engineer",
		Description: "Remote full-time role. Compensation of $80,000 - $120,000 per year. Experience with Python and AWS.",
		Location:    "Berlin",
		Company:     "Initech",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ExperienceSenior, job.ExperienceLevel)
	assert.Equal(t, domain.WorkRemote, job.WorkType)
	assert.Equal(t, domain.EmploymentFullTime, job.EmploymentType)
	assert.Equal(t, "Germany", job.Country)
	assert.Equal(t, []string{"python"}, job.Skills.ProgrammingLanguages)
	assert.Equal(t, []string{"aws"}, job.Skills.CloudPlatforms)
	assert.False(t, job.EnrichedAt.IsZero())

	require.True(t, job.Salary.HasSalary)
	assert.Equal(t, "USD", job.Salary.CurrencyRaw)
	require.NotNil(t, job.Salary.MinRaw)
	assert.InDelta(t, 80000, *job.Salary.MinRaw, 0.001)
	require.NotNil(t, job.Salary.AvgAnnualUSD)
	assert.InDelta(t, 100000, *job.Salary.AvgAnnualUSD, 0.001)
}

func TestEnrichRequiresTitleAndDescription(t *testing.T) {
	e := newTestEnricher()

	_, err := e.Enrich(context.Background(), &domain.JobRecord{Location: "Berlin"})
	assert.Error(t, err)

	_, err = e.Enrich(context.Background(), &domain.JobRecord{Title: "Engineer"})
	assert.Error(t, err, "a record without a description is rejected")

	_, err = e.Enrich(context.Background(), &domain.JobRecord{Description: "Great role."})
	assert.Error(t, err, "a record without a title is rejected")
}

func TestEnrichBatch(t *testing.T) {
	e := newTestEnricher()

	records := []*domain.JobRecord{
		{
			Title:       "Senior Data Engineer",
			Description: "Compensation of $80,000 - $120,000 per year.",
			Location:    "Berlin",
			Company:     "Initech",
		},
		{
			Title:       "Data Analyst",
			Description: "Salary: MYR 8,000 - 12,000 per month",
			Location:    "Kuala Lumpur",
			Company:     "Acme",
		},
		{
			Title:       "Office Manager",
			Description: "Salary: 8,000 - 12,000 monthly",
			Location:    "Kuala Lumpur",
			Company:     "Acme",
		},
		{
			Title:       "Mystery Role",
			Description: "Totally real job.",
			Location:    "***",
			Company:     "---",
		},
	}

	jobs, dropped, err := e.EnrichBatch(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped, "fully redacted record is filtered out")
	require.Len(t, jobs, 3)

	assert.Equal(t, "USD", jobs[0].Salary.CurrencyRaw)

	require.True(t, jobs[1].Salary.HasSalary)
	assert.Equal(t, "Malaysia", jobs[1].Country)
	assert.Equal(t, "MYR", jobs[1].Salary.CurrencyRaw)
	require.NotNil(t, jobs[1].Salary.AvgAnnualUSD)
	assert.InDelta(t, 25200, *jobs[1].Salary.AvgAnnualUSD, 0.01)

	// Currency-less amounts never become a salary; the resolved country
	// labels currencies, it does not invent figures.
	assert.False(t, jobs[2].Salary.HasSalary)
	assert.Equal(t, "Malaysia", jobs[2].Country)
	assert.Empty(t, jobs[2].Salary.CurrencyRaw)
	assert.Nil(t, jobs[2].Salary.MinAnnualUSD)
	assert.Nil(t, jobs[2].Salary.MaxAnnualUSD)
}

func TestStandardizeCurrenciesLabelsStoredSalaries(t *testing.T) {
	e := newTestEnricher()

	withSalary := &domain.EnrichedJob{Country: "Malaysia"}
	withSalary.Salary.HasSalary = true
	noSalary := &domain.EnrichedJob{Country: "Malaysia"}
	unknownCountry := &domain.EnrichedJob{Country: domain.CountryUnknown}
	unknownCountry.Salary.HasSalary = true

	e.standardizeCurrencies([]*domain.EnrichedJob{withSalary, noSalary, unknownCountry})

	assert.Equal(t, "MYR", withSalary.Salary.CurrencyRaw)
	assert.Empty(t, noSalary.Salary.CurrencyRaw)
	assert.Equal(t, "USD", unknownCountry.Salary.CurrencyRaw)
}

func TestEnrichBatchPropagatesValidationError(t *testing.T) {
	e := newTestEnricher()

	records := []*domain.JobRecord{
		{Location: "Berlin", Company: "Initech"},
	}
	_, _, err := e.EnrichBatch(context.Background(), records)
	assert.Error(t, err)
}

func TestEnrichDoesNotMutateInput(t *testing.T) {
	e := newTestEnricher()

	rec := &domain.JobRecord{
		Title:       "  Senior Engineer  ",
		Description: "Remote role.",
	}
	job, err := e.Enrich(context.Background(), rec)
	require.NoError(t, err)

	assert.Equal(t, "  Senior Engineer  ", rec.Title)
	assert.Equal(t, "Senior Engineer", job.Title)
}
