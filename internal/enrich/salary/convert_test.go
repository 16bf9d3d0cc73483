package salary

import (
	"testing"

	"github.com/project-tktt/job-enricher/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestPeriodMultiplier(t *testing.T) {
	tests := []struct {
		period string
		want   float64
	}{
		{"per month", 12},
		{"monthly", 12},
		{"per hour", 2080},
		{"hourly", 2080},
		{"per week", 52},
		{"per day", 260},
		{"per year", 1},
		{"annually", 1},
		{"", 1},
		{"something else", 1},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodMultiplier(tt.period))
		})
	}
}

func TestSelectBest(t *testing.T) {
	rangeFull := domain.SalaryCandidate{Min: f(80000), Max: f(120000), Currency: "USD", Period: "per year"}
	rangeBare := domain.SalaryCandidate{Min: f(80000), Max: f(120000)}
	single := domain.SalaryCandidate{Single: f(90000), Currency: "USD"}

	assert.Nil(t, SelectBest(nil))

	got := SelectBest([]domain.SalaryCandidate{single, rangeFull})
	require.NotNil(t, got)
	assert.True(t, got.HasRange())

	// Ties go to the earlier candidate.
	tied := []domain.SalaryCandidate{rangeFull, rangeFull}
	assert.Same(t, &tied[0], SelectBest(tied))

	// A single value with a currency (2+2) outranks a bare range (3).
	got = SelectBest([]domain.SalaryCandidate{rangeBare, single})
	require.NotNil(t, got)
	assert.False(t, got.HasRange())
	assert.NotNil(t, got.Single)
}

func TestConvertToAnnualUSDRange(t *testing.T) {
	c := &domain.SalaryCandidate{Min: f(8000), Max: f(10000), Currency: "MYR", Period: "per month"}
	lo, hi, avg := ConvertToAnnualUSD(c, map[string]float64{"MYR": 0.21})

	require.NotNil(t, lo)
	require.NotNil(t, hi)
	require.NotNil(t, avg)
	assert.InDelta(t, 20160, *lo, 0.01)
	assert.InDelta(t, 25200, *hi, 0.01)
	assert.InDelta(t, 22680, *avg, 0.01)
}

func TestConvertToAnnualUSDUnknownCurrencyDefaultsToParity(t *testing.T) {
	c := &domain.SalaryCandidate{Single: f(90000), Currency: "XYZ"}
	lo, hi, avg := ConvertToAnnualUSD(c, map[string]float64{"USD": 1.0})

	require.NotNil(t, avg)
	assert.InDelta(t, 90000, *lo, 0.001)
	assert.InDelta(t, 90000, *hi, 0.001)
	assert.InDelta(t, 90000, *avg, 0.001)
}

func TestConfidence(t *testing.T) {
	full := &domain.SalaryCandidate{Min: f(1), Max: f(2), Currency: "USD", Period: "per year"}
	assert.InDelta(t, 1.0, Confidence(full), 0.001)

	single := &domain.SalaryCandidate{Single: f(1), Currency: "USD", Period: "per year"}
	assert.InDelta(t, 0.7, Confidence(single), 0.001)

	bare := &domain.SalaryCandidate{Single: f(1)}
	assert.InDelta(t, 0.5, Confidence(bare), 0.001)
}

func TestExtractRecordPrefersHeaderText(t *testing.T) {
	e := NewExtractor()
	rec := &domain.JobRecord{
		Title:       "Engineer",
		Description: "Salary: $50,000 per year.",
		HeaderText:  "$90,000 per year",
	}

	got := e.ExtractRecord(rec, map[string]float64{"USD": 1.0})
	require.True(t, got.HasSalary)
	require.NotNil(t, got.SingleRaw)
	assert.InDelta(t, 90000, *got.SingleRaw, 0.001)
}

func TestExtractRecordFallsBackToDescription(t *testing.T) {
	e := NewExtractor()
	rec := &domain.JobRecord{
		Title:       "Engineer",
		Description: "Compensation of $80,000 - $120,000 per year is offered.",
		HeaderText:  "Posted 3 days ago",
	}

	got := e.ExtractRecord(rec, map[string]float64{"USD": 1.0})
	require.True(t, got.HasSalary)
	assert.Equal(t, "USD", got.CurrencyRaw)
	require.NotNil(t, got.MinRaw)
	require.NotNil(t, got.MaxRaw)
	require.NotNil(t, got.AvgAnnualUSD)
	assert.InDelta(t, 100000, *got.AvgAnnualUSD, 0.001)
	require.NotNil(t, got.Confidence)
	assert.InDelta(t, 1.0, *got.Confidence, 0.001)
}

func TestExtractRecordRejectsImplausibleRawAmounts(t *testing.T) {
	e := NewExtractor()
	rec := &domain.JobRecord{
		Title:       "CTO",
		Description: "Annual compensation $2,000,000 - $3,000,000.",
	}

	got := e.ExtractRecord(rec, map[string]float64{"USD": 1.0})
	assert.False(t, got.HasSalary)
}

func TestExtractRecordNullsConvertedFiguresAboveCeiling(t *testing.T) {
	e := NewExtractor()
	rec := &domain.JobRecord{
		Title:       "Engineer",
		Description: "The salary is $95,000 per month.",
	}

	got := e.ExtractRecord(rec, map[string]float64{"USD": 1.0})
	require.True(t, got.HasSalary)
	require.NotNil(t, got.SingleRaw)
	assert.InDelta(t, 95000, *got.SingleRaw, 0.001)
	// 95,000 monthly annualizes past the ceiling; the converted figures
	// are dropped while the raw extraction is kept.
	assert.Nil(t, got.MinAnnualUSD)
	assert.Nil(t, got.MaxAnnualUSD)
	assert.Nil(t, got.AvgAnnualUSD)
}

func TestExtractRecordSkipsCurrencylessAmounts(t *testing.T) {
	e := NewExtractor()
	rec := &domain.JobRecord{
		Title:       "Data Analyst",
		Description: "Salary: 8,000 - 12,000 monthly",
	}

	// Without a currency there is no basis for conversion; treating the
	// numbers as USD would inflate the figure roughly fivefold for a
	// posting priced in e.g. ringgit.
	got := e.ExtractRecord(rec, map[string]float64{"USD": 1.0, "MYR": 0.21})
	assert.False(t, got.HasSalary)
	assert.Empty(t, got.CurrencyRaw)
	assert.Nil(t, got.MinAnnualUSD)
	assert.Nil(t, got.MaxAnnualUSD)
}

func TestExtractRecordNoSalary(t *testing.T) {
	e := NewExtractor()
	rec := &domain.JobRecord{
		Title:       "Engineer",
		Description: "We are a fun team building great things.",
	}

	got := e.ExtractRecord(rec, map[string]float64{"USD": 1.0})
	assert.False(t, got.HasSalary)
	assert.Nil(t, got.Confidence)
}
