package salary

import (
	"testing"

	"github.com/project-tktt/job-enricher/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRangeWithCurrencyAndPeriod(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("Compensation of $80,000 - $120,000 per year is offered.")
	require.Len(t, got, 1, "overlapping pattern matches must collapse to one candidate")

	c := got[0]
	assert.True(t, c.HasRange())
	assert.Equal(t, "USD", c.Currency)
	require.NotNil(t, c.Min)
	require.NotNil(t, c.Max)
	assert.InDelta(t, 80000, *c.Min, 0.001)
	assert.InDelta(t, 120000, *c.Max, 0.001)
	assert.Equal(t, "per year", c.Period)
}

func TestExtractLabeledRangeWithCurrency(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("Salary: MYR 80,000 - 100,000 per month")
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, "MYR", c.Currency)
	require.True(t, c.HasRange())
	assert.InDelta(t, 80000, *c.Min, 0.001)
	assert.InDelta(t, 100000, *c.Max, 0.001)
	assert.Equal(t, "per month", c.Period)
}

func TestExtractRequiresCurrency(t *testing.T) {
	e := NewExtractor()

	// Bare numbers next to a salary label are still ambiguous (grades,
	// headcounts, employee-ID ranges); without a currency they are not
	// salaries.
	assert.Empty(t, e.Extract("Salary: 8,000 - 12,000 monthly"))
	assert.Empty(t, e.Extract("Salary: 80,000 - 100,000 per month"))
}

func TestExtractSwapsInvertedRange(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("Offering $150,000 - $90,000 per year salary.")
	require.Len(t, got, 1)
	require.True(t, got[0].HasRange())
	assert.InDelta(t, 90000, *got[0].Min, 0.001)
	assert.InDelta(t, 150000, *got[0].Max, 0.001)
}

func TestExtractIgnoresFundingSentences(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("We raised $10 million in Series B. The salary is $95,000 per year.")
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Min)
	require.NotNil(t, got[0].Single)
	assert.InDelta(t, 95000, *got[0].Single, 0.001)
}

func TestExtractDropsAmountsBelowFloor(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("Earn $3,000 per month working with us.")
	assert.Empty(t, got)
}

func TestExtractMagnitudeSuffix(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("Base salary of $85k per year.")
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Single)
	assert.InDelta(t, 85000, *got[0].Single, 0.001)
	assert.Equal(t, "USD", got[0].Currency)
}

func TestExtractRangeBeatsOverlappingSingle(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("Rate: 90,000 - 120,000 USD.")
	require.Len(t, got, 1)
	assert.True(t, got[0].HasRange(), "the range reading of the span must win over the single reading")
}

func TestExtractEmptyText(t *testing.T) {
	e := NewExtractor()
	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("   "))
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First one. Second one! Third?")
	require.Len(t, got, 3)
	assert.Equal(t, "First one.", got[0])
	assert.Equal(t, "Second one!", got[1])
	assert.Equal(t, "Third?", got[2])
}

func TestDedupeOverlapsKeepsDisjointMatches(t *testing.T) {
	in := []domain.SalaryCandidate{
		{Start: 0, End: 20, Single: f(80000)},
		{Start: 100, End: 120, Single: f(90000)},
	}
	assert.Len(t, dedupeOverlaps(in), 2)
}
