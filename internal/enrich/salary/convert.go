package salary

import (
	"strings"

	"github.com/project-tktt/job-enricher/internal/domain"
)

// Period multipliers to annualize an amount. Matched by substring so
// "per month", "monthly" and "p.m." all land on the same cadence.
var periodMultipliers = []struct {
	terms      []string
	multiplier float64
}{
	{[]string{"month", "monthly", "per month", "p.m.", "pm"}, 12},
	{[]string{"hour", "hourly", "per hour", "p.h.", "ph"}, 40 * 52},
	{[]string{"week", "weekly", "per week", "p.w.", "pw"}, 52},
	{[]string{"day", "daily", "per day"}, 260},
}

// PeriodMultiplier returns the annualization factor for a raw period
// string. Unknown or empty periods are treated as already annual.
func PeriodMultiplier(period string) float64 {
	p := strings.ToLower(period)
	if p == "" {
		return 1
	}
	for _, pm := range periodMultipliers {
		for _, term := range pm.terms {
			if strings.Contains(p, term) {
				return pm.multiplier
			}
		}
	}
	return 1
}

// SelectBest picks the most complete candidate: a full range scores 3, a
// single value 2, plus 2 for a currency and 1 for a period. Ties go to
// the earlier candidate.
func SelectBest(candidates []domain.SalaryCandidate) *domain.SalaryCandidate {
	if len(candidates) == 0 {
		return nil
	}

	best := -1
	bestScore := -1
	for i := range candidates {
		c := &candidates[i]
		score := 0
		if c.HasRange() {
			score += 3
		} else if c.Single != nil {
			score += 2
		}
		if c.Currency != "" {
			score += 2
		}
		if c.Period != "" {
			score += 1
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return &candidates[best]
}

// ConvertToAnnualUSD annualizes a candidate and converts it with the
// given exchange-rate snapshot. A currency missing from the table gets
// rate 1.0: the amount is assumed to already be in USD rather than
// silently dropped. For a single value min = max = avg.
func ConvertToAnnualUSD(c *domain.SalaryCandidate, rates map[string]float64) (minUSD, maxUSD, avgUSD *float64) {
	rate, ok := rates[c.Currency]
	if !ok {
		rate = 1.0
	}
	mult := PeriodMultiplier(c.Period)

	switch {
	case c.HasRange():
		lo := *c.Min * mult * rate
		hi := *c.Max * mult * rate
		mid := (lo + hi) / 2
		return &lo, &hi, &mid
	case c.Single != nil:
		v := *c.Single * mult * rate
		lo, hi, mid := v, v, v
		return &lo, &hi, &mid
	}
	return nil, nil, nil
}

// Confidence scores an extraction in [0,1]: 0.5 base, +0.3 for a full
// range, +0.1 each for currency and period.
func Confidence(c *domain.SalaryCandidate) float64 {
	score := 0.5
	if c.HasRange() {
		score += 0.3
	}
	if c.Currency != "" {
		score += 0.1
	}
	if c.Period != "" {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// exceedsCeiling reports whether any raw amount on the candidate is
// beyond the annual plausibility ceiling.
func exceedsCeiling(c *domain.SalaryCandidate) bool {
	for _, v := range []*float64{c.Min, c.Max, c.Single} {
		if v != nil && *v > MaxPlausibleAnnualUSD {
			return true
		}
	}
	return false
}

// ExtractRecord runs the per-record policy: header text first when
// present, falling back to title + description; implausibly large
// candidates are discarded before selection and converted USD figures
// above the ceiling are nulled after conversion.
func (e *Extractor) ExtractRecord(rec *domain.JobRecord, rates map[string]float64) domain.SalaryResult {
	var best *domain.SalaryCandidate

	if strings.TrimSpace(rec.HeaderText) != "" {
		best = SelectBest(dropImplausible(e.Extract(rec.HeaderText)))
	}
	if best == nil {
		text := rec.Description
		if rec.Title != "" {
			text = rec.Title + " " + text
		}
		best = SelectBest(dropImplausible(e.Extract(text)))
	}

	if best == nil {
		return domain.SalaryResult{HasSalary: false}
	}

	minUSD, maxUSD, avgUSD := ConvertToAnnualUSD(best, rates)
	for _, v := range []**float64{&minUSD, &maxUSD, &avgUSD} {
		if *v != nil && **v > MaxPlausibleAnnualUSD {
			*v = nil
		}
	}
	conf := Confidence(best)

	return domain.SalaryResult{
		HasSalary:    true,
		CurrencyRaw:  best.Currency,
		MinRaw:       best.Min,
		MaxRaw:       best.Max,
		SingleRaw:    best.Single,
		Period:       best.Period,
		MinAnnualUSD: minUSD,
		MaxAnnualUSD: maxUSD,
		AvgAnnualUSD: avgUSD,
		Confidence:   &conf,
	}
}

func dropImplausible(candidates []domain.SalaryCandidate) []domain.SalaryCandidate {
	kept := candidates[:0]
	for _, c := range candidates {
		if !exceedsCeiling(&c) {
			kept = append(kept, c)
		}
	}
	return kept
}
