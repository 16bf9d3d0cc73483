// Package salary locates salary mentions in free job-posting text and
// turns the best one into an annualized USD figure.
package salary

import (
	"regexp"
	"sort"
	"strings"

	"github.com/project-tktt/job-enricher/internal/domain"
	"github.com/project-tktt/job-enricher/internal/enrich/currency"
)

// MinPlausibleSalary is the floor below which an extracted amount is
// treated as noise (raw, in the stated currency, before conversion).
const MinPlausibleSalary = 5000

// MaxPlausibleAnnualUSD is the assembly-time ceiling. Candidates or
// converted figures above it are discarded, not flagged.
const MaxPlausibleAnnualUSD = 1_000_000

// salaryKeywords gates which sentences are worth scanning at all.
var salaryKeywords = []string{
	"salary", "compensation", "pay", "base pay", "base salary", "annual",
	"per year", "per annum", "yearly", "monthly", "per month", "hourly",
	"per hour", "per week", "per day", "per diem", "remuneration", "wage",
	"package", "rate", "earn", "income",
}

// fundingKeywords veto sentences about fundraising, so "$2M raised in
// Series A" never becomes a salary.
var fundingKeywords = []string{
	"funding", "raised", "investment", "series a", "series b", "series c",
	"venture", "capital", "backed", "round", "financing", "investor",
	"acrew", "sequoia", "bain", "homebrew", "visa", "million", "billion",
}

// Extractor applies the pattern table to candidate sentences.
type Extractor struct {
	patterns []Pattern
}

// NewExtractor compiles the salary pattern table once.
func NewExtractor() *Extractor {
	return &Extractor{patterns: buildPatterns()}
}

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// splitSentences cuts text after terminal punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	bounds := sentenceBoundary.FindAllStringIndex(text, -1)
	if len(bounds) == 0 {
		return []string{text}
	}
	sentences := make([]string, 0, len(bounds)+1)
	start := 0
	for _, b := range bounds {
		sentences = append(sentences, text[start:b[0]+1])
		start = b[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Extract returns every plausible salary candidate found in text, in
// pattern priority order, deduplicated by position. Sentences must carry
// a salary keyword and no funding keyword; if none qualify the whole
// text is scanned as a fallback.
func (e *Extractor) Extract(text string) []domain.SalaryCandidate {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := splitSentences(text)
	candidates := make([]string, 0, len(sentences))
	for _, sent := range sentences {
		lower := strings.ToLower(sent)
		if containsAny(lower, salaryKeywords) && !containsAny(lower, fundingKeywords) {
			candidates = append(candidates, sent)
		}
	}
	if len(candidates) == 0 {
		candidates = sentences
	}

	var results []domain.SalaryCandidate
	for _, p := range e.patterns {
		for _, sent := range candidates {
			for _, m := range p.re.FindAllStringSubmatchIndex(sent, -1) {
				if c, ok := parseMatch(p, sent, m); ok {
					results = append(results, c)
				}
			}
		}
	}

	return dedupeOverlaps(results)
}

// parseMatch maps the capture groups of one regex match onto a candidate
// via the pattern's named-group roles, then applies the parse-time
// guardrails: inverted ranges are swapped, amounts under the plausibility
// floor are nulled, and a candidate is dropped unless it carries a
// currency and at least one surviving amount. Numbers with no currency
// anywhere near them are too often IDs, headcounts or durations.
func parseMatch(p Pattern, sent string, m []int) (domain.SalaryCandidate, bool) {
	group := func(name string) string {
		for i, n := range p.re.SubexpNames() {
			if n == name && 2*i+1 < len(m) && m[2*i] >= 0 {
				return sent[m[2*i]:m[2*i+1]]
			}
		}
		return ""
	}

	cand := domain.SalaryCandidate{
		PatternID: p.ID,
		FullMatch: strings.TrimSpace(sent[m[0]:m[1]]),
		Start:     m[0],
		End:       m[1],
	}

	curTok := group(groupCur)
	if curTok == "" {
		curTok = group(groupCur2)
	}
	cand.Currency = currency.NormalizeOrRaw(curTok)
	cand.Period = strings.ToLower(strings.TrimSpace(group(groupPeriod)))

	if s := group(groupSingle); s != "" {
		v := currency.ParseNumber(s)
		cand.Single = &v
	} else {
		if s := group(groupMin); s != "" {
			v := currency.ParseNumber(s)
			cand.Min = &v
		}
		if s := group(groupMax); s != "" {
			v := currency.ParseNumber(s)
			cand.Max = &v
		}
	}

	if cand.Min != nil && cand.Max != nil && *cand.Min > *cand.Max {
		cand.Min, cand.Max = cand.Max, cand.Min
	}
	for _, amount := range []**float64{&cand.Min, &cand.Max, &cand.Single} {
		if *amount != nil && **amount < MinPlausibleSalary {
			*amount = nil
		}
	}

	if cand.Currency == "" {
		return cand, false
	}
	if cand.Min == nil && cand.Max == nil && cand.Single == nil {
		return cand, false
	}
	return cand, true
}

// overlapTolerance lets a match start slightly inside the previous one
// before it counts as a duplicate of the same span.
const overlapTolerance = 5

// dedupeOverlaps drops candidates that re-read the same span. Among
// overlapping candidates the one carrying a full range wins over one
// carrying only a single value.
func dedupeOverlaps(results []domain.SalaryCandidate) []domain.SalaryCandidate {
	if len(results) == 0 {
		return results
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Start < results[j].Start })

	filtered := []domain.SalaryCandidate{results[0]}
	for _, r := range results[1:] {
		last := &filtered[len(filtered)-1]
		if r.Start >= last.End-overlapTolerance {
			filtered = append(filtered, r)
		} else if r.HasRange() && !last.HasRange() {
			filtered[len(filtered)-1] = r
		}
	}
	return filtered
}
