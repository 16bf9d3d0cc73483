// Package cleaner strips HTML from upstream job postings before the
// text hits the enrichment regexes.
package cleaner

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/project-tktt/job-enricher/internal/domain"
)

// Cleaner sanitizes HTML content using Bluemonday
type Cleaner struct {
	policy *bluemonday.Policy
}

// NewCleaner creates a cleaner that strips ALL HTML. Enrichment works on
// plain text; markup in a description only confuses the extractors.
func NewCleaner() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// CleanToText removes all HTML and returns plain text
func (c *Cleaner) CleanToText(html string) string {
	text := c.policy.Sanitize(html)

	// Clean up whitespace
	text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	text = strings.TrimSpace(text)

	return text
}

// CleanRecord sanitizes the free-text fields of a record in place.
// Location, company and link stay untouched; they are matched verbatim
// downstream.
func (c *Cleaner) CleanRecord(rec *domain.JobRecord) {
	rec.Title = c.CleanToText(rec.Title)
	rec.Description = c.CleanToText(rec.Description)
	rec.HeaderText = c.CleanToText(rec.HeaderText)
}

// CleanRecords sanitizes a batch in place.
func (c *Cleaner) CleanRecords(records []*domain.JobRecord) {
	for _, rec := range records {
		c.CleanRecord(rec)
	}
}
