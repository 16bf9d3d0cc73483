package cleaner

import (
	"testing"

	"github.com/project-tktt/job-enricher/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCleanToText(t *testing.T) {
	c := NewCleaner()

	assert.Equal(t, "Hello world", c.CleanToText("<p>Hello <b>world</b></p>"))
	assert.Equal(t, "plain text", c.CleanToText("plain text"))
	assert.Equal(t, "", c.CleanToText("<script>alert(1)</script>"))
}

func TestCleanRecord(t *testing.T) {
	c := NewCleaner()

	rec := &domain.JobRecord{
		Title:       "<b>Data Analyst</b>",
		Description: "<div>Salary: $80,000 per year</div>",
		HeaderText:  "<span>Remote</span>",
		Location:    "Berlin, <Germany>",
		Link:        "https://example.com/jobs/1",
	}
	c.CleanRecord(rec)

	assert.Equal(t, "Data Analyst", rec.Title)
	assert.Equal(t, "Salary: $80,000 per year", rec.Description)
	assert.Equal(t, "Remote", rec.HeaderText)
	assert.Equal(t, "Berlin, <Germany>", rec.Location, "location is matched verbatim and stays untouched")
}
