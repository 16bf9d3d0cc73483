// Package classify buckets postings into experience, work-type and
// employment-type categories with ordered keyword rule chains. First
// matching rule wins; everything degrades to the Not Specified sentinel.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/project-tktt/job-enricher/internal/domain"
)

var (
	seniorTitleKeywords = []string{"senior", "sr", "lead", "principal", "manager", "staff", "head of"}
	midTitleKeywords    = []string{"mid-level", "intermediate", "specialist"}
	entryTitleKeywords  = []string{"junior", "jr", "entry-level", "graduate", "intern", "trainee"}

	yearRangePattern  = regexp.MustCompile(`(\d+)\s*[–-]\s*(\d+)\s*(?:years?|yrs?)`)
	singleYearPattern = regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)`)

	graduatePhrases = []string{"recent graduate", "entry-level role", "fresh graduate"}
)

// Experience categorizes a posting's seniority from its title, falling
// back to years-of-experience phrasing in the description. "associate"
// titles map to Entry-Level; the term is ambiguous in practice and this
// resolution is intentional.
func Experience(title, description string) string {
	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)

	for _, kw := range seniorTitleKeywords {
		if strings.Contains(titleLower, kw) {
			return domain.ExperienceSenior
		}
	}
	if strings.Contains(titleLower, "associate") {
		return domain.ExperienceEntry
	}
	for _, kw := range midTitleKeywords {
		if strings.Contains(titleLower, kw) {
			return domain.ExperienceMid
		}
	}
	for _, kw := range entryTitleKeywords {
		if strings.Contains(titleLower, kw) {
			return domain.ExperienceEntry
		}
	}

	if m := yearRangePattern.FindStringSubmatch(descLower); m != nil {
		low, _ := strconv.Atoi(m[1])
		high, _ := strconv.Atoi(m[2])
		switch {
		case high <= 2:
			return domain.ExperienceEntry
		case low >= 5:
			return domain.ExperienceSenior
		default:
			return domain.ExperienceMid
		}
	}

	if m := singleYearPattern.FindStringSubmatch(descLower); m != nil {
		years, _ := strconv.Atoi(m[1])
		switch {
		case years <= 2:
			return domain.ExperienceEntry
		case years >= 5:
			return domain.ExperienceSenior
		default:
			return domain.ExperienceMid
		}
	}

	for _, phrase := range graduatePhrases {
		if strings.Contains(descLower, phrase) {
			return domain.ExperienceEntry
		}
	}

	return domain.NotSpecified
}
