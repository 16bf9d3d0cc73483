package classify

import (
	"regexp"
	"strings"

	"github.com/project-tktt/job-enricher/internal/domain"
)

var (
	remoteRegex = regexp.MustCompile(`\b(remote|work from home|wfh)\b`)
	hybridRegex = regexp.MustCompile(`\b(hybrid|flexible location|partially remote)\b`)
	onsiteRegex = regexp.MustCompile(`\b(on[- ]?site|office-based)\b`)

	fullTimeRegex   = regexp.MustCompile(`\b(full[- ]?time|permanent)\b`)
	partTimeRegex   = regexp.MustCompile(`\b(part[- ]?time)\b`)
	contractRegex   = regexp.MustCompile(`\b(contract|contractor)\b`)
	temporaryRegex  = regexp.MustCompile(`\b(temporary|temp)\b`)
	internshipRegex = regexp.MustCompile(`\b(internship|intern)\b`)
	freelanceRegex  = regexp.MustCompile(`\b(freelance|freelancer)\b`)
)

// workTypeOf runs the rule chain over one lowercased text blob: direct
// substring checks first, word-boundary regex variants only when no
// substring fired.
func workTypeOf(text string) string {
	switch {
	case strings.Contains(text, "remote"):
		return domain.WorkRemote
	case strings.Contains(text, "hybrid"):
		return domain.WorkHybrid
	case strings.Contains(text, "on-site"), strings.Contains(text, "on site"), strings.Contains(text, "office-based"):
		return domain.WorkOnSite
	case remoteRegex.MatchString(text):
		return domain.WorkRemote
	case hybridRegex.MatchString(text):
		return domain.WorkHybrid
	case onsiteRegex.MatchString(text):
		return domain.WorkOnSite
	}
	return domain.NotSpecified
}

func employmentTypeOf(text string) string {
	switch {
	case strings.Contains(text, "full-time"), strings.Contains(text, "full time"), strings.Contains(text, "permanent"):
		return domain.EmploymentFullTime
	case strings.Contains(text, "part-time"), strings.Contains(text, "part time"):
		return domain.EmploymentPartTime
	case strings.Contains(text, "contract"), strings.Contains(text, "contractor"):
		return domain.EmploymentContract
	case strings.Contains(text, "temporary"), strings.Contains(text, "temp"):
		return domain.EmploymentTemporary
	case strings.Contains(text, "internship"), strings.Contains(text, "intern"):
		return domain.EmploymentInternship
	case strings.Contains(text, "freelance"), strings.Contains(text, "freelancer"):
		return domain.EmploymentFreelance
	case fullTimeRegex.MatchString(text):
		return domain.EmploymentFullTime
	case partTimeRegex.MatchString(text):
		return domain.EmploymentPartTime
	case contractRegex.MatchString(text):
		return domain.EmploymentContract
	case temporaryRegex.MatchString(text):
		return domain.EmploymentTemporary
	case internshipRegex.MatchString(text):
		return domain.EmploymentInternship
	case freelanceRegex.MatchString(text):
		return domain.EmploymentFreelance
	}
	return domain.NotSpecified
}

// WorkType classifies a posting as Remote, Hybrid or On-site.
func WorkType(title, description string) string {
	return workTypeOf(strings.ToLower(title + " " + description))
}

// EmploymentType classifies the contract kind of a posting.
func EmploymentType(title, description string) string {
	return employmentTypeOf(strings.ToLower(title + " " + description))
}

// WorkTypeForRecord tries the header snippet first; its label-style text
// is far less noisy than a full description. A sentinel result there
// falls through to the title + description pass.
func WorkTypeForRecord(rec *domain.JobRecord) string {
	if strings.TrimSpace(rec.HeaderText) != "" {
		if wt := workTypeOf(strings.ToLower(rec.HeaderText)); wt != domain.NotSpecified {
			return wt
		}
	}
	return WorkType(rec.Title, rec.Description)
}

// EmploymentTypeForRecord mirrors WorkTypeForRecord for employment type.
func EmploymentTypeForRecord(rec *domain.JobRecord) string {
	if strings.TrimSpace(rec.HeaderText) != "" {
		if et := employmentTypeOf(strings.ToLower(rec.HeaderText)); et != domain.NotSpecified {
			return et
		}
	}
	return EmploymentType(rec.Title, rec.Description)
}
