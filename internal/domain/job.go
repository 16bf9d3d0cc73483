package domain

import "time"

// JobRecord is a raw job posting handed to the enrichment pipeline by an
// upstream ingestion stage. Title and Description are required; everything
// else is best-effort.
type JobRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	Company     string `json:"company,omitempty"`
	Link        string `json:"link,omitempty"`
	// HeaderText is a short, high-signal metadata snippet (salary, work
	// type) shown next to the posting. When present it is preferred over
	// the full description for extraction.
	HeaderText string `json:"header_text,omitempty"`
}

// SalaryCandidate is a provisional extraction produced by one pattern
// before scoring and selection. Either Min+Max or Single is populated,
// never a conflicting mix; Min <= Max is enforced at parse time.
type SalaryCandidate struct {
	PatternID int
	FullMatch string
	Start     int
	End       int
	// Currency is the raw matched token normalized to an ISO code when
	// the token is known, otherwise the cleaned token itself.
	Currency string
	Min      *float64
	Max      *float64
	Single   *float64
	Period   string
}

// HasRange reports whether both ends of a salary range were captured.
func (c *SalaryCandidate) HasRange() bool {
	return c.Min != nil && c.Max != nil
}

// SalaryResult is the per-record outcome of salary extraction, already
// annualized and converted to USD. All pointer fields are nil when
// HasSalary is false.
type SalaryResult struct {
	HasSalary    bool     `json:"has_salary"`
	CurrencyRaw  string   `json:"currency_raw,omitempty"`
	MinRaw       *float64 `json:"min_salary_raw,omitempty"`
	MaxRaw       *float64 `json:"max_salary_raw,omitempty"`
	SingleRaw    *float64 `json:"single_salary_raw,omitempty"`
	Period       string   `json:"salary_period,omitempty"`
	MinAnnualUSD *float64 `json:"min_salary_annual_usd,omitempty"`
	MaxAnnualUSD *float64 `json:"max_salary_annual_usd,omitempty"`
	AvgAnnualUSD *float64 `json:"avg_salary_annual_usd,omitempty"`
	Confidence   *float64 `json:"salary_confidence,omitempty"`
}

// Classification values. Every record gets exactly one value per field;
// NotSpecified is the sentinel for no rule match.
const (
	NotSpecified = "Not Specified"

	ExperienceEntry  = "Entry-Level"
	ExperienceMid    = "Mid-Level"
	ExperienceSenior = "Senior"

	WorkRemote = "Remote"
	WorkHybrid = "Hybrid"
	WorkOnSite = "On-site"

	EmploymentFullTime   = "Full-time"
	EmploymentPartTime   = "Part-time"
	EmploymentContract   = "Contract"
	EmploymentTemporary  = "Temporary"
	EmploymentInternship = "Internship"
	EmploymentFreelance  = "Freelance"
)

// CountryUnknown is the sentinel for unresolvable locations.
const CountryUnknown = "Unknown"

// SkillSet holds the categorized technical skills found in a description.
// Each slice is deduplicated and sorted.
type SkillSet struct {
	ProgrammingLanguages []string `json:"programming_languages"`
	Libraries            []string `json:"libraries"`
	AnalystTools         []string `json:"analyst_tools"`
	CloudPlatforms       []string `json:"cloud_platforms"`
}

// EnrichedJob is the record produced by the enrichment pass: the original
// input columns unchanged plus the structured attributes. It is what the
// downstream materialization stage consumes.
type EnrichedJob struct {
	JobRecord

	Salary          SalaryResult `json:"salary"`
	ExperienceLevel string       `json:"experience_level"`
	WorkType        string       `json:"work_type"`
	EmploymentType  string       `json:"employment_type"`
	Country         string       `json:"country"`
	Skills          SkillSet     `json:"skills"`

	EnrichedAt time.Time `json:"enriched_at"`
}
