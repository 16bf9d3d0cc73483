// Package skills extracts categorized technical skills from description
// text with boundary-safe keyword matching.
package skills

import (
	"regexp"
	"sort"
	"strings"

	"github.com/project-tktt/job-enricher/internal/domain"
)

var keywordsProgramming = []string{
	"sql", "python", "r", "c", "c#", "javascript", "js", "java", "scala",
	"sas", "matlab", "c++", "c/c++", "perl", "go", "typescript", "bash",
	"html", "css", "php", "powershell", "rust", "kotlin", "ruby", "dart",
	"assembly", "swift", "vba", "lua", "groovy", "delphi", "objective-c",
	"haskell", "elixir", "julia", "clojure", "solidity", "lisp", "f#",
	"fortran", "erlang", "apl", "cobol", "ocaml", "crystal",
	"javascript/typescript", "golang", "nosql", "mongodb", "t-sql",
	"no-sql", "visual_basic", "pascal", "mongo", "pl/sql", "sass",
	"vb.net", "mssql",
}

var keywordsLibraries = []string{
	"scikit-learn", "jupyter", "theano", "opencv", "spark", "nltk",
	"mlpack", "chainer", "fann", "shogun", "dlib", "mxnet", "node.js",
	"vue", "vue.js", "keras", "ember.js", "jse/jee",
}

var keywordsAnalystTools = []string{
	"excel", "tableau", "word", "powerpoint", "looker", "powerbi",
	"outlook", "azure", "jira", "twilio", "snowflake", "shell", "linux",
	"sas", "sharepoint", "mysql", "visio", "git", "mssql", "powerpoints",
	"postgresql", "spreadsheets", "seaborn", "pandas", "gdpr",
	"spreadsheet", "alteryx", "github", "postgres", "ssis", "numpy",
	"power_bi", "spss", "ssrs", "microstrategy", "cognos", "dax",
	"matplotlib", "dplyr", "tidyr", "ggplot2", "plotly", "esquisse",
	"rshiny", "mlr", "docker", "hadoop", "airflow", "redis", "graphql",
	"sap", "tensorflow", "node", "asp.net", "unix", "jquery", "pyspark",
	"pytorch", "gitlab", "selenium", "splunk", "bitbucket", "qlik",
	"terminal", "atlassian", "unix/linux", "linux/unix", "ubuntu", "nuix",
	"datarobot",
}

var keywordsCloudPlatforms = []string{
	"aws", "azure", "gcp", "snowflake", "redshift", "bigquery", "aurora",
}

type keywordMatcher struct {
	keyword string
	re      *regexp.Regexp
}

func compileMatchers(keywords []string) []keywordMatcher {
	matchers := make([]keywordMatcher, len(keywords))
	for i, kw := range keywords {
		matchers[i] = keywordMatcher{
			keyword: kw,
			re:      regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`),
		}
	}
	return matchers
}

// Extractor holds the compiled per-category keyword matchers.
type Extractor struct {
	programming []keywordMatcher
	libraries   []keywordMatcher
	analyst     []keywordMatcher
	cloud       []keywordMatcher
}

// NewExtractor compiles the taxonomy once at startup.
func NewExtractor() *Extractor {
	return &Extractor{
		programming: compileMatchers(keywordsProgramming),
		libraries:   compileMatchers(keywordsLibraries),
		analyst:     compileMatchers(keywordsAnalystTools),
		cloud:       compileMatchers(keywordsCloudPlatforms),
	}
}

// Normalize maps a matched keyword to its canonical display form. Power
// BI is spelled half a dozen ways in postings and collapses to one name.
func Normalize(skill string) string {
	s := strings.ToLower(strings.TrimSpace(skill))
	s = strings.NewReplacer("-", "", " ", "", "_", "").Replace(s)
	if s == "powerbi" {
		return "Power BI"
	}
	return strings.TrimSpace(skill)
}

func extractCategory(matchers []keywordMatcher, text string) []string {
	seen := make(map[string]struct{})
	for _, m := range matchers {
		if m.re.MatchString(text) {
			seen[Normalize(m.keyword)] = struct{}{}
		}
	}
	found := make([]string, 0, len(seen))
	for s := range seen {
		found = append(found, s)
	}
	sort.Strings(found)
	return found
}

// Extract returns the categorized skills mentioned in text. Empty input
// yields four empty sets.
func (e *Extractor) Extract(text string) domain.SkillSet {
	if text == "" {
		return domain.SkillSet{
			ProgrammingLanguages: []string{},
			Libraries:            []string{},
			AnalystTools:         []string{},
			CloudPlatforms:       []string{},
		}
	}
	lower := strings.ToLower(text)
	return domain.SkillSet{
		ProgrammingLanguages: extractCategory(e.programming, lower),
		Libraries:            extractCategory(e.libraries, lower),
		AnalystTools:         extractCategory(e.analyst, lower),
		CloudPlatforms:       extractCategory(e.cloud, lower),
	}
}
