// Package obfuscate detects records whose identifying fields were
// redacted upstream (asterisks, dashes, empty strings) and filters them
// out before enrichment wastes work on them.
package obfuscate

import (
	"regexp"

	"github.com/project-tktt/job-enricher/internal/domain"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// IsObfuscated reports whether a field value is redacted: it is missing,
// or stripping every non-alphanumeric character leaves nothing.
func IsObfuscated(value string, present bool) bool {
	if !present {
		return true
	}
	return nonAlphanumeric.ReplaceAllString(value, "") == ""
}

// KeyColumn names a JobRecord field the filter can inspect.
type KeyColumn string

const (
	ColumnLocation KeyColumn = "location"
	ColumnCompany  KeyColumn = "company"
	ColumnTitle    KeyColumn = "title"
	ColumnLink     KeyColumn = "link"
)

// DefaultKeyColumns are the fields whose joint redaction marks a record
// as worthless.
var DefaultKeyColumns = []KeyColumn{ColumnLocation, ColumnCompany}

func fieldValue(rec *domain.JobRecord, col KeyColumn) (string, bool) {
	switch col {
	case ColumnLocation:
		return rec.Location, rec.Location != ""
	case ColumnCompany:
		return rec.Company, rec.Company != ""
	case ColumnTitle:
		return rec.Title, rec.Title != ""
	case ColumnLink:
		return rec.Link, rec.Link != ""
	}
	return "", false
}

// RecordObfuscated reports whether ALL of the key columns on the record
// are redacted. One genuine value is enough to keep the record.
func RecordObfuscated(rec *domain.JobRecord, keyColumns []KeyColumn) bool {
	if len(keyColumns) == 0 {
		keyColumns = DefaultKeyColumns
	}
	for _, col := range keyColumns {
		if !IsObfuscated(fieldValue(rec, col)) {
			return false
		}
	}
	return true
}

// FilterRecords drops records whose key columns are all obfuscated and
// returns the survivors along with the number dropped.
func FilterRecords(records []*domain.JobRecord, keyColumns []KeyColumn) ([]*domain.JobRecord, int) {
	kept := make([]*domain.JobRecord, 0, len(records))
	for _, rec := range records {
		if !RecordObfuscated(rec, keyColumns) {
			kept = append(kept, rec)
		}
	}
	return kept, len(records) - len(kept)
}
