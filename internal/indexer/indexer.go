package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/project-tktt/job-enricher/internal/domain"
)

// Indexer defines the interface for enriched job sinks
type Indexer interface {
	// BulkIndex writes multiple enriched jobs at once
	BulkIndex(ctx context.Context, jobs []*domain.EnrichedJob) error
}

// DocID derives a stable document identity for an enriched job. The
// link is the natural key; postings without one fall back to a hash of
// title, company and location.
func DocID(job *domain.EnrichedJob) string {
	key := job.Link
	if key == "" {
		key = job.Title + "\x00" + job.Company + "\x00" + job.Location
	}
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:16])
}
