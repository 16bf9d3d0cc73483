package indexer

import (
	"context"
	"errors"

	"github.com/project-tktt/job-enricher/internal/domain"
)

// Multi fans a bulk write out to several sinks. Every sink sees every
// batch; errors are collected rather than short-circuiting, so a slow
// Postgres does not starve Elasticsearch.
type Multi []Indexer

// BulkIndex writes the batch to each sink in turn
func (m Multi) BulkIndex(ctx context.Context, jobs []*domain.EnrichedJob) error {
	var errs []error
	for _, idx := range m {
		if err := idx.BulkIndex(ctx, jobs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
