// Package worker runs the queue-to-sink enrichment loop: consume raw
// records in batches, clean and enrich them, and bulk index the results.
package worker

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/project-tktt/job-enricher/internal/cleaner"
	"github.com/project-tktt/job-enricher/internal/dedup"
	"github.com/project-tktt/job-enricher/internal/enrich"
	"github.com/project-tktt/job-enricher/internal/indexer"
	"github.com/project-tktt/job-enricher/internal/queue"
)

// Worker processes raw records from the queue and indexes enriched jobs
type Worker struct {
	consumer *queue.Consumer
	cleaner  *cleaner.Cleaner
	enricher *enrich.Enricher
	dedup    *dedup.Deduplicator
	indexer  indexer.Indexer

	batchSize   int
	concurrency int
}

// Config holds worker configuration
type Config struct {
	Concurrency int
	BatchSize   int
}

// NewWorker creates a new worker. dedup may be nil to disable the
// skip-unchanged stage.
func NewWorker(
	consumer *queue.Consumer,
	clean *cleaner.Cleaner,
	enricher *enrich.Enricher,
	dd *dedup.Deduplicator,
	idx indexer.Indexer,
	cfg Config,
) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}

	return &Worker{
		consumer:    consumer,
		cleaner:     clean,
		enricher:    enricher,
		dedup:       dd,
		indexer:     idx,
		batchSize:   cfg.BatchSize,
		concurrency: cfg.Concurrency,
	}
}

// Run starts the worker pool
func (w *Worker) Run(ctx context.Context) error {
	log.Printf("Starting worker pool with %d workers", w.concurrency)

	var wg sync.WaitGroup
	errChan := make(chan error, w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			if err := w.runSingle(ctx, workerID); err != nil {
				errChan <- fmt.Errorf("worker %d: %w", workerID, err)
			}
		}(i)
	}

	// Wait for all workers or context cancellation
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		return err
	case <-done:
		return nil
	}
}

func (w *Worker) runSingle(ctx context.Context, workerID int) error {
	log.Printf("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker %d stopping", workerID)
			return nil
		default:
		}

		// ConsumeBatch uses BRPOP for first item (blocking), so no CPU spinning
		records, err := w.consumer.ConsumeBatch(ctx, w.batchSize)
		if err != nil {
			log.Printf("Worker %d consume error: %v", workerID, err)
			continue
		}

		if len(records) == 0 {
			continue // Timeout from BRPOP, try again
		}

		log.Printf("Worker %d processing %d records", workerID, len(records))

		w.cleaner.CleanRecords(records)

		if w.dedup != nil {
			var skipped int
			records, skipped = w.dedup.FilterNew(ctx, records)
			if skipped > 0 {
				log.Printf("Worker %d skipped %d unchanged records", workerID, skipped)
			}
			if len(records) == 0 {
				continue
			}
		}

		jobs, dropped, err := w.enricher.EnrichBatch(ctx, records)
		if err != nil {
			log.Printf("Worker %d enrich error: %v", workerID, err)
			continue
		}
		if dropped > 0 {
			log.Printf("Worker %d dropped %d obfuscated records", workerID, dropped)
		}

		if len(jobs) == 0 {
			continue
		}

		if err := w.indexer.BulkIndex(ctx, jobs); err != nil {
			log.Printf("Worker %d index error: %v", workerID, err)
			continue
		}
		log.Printf("Worker %d indexed %d jobs", workerID, len(jobs))

		if w.dedup != nil {
			for _, rec := range records {
				if err := w.dedup.MarkDone(ctx, rec); err != nil {
					log.Printf("Worker %d dedup mark error: %v", workerID, err)
				}
			}
		}
	}
}
