// Command reenrich replays the stored Postgres table through the
// current enrichment pipeline. Run it after updating classification
// rules, patterns or exchange rates to refresh old records in place.
// With -requeue the rows are published back onto the Redis queue for
// the running enricher service instead of being processed inline.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/project-tktt/job-enricher/internal/cleaner"
	"github.com/project-tktt/job-enricher/internal/config"
	"github.com/project-tktt/job-enricher/internal/dedup"
	"github.com/project-tktt/job-enricher/internal/enrich"
	"github.com/project-tktt/job-enricher/internal/enrich/country"
	"github.com/project-tktt/job-enricher/internal/enrich/rates"
	"github.com/project-tktt/job-enricher/internal/indexer"
	"github.com/project-tktt/job-enricher/internal/queue"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	pageSize := flag.Int("page-size", 500, "rows fetched per batch")
	alsoES := flag.Bool("es", false, "also reindex into Elasticsearch")
	requeue := flag.Bool("requeue", false, "publish rows to the Redis queue instead of enriching inline")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	pgIndexer, err := indexer.NewPostgresIndexer(cfg.Postgres.ConnectionString, cfg.Postgres.TableName)
	if err != nil {
		log.Fatalf("Postgres connection failed: %v", err)
	}
	defer pgIndexer.Close()
	log.Printf("Postgres connected, table: %s", cfg.Postgres.TableName)

	if *requeue {
		requeueAll(ctx, cfg, pgIndexer, *pageSize)
		return
	}

	var sink indexer.Indexer = pgIndexer
	if *alsoES {
		esIndexer, err := indexer.NewElasticsearchIndexer(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index)
		if err != nil {
			log.Fatalf("Elasticsearch connection failed: %v", err)
		}
		if err := esIndexer.EnsureIndex(ctx); err != nil {
			log.Printf("Warning: Failed to ensure index: %v", err)
		}
		sink = indexer.Multi{pgIndexer, esIndexer}
	}

	var geocoder country.Geocoder
	if !cfg.Geocoder.Disabled {
		geocoder = country.NewNominatimGeocoder(country.NominatimConfig{
			BaseURL:    cfg.Geocoder.BaseURL,
			MinDelay:   cfg.Geocoder.MinDelay,
			MaxRetries: cfg.Geocoder.MaxRetries,
			Timeout:    cfg.Geocoder.Timeout,
			UserAgent:  cfg.Geocoder.UserAgent,
		})
	}
	resolver := country.NewResolver(geocoder)
	ratesProvider := rates.NewProvider(cfg.Rates.Path, cfg.Rates.TTL)
	enricher := enrich.New(resolver, ratesProvider)
	htmlCleaner := cleaner.NewCleaner()

	var total, dropped int
	for offset := 0; ; offset += *pageSize {
		records, err := pgIndexer.ListRecords(ctx, offset, *pageSize)
		if err != nil {
			log.Fatalf("List records failed: %v", err)
		}
		if len(records) == 0 {
			break
		}

		htmlCleaner.CleanRecords(records)

		jobs, skipped, err := enricher.EnrichBatch(ctx, records)
		if err != nil {
			log.Fatalf("Enrich failed at offset %d: %v", offset, err)
		}
		dropped += skipped

		if err := sink.BulkIndex(ctx, jobs); err != nil {
			log.Fatalf("Index failed at offset %d: %v", offset, err)
		}
		total += len(jobs)
		log.Printf("Re-enriched %d records (offset %d)", len(jobs), offset)
	}

	log.Printf("Done: %d records re-enriched, %d dropped as obfuscated", total, dropped)
}

// requeueAll pushes every stored row back onto the raw queue so the
// running worker pool picks them up with its usual batching and dedup.
func requeueAll(ctx context.Context, cfg *config.Config, pgIndexer *indexer.PostgresIndexer, pageSize int) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	publisher := queue.NewPublisher(rdb, cfg.Redis.JobQueue)

	// Unchanged records would otherwise be skipped by the worker's
	// dedup filter; a replay means reprocess everything.
	cleared, err := dedup.NewDeduplicator(rdb, "enriched", 0).Reset(ctx)
	if err != nil {
		log.Fatalf("Dedup reset failed: %v", err)
	}
	log.Printf("Cleared %d dedup keys", cleared)

	var total int
	for offset := 0; ; offset += pageSize {
		records, err := pgIndexer.ListRecords(ctx, offset, pageSize)
		if err != nil {
			log.Fatalf("List records failed: %v", err)
		}
		if len(records) == 0 {
			break
		}
		if err := publisher.PublishBatch(ctx, records); err != nil {
			log.Fatalf("Publish failed at offset %d: %v", offset, err)
		}
		total += len(records)
	}
	log.Printf("Done: %d records queued", total)
}
