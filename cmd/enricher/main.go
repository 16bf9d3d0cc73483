package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/project-tktt/job-enricher/internal/cleaner"
	"github.com/project-tktt/job-enricher/internal/config"
	"github.com/project-tktt/job-enricher/internal/dedup"
	"github.com/project-tktt/job-enricher/internal/enrich"
	"github.com/project-tktt/job-enricher/internal/enrich/country"
	"github.com/project-tktt/job-enricher/internal/enrich/rates"
	"github.com/project-tktt/job-enricher/internal/indexer"
	"github.com/project-tktt/job-enricher/internal/queue"
	"github.com/project-tktt/job-enricher/internal/worker"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Job Enricher Service")

	// Load configuration
	cfg := config.Load()

	// Initialize Redis client
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Test Redis connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Println("Redis connected")

	idx := buildIndexer(ctx, cfg)

	// Initialize components
	htmlCleaner := cleaner.NewCleaner()
	consumer := queue.NewConsumer(rdb, cfg.Redis.JobQueue, 5*time.Second)
	dd := dedup.NewDeduplicator(rdb, "enriched", 0)

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

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start worker pool (queue -> clean -> enrich -> bulk index)
	wg.Add(1)
	go func() {
		defer wg.Done()
		w := worker.NewWorker(consumer, htmlCleaner, enricher, dd, idx, worker.Config{
			Concurrency: cfg.Worker.Concurrency,
			BatchSize:   cfg.Worker.BatchSize,
		})
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("Worker error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutdown signal received, stopping...")
	cancel()

	// Wait for goroutines to finish
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Graceful shutdown complete")
	case <-time.After(30 * time.Second):
		log.Println("Shutdown timeout, forcing exit")
	}
}

func buildIndexer(ctx context.Context, cfg *config.Config) indexer.Indexer {
	var sinks indexer.Multi

	if cfg.Indexer.Backend == "elasticsearch" || cfg.Indexer.Backend == "both" {
		esIndexer, err := indexer.NewElasticsearchIndexer(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index)
		if err != nil {
			log.Fatalf("Elasticsearch connection failed: %v", err)
		}
		log.Printf("Elasticsearch connected, index: %s", cfg.Elasticsearch.Index)

		if err := esIndexer.EnsureIndex(ctx); err != nil {
			log.Printf("Warning: Failed to ensure index: %v", err)
		}
		sinks = append(sinks, esIndexer)
	}

	if cfg.Indexer.Backend == "postgres" || cfg.Indexer.Backend == "both" {
		pgIndexer, err := indexer.NewPostgresIndexer(cfg.Postgres.ConnectionString, cfg.Postgres.TableName)
		if err != nil {
			log.Fatalf("Postgres connection failed: %v", err)
		}
		log.Printf("Postgres connected, table: %s", cfg.Postgres.TableName)
		sinks = append(sinks, pgIndexer)
	}

	if len(sinks) == 0 {
		log.Fatalf("No indexer backend configured (INDEXER_BACKEND=%q)", cfg.Indexer.Backend)
	}
	if len(sinks) == 1 {
		return sinks[0]
	}
	return sinks
}
