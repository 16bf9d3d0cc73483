// Package dedup tracks which postings have already been enriched so the
// worker can skip unchanged records and re-enrich updated ones.
package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/project-tktt/job-enricher/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Deduplicator checks and tracks seen postings using Redis
type Deduplicator struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

// NewDeduplicator creates a new Redis-based deduplicator
func NewDeduplicator(client *redis.Client, prefix string, defaultTTL time.Duration) *Deduplicator {
	if prefix == "" {
		prefix = "dedup"
	}
	if defaultTTL == 0 {
		defaultTTL = 24 * time.Hour * 30 // 30 days default
	}
	return &Deduplicator{
		client:     client,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

// CheckResult represents the result of checking a record
type CheckResult int

const (
	// ResultNew - posting has never been seen
	ResultNew CheckResult = iota
	// ResultUpdated - posting exists but its content changed
	ResultUpdated
	// ResultUnchanged - posting exists and is unchanged
	ResultUnchanged
)

// CheckRecord reports whether a record is new, changed or already done.
// Records are keyed by link and compared by a hash of their free text,
// so a reposted job with edited description gets re-enriched.
func (d *Deduplicator) CheckRecord(ctx context.Context, rec *domain.JobRecord) (CheckResult, error) {
	if rec.Link == "" {
		// No stable identity, treat as new every time.
		return ResultNew, nil
	}
	key := d.makeKey(rec.Link)
	hash := contentHash(rec)

	storedValue, err := d.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ResultNew, nil
	}
	if err != nil {
		return ResultNew, fmt.Errorf("redis get: %w", err)
	}

	if storedValue != hash {
		return ResultUpdated, nil
	}

	return ResultUnchanged, nil
}

// MarkDone stores the record's content hash so later runs can skip it.
func (d *Deduplicator) MarkDone(ctx context.Context, rec *domain.JobRecord) error {
	if rec.Link == "" {
		return nil
	}
	key := d.makeKey(rec.Link)
	if err := d.client.Set(ctx, key, contentHash(rec), d.defaultTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// FilterNew returns the records that still need enrichment. Redis errors
// fail open: the record is kept rather than silently dropped.
func (d *Deduplicator) FilterNew(ctx context.Context, records []*domain.JobRecord) ([]*domain.JobRecord, int) {
	kept := make([]*domain.JobRecord, 0, len(records))
	for _, rec := range records {
		result, err := d.CheckRecord(ctx, rec)
		if err != nil || result != ResultUnchanged {
			kept = append(kept, rec)
		}
	}
	return kept, len(records) - len(kept)
}

// Reset deletes every tracking key under this prefix. Used before a
// forced replay so the worker does not skip unchanged records.
func (d *Deduplicator) Reset(ctx context.Context) (int, error) {
	var deleted int
	var cursor uint64
	for {
		keys, next, err := d.client.Scan(ctx, cursor, d.prefix+":*", 500).Result()
		if err != nil {
			return deleted, fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := d.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, fmt.Errorf("redis del: %w", err)
			}
			deleted += len(keys)
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}

func (d *Deduplicator) makeKey(link string) string {
	return fmt.Sprintf("%s:%s", d.prefix, link)
}

func contentHash(rec *domain.JobRecord) string {
	h := sha256.Sum256([]byte(rec.Title + "\x00" + rec.Description + "\x00" + rec.HeaderText))
	return hex.EncodeToString(h[:16]) // First 16 bytes (32 hex chars)
}
