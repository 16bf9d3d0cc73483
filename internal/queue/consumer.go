package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/project-tktt/job-enricher/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Consumer consumes raw job records from the Redis queue
type Consumer struct {
	client    *redis.Client
	queueName string
	timeout   time.Duration
}

// NewConsumer creates a new queue consumer
func NewConsumer(client *redis.Client, queueName string, timeout time.Duration) *Consumer {
	if queueName == "" {
		queueName = "jobs:raw"
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Consumer{
		client:    client,
		queueName: queueName,
		timeout:   timeout,
	}
}

// Consume blocks and waits for a record from the queue
// Returns nil, nil if timeout occurs with no record
func (c *Consumer) Consume(ctx context.Context) (*domain.JobRecord, error) {
	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Timeout, no record available
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	var rec domain.JobRecord
	if err := json.Unmarshal([]byte(result[1]), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	return &rec, nil
}

// ConsumeBatch consumes up to maxBatch records from the queue
// Uses BRPOP to block-wait for first item (prevents CPU spinning)
// Then uses RPOP to quickly grab remaining items for the batch
func (c *Consumer) ConsumeBatch(ctx context.Context, maxBatch int) ([]*domain.JobRecord, error) {
	records := make([]*domain.JobRecord, 0, maxBatch)

	// First item: use BRPOP to block until available (prevents CPU spinning)
	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return records, nil // Timeout, no records
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}

	if len(result) >= 2 {
		var rec domain.JobRecord
		if err := json.Unmarshal([]byte(result[1]), &rec); err == nil {
			records = append(records, &rec)
		}
	}

	// Remaining items: use non-blocking RPOP to fill the batch
	for i := 1; i < maxBatch; i++ {
		result, err := c.client.RPop(ctx, c.queueName).Result()
		if err != nil {
			if err == redis.Nil {
				break // No more records
			}
			return records, fmt.Errorf("rpop: %w", err)
		}

		var rec domain.JobRecord
		if err := json.Unmarshal([]byte(result), &rec); err != nil {
			continue // Skip malformed records
		}

		records = append(records, &rec)
	}

	return records, nil
}
