// Package rates provides an exchange-rate snapshot (ISO code → USD
// factor) loaded from a JSON file that an external schedule refreshes.
// Snapshots are cached in-process for a TTL window and are immutable
// once handed out.
package rates

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// DefaultTTL is how long a loaded snapshot stays fresh.
const DefaultTTL = time.Hour

// Provider loads and caches exchange rates to USD.
type Provider struct {
	path string
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	snapshot map[string]float64
	loadedAt time.Time
}

// NewProvider creates a provider backed by the JSON file at path.
func NewProvider(path string, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Provider{path: path, ttl: ttl, now: time.Now}
}

// Rates returns the current snapshot, reloading the backing file when
// the TTL has lapsed. A missing or unreadable file degrades to a
// USD-only table so extraction keeps working with rate 1.0 fallbacks.
func (p *Provider) Rates() map[string]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.snapshot != nil && p.now().Sub(p.loadedAt) < p.ttl {
		return p.snapshot
	}

	snapshot, err := loadFile(p.path)
	if err != nil {
		if p.snapshot != nil {
			// Keep serving the stale snapshot over nothing.
			return p.snapshot
		}
		snapshot = map[string]float64{"USD": 1.0}
	}
	p.snapshot = snapshot
	p.loadedAt = p.now()
	return p.snapshot
}

func loadFile(path string) (map[string]float64, error) {
	if path == "" {
		return nil, fmt.Errorf("no exchange rates path configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exchange rates: %w", err)
	}
	var table map[string]float64
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse exchange rates: %w", err)
	}
	table["USD"] = 1.0
	return table, nil
}
