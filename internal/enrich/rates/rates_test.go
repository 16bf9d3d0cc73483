package rates

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRates(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "rates.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRatesLoadsFileAndForcesUSD(t *testing.T) {
	path := writeRates(t, t.TempDir(), `{"EUR": 1.08, "MYR": 0.21, "USD": 42}`)
	p := NewProvider(path, time.Hour)

	got := p.Rates()
	assert.InDelta(t, 1.08, got["EUR"], 0.001)
	assert.InDelta(t, 0.21, got["MYR"], 0.001)
	assert.Equal(t, 1.0, got["USD"], "USD is always parity regardless of file contents")
}

func TestRatesMissingFileDegradesToUSDOnly(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "nope.json"), time.Hour)

	got := p.Rates()
	assert.Equal(t, map[string]float64{"USD": 1.0}, got)
}

func TestRatesReloadsAfterTTL(t *testing.T) {
	dir := t.TempDir()
	path := writeRates(t, dir, `{"EUR": 1.00}`)

	p := NewProvider(path, time.Hour)
	now := time.Now()
	p.now = func() time.Time { return now }

	assert.InDelta(t, 1.00, p.Rates()["EUR"], 0.001)

	// Within the TTL the stale snapshot is served even after the file
	// changes.
	writeRates(t, dir, `{"EUR": 2.00}`)
	assert.InDelta(t, 1.00, p.Rates()["EUR"], 0.001)

	now = now.Add(2 * time.Hour)
	assert.InDelta(t, 2.00, p.Rates()["EUR"], 0.001)
}

func TestRatesKeepsStaleSnapshotWhenFileDisappears(t *testing.T) {
	dir := t.TempDir()
	path := writeRates(t, dir, `{"EUR": 1.08}`)

	p := NewProvider(path, time.Hour)
	now := time.Now()
	p.now = func() time.Time { return now }

	assert.InDelta(t, 1.08, p.Rates()["EUR"], 0.001)

	require.NoError(t, os.Remove(path))
	now = now.Add(2 * time.Hour)
	assert.InDelta(t, 1.08, p.Rates()["EUR"], 0.001, "stale beats nothing")
}
