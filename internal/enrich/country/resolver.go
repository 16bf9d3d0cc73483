// Package country resolves messy location strings to country names
// through a staged pipeline: string cleanup, a curated city map, a
// memoized geocoder lookup, and ISO registry matching. Geocoding
// failures degrade to "Unknown"; they never abort a batch.
package country

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/biter777/countries"
	"github.com/project-tktt/job-enricher/internal/domain"
)

var (
	regionalSuffixes = regexp.MustCompile(`\b(metropolitan area|metroplex|metro|region|area|county|greater)\b`)
	multiSpace       = regexp.MustCompile(`\s+`)
)

// cleanLocation lowercases, strips regional filler words and collapses
// whitespace so "Greater Chicago Metropolitan Area" keys the same as
// "chicago".
func cleanLocation(location string) string {
	loc := strings.ToLower(strings.TrimSpace(location))
	loc = regionalSuffixes.ReplaceAllString(loc, "")
	loc = multiSpace.ReplaceAllString(loc, " ")
	return strings.Trim(loc, " ,")
}

// Resolver memoizes location→country resolutions for the lifetime of a
// run. Safe for concurrent use from the worker pool.
type Resolver struct {
	geocoder Geocoder

	mu    sync.RWMutex
	cache map[string]string
}

// NewResolver builds a resolver around the given geocoder. A nil
// geocoder disables the external stage; the remaining stages still run.
func NewResolver(geocoder Geocoder) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		cache:    make(map[string]string),
	}
}

func (r *Resolver) cached(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cache[key]
	return c, ok
}

func (r *Resolver) store(key, country string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = country
	return country
}

// Resolve maps a raw location string to a country name or "Unknown".
// Stages short-circuit on first success and every outcome is cached,
// including "Unknown", so a batch never re-asks the geocoder for the
// same string.
func (r *Resolver) Resolve(ctx context.Context, location string) string {
	if strings.TrimSpace(location) == "" {
		return domain.CountryUnknown
	}

	loc := cleanLocation(location)
	if loc == "" {
		return domain.CountryUnknown
	}

	// Ordered scan: "utica-rome" must hit its own entry, not "rome".
	for _, e := range cityToCountry {
		if strings.Contains(loc, e.city) {
			return e.country
		}
	}

	if c, ok := r.cached(loc); ok {
		return c
	}

	if r.geocoder != nil {
		c, err := r.geocoder.CountryFor(ctx, loc)
		if err != nil {
			log.Printf("geocode %q: %v", loc, err)
		} else if c != "" {
			return r.store(loc, c)
		}
	}

	// Last comma-separated segment is usually the widest region.
	parts := strings.Split(loc, ",")
	last := strings.TrimSpace(parts[len(parts)-1])
	if c := isoCountryName(last); c != "" {
		return r.store(loc, c)
	}

	if c := isoCountryName(loc); c != "" {
		return r.store(loc, c)
	}

	if c := fuzzyCountryName(loc); c != "" {
		return r.store(loc, c)
	}

	return r.store(loc, domain.CountryUnknown)
}

// isoCountryName converts a name, code or common alias to the registry's
// country name, or "" when unrecognized.
func isoCountryName(s string) string {
	if s == "" {
		return ""
	}
	if c := countries.ByName(s); c != countries.Unknown {
		return c.String()
	}
	return ""
}

// fuzzyCountryName scans the ISO registry for a country whose name
// appears inside the location string.
func fuzzyCountryName(loc string) string {
	for _, c := range countries.All() {
		if name := strings.ToLower(c.String()); name != "" && strings.Contains(loc, name) {
			return c.String()
		}
	}
	return ""
}

// CurrencyFor returns the ISO 4217 code of a country's national
// currency. Used as the last-resort currency fallback for records whose
// salary text carried no currency at all.
func CurrencyFor(country string) (string, bool) {
	if country == "" || country == domain.CountryUnknown {
		return "", false
	}
	c := countries.ByName(country)
	if c == countries.Unknown {
		return "", false
	}
	cur := c.Currency()
	if cur == countries.CurrencyUnknown {
		return "", false
	}
	return cur.Alpha(), true
}
