package country

import (
	"context"
	"errors"
	"testing"

	"github.com/project-tktt/job-enricher/internal/domain"
	"github.com/stretchr/testify/assert"
)

type fakeGeocoder struct {
	calls   int
	country string
	err     error
}

func (g *fakeGeocoder) CountryFor(ctx context.Context, location string) (string, error) {
	g.calls++
	return g.country, g.err
}

func TestCleanLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Greater Chicago Metropolitan Area", "chicago"},
		{"Dallas-Fort Worth Metroplex", "dallas-fort worth"},
		{"  Berlin  ", "berlin"},
		{"Salt Lake County, Utah", "salt lake , utah"},
		{"London", "london"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanLocation(tt.in))
		})
	}
}

func TestResolveCityMapShortCircuit(t *testing.T) {
	geo := &fakeGeocoder{country: "Wrongland"}
	r := NewResolver(geo)

	assert.Equal(t, "United States", r.Resolve(context.Background(), "San Francisco Bay Area"))
	assert.Equal(t, "Germany", r.Resolve(context.Background(), "Berlin"))
	assert.Equal(t, "Malaysia", r.Resolve(context.Background(), "Kuala Lumpur"))
	assert.Zero(t, geo.calls, "curated city map must win before any external call")
}

func TestResolveCityMapOrderIsDeterministic(t *testing.T) {
	r := NewResolver(nil)

	// "utica-rome" contains "rome"; the compound entry must win every
	// time, not whichever the scan happens to reach first.
	for i := 0; i < 100; i++ {
		assert.Equal(t, "United States", r.Resolve(context.Background(), "Utica-Rome Metropolitan Area"))
	}
	assert.Equal(t, "Italy", r.Resolve(context.Background(), "Rome"))
}

func TestResolveUsesGeocoderAndCaches(t *testing.T) {
	geo := &fakeGeocoder{country: "United States"}
	r := NewResolver(geo)

	got := r.Resolve(context.Background(), "Springfield, Oregon")
	assert.Equal(t, "United States", got)
	assert.Equal(t, 1, geo.calls)

	// Second resolution of the same string is served from the cache.
	got = r.Resolve(context.Background(), "Springfield, Oregon")
	assert.Equal(t, "United States", got)
	assert.Equal(t, 1, geo.calls)
}

func TestResolveGeocoderErrorFallsThrough(t *testing.T) {
	geo := &fakeGeocoder{err: errors.New("boom")}
	r := NewResolver(geo)

	// The trailing segment still resolves through the ISO registry.
	got := r.Resolve(context.Background(), "Lyon, France")
	assert.Equal(t, "France", got)
}

func TestResolveWithoutGeocoder(t *testing.T) {
	r := NewResolver(nil)

	assert.Equal(t, "France", r.Resolve(context.Background(), "Lyon, France"))
	assert.Equal(t, domain.CountryUnknown, r.Resolve(context.Background(), "???"))
	assert.Equal(t, domain.CountryUnknown, r.Resolve(context.Background(), ""))
	assert.Equal(t, domain.CountryUnknown, r.Resolve(context.Background(), "   "))
}

func TestResolveCachesUnknown(t *testing.T) {
	geo := &fakeGeocoder{}
	r := NewResolver(geo)

	loc := "xyzzy nowhere"
	assert.Equal(t, domain.CountryUnknown, r.Resolve(context.Background(), loc))
	assert.Equal(t, 1, geo.calls)

	assert.Equal(t, domain.CountryUnknown, r.Resolve(context.Background(), loc))
	assert.Equal(t, 1, geo.calls, "unresolvable locations must be cached too")
}

func TestCurrencyFor(t *testing.T) {
	cur, ok := CurrencyFor("Germany")
	assert.True(t, ok)
	assert.Equal(t, "EUR", cur)

	cur, ok = CurrencyFor("Malaysia")
	assert.True(t, ok)
	assert.Equal(t, "MYR", cur)

	_, ok = CurrencyFor(domain.CountryUnknown)
	assert.False(t, ok)

	_, ok = CurrencyFor("")
	assert.False(t, ok)
}
