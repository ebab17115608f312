// Package transform derives a persistable Country record from one raw
// country document and the exchange-rate table. The transformation is pure:
// no I/O, no shared state beyond the injected random source.
package transform

import (
	"math/rand"
	"sync"
	"time"

	"country-currency-api/internal/external"
	"country-currency-api/internal/model"
)

// Transformer joins raw country data with exchange rates. The random source
// is injected so tests can fix the seed and assert exact GDP values while
// production seeds from the clock. One Transformer is shared by every
// refresh, and *rand.Rand is not safe for concurrent use, so draws are
// serialized through the mutex.
type Transformer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Transformer around the given random source.
func New(rng *rand.Rand) *Transformer {
	return &Transformer{rng: rng}
}

// NewSeeded builds a Transformer with a time-seeded random source. The GDP
// estimate is therefore not reproducible across runs; that is inherent to
// the metric, not a defect.
func NewSeeded() *Transformer {
	return New(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Transform derives the stored record for one raw country:
//
//   - the first currency code of the list, if any, becomes currency_code;
//   - a known rate for that code yields exchange_rate and an estimated GDP
//     of population * U / rate, with U uniform in [1000, 2000);
//   - a currency code without a known rate, or with a rate of zero, leaves
//     both rate and GDP null;
//   - a country without any currency gets a GDP of exactly 0, keeping
//     "defined as zero" distinguishable from "unknown".
func (t *Transformer) Transform(raw external.RawCountry, rates map[string]float64) model.Country {
	c := model.Country{
		Name:       raw.Name,
		Population: raw.Population,
	}
	if raw.Capital != "" {
		capital := raw.Capital
		c.Capital = &capital
	}
	if raw.Region != "" {
		region := raw.Region
		c.Region = &region
	}
	if raw.Flag != "" {
		flag := raw.Flag
		c.FlagURL = &flag
	}

	if len(raw.Currencies) == 0 {
		zero := 0.0
		c.EstimatedGDP = &zero
		return c
	}

	code := raw.Currencies[0].Code
	c.CurrencyCode = &code
	rate, ok := rates[code]
	if !ok || rate == 0 {
		// a zero rate cannot produce a finite estimate; treat it as absent
		return c
	}
	c.ExchangeRate = &rate

	t.mu.Lock()
	multiplier := 1000 + t.rng.Float64()*1000
	t.mu.Unlock()
	gdp := float64(raw.Population) * multiplier / rate
	c.EstimatedGDP = &gdp
	return c
}
