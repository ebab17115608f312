package transform

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-currency-api/internal/external"
)

func TestTransformCopiesBaseFields(t *testing.T) {
	tr := New(rand.New(rand.NewSource(1)))
	raw := external.RawCountry{
		Name:       "France",
		Capital:    "Paris",
		Region:     "Europe",
		Population: 67000000,
		Flag:       "https://flagcdn.com/fr.svg",
		Currencies: []external.RawCurrency{{Code: "EUR"}},
	}

	c := tr.Transform(raw, map[string]float64{"EUR": 0.9})

	assert.Equal(t, "France", c.Name)
	require.NotNil(t, c.Capital)
	assert.Equal(t, "Paris", *c.Capital)
	require.NotNil(t, c.Region)
	assert.Equal(t, "Europe", *c.Region)
	assert.Equal(t, int64(67000000), c.Population)
	require.NotNil(t, c.FlagURL)
	assert.Equal(t, "https://flagcdn.com/fr.svg", *c.FlagURL)
	require.NotNil(t, c.CurrencyCode)
	assert.Equal(t, "EUR", *c.CurrencyCode)
}

func TestTransformMissingCapitalAndRegionStayNil(t *testing.T) {
	tr := NewSeeded()
	c := tr.Transform(external.RawCountry{Name: "Atlantis", Population: 10}, nil)

	assert.Nil(t, c.Capital)
	assert.Nil(t, c.Region)
	assert.Nil(t, c.FlagURL)
}

func TestTransformFixedSeedIsReproducible(t *testing.T) {
	raw := external.RawCountry{
		Name:       "Testland",
		Population: 1000,
		Currencies: []external.RawCurrency{{Code: "TST"}},
	}
	rates := map[string]float64{"TST": 2.0}

	a := New(rand.New(rand.NewSource(42))).Transform(raw, rates)
	b := New(rand.New(rand.NewSource(42))).Transform(raw, rates)

	require.NotNil(t, a.EstimatedGDP)
	require.NotNil(t, b.EstimatedGDP)
	assert.Equal(t, *a.EstimatedGDP, *b.EstimatedGDP)

	// Same formula, same seed.
	want := float64(1000) * (1000 + rand.New(rand.NewSource(42)).Float64()*1000) / 2.0
	assert.Equal(t, want, *a.EstimatedGDP)
}

func TestTransformGDPStaysInMultiplierRange(t *testing.T) {
	raw := external.RawCountry{
		Name:       "Rangeland",
		Population: 1000,
		Currencies: []external.RawCurrency{{Code: "RNG"}},
	}
	rates := map[string]float64{"RNG": 1.0}
	tr := NewSeeded()

	for i := 0; i < 100; i++ {
		c := tr.Transform(raw, rates)
		require.NotNil(t, c.EstimatedGDP)
		assert.GreaterOrEqual(t, *c.EstimatedGDP, 1_000_000.0)
		assert.Less(t, *c.EstimatedGDP, 2_000_000.0)
	}
}

func TestTransformNoCurrencyMeansZeroGDP(t *testing.T) {
	tr := NewSeeded()
	c := tr.Transform(external.RawCountry{Name: "Moonbase", Population: 50}, map[string]float64{"USD": 1})

	assert.Nil(t, c.CurrencyCode)
	assert.Nil(t, c.ExchangeRate)
	require.NotNil(t, c.EstimatedGDP)
	assert.Equal(t, 0.0, *c.EstimatedGDP)
}

func TestTransformUnknownRateMeansNullGDP(t *testing.T) {
	tr := NewSeeded()
	raw := external.RawCountry{
		Name:       "Obscuria",
		Population: 500,
		Currencies: []external.RawCurrency{{Code: "XXX"}},
	}

	c := tr.Transform(raw, map[string]float64{"USD": 1})

	require.NotNil(t, c.CurrencyCode)
	assert.Equal(t, "XXX", *c.CurrencyCode)
	assert.Nil(t, c.ExchangeRate)
	assert.Nil(t, c.EstimatedGDP)
}

func TestTransformZeroRateTreatedAsMissing(t *testing.T) {
	tr := NewSeeded()
	raw := external.RawCountry{
		Name:       "Nullonia",
		Population: 300,
		Currencies: []external.RawCurrency{{Code: "ZRO"}},
	}

	c := tr.Transform(raw, map[string]float64{"ZRO": 0})

	require.NotNil(t, c.CurrencyCode)
	assert.Equal(t, "ZRO", *c.CurrencyCode)
	assert.Nil(t, c.ExchangeRate)
	assert.Nil(t, c.EstimatedGDP)
}

func TestTransformConcurrentUseIsSafe(t *testing.T) {
	// Overlapping refreshes share one Transformer; run under -race.
	tr := New(rand.New(rand.NewSource(7)))
	raw := external.RawCountry{
		Name:       "Parallelia",
		Population: 1000,
		Currencies: []external.RawCurrency{{Code: "PAR"}},
	}
	rates := map[string]float64{"PAR": 1.0}

	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c := tr.Transform(raw, rates)
				require.NotNil(t, c.EstimatedGDP)
				assert.GreaterOrEqual(t, *c.EstimatedGDP, 1_000_000.0)
				assert.Less(t, *c.EstimatedGDP, 2_000_000.0)
			}
		}()
	}
	wg.Wait()
}

func TestTransformOnlyFirstCurrencyUsed(t *testing.T) {
	tr := NewSeeded()
	raw := external.RawCountry{
		Name:       "Bicurrencia",
		Population: 100,
		Currencies: []external.RawCurrency{{Code: "AAA"}, {Code: "BBB"}},
	}

	c := tr.Transform(raw, map[string]float64{"BBB": 5.0})

	// Only AAA counts, and AAA has no rate.
	require.NotNil(t, c.CurrencyCode)
	assert.Equal(t, "AAA", *c.CurrencyCode)
	assert.Nil(t, c.ExchangeRate)
	assert.Nil(t, c.EstimatedGDP)
}
