package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultRatesEndpoint serves USD-based rates, so every stored exchange
// rate reads as units of local currency per US dollar.
const DefaultRatesEndpoint = "https://open.er-api.com/v6/latest/USD"

// ratesResponse is the envelope returned by the exchange-rate API.
type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// RatesClient fetches the exchange-rate table with a single GET request.
type RatesClient struct {
	Endpoint string
	HTTP     *http.Client
}

// NewRatesClient builds a client for the given endpoint (empty selects the
// default source).
func NewRatesClient(endpoint string) *RatesClient {
	if endpoint == "" {
		endpoint = DefaultRatesEndpoint
	}
	return &RatesClient{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchRates retrieves the currency-code to rate mapping. The upstream
// marks failed lookups inside a 200 response via the result field, so that
// is checked in addition to the status code.
func (c *RatesClient) FetchRates(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, &SourceError{Source: "rates", Cause: "could not build exchange rate API request", Err: err}
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &SourceError{Source: "rates", Cause: "could not fetch data from exchange rate API", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SourceError{
			Source: "rates",
			Cause:  fmt.Sprintf("exchange rate API responded with status %d", resp.StatusCode),
		}
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &SourceError{Source: "rates", Cause: "exchange rate API returned an unreadable body", Err: err}
	}
	if body.Result != "success" || body.Rates == nil {
		return nil, &SourceError{Source: "rates", Cause: "exchange rate API reported an unsuccessful result"}
	}
	return body.Rates, nil
}
