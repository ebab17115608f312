package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultCountriesEndpoint only requests the fields the transformer
// consumes; the full country documents are an order of magnitude larger.
const DefaultCountriesEndpoint = "https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"

// RawCurrency is one entry of a country's currency list. Only the code of
// the first entry is ever used downstream.
type RawCurrency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// RawCountry is a country document as returned by the countries API,
// trimmed to the consumed fields.
type RawCountry struct {
	Name       string        `json:"name"`
	Capital    string        `json:"capital"`
	Region     string        `json:"region"`
	Population int64         `json:"population"`
	Flag       string        `json:"flag"`
	Currencies []RawCurrency `json:"currencies"`
}

// CountriesClient fetches the country dataset with a single GET request.
type CountriesClient struct {
	Endpoint string
	HTTP     *http.Client
}

// NewCountriesClient builds a client for the given endpoint (empty selects
// the default source). The 15 second timeout bounds the whole request
// including body read.
func NewCountriesClient(endpoint string) *CountriesClient {
	if endpoint == "" {
		endpoint = DefaultCountriesEndpoint
	}
	return &CountriesClient{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchAll retrieves every country record from the upstream source. Any
// transport failure, non-200 status or undecodable body is reported as a
// SourceError; no retries are attempted.
func (c *CountriesClient) FetchAll(ctx context.Context) ([]RawCountry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, &SourceError{Source: "countries", Cause: "could not build countries API request", Err: err}
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &SourceError{Source: "countries", Cause: "could not fetch data from countries API", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SourceError{
			Source: "countries",
			Cause:  fmt.Sprintf("countries API responded with status %d", resp.StatusCode),
		}
	}

	var out []RawCountry
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &SourceError{Source: "countries", Cause: "countries API returned an unreadable body", Err: err}
	}
	return out, nil
}
