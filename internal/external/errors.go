// Package external contains the clients for the two upstream data sources:
// the country metadata API and the currency exchange-rate API. Each client
// performs exactly one bounded-timeout request per call and signals failures
// through SourceError; retry policy, if any, belongs to callers.
package external

import "fmt"

// SourceError indicates that an upstream data source could not be reached
// or returned an unusable response. Handlers translate it into an HTTP 503.
type SourceError struct {
	Source string // which upstream failed, e.g. "countries" or "rates"
	Cause  string // human-readable detail safe to expose to API clients
	Err    error  // underlying transport or decode error, may be nil
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s source unavailable: %s: %v", e.Source, e.Cause, e.Err)
	}
	return fmt.Sprintf("%s source unavailable: %s", e.Source, e.Cause)
}

func (e *SourceError) Unwrap() error { return e.Err }
