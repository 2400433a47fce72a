package circuitbreaker

import (
	"github.com/alimikegami/perfume-store/pkg/httpclient"
	"github.com/sony/gobreaker/v2"
)

// CreateCircuitBreaker trips after at least 3 requests with a 60% failure
// ratio. Only network errors and 5xx answers count as failures.
func CreateCircuitBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	var st gobreaker.Settings
	st.Name = name
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}
	st.IsSuccessful = func(err error) bool {
		return !httpclient.IsRemoteFault(err)
	}

	return gobreaker.NewCircuitBreaker[[]byte](st)
}
