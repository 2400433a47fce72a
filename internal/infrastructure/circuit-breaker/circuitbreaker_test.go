package circuitbreaker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/httpclient"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid"}`))
	}))
	defer server.Close()

	cb := CreateCircuitBreaker("catalog-api")
	client := httpclient.CreateClient(server.URL, httpclient.WithCircuitBreaker(cb))

	for i := 0; i < 5; i++ {
		err := client.SendJSON(context.Background(), http.MethodGet, "/products", nil, nil)
		assert.ErrorIs(t, err, errs.ErrRemoteRejected)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_ServerErrorsTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cb := CreateCircuitBreaker("catalog-api")
	client := httpclient.CreateClient(server.URL, httpclient.WithCircuitBreaker(cb))

	for i := 0; i < 3; i++ {
		err := client.SendJSON(context.Background(), http.MethodGet, "/products", nil, nil)
		assert.ErrorIs(t, err, errs.ErrRemoteRejected)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	err := client.SendJSON(context.Background(), http.MethodGet, "/products", nil, nil)
	assert.ErrorIs(t, err, errs.ErrRemoteUnavailable)
}
