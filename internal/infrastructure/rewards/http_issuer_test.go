package rewards

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"payday.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("production")
	os.Exit(m.Run())
}

func TestIssueBatch_PostsBatchResult(t *testing.T) {
	received := make(chan issueBatchRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req issueBatchRequest
		_ = json.Unmarshal(body, &req)
		received <- req
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	issuer := NewHTTPIssuer(srv.URL)
	issuer.IssueBatch(context.Background(), "0xowner", 3)

	select {
	case req := <-received:
		assert.Equal(t, "0xowner", req.OwnerAddress)
		assert.Equal(t, 3, req.Succeeded)
	case <-time.After(2 * time.Second):
		t.Fatal("rewards service never received the batch")
	}
}

func TestIssueBatch_SkipsWhenNothingSucceeded(t *testing.T) {
	hits := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- struct{}{}
	}))
	defer srv.Close()

	issuer := NewHTTPIssuer(srv.URL)
	issuer.IssueBatch(context.Background(), "0xowner", 0)

	select {
	case <-hits:
		t.Fatal("expected no request for an all-failed batch")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestIssueBatch_NoopWhenUnconfigured(t *testing.T) {
	issuer := NewHTTPIssuer("")
	require.NotPanics(t, func() {
		issuer.IssueBatch(context.Background(), "0xowner", 2)
	})
}

func TestIssueBatch_ToleratesServiceRejection(t *testing.T) {
	done := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		done <- struct{}{}
	}))
	defer srv.Close()

	issuer := NewHTTPIssuer(srv.URL)
	issuer.IssueBatch(context.Background(), "0xowner", 1)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("rewards service never received the batch")
	}
}
