package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"fjacquet/ledger-csv/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_RunStopsOnCancel(t *testing.T) {
	logger := logging.NewMockLogger()
	srv := NewServer("127.0.0.1:0", http.NotFoundHandler(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.True(t, logger.HasEntry("INFO", "Shutting down API server"))
}

func TestServer_RunReportsListenError(t *testing.T) {
	srv := NewServer("invalid-address", http.NotFoundHandler(), logging.NewMockLogger())

	err := srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api server failed")
}
