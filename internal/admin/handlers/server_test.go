package handlers

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func emptyHandler(t *testing.T) *Handler {
	return NewHandler(Services{}, nil, zaptest.NewLogger(t))
}

func TestServer_RegisterHTTPGateway(t *testing.T) {
	s := NewServer(50071, 8091, zaptest.NewLogger(t))
	err := s.RegisterHTTPGateway([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, emptyHandler(t), "secret")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.healthConn.Close() })

	assert.NotNil(t, s.HTTPHandler())
	assert.Equal(t, s.httpEndpoint, s.httpServer.Addr)
}

func TestServer_StartStop(t *testing.T) {
	s := NewServer(50072, 8092, zaptest.NewLogger(t), grpc.Creds(insecure.NewCredentials()))
	err := s.RegisterHTTPGateway([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, emptyHandler(t), "secret")
	require.NoError(t, err)
	s.SetServing(true)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	// /healthz is answered through the gRPC health service.
	require.Eventually(t, func() bool {
		rec := httptest.NewRecorder()
		s.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		return rec.Code == http.StatusOK
	}, 3*time.Second, 50*time.Millisecond)

	s.SetServing(false)
	rec := httptest.NewRecorder()
	s.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEqual(t, http.StatusOK, rec.Code)

	s.Stop()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for server to stop")
	}

	// The gRPC port is free again after shutdown.
	lis, err := net.Listen("tcp", s.grpcEndpoint)
	if assert.NoError(t, err) {
		lis.Close()
	}
}
