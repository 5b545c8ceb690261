package handlers

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/testnest/admin/internal/admin/auth"
)

// Server holds references to both a gRPC server and an HTTP server. The
// gRPC side hosts the health service; the HTTP side serves the REST API and
// proxies /healthz to it.
type Server struct {
	grpcServer   *grpc.Server
	health       *health.Server
	healthConn   *grpc.ClientConn
	httpServer   *http.Server
	logger       *zap.Logger
	grpcPort     int
	grpcEndpoint string
	httpEndpoint string
}

// NewServer constructs a Server with separate endpoints for gRPC and HTTP.
func NewServer(
	grpcPort int,
	httpPort int,
	logger *zap.Logger,
	grpcOpts ...grpc.ServerOption,
) *Server {
	s := &Server{
		grpcServer:   grpc.NewServer(grpcOpts...),
		health:       health.NewServer(),
		httpServer:   &http.Server{ReadHeaderTimeout: 10 * time.Second},
		logger:       logger,
		grpcPort:     grpcPort,
		grpcEndpoint: fmt.Sprintf(":%d", grpcPort),
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
	}
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	return s
}

// SetServing publishes the overall serving status on the health service.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
}

// RegisterHTTPGateway builds the HTTP mux: the REST routes of h, /healthz
// backed by the gRPC health service, JWT protection of mutating routes and
// request logging.
func (s *Server) RegisterHTTPGateway(dialOpts []grpc.DialOption, h *Handler, jwtSecret string) error {
	conn, err := grpc.NewClient(fmt.Sprintf("localhost:%d", s.grpcPort), dialOpts...)
	if err != nil {
		return fmt.Errorf("health client: %w", err)
	}
	s.healthConn = conn

	mux := runtime.NewServeMux(runtime.WithHealthzEndpoint(healthpb.NewHealthClient(conn)))
	if err := h.Register(mux); err != nil {
		return err
	}

	s.httpServer.Handler = RequestLogger(auth.HTTPMiddleware(mux, jwtSecret), s.logger)
	s.httpServer.Addr = s.httpEndpoint
	return nil
}

// HTTPHandler returns the handler chain installed by RegisterHTTPGateway.
func (s *Server) HTTPHandler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the gRPC and HTTP servers concurrently, returning on the first error.
func (s *Server) Start() error {
	var wg sync.WaitGroup
	wg.Add(2)
	errChan := make(chan error, 2)

	go func() {
		defer wg.Done()
		s.logger.Info("Starting gRPC server", zap.String("endpoint", s.grpcEndpoint))
		lis, err := net.Listen("tcp", s.grpcEndpoint)
		if err != nil {
			errChan <- fmt.Errorf("gRPC listen error: %w", err)
			return
		}
		if err := s.grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("gRPC serve error: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		s.logger.Info("Starting HTTP server", zap.String("endpoint", s.httpEndpoint))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP serve error: %w", err)
		}
	}()

	go func() {
		wg.Wait()
		close(errChan)
	}()

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// Stop gracefully shuts down both gRPC and HTTP servers.
func (s *Server) Stop() {
	s.logger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.health.Shutdown()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	s.grpcServer.GracefulStop()
	if s.healthConn != nil {
		_ = s.healthConn.Close()
	}

	s.logger.Info("Servers stopped")
}
