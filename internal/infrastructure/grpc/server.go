package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/ArtLegends/medtravel-main-sub002/internal/config"
	"github.com/ArtLegends/medtravel-main-sub002/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported for the referral core
const ServiceName = "medtravel.referral"

// Server exposes the standard gRPC health service
type Server struct {
	server  *grpc.Server
	health  *health.Server
	logger  *zap.Logger
	address string
}

// NewServer creates the gRPC server with logging interceptors. Both the overall
// and the named service status start as NOT_SERVING.
func NewServer(cfg config.GRPCConfig, zapLogger *zap.Logger) *Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(logger.NewGrpcUnaryServerInterceptor(zapLogger)),
		grpc.ChainStreamInterceptor(logger.NewGrpcStreamServerInterceptor(zapLogger)),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	reflection.Register(server)

	return &Server{
		server:  server,
		health:  healthServer,
		logger:  zapLogger,
		address: cfg.Addr(),
	}
}

// SetServing flips the overall and named service status
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// WatchHealth runs check every interval until ctx ends and mirrors the
// result into the health service. The first check runs immediately.
func (s *Server) WatchHealth(ctx context.Context, interval time.Duration, check func(ctx context.Context) error) {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	serving := false
	poll := func() {
		pollCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		err := check(pollCtx)
		if ok := err == nil; ok != serving {
			serving = ok
			s.SetServing(ok)
			if ok {
				s.logger.Info("gRPC health: serving")
			} else {
				s.logger.Warn("gRPC health: not serving", zap.Error(err))
			}
		}
	}

	poll()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}

// Start listens on the configured address and serves until Stop
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("gRPC listen on %s: %w", s.address, err)
	}
	return s.Serve(listener)
}

// Serve serves on an existing listener
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("gRPC server starting", zap.String("address", listener.Addr().String()))
	return s.server.Serve(listener)
}

// Stop marks the service NOT_SERVING and drains open RPCs
func (s *Server) Stop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.server.GracefulStop()
	s.logger.Info("gRPC server stopped")
}
