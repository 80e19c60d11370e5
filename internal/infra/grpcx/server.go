// Package grpcx exposes the standard gRPC health service so orchestrators
// can probe the API.
package grpcx

import (
	"context"
	"net"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/jcmexdev/warung-orders/internal/pkg/interceptors"
)

// CheckoutService is the health service name reported for order placement.
const CheckoutService = "warung.checkout"

type Server struct {
	grpc   *grpc.Server
	health *health.Server
}

func NewServer(opts ...grpc.ServerOption) *Server {
	opts = append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(interceptors.MetadataServerInterceptor()),
	}, opts...)

	gs := grpc.NewServer(opts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(CheckoutService, healthpb.HealthCheckResponse_SERVING)

	return &Server{grpc: gs, health: hs}
}

func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// MarkNotServing flips every service to NOT_SERVING so probes fail while
// in-flight work drains.
func (s *Server) MarkNotServing() {
	s.health.Shutdown()
}

// GracefulStop marks the server NOT_SERVING and waits for in-flight RPCs.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// Shutdown stops gracefully, falling back to a hard Stop when ctx ends
// first. Open Watch streams would otherwise hold GracefulStop forever.
func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.grpc.Stop()
		<-done
		return ctx.Err()
	}
}

func (s *Server) Stop() {
	s.grpc.Stop()
}
