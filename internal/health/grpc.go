package health

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ListenGRPC serves grpc.health.v1.Health on port until ctx is cancelled.
func (s *Server) ListenGRPC(ctx context.Context, port int) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("grpc health listen: %w", err)
	}
	slog.Info("grpc health service listening", "port", port)
	return s.ServeGRPC(ctx, lis)
}

// ServeGRPC serves the health service on an existing listener.
func (s *Server) ServeGRPC(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, s.grpc)

	go func() {
		<-ctx.Done()
		slog.Info("grpc health service shutting down")
		s.grpc.Shutdown()
		srv.GracefulStop()
	}()

	return srv.Serve(lis)
}
