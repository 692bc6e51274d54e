package grpc

import (
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/loanflow/loanflow/pkg/auth"
	"github.com/loanflow/loanflow/pkg/tlsutil"
)

// ServerConfig holds the optional gRPC server features.
type ServerConfig struct {
	JWT         *auth.JWTService // nil disables the auth interceptor
	TLSCertFile string
	TLSKeyFile  string
	Reflection  bool
}

// Server wraps a gRPC server with the loan handler registered.
type Server struct {
	gs     *grpc.Server
	health *health.Server
	logger *slog.Logger
}

// NewServer creates and configures the gRPC server. TLS material that fails
// to load is an error rather than a silent plaintext fallback.
func NewServer(handler *LoanServiceHandler, cfg ServerConfig, logger *slog.Logger) (*Server, error) {
	interceptors := []grpc.UnaryServerInterceptor{recoveryInterceptor(logger)}
	if cfg.JWT != nil {
		interceptors = append(interceptors, auth.UnaryAuthInterceptor(cfg.JWT, []string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		}))
	}
	serverOpts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptors...)}

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		creds, err := tlsutil.ServerCredentials(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load TLS credentials: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
		logger.Info("gRPC TLS enabled", "cert", cfg.TLSCertFile)
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpc.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	if cfg.Reflection {
		reflection.Register(gs)
	}

	RegisterLoanServiceServer(gs, handler)

	return &Server{gs: gs, health: healthSrv, logger: logger}, nil
}

// Serve accepts connections on lis until GracefulStop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// ListenAndServe listens on addr and serves.
func (s *Server) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(lis)
}

// GracefulStop marks the service NOT_SERVING and stops the server gracefully.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}
