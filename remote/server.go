package remote

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/i-rong/l2-reflector/remote/pb"
)

// CallHandler executes a device function on behalf of the runtime
// server. ErrUnknownFunction-style failures should be returned as
// plain errors; the server maps them onto the wire.
type CallHandler interface {
	HandleCall(function uint32, arg uint64) (uint64, error)
}

// Server is the runtime half of the call channel. The simulated
// device backend embeds one so the daemon exercises the same wire
// path it uses against real hardware; tests drive it over an
// in-memory listener.
type Server struct {
	pb.UnimplementedDeviceRuntimeServer

	handler CallHandler
	grpcSrv *grpc.Server
	logger  *slog.Logger
}

// NewServer builds a runtime server around a handler.
func NewServer(handler CallHandler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		handler: handler,
		grpcSrv: grpc.NewServer(),
		logger:  logger.With("component", "remote"),
	}
	pb.RegisterDeviceRuntimeServer(s.grpcSrv, s)
	return s
}

// Call implements pb.DeviceRuntimeServer.
func (s *Server) Call(_ context.Context, req *pb.CallRequest) (*pb.CallResponse, error) {
	value, err := s.handler.HandleCall(req.GetFunction(), req.GetArg())
	if err != nil {
		s.logger.Warn("device call failed",
			"function", req.GetFunction(),
			"arg", req.GetArg(),
			"error", err)
		return nil, status.Errorf(codes.FailedPrecondition, "function %d: %v", req.GetFunction(), err)
	}
	return &pb.CallResponse{Value: value}, nil
}

// Serve blocks serving the listener until Stop is called or the
// listener fails.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpcSrv.Serve(lis)
}

// Stop shuts the server down immediately. The call channel carries
// single short unary round-trips, so a graceful drain buys nothing.
func (s *Server) Stop() {
	s.grpcSrv.Stop()
}
