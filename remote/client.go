package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	reflector "github.com/i-rong/l2-reflector"
	"github.com/i-rong/l2-reflector/remote/pb"
)

// Client is the host-side call gateway. It is safe for use from a
// single goroutine at a time, which is all the control plane needs.
type Client struct {
	conn    *grpc.ClientConn
	runtime pb.DeviceRuntimeClient
	timeout time.Duration
	logger  *slog.Logger
	dialer  func(context.Context, string) (net.Conn, error)
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTimeout bounds each call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithContextDialer overrides the transport dialer. Used by tests to
// connect over an in-memory listener.
func WithContextDialer(dialer func(context.Context, string) (net.Conn, error)) Option {
	return func(c *Client) { c.dialer = dialer }
}

// Dial connects to the accelerator runtime endpoint. The target uses
// gRPC naming, e.g. "unix:///run/l2-reflector/runtime.sock".
func Dial(target string, opts ...Option) (*Client, error) {
	c := &Client{
		timeout: 5 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "remote")

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if c.dialer != nil {
		dialOpts = append(dialOpts, grpc.WithContextDialer(c.dialer))
	}

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("dial device runtime %s: %w", target, err)
	}
	c.conn = conn
	c.runtime = pb.NewDeviceRuntimeClient(conn)
	return c, nil
}

// Call invokes a device function and returns its 64-bit result. Any
// failure is terminal for the run and surfaces as *reflector.CallError;
// the caller is expected to tear down, not retry.
func (c *Client) Call(ctx context.Context, function uint32, arg uint64) (uint64, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.runtime.Call(ctx, &pb.CallRequest{Function: function, Arg: arg})
	if err != nil {
		return 0, &reflector.CallError{
			Function: function,
			Timeout:  status.Code(err) == codes.DeadlineExceeded,
			Err:      err,
		}
	}
	c.logger.Log(ctx, slog.LevelDebug-4, "device call completed",
		"function", function,
		"arg", arg,
		"value", resp.GetValue(),
		"elapsed", time.Since(start))
	return resp.GetValue(), nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
