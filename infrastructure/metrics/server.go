package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/anchornet/anchord/util/panics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Server serves the registered metrics over HTTP at /metrics
type Server struct {
	listener   net.Listener
	httpServer *http.Server
}

// NewServer binds listenAddress and prepares a metrics server on it
func NewServer(listenAddress string) (*Server, error) {
	listener, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on %s", listenAddress)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}))

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: shutdownTimeout,
		},
	}, nil
}

// Address returns the address the server listens on
func (s *Server) Address() string {
	return s.listener.Addr().String()
}

// Start serves metrics in a new goroutine
func (s *Server) Start() {
	spawn := panics.GoroutineWrapperFunc(log)
	spawn(func() {
		log.Infof("Metrics server listening on %s", s.Address())
		err := s.httpServer.Serve(s.listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Metrics server stopped: %s", err)
		}
	})
}

// Stop shuts the server down
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
