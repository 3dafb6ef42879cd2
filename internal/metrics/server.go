package metrics

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	sqlcollectors "github.com/brandonsean08/basic-blockchain/internal/metrics/collectors/sql"
)

// CreateMetricsServer exposes the given collectors, plus the registered SQL
// collectors when db is non-nil, on a promhttp endpoint at addr. The server
// is already serving when this returns; the caller owns its shutdown.
func CreateMetricsServer(db *sql.DB, addr string, extra ...prometheus.Collector) (*http.Server, error) {
	registry := prometheus.NewRegistry()

	if db != nil {
		collectors, err := sqlcollectors.DefaultSqlRegistry.CreateSqlCollectors(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQL collectors: %w", err)
		}
		if err := registerAll(registry, collectors); err != nil {
			return nil, err
		}
	}
	if err := registerAll(registry, extra); err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server stopped", "error", err)
		}
	}()

	slog.Info("Prometheus metrics server started", "addr", addr)
	return server, nil
}

func registerAll(registry *prometheus.Registry, collectors []prometheus.Collector) error {
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return nil
}
