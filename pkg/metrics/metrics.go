package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

var (
	Runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flights_notifier_runs_total",
		Help: "The total number of flight notifier runs by trigger",
	}, []string{"trigger"})
	Failures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flights_notifier_failures_total",
		Help: "The total number of failed flight notifier runs by reason",
	}, []string{"reason"})
	OffersPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flights_notifier_offers_posted_total",
		Help: "The total number of flight offers posted to the channel",
	})
	LastSuccess = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "flights_notifier_last_success_timestamp_seconds",
		Help: "Unix time of the last run that posted offers",
	})
)

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	slog.Info("flights: metrics listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
