// Package metrics exposes Prometheus counters for listings and editor
// launches. The long-running commands serve them on /metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"folderlist/internal/lister"
	"folderlist/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logger = logging.GetLogger().WithPrefix("metrics")

var (
	ListingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folderlist_listings_total",
			Help: "Total subfolder listings",
		},
		[]string{"result"},
	)

	ListingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folderlist_listing_duration_seconds",
			Help:    "Time to list the subfolders of a root",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	FoldersListed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "folderlist_folders",
			Help: "Number of subfolders in the last successful listing",
		},
	)

	SkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "folderlist_skipped_folders_total",
			Help: "Folders left out of a listing because their metadata could not be read",
		},
	)

	LaunchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folderlist_launches_total",
			Help: "Total editor launches",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		ListingsTotal,
		ListingDuration,
		FoldersListed,
		SkippedTotal,
		LaunchesTotal,
	)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Lister lists subfolders of a root.
type Lister interface {
	ListSubfolders(rootPath string) ([]lister.FolderEntry, error)
}

// Launcher opens a folder under a root in an editor.
type Launcher interface {
	ResolveAndLaunch(rootPath, folderName string) error
}

type instrumentedLister struct {
	next Lister
}

// InstrumentLister wraps l so every listing is counted and timed.
func InstrumentLister(l Lister) Lister {
	return instrumentedLister{next: l}
}

func (i instrumentedLister) ListSubfolders(rootPath string) ([]lister.FolderEntry, error) {
	start := time.Now()
	entries, err := i.next.ListSubfolders(rootPath)
	ListingDuration.Observe(time.Since(start).Seconds())
	ListingsTotal.WithLabelValues(result(err)).Inc()
	if err == nil {
		FoldersListed.Set(float64(len(entries)))
	}
	return entries, err
}

type instrumentedLauncher struct {
	next Launcher
}

// InstrumentLauncher wraps l so every launch attempt is counted.
func InstrumentLauncher(l Launcher) Launcher {
	return instrumentedLauncher{next: l}
}

func (i instrumentedLauncher) ResolveAndLaunch(rootPath, folderName string) error {
	err := i.next.ResolveAndLaunch(rootPath, folderName)
	LaunchesTotal.WithLabelValues(result(err)).Inc()
	return err
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Server serves /metrics until its context is cancelled.
type Server struct {
	srv  *http.Server
	done chan struct{}
}

// StartServer starts a standalone HTTP server serving /metrics on addr.
func StartServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	s := &Server{
		srv:  &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		logger.Info("Serving metrics on %s", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			// metrics are non-critical; the command keeps running
			logger.Error("Metrics server stopped: %v", err)
		}
	}()
	return s
}

// Shutdown stops the server and waits for it to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	<-s.done
	return err
}
