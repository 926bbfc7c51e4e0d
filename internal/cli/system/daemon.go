package system

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/plantpal/internal/cli"
	"github.com/julianstephens/plantpal/internal/constants"
	"github.com/julianstephens/plantpal/internal/logger"
)

type DaemonCmd struct {
	Interval    time.Duration `help:"How often to run the neglect sweep." default:"1h"`
	MetricsAddr string        `help:"Address to serve /metrics and /healthz on. Empty disables the server." default:":9464"`
	Once        bool          `help:"Run a single sweep and exit."`
}

func (c *DaemonCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.PerformAutomaticBackup()

	if c.Once {
		_, err := ctx.Engine.SweepNeglect(sigCtx, "")
		return err
	}
	return c.serve(sigCtx, ctx)
}

func (c *DaemonCmd) serve(ctx context.Context, cliCtx *cli.Context) error {
	if c.Interval <= 0 {
		c.Interval = constants.DefaultSweepInterval
	}

	g, gctx := errgroup.WithContext(ctx)

	if c.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              c.MetricsAddr,
			Handler:           NewHandler(cliCtx),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("Metrics server listening", "addr", c.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		return RunSweeps(gctx, cliCtx, c.Interval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Daemon stopped")
	return nil
}

// RunSweeps sweeps immediately and then on every tick until ctx is done.
// A failed sweep is logged and retried on the next tick.
func RunSweeps(ctx context.Context, cliCtx *cli.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := cliCtx.Engine.SweepNeglect(ctx, ""); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Neglect sweep failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// NewRouter serves the Prometheus registry and a storage-backed health check
func NewRouter(cliCtx *cli.Context) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", cliCtx.Metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := cliCtx.Store.GetSettings(); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)
	return r
}

// NewHandler wraps the router with access logging and panic recovery
func NewHandler(cliCtx *cli.Context) http.Handler {
	logged := handlers.LoggingHandler(logger.Output(), NewRouter(cliCtx))
	return handlers.RecoveryHandler()(logged)
}
