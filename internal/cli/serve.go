package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/all-dot-files/tictoc/internal/server"
	"github.com/all-dot-files/tictoc/internal/tracker"
	"github.com/all-dot-files/tictoc/pkg/logger"
	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

var (
	serveAddr      string
	serveJWTSecret string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve timers over HTTP",
	Long: `Serve a shared set of timers over HTTP.

Endpoints:
  POST /api/v1/timers/<key>/start
  POST /api/v1/timers/<key>/stop
  GET  /api/v1/timers/<key>?unit=ms
  GET  /api/v1/timers
  GET  /healthz
  GET  /metrics

Use "_" as the key to address the default timer. When a JWT secret is set,
/api/v1 requires a bearer token; mint one with 'tictoc token'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configManager.Get()
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		secret := cfg.Server.JWTSecret
		if serveJWTSecret != "" {
			secret = serveJWTSecret
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		tr := tracker.New(tictoc.New(tictoc.WithLogger(logger.Log)), tracker.NewMetrics(reg), logger.Log)

		gs := server.NewGinServer(server.Options{
			Tracker:   tr,
			JWTSecret: []byte(secret),
			Gatherer:  reg,
			Logger:    logger.Log,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return gs.Run(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&serveJWTSecret, "jwt-secret", "", "require bearer tokens signed with this secret")
}
