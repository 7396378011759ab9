package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/all-dot-files/tictoc/internal/server"
	"github.com/all-dot-files/tictoc/internal/tracker"
	"github.com/all-dot-files/tictoc/pkg/logger"
	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

func main() {
	addr := flag.String("addr", ":7878", "Server address")
	jwtSecret := flag.String("jwt-secret", os.Getenv("TICTOC_SERVER_JWT_SECRET"), "JWT secret; empty disables auth")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger.Setup(*logFormat, *logLevel)
	if *jwtSecret == "" {
		logger.Warn("no JWT secret set, the timer API is unauthenticated")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tr := tracker.New(tictoc.New(tictoc.WithLogger(logger.Log)), tracker.NewMetrics(reg), logger.Log)
	gs := server.NewGinServer(server.Options{
		Tracker:   tr,
		JWTSecret: []byte(*jwtSecret),
		Gatherer:  reg,
		Logger:    logger.Log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := gs.Run(ctx, *addr); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
