package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/all-dot-files/tictoc/internal/api"
	"github.com/all-dot-files/tictoc/internal/tracker"
	"github.com/all-dot-files/tictoc/pkg/errors"
	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

// DefaultKeyParam addresses the default timer in URLs.
const DefaultKeyParam = api.DefaultKeyParam

// Options configure a GinServer.
type Options struct {
	Tracker *tracker.Tracker
	// JWTSecret enables bearer-token auth on /api/v1 when non-empty.
	JWTSecret []byte
	// Gatherer backs /metrics. Nil means the default registry.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// GinServer serves a tracker over HTTP
type GinServer struct {
	engine    *gin.Engine
	jwtSecret []byte
	tracker   *tracker.Tracker
	log       *slog.Logger
}

// NewGinServer creates a new gin-based server
func NewGinServer(opts Options) *GinServer {
	if opts.Tracker == nil {
		opts.Tracker = tracker.New(nil, nil, opts.Logger)
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	gs := &GinServer{
		engine:    gin.New(),
		jwtSecret: opts.JWTSecret,
		tracker:   opts.Tracker,
		log:       opts.Logger,
	}

	gs.engine.Use(gin.Recovery(), gs.requestLogger())
	gs.setupRoutes(opts.Gatherer)
	return gs
}

func (gs *GinServer) setupRoutes(gatherer prometheus.Gatherer) {
	r := gs.engine

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api/v1")
	if len(gs.jwtSecret) > 0 {
		api.Use(gs.TokenAuthMiddleware())
	}
	{
		api.GET("/timers", gs.handleListTimers)
		api.GET("/timers/:key", gs.handleElapsed)
		api.POST("/timers/:key/start", gs.handleStart)
		api.POST("/timers/:key/stop", gs.handleStop)
	}
}

// Handler returns the HTTP handler.
func (gs *GinServer) Handler() http.Handler {
	return gs.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (gs *GinServer) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           gs.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		gs.log.Info("tictoc server listening", "addr", addr, "auth", len(gs.jwtSecret) > 0)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (gs *GinServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		gs.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// timerKey maps the URL parameter to a registry key.
func timerKey(c *gin.Context) string {
	key := c.Param("key")
	if key == DefaultKeyParam {
		return ""
	}
	return key
}

func displayKey(key string) string {
	if key == "" {
		return tictoc.DefaultKey
	}
	return key
}

func newTimerView(t tictoc.Timer) api.TimerView {
	v := api.TimerView{Key: t.Key, Start: t.Start, Finished: t.Finished}
	if t.Finished {
		end := t.End
		ns := int64(t.Elapsed)
		v.End = &end
		v.ElapsedNS = &ns
	}
	return v
}

func (gs *GinServer) handleListTimers(c *gin.Context) {
	timers := gs.tracker.Snapshot()
	out := make([]api.TimerView, 0, len(timers))
	for _, t := range timers {
		out = append(out, newTimerView(t))
	}
	c.JSON(http.StatusOK, out)
}

func (gs *GinServer) handleStart(c *gin.Context) {
	key := timerKey(c)
	mark, err := gs.tracker.Start(key)
	if err != nil {
		gs.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.StartResponse{Key: displayKey(key), Start: mark.Time})
}

func (gs *GinServer) handleStop(c *gin.Context) {
	key := timerKey(c)
	mark, err := gs.tracker.Stop(key)
	if err != nil {
		gs.respondError(c, err)
		return
	}
	ms, err := gs.tracker.Elapsed(key, tictoc.Milliseconds)
	if err != nil {
		gs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.StopResponse{Key: displayKey(key), End: mark.Time, ElapsedMS: ms})
}

func (gs *GinServer) handleElapsed(c *gin.Context) {
	key := timerKey(c)
	unit, err := tictoc.ParseUnit(c.Query("unit"))
	if err != nil {
		gs.respondError(c, err)
		return
	}
	n, err := gs.tracker.Elapsed(key, unit)
	if err != nil {
		gs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.ElapsedResponse{Key: displayKey(key), Unit: unit.String(), Elapsed: n})
}

func (gs *GinServer) respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		msg = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		gs.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, api.ErrorResponse{Error: msg, Code: errors.CodeOf(err)})
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(err error) int {
	switch errors.CodeOf(err) {
	case tictoc.CodeTimerAlreadyExists, tictoc.CodeTimerResult, errors.ErrConflict:
		return http.StatusConflict
	case tictoc.CodeTimerNotExists, errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrInvalidInput:
		return http.StatusBadRequest
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
