package api_test

import (
	"context"
	stderrors "errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"

	"github.com/all-dot-files/tictoc/internal/api"
	"github.com/all-dot-files/tictoc/internal/server"
	"github.com/all-dot-files/tictoc/internal/tracker"
	"github.com/all-dot-files/tictoc/pkg/errors"
	"github.com/all-dot-files/tictoc/pkg/logger"
	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

func newServer(t *testing.T, secret string) (*httptest.Server, *clock.Mock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mock := clock.NewMock()
	tr := tracker.New(tictoc.New(tictoc.WithClock(mock)), nil, logger.Discard())
	gs := server.NewGinServer(server.Options{Tracker: tr, JWTSecret: []byte(secret), Logger: logger.Discard()})
	ts := httptest.NewServer(gs.Handler())
	t.Cleanup(ts.Close)
	return ts, mock
}

func TestClientLifecycle(t *testing.T) {
	ts, mock := newServer(t, "")
	c := api.NewClient(ts.URL+"/", "")
	ctx := context.Background()

	if _, err := c.Start(ctx, "build"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	mock.Add(1500 * time.Millisecond)

	stop, err := c.Stop(ctx, "build")
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if stop.ElapsedMS != 1500 {
		t.Errorf("elapsed_ms = %d, want 1500", stop.ElapsedMS)
	}

	el, err := c.Elapsed(ctx, "build", "s")
	if err != nil {
		t.Fatalf("Elapsed failed: %v", err)
	}
	if el.Elapsed != 1 || el.Unit != "s" {
		t.Errorf("Elapsed = %+v, want 1 s", el)
	}

	timers, err := c.Timers(ctx)
	if err != nil {
		t.Fatalf("Timers failed: %v", err)
	}
	if len(timers) != 1 || !timers[0].Finished || *timers[0].ElapsedNS != int64(1500*time.Millisecond) {
		t.Errorf("Timers = %+v", timers)
	}
}

func TestClientDefaultKey(t *testing.T) {
	ts, _ := newServer(t, "")
	c := api.NewClient(ts.URL, "")

	start, err := c.Start(context.Background(), "")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if start.Key != tictoc.DefaultKey {
		t.Errorf("key = %q, want %q", start.Key, tictoc.DefaultKey)
	}
}

func TestClientErrorsCarryCodes(t *testing.T) {
	ts, _ := newServer(t, "")
	c := api.NewClient(ts.URL, "")
	ctx := context.Background()

	if _, err := c.Stop(ctx, "ghost"); !stderrors.Is(err, tictoc.ErrTimerNotExists) {
		t.Errorf("Stop error = %v, want ErrTimerNotExists", err)
	}
	c.Start(ctx, "dup")
	if _, err := c.Start(ctx, "dup"); !stderrors.Is(err, tictoc.ErrTimerAlreadyExists) {
		t.Errorf("Start error = %v, want ErrTimerAlreadyExists", err)
	}
	if _, err := c.Elapsed(ctx, "dup", ""); !stderrors.Is(err, tictoc.ErrTimerResult) {
		t.Errorf("Elapsed error = %v, want ErrTimerResult", err)
	}
	if _, err := c.Elapsed(ctx, "dup", "parsecs"); !errors.IsCode(err, errors.ErrInvalidInput) {
		t.Errorf("Elapsed error = %v, want INVALID_INPUT", err)
	}
}

func TestClientToken(t *testing.T) {
	ts, _ := newServer(t, "s3cret")
	ctx := context.Background()

	c := api.NewClient(ts.URL, "")
	if _, err := c.Timers(ctx); !errors.IsCode(err, errors.ErrUnauthorized) {
		t.Fatalf("unauthenticated error = %v, want UNAUTHORIZED", err)
	}

	token, err := server.IssueToken([]byte("s3cret"), "ci", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	c.SetToken(token)
	if _, err := c.Timers(ctx); err != nil {
		t.Errorf("authenticated Timers failed: %v", err)
	}
}

func TestClientRejectsSlashKeys(t *testing.T) {
	ts, _ := newServer(t, "")
	c := api.NewClient(ts.URL, "")
	ctx := context.Background()

	if _, err := c.Start(ctx, "ci/build"); !errors.IsCode(err, errors.ErrInvalidInput) {
		t.Errorf("Start error = %v, want INVALID_INPUT", err)
	}
	if _, err := c.Stop(ctx, "ci/build"); !errors.IsCode(err, errors.ErrInvalidInput) {
		t.Errorf("Stop error = %v, want INVALID_INPUT", err)
	}
	if _, err := c.Elapsed(ctx, "ci/build", "ms"); !errors.IsCode(err, errors.ErrInvalidInput) {
		t.Errorf("Elapsed error = %v, want INVALID_INPUT", err)
	}

	if _, err := c.Start(ctx, "ci build"); err != nil {
		t.Errorf("Start with escaped key failed: %v", err)
	}
}
