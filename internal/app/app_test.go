package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/ecocoleta/internal/config"
	"github.com/polkiloo/ecocoleta/internal/metrics"
	testhelpers "github.com/polkiloo/ecocoleta/internal/test"
	"github.com/polkiloo/ecocoleta/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestMonitor(spec string) *worker.OverdueMonitor {
	return worker.NewOverdueMonitor(&testhelpers.PickupSourceStub{}, &testhelpers.GaugeStub{}, spec, time.Second, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestNewOverdueMonitorUsesConfig(t *testing.T) {
	monitor := newOverdueMonitor(monitorParams{
		Facade:  &CollectionFacade{},
		Metrics: metrics.New(),
		Config:  &config.Config{OverdueCheckSpec: "@every 1m", StoreTimeout: time.Second},
		Logger:  discardLogger(),
	})
	if monitor == nil {
		t.Fatal("expected overdue monitor instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	seeder := &testhelpers.AdminSeederStub{}
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond, AdminEmail: "admin@example.org", AdminPassword: "secret"}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Monitor:    newTestMonitor("@every 1h"),
		Seeder:     seeder,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	if seeder.Calls != 1 || seeder.Email != "admin@example.org" {
		t.Fatalf("admin should be seeded from config, got %+v", seeder)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleSeedFailureAbortsStart(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	seeder := &testhelpers.AdminSeederStub{Err: errors.New("db down")}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{},
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "127.0.0.1:0"},
		Monitor:    newTestMonitor("@every 1h"),
		Seeder:     seeder,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	if err := recorder.Hooks[0].OnStart(context.Background()); !errors.Is(err, seeder.Err) {
		t.Fatalf("expected seed error, got %v", err)
	}
}

func TestRegisterLifecycleBadMonitorSpec(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{},
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "127.0.0.1:0"},
		Monitor:    newTestMonitor("every now and then"),
		Seeder:     &testhelpers.AdminSeederStub{},
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	if err := recorder.Hooks[0].OnStart(context.Background()); err == nil {
		t.Fatal("expected monitor start error")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "bad addr"},
		Monitor:    newTestMonitor("@every 1h"),
		Seeder:     &testhelpers.AdminSeederStub{},
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderAppend(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(fx.Hook{})
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected hook to be appended")
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
}
