package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/ecocoleta/internal/config"
	"github.com/polkiloo/ecocoleta/internal/metrics"
	"github.com/polkiloo/ecocoleta/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewCollectionFacade,
		newHTTPServer,
		newOverdueMonitor,
		func(f *CollectionFacade) AdminSeeder { return f },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type monitorParams struct {
	fx.In

	Facade  *CollectionFacade
	Metrics *metrics.Metrics
	Config  *config.Config
	Logger  *slog.Logger
}

func newOverdueMonitor(p monitorParams) *worker.OverdueMonitor {
	return worker.NewOverdueMonitor(
		p.Facade,
		p.Metrics,
		p.Config.OverdueCheckSpec,
		p.Config.StoreTimeout,
		p.Logger,
	)
}

// AdminSeeder creates the bootstrap administrator.
type AdminSeeder interface {
	EnsureAdmin(ctx context.Context, email, password string) error
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Monitor    *worker.OverdueMonitor
	Seeder     AdminSeeder
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Seeder.EnsureAdmin(ctx, p.Config.AdminEmail, p.Config.AdminPassword); err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			if err := p.Monitor.Start(ctx); err != nil {
				return fmt.Errorf("start overdue monitor: %w", err)
			}
			p.Logger.Info("starting ecocoleta", slog.String("addr", p.Server.Addr))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Monitor.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("ecocoleta stopped")
			return nil
		},
	})
}
