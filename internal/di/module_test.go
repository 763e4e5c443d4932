package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/polkiloo/ecocoleta/internal/app"
	"github.com/polkiloo/ecocoleta/internal/config"
	"github.com/polkiloo/ecocoleta/internal/domain/repository"
	"github.com/polkiloo/ecocoleta/internal/metrics"
	"github.com/polkiloo/ecocoleta/internal/storage/postgres"
	"github.com/polkiloo/ecocoleta/internal/test"
	"go.uber.org/fx"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:       ":0",
		DatabaseURI:      "postgres://stub",
		TokenSecret:      "secret",
		TokenStrategy:    config.TokenStrategyJWT,
		TokenTTL:         time.Hour,
		ShutdownTimeout:  time.Millisecond,
		StoreTimeout:     time.Second,
		OverdueCheckSpec: "@every 1m",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	userRepo := test.NewUserRepositoryStub()
	orderRepo := test.NewOrderRepositoryStub()

	var (
		facade *app.CollectionFacade
		engine *gin.Engine
		m      *metrics.Metrics
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.UserRepository(userRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
		),
		fx.Populate(&facade, &engine, &m),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected collection facade instance")
	}
	if engine == nil || m == nil {
		t.Fatal("expected router and metrics to be wired")
	}
}
