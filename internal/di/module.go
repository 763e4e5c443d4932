package di

import (
	"github.com/polkiloo/ecocoleta/internal/app"
	"github.com/polkiloo/ecocoleta/internal/config"
	"github.com/polkiloo/ecocoleta/internal/logger"
	"github.com/polkiloo/ecocoleta/internal/metrics"
	"github.com/polkiloo/ecocoleta/internal/pkg/auth"
	"github.com/polkiloo/ecocoleta/internal/server/http/handlers"
	"github.com/polkiloo/ecocoleta/internal/server/http/router"
	"github.com/polkiloo/ecocoleta/internal/storage/postgres"
	"github.com/polkiloo/ecocoleta/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		metrics.Module,
		usecase.Module,
		fx.Provide(func(f *app.CollectionFacade) handlers.CollectionFacade { return f }),
		fx.Provide(func(s *postgres.Storage) handlers.HealthChecker { return s }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
