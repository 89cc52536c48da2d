package main

import (
	"context"
	"log/slog"
	"os"

	"taskboard/config"
	"taskboard/internal/delivery"
	"taskboard/internal/delivery/api"
	"taskboard/internal/delivery/api/middleware"
	"taskboard/internal/delivery/api/router/handler"
	"taskboard/internal/domain/repository"
	"taskboard/internal/infra/auth"
	"taskboard/internal/infra/auth/google"
	logs "taskboard/internal/infra/log"
	"taskboard/internal/infra/persistence/memory"
	"taskboard/internal/infra/persistence/postgres"
	"taskboard/internal/metrics"
	"taskboard/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		fx.Annotate(
			metrics.NewRegistry,
			fx.As(new(prometheus.Registerer)),
			fx.As(new(prometheus.Gatherer)),
		),
		fx.Annotate(
			metrics.NewCollector,
			fx.As(new(metrics.Recorder)),
		),
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		newAccountDirectory,
	)
}

// newAccountDirectory picks the directory backend named by storage.driver.
// The postgres pool is only opened when it is selected.
func newAccountDirectory(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (repository.AccountDirectory, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		logger.Warn("Using in-memory account directory, accounts are lost on restart")

		return memory.NewAccountRepository(), nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: lc,
		Config:    cfg,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return postgres.NewAccountRepository(db), nil
}

func injectService() fx.Option {
	return fx.Provide(
		auth.NewBcryptHasher,
		auth.NewJWTService,
		google.NewIDTokenVerifier,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewAuthService,
		impl.NewAccountService,
	)
}

func injectMiddleware() fx.Option {
	return fx.Provide(
		middleware.NewSessionGate,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewAuthHandler,
		handler.NewAccountHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			api.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
