package app

import (
	"context"
	"net/http"

	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/pkg/logger"
	"github.com/Gthulhu/cpupower/rest"
	"github.com/Gthulhu/cpupower/usage"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

func NewRestApp(configName string, configDirPath string) (*fx.App, error) {
	handlerModule, err := HandlerModule(configName, configDirPath)
	if err != nil {
		return nil, err
	}
	return newRestApp(handlerModule), nil
}

// NewRestAppWithConfig builds the server from an already loaded config.
func NewRestAppWithConfig(cfg config.CPUPowerConfig) *fx.App {
	return newRestApp(HandlerModuleWithConfig(cfg))
}

func newRestApp(handlerModule fx.Option) *fx.App {
	return fx.New(
		handlerModule,
		fx.Invoke(StartRestApp),
		fx.Invoke(StartUsageSampler),
		fx.Invoke(StopWorkloadOnShutdown),
	)
}

func StartRestApp(lc fx.Lifecycle, cfg config.ServerConfig, handler *rest.Handler) error {
	engine := echo.New()
	engine.HideBanner = true
	handler.SetupRoutes(engine)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverHost := cfg.Host
			if serverHost == "" {
				serverHost = ":8080"
			}
			go func() {
				logger.Logger(ctx).Info().Msgf("starting rest server on port %s", serverHost)
				if err := engine.Start(serverHost); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Logger(ctx).Fatal().Err(err).Msgf("start rest server fail on port %s", serverHost)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down rest server")
			return engine.Shutdown(ctx)
		},
	})

	return nil
}

// StartUsageSampler runs the sampling loop for the lifetime of the app. The loop
// does not inherit the start hook's context, which is cancelled once startup ends.
func StartUsageSampler(lc fx.Lifecycle, sampler *usage.Sampler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sampler.Start(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sampler.Stop()
			logger.Logger(ctx).Info().Uint64("samples", sampler.Samples()).Msg("usage sampler stopped")
			return nil
		},
	})
}

func StopWorkloadOnShutdown(lc fx.Lifecycle, workload domain.Workload) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := workload.Cancel(); err != nil && !errors.Is(err, domain.ErrWorkloadIdle) {
				return err
			}
			return nil
		},
	})
}
