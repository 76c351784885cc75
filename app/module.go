package app

import (
	"github.com/Gthulhu/cpupower/backend"
	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/governor"
	"github.com/Gthulhu/cpupower/rest"
	"github.com/Gthulhu/cpupower/service"
	"github.com/Gthulhu/cpupower/usage"
	"github.com/Gthulhu/cpupower/workload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

func ConfigModule(cfg config.CPUPowerConfig) fx.Option {
	return fx.Options(
		fx.Provide(func() config.CPUPowerConfig {
			return cfg
		}),
		fx.Provide(func(c config.CPUPowerConfig) config.ServerConfig {
			return c.Server
		}),
		fx.Provide(func(c config.CPUPowerConfig) config.SamplerConfig {
			return c.Sampler
		}),
		fx.Provide(func(c config.CPUPowerConfig) config.BackendConfig {
			return c.Backend
		}),
		fx.Provide(func(c config.CPUPowerConfig) config.WorkloadConfig {
			return c.Workload
		}),
		fx.Provide(func(c config.CPUPowerConfig) config.TokenConfig {
			return c.Token
		}),
		fx.Provide(DeviceLimits),
	)
}

func DeviceLimits(c config.CPUPowerConfig) domain.DeviceLimits {
	return domain.DeviceLimits{
		MinSamplingRate:  c.Limits.MinSamplingRate,
		MinDownThreshold: c.Limits.MinDownThreshold,
		MinRateLimit:     c.Limits.MinRateLimit,
		MaxRateLimit:     c.Limits.MaxRateLimit,
	}
}

// BackendModule provides the device collaborators: the governor backend and the counter source.
func BackendModule(configModule fx.Option) fx.Option {
	return fx.Options(
		configModule,
		fx.Provide(backend.New),
		fx.Provide(func(cfg config.SamplerConfig) domain.StatSource {
			return usage.NewProcStatSource(cfg.StatPath, 1+cfg.MaxCores)
		}),
	)
}

// MetricsModule provides a dedicated prometheus registry with the go and process collectors.
func MetricsModule() fx.Option {
	return fx.Options(
		fx.Provide(func() *prometheus.Registry {
			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			return registry
		}),
		fx.Provide(func(r *prometheus.Registry) prometheus.Registerer { return r }),
		fx.Provide(func(r *prometheus.Registry) prometheus.Gatherer { return r }),
	)
}

// ServiceModule creates an Fx module that provides the service layer, return domain.Service
func ServiceModule(backendModule fx.Option) fx.Option {
	return fx.Options(
		backendModule,
		MetricsModule(),
		fx.Provide(usage.NewSampler),
		fx.Provide(governor.NewCatalog),
		fx.Provide(governor.NewSessionManager),
		fx.Provide(fx.Annotate(workload.NewPiJob, fx.As(new(domain.Workload)))),
		fx.Provide(fx.Annotate(service.NewService, fx.As(new(domain.Service)))),
	)
}

// HandlerModule creates an Fx module that provides the REST handler, return *rest.Handler
func HandlerModule(configName string, configPath string) (fx.Option, error) {
	cfg, err := config.InitCPUPowerConfig(configName, configPath, false)
	if err != nil {
		return nil, err
	}
	return HandlerModuleWithConfig(cfg), nil
}

func HandlerModuleWithConfig(cfg config.CPUPowerConfig) fx.Option {
	return fx.Options(
		ServiceModule(BackendModule(ConfigModule(cfg))),
		fx.Provide(rest.NewHandler),
	)
}
