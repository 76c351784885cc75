package service

import (
	"crypto/rsa"
	"fmt"

	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/governor"
	"github.com/Gthulhu/cpupower/pkg/util"
	"github.com/Gthulhu/cpupower/usage"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Params holds the parameters for creating a new Service
type Params struct {
	fx.In
	Sampler       *usage.Sampler
	Sessions      *governor.SessionManager
	Backend       domain.GovernorBackend
	Workload      domain.Workload
	BackendConfig config.BackendConfig
	TokenConfig   config.TokenConfig
	Registerer    prometheus.Registerer `optional:"true"`
}

// NewService creates a new Service instance
func NewService(params Params) (*Service, error) {
	svc := &Service{
		sampler:     params.Sampler,
		sessions:    params.Sessions,
		backend:     params.Backend,
		workload:    params.Workload,
		procRoot:    params.BackendConfig.ProcRoot,
		tokenConfig: params.TokenConfig,
	}
	if params.TokenConfig.RsaPrivateKeyPem != "" {
		privateKey, err := util.InitRSAPrivateKey(params.TokenConfig.RsaPrivateKeyPem)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT private key: %v", err)
		}
		svc.jwtPrivateKey = privateKey
	} else if params.TokenConfig.Enable {
		return nil, fmt.Errorf("token auth is enabled but no rsa private key is configured")
	}

	registerer := params.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	svc.metricCollector = NewMetricCollector(util.GetMachineID(), params.Sampler, params.Sessions)
	if err := registerer.Register(svc.metricCollector); err != nil {
		return nil, fmt.Errorf("failed to register metric collector: %v", err)
	}
	return svc, nil
}

// Service composes the usage sampler, the governor session manager, the device backend
// and the load generator behind domain.Service.
type Service struct {
	sampler         *usage.Sampler
	sessions        *governor.SessionManager
	backend         domain.GovernorBackend
	workload        domain.Workload
	procRoot        string
	metricCollector *MetricCollector
	jwtPrivateKey   *rsa.PrivateKey
	tokenConfig     config.TokenConfig
}

var _ domain.Service = (*Service)(nil)
