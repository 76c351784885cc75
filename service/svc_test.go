package service_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Gthulhu/cpupower/backend"
	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/governor"
	"github.com/Gthulhu/cpupower/service"
	"github.com/Gthulhu/cpupower/usage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var testLimits = domain.DeviceLimits{
	MinSamplingRate:  10000,
	MinDownThreshold: 11,
	MinRateLimit:     0,
	MaxRateLimit:     1000000,
}

type fixture struct {
	svc      *service.Service
	mem      *backend.Memory
	source   *domain.MockStatSource
	workload *domain.MockWorkload
	sampler  *usage.Sampler
	registry *prometheus.Registry
}

// setupFakeProc writes a meminfo file the way the kernel formats it.
func setupFakeProc(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	meminfo := "MemTotal:        2048000 kB\nMemFree:          512000 kB\nMemAvailable:    1024000 kB\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "meminfo"), []byte(meminfo), 0644))
	return root
}

func newFixture(t *testing.T, tokenCfg config.TokenConfig) *fixture {
	t.Helper()
	t.Setenv("MACHINE_ID", "test-machine")
	f := &fixture{
		mem:      backend.NewMemory(),
		source:   domain.NewMockStatSource(t),
		workload: domain.NewMockWorkload(t),
		registry: prometheus.NewRegistry(),
	}
	f.sampler = usage.NewSampler(f.source, config.SamplerConfig{
		SampleDelay: time.Millisecond,
		CycleDelay:  time.Millisecond,
		MaxCores:    4,
	})
	svc, err := service.NewService(service.Params{
		Sampler:       f.sampler,
		Sessions:      governor.NewSessionManager(governor.NewCatalog(), f.mem, testLimits),
		Backend:       f.mem,
		Workload:      f.workload,
		BackendConfig: config.BackendConfig{Kind: backend.KindMemory, ProcRoot: setupFakeProc(t)},
		TokenConfig:   tokenCfg,
		Registerer:    f.registry,
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

// generateKeyPair returns a PKCS#1 private key PEM and the matching PKIX public key PEM.
func generateKeyPair(t *testing.T) (string, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return string(privPEM), string(pubPEM)
}

func TestNewServiceRequiresKeyWhenTokenEnabled(t *testing.T) {
	_, err := service.NewService(service.Params{
		Sampler:     usage.NewSampler(domain.NewMockStatSource(t), config.SamplerConfig{}),
		Sessions:    governor.NewSessionManager(governor.NewCatalog(), backend.NewMemory(), testLimits),
		Backend:     backend.NewMemory(),
		Workload:    domain.NewMockWorkload(t),
		TokenConfig: config.TokenConfig{Enable: true},
		Registerer:  prometheus.NewRegistry(),
	})
	require.Error(t, err)
}

func TestNewServiceRejectsDuplicateRegistration(t *testing.T) {
	f := newFixture(t, config.TokenConfig{})
	_, err := service.NewService(service.Params{
		Sampler:    f.sampler,
		Sessions:   governor.NewSessionManager(governor.NewCatalog(), f.mem, testLimits),
		Backend:    f.mem,
		Workload:   f.workload,
		Registerer: f.registry,
	})
	require.Error(t, err)
}
