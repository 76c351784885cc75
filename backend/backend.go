package backend

import (
	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/domain"
	"github.com/pkg/errors"
)

const (
	KindSysfs  = "sysfs"
	KindMemory = "memory"
)

// New returns the governor backend selected by cfg.Kind.
func New(cfg config.BackendConfig) (domain.GovernorBackend, error) {
	switch cfg.Kind {
	case "", KindSysfs:
		return NewSysfs(cfg), nil
	case KindMemory:
		return NewMemory(), nil
	}
	return nil, errors.Wrapf(domain.ErrUnsupportedBackend, "kind %q", cfg.Kind)
}
