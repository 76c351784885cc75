package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type SamplerConfig struct {
	StatPath    string        `mapstructure:"stat_path"`
	SampleDelay time.Duration `mapstructure:"sample_delay"`
	CycleDelay  time.Duration `mapstructure:"cycle_delay"`
	MaxCores    int           `mapstructure:"max_cores"`
}

type BackendConfig struct {
	// Kind selects the governor backend: "sysfs" or "memory".
	Kind              string        `mapstructure:"kind"`
	SysfsRoot         string        `mapstructure:"sysfs_root"`
	ThermalZone       string        `mapstructure:"thermal_zone"`
	ProcRoot          string        `mapstructure:"proc_root"`
	FrequencyCacheTTL time.Duration `mapstructure:"frequency_cache_ttl"`
}

// LimitsConfig holds device bounds the kernel does not report.
type LimitsConfig struct {
	MinSamplingRate  int64 `mapstructure:"min_sampling_rate"`
	MinDownThreshold int64 `mapstructure:"min_down_threshold"`
	MinRateLimit     int64 `mapstructure:"min_rate_limit"`
	MaxRateLimit     int64 `mapstructure:"max_rate_limit"`
}

type WorkloadConfig struct {
	MaxDigits int64 `mapstructure:"max_digits"`
}

type TokenConfig struct {
	Enable           bool   `mapstructure:"enable"`
	RsaPrivateKeyPem string `mapstructure:"rsa_private_key_pem"`
	TokenDurationHr  int    `mapstructure:"token_duration_hr"` // in hours
}

type CPUPowerConfig struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Sampler  SamplerConfig  `mapstructure:"sampler"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Workload WorkloadConfig `mapstructure:"workload"`
	Token    TokenConfig    `mapstructure:"token"`
}

var (
	cpuPowerCfg *CPUPowerConfig
)

func GetConfig() *CPUPowerConfig {
	return cpuPowerCfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("sampler.stat_path", "/proc/stat")
	v.SetDefault("sampler.sample_delay", 250*time.Millisecond)
	v.SetDefault("sampler.cycle_delay", 500*time.Millisecond)
	v.SetDefault("sampler.max_cores", 4)
	v.SetDefault("backend.kind", "sysfs")
	v.SetDefault("backend.sysfs_root", "/sys/devices/system/cpu")
	v.SetDefault("backend.thermal_zone", "/sys/class/thermal/thermal_zone0")
	v.SetDefault("backend.proc_root", "/proc")
	v.SetDefault("backend.frequency_cache_ttl", 30*time.Second)
	v.SetDefault("limits.min_sampling_rate", 10000)
	v.SetDefault("limits.min_down_threshold", 11)
	v.SetDefault("limits.min_rate_limit", 0)
	v.SetDefault("limits.max_rate_limit", 1000000)
	v.SetDefault("workload.max_digits", 30000000)
	v.SetDefault("token.enable", false)
	v.SetDefault("token.token_duration_hr", 24)
}

// InitCPUPowerConfig reads the TOML config named configName from configPath (and the
// repository config dir). A missing file is tolerated when allowMissing is set, in
// which case defaults and CPUPOWER_* environment variables apply.
func InitCPUPowerConfig(configName string, configPath string, allowMissing bool) (CPUPowerConfig, error) {
	var cfg CPUPowerConfig
	v := viper.New()
	setDefaults(v)
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName == "" {
		configName = "cpupower_config"
	}
	v.AddConfigPath(GetAbsPath("config"))
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.SetEnvPrefix("CPUPOWER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	err := v.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || !allowMissing {
			return cfg, err
		}
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return cfg, err
	}
	cpuPowerCfg = &cfg
	return cfg, nil
}

// GetAbsPath returns the absolute path by joining the given paths with the project root directory
func GetAbsPath(paths ...string) string {
	_, filePath, _, _ := runtime.Caller(1)
	basePath := filepath.Dir(filePath)
	rootPath := filepath.Join(basePath, "..")
	return filepath.Join(rootPath, filepath.Join(paths...))
}
