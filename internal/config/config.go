package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"incosedss/adapters/excel"
	"incosedss/internal/errors"
	"incosedss/internal/insights"
	"incosedss/internal/resolver"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the service reads
const EnvPrefix = "DSS"

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig  `envconfig:"SERVER"`
	Ops      OpsConfig     `envconfig:"OPS"`
	Upload   UploadConfig  `envconfig:"UPLOAD"`
	Session  SessionConfig `envconfig:"SESSION"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"INFO" validate:"oneof=ERROR WARN WARNING INFO DEBUG TRACE error warn warning info debug trace"`

	// ReportFile optionally points at a YAML file overriding Report.
	ReportFile string       `envconfig:"REPORT_CONFIG"`
	Report     ReportConfig `ignored:"true"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	GinMode         string        `envconfig:"GIN_MODE" default:"release" validate:"oneof=debug release test"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"30s" validate:"gt=0"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"60s" validate:"gt=0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
}

// OpsConfig holds the health, metrics and profiling listener settings
type OpsConfig struct {
	Enabled bool   `envconfig:"ENABLED" default:"true"`
	Port    string `envconfig:"PORT" default:"6060" validate:"omitempty,numeric"`
}

// UploadConfig bounds what a single upload may cost
type UploadConfig struct {
	MaxBytes            int64 `envconfig:"MAX_BYTES" default:"20971520" validate:"gt=0"`
	MaxConcurrentParses int64 `envconfig:"MAX_CONCURRENT_PARSES" default:"4" validate:"gte=1"`
}

// SessionConfig controls how long uploaded tables are held
type SessionConfig struct {
	TTL           time.Duration `envconfig:"TTL" default:"2h" validate:"gt=0"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"5m" validate:"gt=0"`
	MaxEntries    int           `envconfig:"MAX_ENTRIES" default:"500" validate:"gte=1"`
	CookieName    string        `envconfig:"COOKIE_NAME" default:"dss_session" validate:"required"`
}

// ReportConfig holds the survey specific rules
type ReportConfig struct {
	Rules      []resolver.Rule     `yaml:"rules" validate:"required,min=1,dive"`
	Thresholds insights.Thresholds `yaml:"thresholds"`
	Reader     excel.ReaderConfig  `yaml:"reader"`
}

// DefaultReportConfig returns the rules for the INCOSE India questionnaire
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Rules:      resolver.DefaultRules(),
		Thresholds: insights.DefaultThresholds(),
		Reader:     excel.DefaultReaderConfig(),
	}
}

// Load reads configuration from environment variables and the optional report
// file, then validates it
func Load() (*Config, error) {
	cfg := &Config{Report: DefaultReportConfig()}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load environment configuration")
	}

	if cfg.ReportFile != "" {
		report, err := LoadReportFile(cfg.ReportFile)
		if err != nil {
			return nil, err
		}
		cfg.Report = report
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadReportFile reads a YAML report configuration. Sections the file leaves
// out keep their defaults.
func LoadReportFile(path string) (ReportConfig, error) {
	report := DefaultReportConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		return report, errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to read report config %s", path)
	}
	if err := yaml.Unmarshal(content, &report); err != nil {
		return report, errors.Wrapf(errors.ConfigInvalid(err.Error()), "failed to parse report config %s", path)
	}
	return report, nil
}

var validate = validator.New()

// Validate checks struct constraints on the configuration
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(errors.ConfigInvalid(describe(err)), "configuration validation failed")
	}
	return nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
