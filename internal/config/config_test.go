package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"incosedss/domain/survey"
	"incosedss/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, int64(20<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, int64(4), cfg.Upload.MaxConcurrentParses)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "dss_session", cfg.Session.CookieName)
	assert.True(t, cfg.Ops.Enabled)
	assert.Len(t, cfg.Report.Rules, 4)
	assert.Equal(t, 10, cfg.Report.Thresholds.GuidanceRisk)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DSS_SERVER_PORT", "9090")
	t.Setenv("DSS_SESSION_TTL", "30m")
	t.Setenv("DSS_OPS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.False(t, cfg.Ops.Enabled)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("DSS_SERVER_PORT", "http")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_ReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	content := `
rules:
  - role: membership
    keywords: [member]
  - role: confidence
    keywords: [decide]
  - role: expectation
    keywords: [expect]
  - role: domain
    keywords: [sector]
thresholds:
  guidance_risk: 5
  conversion_opportunity: 8
  focus_domain: Aerospace
  focus_domain_rank: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("DSS_REPORT_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, survey.RoleDomain, cfg.Report.Rules[3].Role)
	assert.Equal(t, []string{"sector"}, cfg.Report.Rules[3].Keywords)
	assert.Equal(t, 5, cfg.Report.Thresholds.GuidanceRisk)
	assert.Equal(t, "Aerospace", cfg.Report.Thresholds.FocusDomain)
	assert.NotEmpty(t, cfg.Report.Reader.MissingTokens, "omitted sections keep defaults")
}

func TestLoad_ReportFileRejectsUnknownRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - role: salary\n    keywords: [pay]\n"), 0o600))
	t.Setenv("DSS_REPORT_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadReportFile_Missing(t *testing.T) {
	_, err := LoadReportFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
