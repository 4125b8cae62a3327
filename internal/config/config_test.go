package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return v
}

func TestDefaults(t *testing.T) {
	cfg := fromViper(newTestViper())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 32, cfg.Server.MaxUploadMB)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 20.0, cfg.Analysis.ProfitabilityAlertPct)
	assert.Equal(t, 0.20, cfg.Analysis.LowMarginRatio)
	assert.Equal(t, 0.25, cfg.Analysis.TargetMarginRatio)
	assert.False(t, cfg.Storage.Enabled())
	assert.False(t, cfg.Drive.Enabled())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_MODE", "release")
	t.Setenv("ANALYSIS_PROFITABILITY_ALERT_PCT", "15.5")
	t.Setenv("STORAGE_ENDPOINT", "localhost:9000")
	t.Setenv("STORAGE_BUCKET", "pyme")
	t.Setenv("STORAGE_USE_SSL", "false")
	t.Setenv("GOOGLE_DRIVE_CREDENTIALS_JSON", `{"type":"service_account"}`)

	cfg := fromViper(newTestViper())

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 15.5, cfg.Analysis.ProfitabilityAlertPct)
	assert.True(t, cfg.Storage.Enabled())
	assert.False(t, cfg.Storage.UseSSL)
	assert.True(t, cfg.Drive.Enabled())
}

func TestLoad_LeavesDataDirUntouched(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "output")
	t.Setenv("APP_DATA_DIR", dir)

	cfg := Load()
	require.NotNil(t, cfg)
	assert.Equal(t, dir, cfg.App.DataDir)

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "data dir is created by writers on demand")
}
