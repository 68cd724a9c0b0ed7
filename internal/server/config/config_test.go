package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"server"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	require.Equal(t, ":8080", c.EndpointAddrHTTP)
	require.Equal(t, 30*time.Second, c.ClassifierTimeout)
	require.Equal(t, 15*time.Minute, c.ReportURLTTL)
	require.False(t, c.StrictDates)
	require.NotEmpty(t, c.DatabaseDSN)
	require.NotEmpty(t, c.ClassifierEndpoint)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	setArgs(t)
	t.Setenv("CLASSIFIER_TOKEN", "hf_secret")
	t.Setenv("DATABASE_DSN", "postgres://env/db")

	c := LoadConfig()
	require.Equal(t, "hf_secret", c.ClassifierToken)
	require.Equal(t, "postgres://env/db", c.DatabaseDSN)
}

func TestLoadConfig_FlagsOverrideEverything(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://env/db")
	setArgs(t, "-a", ":9999", "-d", "postgres://flag/db", "-t", "5", "-x", "-r", "1")

	c := LoadConfig()
	require.Equal(t, ":9999", c.EndpointAddrHTTP)
	require.Equal(t, "postgres://flag/db", c.DatabaseDSN)
	require.Equal(t, 5*time.Second, c.ClassifierTimeout)
	require.Equal(t, time.Minute, c.ReportURLTTL)
	require.True(t, c.StrictDates)
}

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
		"endpoint_addr_http": ":7070",
		"database_dsn": "postgres://json/db",
		"classifier_endpoint": "http://clf.local",
		"classifier_token": "tok",
		"classifier_timeout_sec": 10,
		"strict_dates": true,
		"s3_root_user": "root",
		"s3_root_password": "pw",
		"s3_bucket": "b",
		"s3_region": "r",
		"s3_base_endpoint": "http://s3.local/",
		"report_url_ttl_min": 3
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	setArgs(t, "-c", path)

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	require.Equal(t, ":7070", c.EndpointAddrHTTP)
	require.Equal(t, "postgres://json/db", c.DatabaseDSN)
	require.Equal(t, "http://clf.local", c.ClassifierEndpoint)
	require.Equal(t, "tok", c.ClassifierToken)
	require.Equal(t, 10*time.Second, c.ClassifierTimeout)
	require.True(t, c.StrictDates)
	require.Equal(t, 3*time.Minute, c.ReportURLTTL)
}

func TestParseJson_NoFileFlagIsNoop(t *testing.T) {
	setArgs(t)

	c := &Config{}
	c.LoadDefaults()
	before := *c
	parseJson(c)
	require.Equal(t, before, *c)
}
