package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, PolicySourceNone, cfg.Policy.Source)
	assert.Equal(t, StoreMemory, cfg.Lookup.Store)
	assert.Equal(t, 32, cfg.Lookup.MaxRedactionDepth)
	assert.Equal(t, 3*time.Second, cfg.Lookup.QueryTimeout)
	assert.Equal(t, 120, cfg.Lookup.RateLimit)
	assert.Equal(t, time.Minute, cfg.Lookup.RateLimitWindow)
	assert.Equal(t, "rdap:policy", cfg.Policy.Channel)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rdapd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  admin_token: from-file
database:
  url: postgres://rdap@localhost/rdap?sslmode=disable
policy:
  source: postgres
lookup:
  store: postgres
  cache_ttl: 90s
log:
  level: debug
  format: text
`), 0o600))
	t.Setenv("RDAP_SERVER_ADMIN_TOKEN", "from-env")
	t.Setenv("RDAP_LOOKUP_MAX_REDACTION_DEPTH", "16")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.Server.AdminToken)
	assert.Equal(t, 16, cfg.Lookup.MaxRedactionDepth)
	assert.Equal(t, 90*time.Second, cfg.Lookup.CacheTTL)
	assert.Equal(t, PolicySourcePostgres, cfg.Policy.Source)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{name: "unknown policy source", env: map[string]string{"RDAP_POLICY_SOURCE": "ldap"}, msg: "Source"},
		{name: "file source without path", env: map[string]string{"RDAP_POLICY_SOURCE": "file"}, msg: "File"},
		{name: "postgres policy without database", env: map[string]string{"RDAP_POLICY_SOURCE": "postgres"}, msg: "requires database.url"},
		{name: "postgres store without database", env: map[string]string{"RDAP_LOOKUP_STORE": "postgres"}, msg: "requires database.url"},
		{name: "zero redaction depth", env: map[string]string{"RDAP_LOOKUP_MAX_REDACTION_DEPTH": "0"}, msg: "MaxRedactionDepth"},
		{name: "negative rate limit", env: map[string]string{"RDAP_LOOKUP_RATE_LIMIT": "-1"}, msg: "RateLimit"},
		{name: "unknown log level", env: map[string]string{"RDAP_LOG_LEVEL": "verbose"}, msg: "Level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
