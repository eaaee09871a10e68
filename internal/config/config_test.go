package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tarjan/internal/config"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	c, err := config.FromLookup(lookupFrom(nil))
	require.NoError(t, err)
	require.Equal(t, config.Default(), c)
	require.Equal(t, filepath.Join("data", "relatives.json"), c.RelativesPath())
	require.Equal(t, filepath.Join("data", "transport_modes.json"), c.ModesPath())
}

func TestFromLookup_Overrides(t *testing.T) {
	c, err := config.FromLookup(lookupFrom(map[string]string{
		"TARJAN_DATA_DIR":       "/srv/tarjan",
		"TARJAN_MODES_FILE":     "/etc/modes.json",
		"TARJAN_STORE":          "Postgres",
		"TARJAN_DATABASE_URL":   "postgres://u:p@localhost/tarjan?sslmode=disable",
		"TARJAN_WORKERS":        " 4 ",
		"TARJAN_MAX_NODES":      "10",
		"TARJAN_TRACE":          "STDOUT",
		"TARJAN_HTTP_ADDR":      "127.0.0.1:9090",
		"LOG_FORMAT":            "json",
		"TARJAN_RELATIVES_FILE": "family.json",
	}))
	require.NoError(t, err)
	require.Equal(t, config.StorePostgres, c.Store)
	require.Equal(t, 4, c.Workers)
	require.Equal(t, 10, c.MaxNodes)
	require.Equal(t, config.TraceStdout, c.Trace)
	require.Equal(t, "127.0.0.1:9090", c.HTTPAddr)
	require.Equal(t, "/srv/tarjan/family.json", c.RelativesPath())
	require.Equal(t, "/etc/modes.json", c.ModesPath())
}

func TestFromLookup_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"WorkersNaN":       {"TARJAN_WORKERS": "many"},
		"WorkersNegative":  {"TARJAN_WORKERS": "-1"},
		"MaxNodesTooLarge": {"TARJAN_MAX_NODES": "21"},
		"UnknownStore":     {"TARJAN_STORE": "redis"},
		"PostgresNoURL":    {"TARJAN_STORE": "postgres"},
		"UnknownTrace":     {"TARJAN_TRACE": "jaeger"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.FromLookup(lookupFrom(env))
			require.ErrorIs(t, err, config.ErrInvalidValue)
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TARJAN_WORKERS=3\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("TARJAN_MAX_NODES", "8")
	os.Unsetenv("TARJAN_WORKERS")
	t.Cleanup(func() { os.Unsetenv("TARJAN_WORKERS") })

	c, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 3, c.Workers)
	require.Equal(t, 8, c.MaxNodes)
}
