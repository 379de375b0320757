package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CITYNAV_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://localhost:3000, https://maps.example.com,")
	t.Setenv("GRAPH_SOURCE", "file")
	t.Setenv("GRAPH_FILE", "city.json")
	t.Setenv("SEARCH_HEURISTIC", "great-circle")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://maps.example.com"}, cfg.HTTP.AllowedOrigins())
	assert.Equal(t, SourceFile, cfg.Graph.Source)
	assert.Equal(t, "city.json", cfg.Graph.File)
	assert.Equal(t, "great-circle", cfg.Search.Heuristic)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "citynav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 7000
graph:
  source: neo4j
  neo4j:
    uri: neo4j://localhost:7687
    database: city
cache:
  enabled: false
`), 0o644))
	t.Setenv("CITYNAV_CONFIG", path)
	// the environment wins over the file
	t.Setenv("NEO4J_DATABASE", "citynav")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, SourceNeo4j, cfg.Graph.Source)
	assert.Equal(t, "neo4j://localhost:7687", cfg.Graph.Neo4j.URI)
	assert.Equal(t, "citynav", cfg.Graph.Neo4j.Database)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, defaultReadTimeout, cfg.HTTP.ReadTimeout)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SEARCH_DEFAULT_ALGORITHM=astar\n"), 0o644))
	// godotenv does not override variables that are already set
	t.Setenv("SEARCH_DEFAULT_ALGORITHM", "")
	require.NoError(t, os.Unsetenv("SEARCH_DEFAULT_ALGORITHM"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "astar", cfg.Search.DefaultAlgorithm)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad port":          {"SERVER_PORT": "abc"},
		"port range":        {"SERVER_PORT": "70000"},
		"bad duration":      {"SERVER_READ_TIMEOUT": "soon"},
		"unknown source":    {"GRAPH_SOURCE": "postgres"},
		"file without path": {"GRAPH_SOURCE": "file"},
		"neo4j without uri": {"GRAPH_SOURCE": "neo4j"},
		"negative ttl":      {"CACHE_TTL": "-1s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CITYNAV_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_ExplicitPathWins(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	envFile := filepath.Join(dir, "env.yaml")
	flagFile := filepath.Join(dir, "flag.yaml")
	require.NoError(t, os.WriteFile(envFile, []byte("http:\n  port: 7001\n"), 0o644))
	require.NoError(t, os.WriteFile(flagFile, []byte("http:\n  port: 7002\n"), 0o644))
	t.Setenv("CITYNAV_CONFIG", envFile)

	cfg, err := LoadFile(flagFile)
	require.NoError(t, err)
	assert.Equal(t, 7002, cfg.HTTP.Port)
}
