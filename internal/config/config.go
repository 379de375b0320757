package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Graph   GraphConfig   `yaml:"graph"`
	Search  SearchConfig  `yaml:"search"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	AllowedOriginsCSV string        `yaml:"allowed_origins"`
	Debug             bool          `yaml:"debug"`
}

// Graph sources.
const (
	SourceSample = "sample"
	SourceFile   = "file"
	SourceNeo4j  = "neo4j"
)

// GraphConfig selects where the city graph is read from.
type GraphConfig struct {
	Source string      `yaml:"source"`
	File   string      `yaml:"file"`
	Neo4j  Neo4jConfig `yaml:"neo4j"`
}

// Neo4jConfig describes connectivity to the graph database the snapshot is imported from.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SearchConfig sets engine defaults.
type SearchConfig struct {
	DefaultAlgorithm string `yaml:"default_algorithm"`
	Heuristic        string `yaml:"heuristic"`
}

// CacheConfig controls the route result cache. An empty Dir keeps it in memory.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // text|json
	IncludeCaller bool   `yaml:"include_caller"`
}

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"
	defaultAlgorithm       = "dijkstra"
	defaultHeuristic       = "coordinate"
	defaultCacheTTL        = 10 * time.Minute
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Graph: GraphConfig{Source: SourceSample},
		Search: SearchConfig{
			DefaultAlgorithm: defaultAlgorithm,
			Heuristic:        defaultHeuristic,
		},
		Cache: CacheConfig{Enabled: true, TTL: defaultCacheTTL},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
	}
}

// Load reads configuration from a .env file, an optional YAML file named by
// CITYNAV_CONFIG, and environment variables, in increasing precedence.
func Load() (Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit YAML file that takes the place of
// CITYNAV_CONFIG. An empty path falls back to the variable.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("CITYNAV_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.HTTP.Host = valueOrDefault("SERVER_HOST", cfg.HTTP.Host)
	cfg.HTTP.AllowedOriginsCSV = valueOrDefault("SERVER_ALLOWED_ORIGINS", cfg.HTTP.AllowedOriginsCSV)
	cfg.HTTP.Debug = parseBoolWithDefault("SERVER_DEBUG", cfg.HTTP.Debug)

	port, err := parsePort("SERVER_PORT", cfg.HTTP.Port)
	if err != nil {
		return err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
		{"CACHE_TTL", &cfg.Cache.TTL},
	}
	for _, d := range durations {
		if v := os.Getenv(d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", d.key, err)
			}
			*d.dst = parsed
		}
	}

	cfg.Graph.Source = valueOrDefault("GRAPH_SOURCE", cfg.Graph.Source)
	cfg.Graph.File = valueOrDefault("GRAPH_FILE", cfg.Graph.File)
	cfg.Graph.Neo4j.URI = valueOrDefault("NEO4J_URI", cfg.Graph.Neo4j.URI)
	cfg.Graph.Neo4j.Database = valueOrDefault("NEO4J_DATABASE", cfg.Graph.Neo4j.Database)
	cfg.Graph.Neo4j.Username = valueOrDefault("NEO4J_USERNAME", cfg.Graph.Neo4j.Username)
	cfg.Graph.Neo4j.Password = valueOrDefault("NEO4J_PASSWORD", cfg.Graph.Neo4j.Password)

	cfg.Search.DefaultAlgorithm = valueOrDefault("SEARCH_DEFAULT_ALGORITHM", cfg.Search.DefaultAlgorithm)
	cfg.Search.Heuristic = valueOrDefault("SEARCH_HEURISTIC", cfg.Search.Heuristic)

	cfg.Cache.Enabled = parseBoolWithDefault("CACHE_ENABLED", cfg.Cache.Enabled)
	cfg.Cache.Dir = valueOrDefault("CACHE_DIR", cfg.Cache.Dir)

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)
	return nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Graph.Source {
	case SourceSample:
	case SourceFile:
		if c.Graph.File == "" {
			return errors.New("GRAPH_FILE is required when GRAPH_SOURCE=file")
		}
	case SourceNeo4j:
		if c.Graph.Neo4j.URI == "" {
			return errors.New("NEO4J_URI is required when GRAPH_SOURCE=neo4j")
		}
	default:
		return fmt.Errorf("unknown graph source %q", c.Graph.Source)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.HTTP.Port)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// AllowedOrigins splits the CSV origin list.
func (c HTTPConfig) AllowedOrigins() []string {
	if c.AllowedOriginsCSV == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(c.AllowedOriginsCSV, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}

// Addr is the listen address.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
