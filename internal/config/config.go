package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/imdario/mergo"
	"gopkg.in/yaml.v3"

	"mapty/internal/geo"
)

const (
	StorageSQLite = "sqlite"
	StorageBadger = "badger"
)

type Config struct {
	Port        string      `yaml:"port"`
	LogLevel    string      `yaml:"log_level"`
	CORSOrigins []string    `yaml:"cors_origins"`
	Storage     Storage     `yaml:"storage"`
	Map         MapSettings `yaml:"map"`
}

type Storage struct {
	Driver        string `yaml:"driver"`
	DBPath        string `yaml:"db_path"`
	BadgerDir     string `yaml:"badger_dir"`
	MigrationsDir string `yaml:"migrations_dir"`
	Key           string `yaml:"key"`
}

type MapSettings struct {
	Zoom        int         `yaml:"zoom"`
	TileURL     string      `yaml:"tile_url"`
	Attribution string      `yaml:"attribution"`
	Home        *geo.Coords `yaml:"home"`
}

func Defaults() Config {
	return Config{
		Port:        "8080",
		LogLevel:    "info",
		CORSOrigins: []string{"http://localhost:8080", "http://127.0.0.1:8080"},
		Storage: Storage{
			Driver:    StorageSQLite,
			DBPath:    "./data/mapty.db",
			BadgerDir: "./data/badger",
			Key:       "workouts",
		},
		Map: MapSettings{
			Zoom:        geo.DefaultZoom,
			TileURL:     geo.DefaultTileURL,
			Attribution: geo.DefaultAttribution,
		},
	}
}

// Load builds the configuration from, in increasing priority: defaults, the
// YAML file named by MAPTY_CONFIG, and environment variables.
func Load() (Config, error) {
	cfg := Config{}

	if path := getEnv("MAPTY_CONFIG", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return Config{}, fmt.Errorf("applying defaults: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.CORSOrigins = getEnvList("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.Storage.Driver = getEnv("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.DBPath = getEnv("DB_PATH", cfg.Storage.DBPath)
	cfg.Storage.BadgerDir = getEnv("BADGER_DIR", cfg.Storage.BadgerDir)
	cfg.Storage.MigrationsDir = getEnv("MIGRATIONS_DIR", cfg.Storage.MigrationsDir)
	cfg.Storage.Key = getEnv("STORAGE_KEY", cfg.Storage.Key)
	cfg.Map.Zoom = getEnvInt("MAP_ZOOM", cfg.Map.Zoom)
	cfg.Map.TileURL = getEnv("MAP_TILE_URL", cfg.Map.TileURL)

	lat, latOK := getEnvFloat("MAP_HOME_LAT")
	lng, lngOK := getEnvFloat("MAP_HOME_LNG")
	if latOK && lngOK {
		cfg.Map.Home = &geo.Coords{Lat: lat, Lng: lng}
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageSQLite:
		if c.Storage.DBPath == "" {
			return fmt.Errorf("storage.db_path is required for sqlite")
		}
	case StorageBadger:
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", StorageSQLite, StorageBadger, c.Storage.Driver)
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 19 {
		return fmt.Errorf("map.zoom must be between 0 and 19")
	}
	if c.Map.Home != nil {
		if err := c.Map.Home.Validate(); err != nil {
			return fmt.Errorf("map.home: %w", err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string) (float64, bool) {
	value := os.Getenv(key)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
