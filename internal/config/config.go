package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all path service configuration
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	JWT     JWTConfig      `yaml:"jwt"`
	Redis   RedisConfig    `yaml:"redis"`
	Session SessionConfig  `yaml:"session"`
	Terrain map[string]int `yaml:"terrain"` // movement cost per terrain name, negative = impassable
}

// ServerConfig holds server-specific settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// JWTConfig holds JWT authentication settings
type JWTConfig struct {
	Issuer              string `yaml:"issuer"`
	PublicKeyURL        string `yaml:"public_key_url"`
	PublicKeyRefreshHrs int    `yaml:"public_key_refresh_hours"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address         string `yaml:"address"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	BlacklistPrefix string `yaml:"blacklist_prefix"`
}

// SessionConfig holds the shared map and query limits
type SessionConfig struct {
	MapRadius      int   `yaml:"map_radius"` // hex radius of the generated map
	Seed           int64 `yaml:"seed"`       // terrain noise seed, 0 = random
	MaxQueryRadius int   `yaml:"max_query_radius"`
	MaxClients     int   `yaml:"max_clients"`
}

// DefaultTerrainCosts is used for any terrain the config file leaves out.
var DefaultTerrainCosts = map[string]int{
	"plains":   1,
	"forest":   2,
	"hills":    3,
	"swamp":    4,
	"mountain": -1,
	"water":    -1,
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration and applies defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.JWT.PublicKeyRefreshHrs == 0 {
		cfg.JWT.PublicKeyRefreshHrs = 24
	}
	if cfg.Redis.BlacklistPrefix == "" {
		cfg.Redis.BlacklistPrefix = "blacklist:"
	}
	if cfg.Session.MapRadius == 0 {
		cfg.Session.MapRadius = 32
	}
	if cfg.Session.MaxQueryRadius == 0 {
		cfg.Session.MaxQueryRadius = 8
	}
	if cfg.Session.MaxClients == 0 {
		cfg.Session.MaxClients = 100
	}
	if cfg.Terrain == nil {
		cfg.Terrain = make(map[string]int, len(DefaultTerrainCosts))
	}
	for name, cost := range DefaultTerrainCosts {
		if _, ok := cfg.Terrain[name]; !ok {
			cfg.Terrain[name] = cost
		}
	}

	if cfg.Session.MapRadius < 0 {
		return nil, fmt.Errorf("session.map_radius must be positive, got %d", cfg.Session.MapRadius)
	}
	return &cfg, nil
}
