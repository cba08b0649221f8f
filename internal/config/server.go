package config

import (
	"fmt"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ServerConfig holds settings for `arcade serve`.
// Values come from an optional YAML file, then ARCADE_* environment
// variables, then the env-default tags.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"ARCADE_SSH_ADDR" env-default:":23234"`
	HostKeyPath string        `yaml:"host-key" env:"ARCADE_HOST_KEY"`
	DBPath      string        `yaml:"db" env:"ARCADE_DB" env-default:"~/.arcade/scores.db"`
	IdleTimeout time.Duration `yaml:"idle-timeout" env:"ARCADE_IDLE_TIMEOUT" env-default:"30m"`
	LogLevel    string        `yaml:"log-level" env:"ARCADE_LOG_LEVEL" env-default:"info"`
	Record      bool          `yaml:"record" env:"ARCADE_RECORD" env-default:"true"`
	Redis       RedisConfig   `yaml:"redis"`
}

// RedisConfig configures the shared leaderboard.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ARCADE_REDIS_ENABLED" env-default:"false"`
	Host     string `yaml:"host" env:"ARCADE_REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"ARCADE_REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"ARCADE_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"ARCADE_REDIS_DB" env-default:"0"`
}

// Addr returns host:port for the Redis client.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

// LoadServer reads server settings from path (if set) and the environment.
func LoadServer(path string) (ServerConfig, error) {
	var cfg ServerConfig

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: cannot load server config: %w", err)
	}
	return cfg, nil
}
