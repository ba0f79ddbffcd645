package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	Game     Game    `yaml:"game"`
	Storage  Storage `yaml:"storage"`
	Scoring  Scoring `yaml:"scoring"`
}

type Game struct {
	Variant string `yaml:"variant" env:"GAME_VARIANT" env-default:"tictactoe"`
}

type Storage struct {
	Backend    string        `yaml:"backend" env:"STORAGE_BACKEND" env-default:"sqlite"`
	SQLitePath string        `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"./game.db"`
	Redis      Redis         `yaml:"redis"`
	Timeout    time.Duration `yaml:"timeout" env:"STORAGE_TIMEOUT" env-default:"5s"`

	// RetryAttempts bounds how often a move is retried after losing an
	// optimistic-concurrency race before the store is declared unavailable.
	RetryAttempts int `yaml:"retry-attempts" env:"STORAGE_RETRY_ATTEMPTS" env-default:"3"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Scoring configures the points committed when a session ends.
type Scoring struct {
	WinPoints  int64 `yaml:"win-points" env:"SCORING_WIN_POINTS" env-default:"1"`
	DrawPoints int64 `yaml:"draw-points" env:"SCORING_DRAW_POINTS" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	// Scores only ever grow; negative awards would break the players table.
	if config.Scoring.WinPoints < 0 || config.Scoring.DrawPoints < 0 {
		panic(fmt.Errorf("scoring points must not be negative: win=%d draw=%d",
			config.Scoring.WinPoints, config.Scoring.DrawPoints))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
