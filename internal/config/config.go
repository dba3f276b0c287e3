package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"lugat-go/internal/quiz"
)

// Config holds all configuration for the app
type Config struct {
	Data  DataConfig  `mapstructure:"data"`
	Store StoreConfig `mapstructure:"store"`
	Quiz  QuizConfig  `mapstructure:"quiz"`
	Cache CacheConfig `mapstructure:"cache"`
	Log   LogConfig   `mapstructure:"log"`
}

// DataConfig points at the word list: a file, a glob or an http(s) URL.
type DataConfig struct {
	Source string `mapstructure:"source"`
	Watch  bool   `mapstructure:"watch"`
}

type StoreConfig struct {
	Driver string      `mapstructure:"driver"`
	Path   string      `mapstructure:"path"`
	Redis  RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type QuizConfig struct {
	Duration       time.Duration `mapstructure:"duration"`
	Debounce       time.Duration `mapstructure:"debounce"`
	CorrectDelay   time.Duration `mapstructure:"correct_delay"`
	IncorrectDelay time.Duration `mapstructure:"incorrect_delay"`
}

type CacheConfig struct {
	Name    string        `mapstructure:"name"`
	Assets  []string      `mapstructure:"assets"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads lugat.yaml (from path, or the working directory and
// ~/.config/lugat) and LUGAT_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lugat")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "lugat"))
		}
	}

	v.SetEnvPrefix("lugat")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if len(cfg.Cache.Assets) == 0 && strings.HasPrefix(cfg.Data.Source, "http") {
		cfg.Cache.Assets = []string{cfg.Data.Source}
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.source", "lugat.json")
	v.SetDefault("data.watch", false)

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "lugat.db")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "lugat:")

	def := quiz.DefaultConfig()
	v.SetDefault("quiz.duration", def.Duration)
	v.SetDefault("quiz.debounce", def.Debounce)
	v.SetDefault("quiz.correct_delay", def.CorrectDelay)
	v.SetDefault("quiz.incorrect_delay", def.IncorrectDelay)

	v.SetDefault("cache.name", "lugat-cache-v1")
	v.SetDefault("cache.assets", []string{})
	v.SetDefault("cache.timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "lugat.log")
}

// QuizConfig converts the quiz settings for the engine.
func (c *Config) QuizConfig() quiz.Config {
	cfg := quiz.DefaultConfig()
	if c.Quiz.Duration > 0 {
		cfg.Duration = c.Quiz.Duration
	}
	if c.Quiz.Debounce > 0 {
		cfg.Debounce = c.Quiz.Debounce
	}
	if c.Quiz.CorrectDelay > 0 {
		cfg.CorrectDelay = c.Quiz.CorrectDelay
	}
	if c.Quiz.IncorrectDelay > 0 {
		cfg.IncorrectDelay = c.Quiz.IncorrectDelay
	}
	return cfg
}
