package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode         string        `mapstructure:"mode"`
	Port         int           `mapstructure:"port"`
	StaticPath   string        `mapstructure:"static_path"`
	SongsPath    string        `mapstructure:"songs_path"`
	RoundSeconds int           `mapstructure:"round_seconds"`
	ClipSeconds  int           `mapstructure:"clip_seconds"`
	WinDelay     int           `mapstructure:"win_delay_seconds"`
	ChatLimit    int           `mapstructure:"chat_limit"`
	ChatWindow   time.Duration `mapstructure:"chat_window"`
	Secret       string        `mapstructure:"secret"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 3000)
	v.SetDefault("static_path", "./web")
	v.SetDefault("songs_path", "./songs")
	v.SetDefault("round_seconds", 180)
	v.SetDefault("clip_seconds", 30)
	v.SetDefault("win_delay_seconds", 3)
	v.SetDefault("chat_limit", 10)
	v.SetDefault("chat_window", "10s")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Songs: %s\n", cfg.Mode, cfg.Port, cfg.SongsPath)
	return &cfg, nil
}
