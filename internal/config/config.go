package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sooomo/bst/internal/applog"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	Demo   DemoConfig   `toml:"demo"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ServerConfig struct {
	ListenAddr      string   `toml:"listen-addr"`
	RateLimit       float64  `toml:"rate-limit"` // 每秒请求数，0 表示不限流
	Burst           int      `toml:"burst"`
	MaxTrees        int      `toml:"max-trees"`
	ShutdownTimeout Duration `toml:"shutdown-timeout"`
}

type DemoConfig struct {
	Workers int `toml:"workers"`
}

// Duration 以 "5s" 这样的字符串形式出现在 toml 中
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			ListenAddr:      "127.0.0.1:8080",
			RateLimit:       100,
			Burst:           200,
			MaxTrees:        1024,
			ShutdownTimeout: Duration{5 * time.Second},
		},
		Demo: DemoConfig{Workers: 4},
	}
}

func (c *Config) Validate() error {
	if _, err := applog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: field %q: %v", ErrInvalidConfig, "log.level", err)
	}
	if _, _, err := net.SplitHostPort(c.Server.ListenAddr); err != nil {
		return fmt.Errorf("%w: field %q: %v", ErrInvalidConfig, "server.listen-addr", err)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("%w: field %q: must not be negative", ErrInvalidConfig, "server.rate-limit")
	}
	if c.Server.RateLimit > 0 && c.Server.Burst <= 0 {
		return fmt.Errorf("%w: field %q: must be positive when rate-limit is set", ErrInvalidConfig, "server.burst")
	}
	if c.Server.MaxTrees <= 0 {
		return fmt.Errorf("%w: field %q: must be positive", ErrInvalidConfig, "server.max-trees")
	}
	if c.Server.ShutdownTimeout.Duration < 0 {
		return fmt.Errorf("%w: field %q: must not be negative", ErrInvalidConfig, "server.shutdown-timeout")
	}
	if c.Demo.Workers <= 0 {
		return fmt.Errorf("%w: field %q: must be positive", ErrInvalidConfig, "demo.workers")
	}
	return nil
}
