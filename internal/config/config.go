package config

import (
	"strconv"
	"time"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	Port              int           `mapstructure:"port" yaml:"port,omitempty"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat         string        `mapstructure:"log_format" yaml:"log_format"`
	MaxMessageBytes   int64         `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	StaticDir         string        `mapstructure:"static_dir" yaml:"static_dir"`
	AdminName         string        `mapstructure:"admin_name" yaml:"admin_name"`
	TimeFormat        string        `mapstructure:"time_format" yaml:"time_format"`
	ClientBuffer      int           `mapstructure:"client_buffer" yaml:"client_buffer"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":3500",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
		MaxMessageBytes:   64 << 10,
		AllowedOrigins:    []string{"localhost:5500", "127.0.0.1:5500"},
		AdminName:         "Admin",
		TimeFormat:        "3:04:05 PM",
		ClientBuffer:      16,
	}
}

// ListenAddr is the address to bind. A non-zero Port wins over Addr.
func (c Config) ListenAddr() string {
	if c.Port > 0 {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Addr
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.Port != 0 {
		c.Port = other.Port
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.MaxMessageBytes != 0 {
		c.MaxMessageBytes = other.MaxMessageBytes
	}
	if other.AllowedOrigins != nil {
		c.AllowedOrigins = other.AllowedOrigins
	}
	if other.StaticDir != "" {
		c.StaticDir = other.StaticDir
	}
	if other.AdminName != "" {
		c.AdminName = other.AdminName
	}
	if other.TimeFormat != "" {
		c.TimeFormat = other.TimeFormat
	}
	if other.ClientBuffer != 0 {
		c.ClientBuffer = other.ClientBuffer
	}
}
