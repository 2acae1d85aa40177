package config

import (
	"fmt"
	"time"
)

// DatabaseConfig selects where game state is stored
type DatabaseConfig struct {
	// postgres or sqlite
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// Full postgres connection URL; when set the Postgres fields are ignored
	URL string `mapstructure:"url"`

	// sqlite file, or ":memory:"
	Path string `mapstructure:"path"`

	Postgres PostgresConfig `mapstructure:"postgres"`
	Pool     PoolConfig     `mapstructure:"pool"`
}

// PostgresConfig holds the discrete postgres connection fields
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
}

// PoolConfig bounds the postgres connection pool. sqlite always uses one connection.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// DSN returns the postgres data source name, preferring URL
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	p := c.Postgres
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Name, p.SSLMode)
}
