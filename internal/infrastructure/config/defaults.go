package config

import "time"

// defaults is registered with viper key by key, so every key is also reachable through its
// HS_* environment variable even when the config file omits it.
var defaults = map[string]interface{}{
	"database.type":              "sqlite",
	"database.path":              "homestead.db",
	"database.postgres.host":     "localhost",
	"database.postgres.port":     5432,
	"database.postgres.user":     "homestead",
	"database.postgres.name":     "homestead",
	"database.postgres.sslmode":  "disable",
	"database.pool.max_open":     25,
	"database.pool.max_idle":     5,
	"database.pool.max_lifetime": 5 * time.Minute,
	"game.event_log.dir":         "events",
	"game.event_log.level":       3,
	"server.address":             "localhost:8080",
	"server.pid_file":            "homestead.pid",
	"server.rate_limit.requests": 5,
	"server.rate_limit.burst":    20,
	"server.timeouts.read":       10 * time.Second,
	"server.timeouts.write":      10 * time.Second,
	"server.timeouts.shutdown":   15 * time.Second,
	"metrics.path":               "/metrics",
	"logging.level":              "info",
	"logging.format":             "text",
	"logging.output":             "stderr",
}
