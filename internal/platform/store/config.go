package store

import "juryduty/internal/platform/config"

// Config lists the backends to open
type Config struct {
	AppName string
	PG      PGConfig
	RDS     RedisConfig
}

// PGConfig configures the Postgres pool and SQL tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// RedisConfig configures the optional Redis client
type RedisConfig struct {
	Enabled bool
	URL     string
}

// ConfigFromEnv reads SERVICE_PGSQL_* and SERVICE_REDIS_*
// Postgres is mandatory, Redis is on only when a URL is set
func ConfigFromEnv(app string) Config {
	pg := config.New().Prefix("SERVICE_PGSQL_")
	rds := config.New().Prefix("SERVICE_REDIS_")
	redisURL := rds.MayString("URL", "")
	return Config{
		AppName: app,
		PG: PGConfig{
			Enabled:     true,
			URL:         pg.MustString("DBURL"),
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 8)),
			LogSQL:      pg.MayBool("LOG_SQL", false),
			SlowQueryMs: pg.MayInt("SLOW_MS", 200),
		},
		RDS: RedisConfig{Enabled: redisURL != "", URL: redisURL},
	}
}
