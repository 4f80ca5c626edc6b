package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultDatabaseDSN keeps a fresh checkout runnable without a Postgres server.
const DefaultDatabaseDSN = "file::memory:?cache=shared"

// Config holds everything the server reads from its environment.
type Config struct {
	AppPort          string
	DatabaseDSN      string
	CORSOrigins      []string
	EnableSwagger    bool
	RabbitMQURL      string
	RabbitMQExchange string
	LogLevel         string
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over .env entries.
func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	return FromViper(viper.New())
}

// FromViper resolves the configuration from v, registering defaults and env binding.
func FromViper(v *viper.Viper) Config {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DSN", DefaultDatabaseDSN)
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("ENABLE_SWAGGER", false)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "products")
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	port := v.GetString("APP_PORT")
	if port != "" && !strings.Contains(port, ":") {
		port = ":" + port
	}

	return Config{
		AppPort:          port,
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		CORSOrigins:      CSV(v.GetString("CORS_ORIGINS")),
		EnableSwagger:    v.GetBool("ENABLE_SWAGGER"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}
}

// CSV splits a comma separated list, dropping blanks.
func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
