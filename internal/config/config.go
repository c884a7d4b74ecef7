package config

import (
	"fmt"     // For error wrapping and DSN formatting
	"strings" // For driver name normalisation
	"time"    // For durations

	"github.com/caarlos0/env/v11" // For parsing environment variables into the struct
	"github.com/joho/godotenv"    // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string        `env:"APP_PORT" envDefault:"8080"`                    // Application port
	DBDriver       string        `env:"DB_DRIVER" envDefault:"mysql"`                  // Database driver: mysql or postgres
	DBUser         string        `env:"DB_USER"`                                       // Database user
	DBPassword     string        `env:"DB_PASSWORD"`                                   // Database password
	DBHost         string        `env:"DB_HOST" envDefault:"127.0.0.1"`                // Database host
	DBPort         string        `env:"DB_PORT"`                                       // Database port
	DBName         string        `env:"DB_NAME"`                                       // Database name
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`                  // JWT secret key
	JWTTTL         time.Duration `env:"JWT_TTL" envDefault:"24h"`                      // JWT lifetime
	RedisAddr      string        `env:"REDIS_ADDR"`                                    // Redis server address, empty disables caching
	RedisPass      string        `env:"REDIS_PASS"`                                    // Redis password
	RedisDB        int           `env:"REDIS_DB"`                                      // Redis database number
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"60s"`                    // Lifetime of cached listings
	IsProd         bool          `env:"IS_PROD"`                                       // Is production environment
	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`  // Allowed CORS origins
	RootAdminEmail string        `env:"ROOT_ADMIN_EMAIL" envDefault:"admin@gmail.com"` // Account that can never be deleted
	S3Bucket       string        `env:"S3_BUCKET"`                                     // Bucket for uploaded images, empty disables uploads
	S3Region       string        `env:"S3_REGION" envDefault:"us-east-1"`              // Bucket region
	S3PublicURL    string        `env:"S3_PUBLIC_BASE_URL"`                            // Public base URL of the bucket (CDN), optional
	UploadMaxBytes int64         `env:"UPLOAD_MAX_BYTES" envDefault:"5242880"`         // Maximum accepted upload size
}

// LoadConfig loads configuration from the environment, reading .env first if present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	if cfg.DBDriver != "mysql" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	}
	port := c.DBPort
	if port == "" {
		port = "3306"
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4"
}
