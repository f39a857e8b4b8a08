package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mailjet  MailjetConfig
	Exchange ExchangeConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name                    string
	Version                 string
	Environment             string
	AppDeploymentUrl        string
	AppEmailVerificationKey string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type MailjetConfig struct {
	MailjetBaseUrl           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type ExchangeConfig struct {
	BaseUrl       string
	ApiKey        string
	RatesCacheTTL time.Duration
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	ratesTTLMinutes, err := strconv.Atoi(getEnv("EXCHANGE_RATES_CACHE_TTL_MINUTES", "60"))
	if err != nil {
		return nil, errors.New("invalid exchange rates cache ttl")
	}

	cfg := &Config{
		App: AppConfig{
			Name:                    getEnv("APP_NAME", "Abdul Shop API"),
			Version:                 getEnv("APP_VERSION", "1.0.0"),
			Environment:             getEnv("APP_ENV", "development"),
			AppDeploymentUrl:        getEnv("APP_DEPLOYMENT_URL", ""),
			AppEmailVerificationKey: getEnv("APP_EMAIL_VERIFICATION_KEY", ""),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "abdul_shop"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:           getEnv("MAILJET_BASE_URL", ""),
			MailjetBasicAuthUsername: getEnv("MAILJET_BASIC_AUTH_USERNAME", ""),
			MailjetBasicAuthPassword: getEnv("MAILJET_BASIC_AUTH_PASSWORD", ""),
			MailjetSenderEmail:       getEnv("MAILJET_SENDER_EMAIL", ""),
			MailjetSenderName:        getEnv("MAILJET_SENDER_NAME", ""),
		},
		Exchange: ExchangeConfig{
			BaseUrl:       getEnv("EXCHANGE_API_URL", "https://open.er-api.com/v6"),
			ApiKey:        getEnv("EXCHANGE_API_KEY", ""),
			RatesCacheTTL: time.Duration(ratesTTLMinutes) * time.Minute,
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.App.AppEmailVerificationKey == "" {
		return nil, errors.New("missing app email verification key")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
