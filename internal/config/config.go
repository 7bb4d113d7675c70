package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	Database   Database
	Redis      Redis
	Prometheus Prometheus
	Auth       Auth
	Feed       Feed
	Media      Media
}

type HTTPServer struct {
	Address string
	Port    int
}

type Database struct {
	Username       string
	Password       string
	Host           string
	Port           string
	DbName         string
	MigrationsPath string
}

type Redis struct {
	Address  string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type Prometheus struct {
	Address string
	Port    int
}

type Auth struct {
	JWTSecret       string
	AuthTokenTTL    time.Duration
	RefreshTokenTTL time.Duration
	OTPTTL          time.Duration
}

type Feed struct {
	PostCacheTTL time.Duration
}

type Media struct {
	Dir     string
	BaseURL string
}

func MustLoad() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetDefault("env", "dev")

	viper.SetDefault("http_server.address", "0.0.0.0")
	viper.SetDefault("http_server.port", 8080)

	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "admin")
	viper.SetDefault("database.host", "feed-db")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.db_name", "pulsefeed")
	viper.SetDefault("database.migrations_path", "migrations")

	viper.SetDefault("redis.address", "redis")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	viper.SetDefault("prometheus.address", "0.0.0.0")
	viper.SetDefault("prometheus.port", 9104)

	viper.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	viper.SetDefault("auth.auth_token_ttl", "15m")
	viper.SetDefault("auth.refresh_token_ttl", "720h")
	viper.SetDefault("auth.otp_ttl", "10m")

	viper.SetDefault("feed.post_cache_ttl", "5m")

	viper.SetDefault("media.dir", "./media")
	viper.SetDefault("media.base_url", "/media")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Error reading config file: %s", err)
		os.Exit(1)
	}

	return &Config{
		Env: viper.GetString("env"),
		HTTPServer: HTTPServer{
			Address: viper.GetString("http_server.address"),
			Port:    viper.GetInt("http_server.port"),
		},
		Database: Database{
			Username:       viper.GetString("database.username"),
			Password:       viper.GetString("database.password"),
			Host:           viper.GetString("database.host"),
			Port:           viper.GetString("database.port"),
			DbName:         viper.GetString("database.db_name"),
			MigrationsPath: viper.GetString("database.migrations_path"),
		},
		Redis: Redis{
			Address:  viper.GetString("redis.address"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			PoolSize: viper.GetInt("redis.pool_size"),
		},
		Prometheus: Prometheus{
			Address: viper.GetString("prometheus.address"),
			Port:    viper.GetInt("prometheus.port"),
		},
		Auth: Auth{
			JWTSecret:       viper.GetString("auth.jwt_secret"),
			AuthTokenTTL:    viper.GetDuration("auth.auth_token_ttl"),
			RefreshTokenTTL: viper.GetDuration("auth.refresh_token_ttl"),
			OTPTTL:          viper.GetDuration("auth.otp_ttl"),
		},
		Feed: Feed{
			PostCacheTTL: viper.GetDuration("feed.post_cache_ttl"),
		},
		Media: Media{
			Dir:     viper.GetString("media.dir"),
			BaseURL: viper.GetString("media.base_url"),
		},
	}
}
