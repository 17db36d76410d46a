package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Auth      *AuthConfig
	Cache     *CacheConfig
	Email     *EmailConfig
	Media     *MediaConfig
	RateLimit *RateLimitConfig
}

type ServerConfig struct {
	AppName        string
	Environment    string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
	ExposedHeaders   []string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type AuthConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	ProductTTL      time.Duration
	UserTTL         time.Duration
}

type EmailConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
	Enabled   bool
}

// MediaConfig controls where uploaded product images are written and the
// public URL prefix they are served under.
type MediaConfig struct {
	Dir       string
	URLPrefix string
}

// RateLimitConfig holds per-endpoint-class request limits. Each limit is
// the maximum number of requests per window, keyed by client IP.
type RateLimitConfig struct {
	Enabled         bool
	AuthLimit       int
	AuthWindow      time.Duration
	AdminLimit      int
	AdminWindow     time.Duration
	ExpensiveLimit  int
	ExpensiveWindow time.Duration
	GeneralLimit    int
	GeneralWindow   time.Duration
}
