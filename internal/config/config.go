package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Google    GoogleConfig
	Discovery DiscoveryConfig
	Auth      AuthConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	GeocodeCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// GoogleConfig holds credentials and endpoints for the Google Maps platform.
type GoogleConfig struct {
	APIKey         string
	PlacesBaseURL  string
	GeocodeBaseURL string
	DirectionsURL  string
	RegionCode     string
	LanguageCode   string
	RequestTimeout int // seconds
}

// DiscoveryConfig tunes the cache-vs-provider decision of the nearby search.
type DiscoveryConfig struct {
	MinCachedResults int
}

type AuthConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL: time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Google: GoogleConfig{
			APIKey:         viper.GetString("GOOGLE_MAPS_API_KEY"),
			PlacesBaseURL:  viper.GetString("GOOGLE_PLACES_BASE_URL"),
			GeocodeBaseURL: viper.GetString("GOOGLE_GEOCODE_BASE_URL"),
			DirectionsURL:  viper.GetString("GOOGLE_DIRECTIONS_URL"),
			RegionCode:     viper.GetString("GOOGLE_REGION_CODE"),
			LanguageCode:   viper.GetString("GOOGLE_LANGUAGE_CODE"),
			RequestTimeout: viper.GetInt("GOOGLE_REQUEST_TIMEOUT"),
		},
		Discovery: DiscoveryConfig{
			MinCachedResults: viper.GetInt("DISCOVERY_MIN_CACHED_RESULTS"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("JWT_SECRET"),
			JWTTTL:    time.Duration(viper.GetInt("JWT_TTL")) * time.Second,
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Google.PlacesBaseURL == "" {
		cfg.Google.PlacesBaseURL = "https://places.googleapis.com/v1/places"
	}
	if cfg.Google.GeocodeBaseURL == "" {
		cfg.Google.GeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"
	}
	if cfg.Google.DirectionsURL == "" {
		cfg.Google.DirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"
	}
	if cfg.Google.RegionCode == "" {
		cfg.Google.RegionCode = "KE"
	}
	if cfg.Google.LanguageCode == "" {
		cfg.Google.LanguageCode = "en"
	}
	if cfg.Google.RequestTimeout == 0 {
		cfg.Google.RequestTimeout = 10
	}
	if cfg.Discovery.MinCachedResults == 0 {
		cfg.Discovery.MinCachedResults = 5
	}
	if cfg.Cache.GeocodeCacheTTL == 0 {
		cfg.Cache.GeocodeCacheTTL = 24 * time.Hour
	}
	if cfg.Auth.JWTTTL == 0 {
		cfg.Auth.JWTTTL = 7 * 24 * time.Hour
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "clinic-details-workers"
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
