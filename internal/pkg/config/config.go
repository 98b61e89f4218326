package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	Booking  BookingConfig
	Calendar CalendarConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// BookingConfig bounds the booking window relative to request time.
type BookingConfig struct {
	MinAdvanceHours int    `envconfig:"BOOKING_MIN_ADVANCE_HOURS" default:"24"`
	MaxAdvanceDays  int    `envconfig:"BOOKING_MAX_ADVANCE_DAYS" default:"60"`
	TimeZone        string `envconfig:"BOOKING_TIMEZONE" default:"UTC"`
}

type CalendarConfig struct {
	BaseURL string        `envconfig:"CALENDAR_BASE_URL" default:""`
	APIKey  string        `envconfig:"CALENDAR_API_KEY" default:""`
	Timeout time.Duration `envconfig:"CALENDAR_TIMEOUT" default:"10s"`
}

type WorkerConfig struct {
	SyncQueueSize     int           `envconfig:"WORKER_SYNC_QUEUE_SIZE" default:"64"`
	SyncRetryInterval time.Duration `envconfig:"WORKER_SYNC_RETRY_INTERVAL" default:"5m"`
	NotifyInterval    time.Duration `envconfig:"WORKER_NOTIFY_INTERVAL" default:"30s"`
	NotifyBatchSize   int           `envconfig:"WORKER_NOTIFY_BATCH_SIZE" default:"20"`
	AdminEmail        string        `envconfig:"ADMIN_EMAIL" default:""`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Booking: BookingConfig{
			MinAdvanceHours: 24,
			MaxAdvanceDays:  60,
			TimeZone:        "UTC",
		},
		Worker: WorkerConfig{
			SyncQueueSize:     8,
			SyncRetryInterval: time.Minute,
			NotifyInterval:    time.Second,
			NotifyBatchSize:   5,
		},
	}
}
