package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PushModeLog   = "log"
	PushModeFCM   = "fcm"
	PushModeQueue = "queue"
)

type Config struct {
	AppEnv  string
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret  string
	AdminToken string

	PushMode      string
	PushEndpoint  string
	PushServerKey string
	PushTimeout   time.Duration

	ReminderScheduleEnabled bool
	ReminderHour            int
	ReminderMinute          int
	ReminderTZ              string

	DefaultCurrency    string
	RateLimitPerSecond float64
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppEnv:    getenv("APP_ENV", "development"),
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "loans"),
		MySQLUser: getenv("MYSQL_USER", "loans"),
		MySQLPass: getenv("MYSQL_PASS", "loans"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		AdminToken: os.Getenv("ADMIN_TOKEN"),

		PushMode:      strings.ToLower(getenv("PUSH_MODE", PushModeLog)),
		PushEndpoint:  getenv("PUSH_ENDPOINT", "https://fcm.googleapis.com/fcm/send"),
		PushServerKey: os.Getenv("PUSH_SERVER_KEY"),
		PushTimeout:   3 * time.Second,

		ReminderScheduleEnabled: getenv("REMINDER_SCHEDULE_ENABLED", "false") == "true",
		ReminderHour:            getint("REMINDER_HOUR", 9),
		ReminderMinute:          getint("REMINDER_MINUTE", 0),
		ReminderTZ:              getenv("REMINDER_TZ", "UTC"),

		DefaultCurrency:    getenv("DEFAULT_CURRENCY", "MMK"),
		RateLimitPerSecond: 5,
	}
	if v := os.Getenv("PUSH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PushTimeout = d
		}
	}
	if v := os.Getenv("RATE_LIMIT_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RateLimitPerSecond = f
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	switch c.PushMode {
	case PushModeLog, PushModeQueue:
	case PushModeFCM:
		if c.PushEndpoint == "" || c.PushServerKey == "" {
			return errors.New("PUSH_MODE=fcm needs PUSH_ENDPOINT and PUSH_SERVER_KEY")
		}
	default:
		return fmt.Errorf("invalid PUSH_MODE %q (log|fcm|queue)", c.PushMode)
	}
	if c.PushTimeout <= 0 {
		return errors.New("PUSH_TIMEOUT must be positive")
	}
	if c.ReminderHour < 0 || c.ReminderHour > 23 || c.ReminderMinute < 0 || c.ReminderMinute > 59 {
		return fmt.Errorf("invalid reminder time %02d:%02d", c.ReminderHour, c.ReminderMinute)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid REMINDER_TZ %q: %w", c.ReminderTZ, err)
	}
	if len(c.DefaultCurrency) == 0 || len(c.DefaultCurrency) > 10 {
		return fmt.Errorf("invalid DEFAULT_CURRENCY %q", c.DefaultCurrency)
	}
	return nil
}

// Location is the zone whose calendar day drives due dates and reminders.
func (c *Config) Location() (*time.Location, error) { return time.LoadLocation(c.ReminderTZ) }

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATE/DATETIME, loc=UTC keeps calendar days stable
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
