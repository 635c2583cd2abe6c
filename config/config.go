package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultMonthlyFee is the fee booked per month. It is not read from the
// environment; tests pass their own fee to services.NewRegistry.
const DefaultMonthlyFee = 500

// Store drivers
const (
	DriverJSON     = "json"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Billing  BillingConfig
	Twilio   TwilioConfig
	Reminder ReminderConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type StoreConfig struct {
	Driver   string // json, postgres or sqlite
	DataFile string // used by the json driver
	DSN      string // used by the sql drivers
}

// BillingConfig is always DefaultMonthlyFee outside tests
type BillingConfig struct {
	MonthlyFee int
}

// TwilioConfig holds the SMS credentials. Any empty value disables SMS.
type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.PhoneNumber != ""
}

type ReminderConfig struct {
	Schedule string // cron spec, empty disables the scheduler
}

// Load reads the configuration from the environment, after loading .env if present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	driver := strings.ToLower(getEnv("STORE_DRIVER", DriverJSON))
	dsn := getEnv("DB_URL", "")
	switch driver {
	case DriverJSON:
	case DriverPostgres, DriverSQLite:
		if dsn == "" {
			return nil, fmt.Errorf("DB_URL is required for STORE_DRIVER=%s", driver)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
		Store: StoreConfig{
			Driver:   driver,
			DataFile: getEnv("DATA_FILE", "library_users.json"),
			DSN:      dsn,
		},
		Billing: BillingConfig{
			MonthlyFee: DefaultMonthlyFee,
		},
		Twilio: TwilioConfig{
			AccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
			PhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
		},
		Reminder: ReminderConfig{
			Schedule: os.Getenv("REMINDER_SCHEDULE"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
