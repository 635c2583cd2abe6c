package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "CORS_ORIGINS", "STORE_DRIVER", "DATA_FILE", "DB_URL", "MONTHLY_FEE",
		"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_PHONE_NUMBER", "REMINDER_SCHEDULE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, DriverJSON, cfg.Store.Driver)
	assert.Equal(t, "library_users.json", cfg.Store.DataFile)
	assert.Equal(t, DefaultMonthlyFee, cfg.Billing.MonthlyFee)
	assert.False(t, cfg.Twilio.Enabled())
	assert.Empty(t, cfg.Reminder.Schedule)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("DB_URL", "file:readers.db")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "secret")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15550001111")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "file:readers.db", cfg.Store.DSN)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Twilio.Enabled())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo"}},
		{"sql driver without dsn", map[string]string{"STORE_DRIVER": "postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestTwilioEnabledNeedsAllValues(t *testing.T) {
	assert.False(t, TwilioConfig{AccountSID: "AC1", AuthToken: "tok"}.Enabled())
	assert.True(t, TwilioConfig{AccountSID: "AC1", AuthToken: "tok", PhoneNumber: "+1555"}.Enabled())
}

func TestLoadIgnoresMonthlyFeeFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONTHLY_FEE", "750")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Billing.MonthlyFee)
	assert.Equal(t, DefaultMonthlyFee, cfg.Billing.MonthlyFee)
}
