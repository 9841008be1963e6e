package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	t.Setenv("CHANNEL_NAME", "vuelos")
	t.Setenv("AMADEUS_API_KEY", "key")
	t.Setenv("AMADEUS_API_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.Discord.Token)
	assert.Equal(t, "vuelos", cfg.Discord.ChannelName)
	assert.Equal(t, snowflake.ID(0), cfg.Discord.GuildID)
	assert.Equal(t, AmadeusEnvironmentTest, cfg.Amadeus.Environment)
	assert.Equal(t, "https://test.api.amadeus.com", cfg.Amadeus.Environment.BaseURL())
	assert.Equal(t, "SCL", cfg.Flights.Origin)
	assert.Equal(t, "NRT", cfg.Flights.Destination)
	assert.Equal(t, 13, cfg.Flights.Hour)
	assert.Equal(t, 0, cfg.Flights.Minute)
	assert.False(t, cfg.Sentry.Production())

	loc, err := cfg.Flights.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Santiago", loc.String())

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadDotEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKYO_IATA", "HND")

	file := filepath.Join(t.TempDir(), "test.env")
	content := "TOKYO_IATA=KIX\nAMADEUS_ENVIRONMENT=production\nDISCORD_GUILD_ID=123456789012345678\nFLIGHTS_HOUR=9\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	t.Cleanup(func() {
		for _, key := range []string{"AMADEUS_ENVIRONMENT", "DISCORD_GUILD_ID", "FLIGHTS_HOUR"} {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "HND", cfg.Flights.Destination, "existing variables are not overridden")
	assert.Equal(t, AmadeusEnvironmentProduction, cfg.Amadeus.Environment)
	assert.Equal(t, "https://api.amadeus.com", cfg.Amadeus.Environment.BaseURL())
	assert.Equal(t, snowflake.ID(123456789012345678), cfg.Discord.GuildID)
	assert.Equal(t, 9, cfg.Flights.Hour)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")
	t.Setenv("CHANNEL_NAME", "vuelos")
	t.Setenv("AMADEUS_API_KEY", "key")
	t.Setenv("AMADEUS_API_SECRET", "secret")
	_ = os.Unsetenv("DISCORD_BOT_TOKEN")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Flights:  Flights{Origin: "SCL", Destination: "NRT", Timezone: "America/Santiago", Hour: 13},
			LogLevel: "debug",
		}
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(c *Config){
		"lowercase origin":    func(c *Config) { c.Flights.Origin = "scl" },
		"long destination":    func(c *Config) { c.Flights.Destination = "TOKY" },
		"hour out of range":   func(c *Config) { c.Flights.Hour = 24 },
		"minute out of range": func(c *Config) { c.Flights.Minute = -1 },
		"unknown timezone":    func(c *Config) { c.Flights.Timezone = "Mars/Olympus" },
		"unknown log level":   func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range tests {
		t.Run(name, func(tt *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(tt, cfg.Validate())
		})
	}
}

func TestAmadeusEnvironmentSetValue(t *testing.T) {
	var env AmadeusEnvironment
	require.NoError(t, env.SetValue("PROD"))
	assert.Equal(t, AmadeusEnvironmentProduction, env)
	assert.Equal(t, "production", env.String())
	require.NoError(t, env.SetValue("test"))
	assert.Equal(t, AmadeusEnvironmentTest, env)
	assert.Error(t, env.SetValue("staging"))
}
