package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"regexp"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var (
	iataRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

type Config struct {
	Discord     Discord
	Amadeus     Amadeus
	Flights     Flights
	Sentry      Sentry
	MetricsAddr string `env:"METRICS_ADDR"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
}

type Discord struct {
	Token       string       `env:"DISCORD_BOT_TOKEN" env-required:"true"`
	GuildID     snowflake.ID `env:"DISCORD_GUILD_ID"`
	ChannelName string       `env:"CHANNEL_NAME" env-required:"true"`
}

type Amadeus struct {
	ClientID     string             `env:"AMADEUS_API_KEY" env-required:"true"`
	ClientSecret string             `env:"AMADEUS_API_SECRET" env-required:"true"`
	Environment  AmadeusEnvironment `env:"AMADEUS_ENVIRONMENT" env-default:"test"`
}

type Flights struct {
	Origin      string `env:"SANTIAGO_IATA" env-default:"SCL"`
	Destination string `env:"TOKYO_IATA" env-default:"NRT"`
	Timezone    string `env:"FLIGHTS_TIMEZONE" env-default:"America/Santiago"`
	Hour        int    `env:"FLIGHTS_HOUR" env-default:"13"`
	Minute      int    `env:"FLIGHTS_MINUTE" env-default:"0"`
}

type Sentry struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"FLIGHTS_ENVIRONMENT" env-default:"DEV"`
}

func (s Sentry) Production() bool {
	return s.Environment == "PROD"
}

func (f Flights) Location() (*time.Location, error) {
	return time.LoadLocation(f.Timezone)
}

// Load reads the optional dotenv files (".env" when none are given) into the process
// environment and parses the configuration from it. Variables already set win.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config error: %w", err)
	}
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if !iataRegex.MatchString(c.Flights.Origin) {
		errs = append(errs, fmt.Errorf("origin %q is not an IATA code", c.Flights.Origin))
	}
	if !iataRegex.MatchString(c.Flights.Destination) {
		errs = append(errs, fmt.Errorf("destination %q is not an IATA code", c.Flights.Destination))
	}
	if c.Flights.Hour < 0 || c.Flights.Hour > 23 {
		errs = append(errs, fmt.Errorf("hour %d is out of range", c.Flights.Hour))
	}
	if c.Flights.Minute < 0 || c.Flights.Minute > 59 {
		errs = append(errs, fmt.Errorf("minute %d is out of range", c.Flights.Minute))
	}
	if _, err := c.Flights.Location(); err != nil {
		errs = append(errs, fmt.Errorf("timezone %q: %w", c.Flights.Timezone, err))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
