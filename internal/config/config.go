package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is read from the environment, optionally seeded by a .env file.
type Config struct {
	DiscordToken string   `env:"DISCORD_TOKEN"`
	CommandsPath string   `env:"COMMANDS_PATH" envDefault:"commands"`
	TestGuildID  string   `env:"TEST_GUILD_ID"`
	StoragePath  string   `env:"STORAGE_PATH" envDefault:"data/datastore.json"`
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string   `env:"LOG_FORMAT" envDefault:"console"`
	LogFile      string   `env:"LOG_FILE"`
	DeveloperIDs []string `env:"DEVELOPER_IDS" envSeparator:","`
	SyncCommands bool     `env:"SYNC_COMMANDS" envDefault:"true"`
	EnableEvents bool     `env:"ENABLE_EVENTS" envDefault:"true"`
}

// Load reads .env files (if any) and parses the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	return parse(env.Options{})
}

// ParseMap reads configuration from the given variables only.
func ParseMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// ErrNoToken is returned by Validate when DISCORD_TOKEN is unset.
var ErrNoToken = errors.New("config: DISCORD_TOKEN is required")

// Validate checks what talking to Discord needs. Offline tools skip it.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return ErrNoToken
	}
	return nil
}

// Scope names the registry scope the config targets.
func (c *Config) Scope() string {
	if c.TestGuildID != "" {
		return c.TestGuildID
	}
	return "global"
}
