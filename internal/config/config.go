// Package config handles configuration for the bot and the import tool:
// defaults, an optional JSON overlay, dotenv/environment variables and
// finally command-line flags.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/common"
	"github.com/dmitrijs2005/cargobot/internal/validators"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings.
//
// Fields:
//   - BotToken: chat platform bot token (TOKEN).
//   - Admins: chat user ids with access to the admin surface (ADMINS).
//   - VerificationGroupID / VerifiedGroupID / FeedbackGroupID: staff channels.
//   - DBDriver / DatabaseDSN: "sqlite" (file path) or "postgres" (pgx DSN).
//   - RedisURL / SessionTTL: session store; memory store when RedisURL is empty.
//   - S3*: object storage for encrypted document copies; disabled without a bucket.
//   - DocumentKey: passphrase the document copies are sealed with.
//   - Notify*: notification queue sizing and retry policy.
//   - ClientCodePrefix ... PinflDigits: business rules for validation.
type Config struct {
	BotToken            string  `validate:"required"`
	Admins              []int64 `validate:"min=1"`
	VerificationGroupID int64   `validate:"required"`
	VerifiedGroupID     int64
	FeedbackGroupID     int64

	DBDriver    string `validate:"oneof=sqlite postgres"`
	DatabaseDSN string `validate:"required"`

	RedisURL   string
	SessionTTL time.Duration

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`

	HTTPAddr string
	GRPCAddr string

	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	DocumentKey    string `validate:"required_with=S3Bucket"`

	TemplatesDir string
	TempDir      string

	NotifyWorkers    int           `validate:"min=1"`
	NotifyQueueSize  int           `validate:"min=1"`
	NotifyMaxRetries uint64        `validate:"max=10"`
	NotifyBackoff    time.Duration

	ClientCodePrefix    string   `validate:"required,alpha"`
	ClientCodeStart     int      `validate:"min=1"`
	ExpiryWarningMonths int      `validate:"min=0"`
	DocumentPrefixes    []string `validate:"min=1,dive,len=2,alpha"`
	RegionalLetter      string   `validate:"len=1,alpha"`
	PinflDigits         string   `validate:"required,numeric"`

	WarehousePhone string
	ContactPhone   string
	ContactHandle  string
}

// LoadDefaults populates Config with development defaults. TOKEN, ADMINS and
// VERIFICATION_GROUP_ID have no default on purpose.
func (c *Config) LoadDefaults() {
	c.DBDriver = "sqlite"
	c.DatabaseDSN = "data/cargo.db"
	c.SessionTTL = 24 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.TemplatesDir = "templates"
	c.TempDir = common.TempDirName
	c.NotifyWorkers = 2
	c.NotifyQueueSize = 64
	c.NotifyMaxRetries = 3
	c.NotifyBackoff = 500 * time.Millisecond
	c.ClientCodePrefix = "AKB"
	c.ClientCodeStart = 587
	c.ExpiryWarningMonths = 6
	c.DocumentPrefixes = []string{"AA", "AB", "AD", "AE"}
	c.RegionalLetter = "K"
	c.PinflDigits = "3456"
	c.WarehousePhone = "18161955318"
}

// IsAdmin reports whether userID is on the admin allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	return slices.Contains(c.Admins, userID)
}

// Rules returns the validation constants derived from the configuration.
func (c *Config) Rules() validators.Rules {
	r := validators.DefaultRules()
	r.DocumentPrefixes = c.DocumentPrefixes
	r.RegionalLetter = c.RegionalLetter
	r.PinflDigits = c.PinflDigits
	r.ExpiryWarningMonths = c.ExpiryWarningMonths
	return r
}

// Validate checks required values and ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

var validate = validator.New()

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, a dotenv file plus the process environment and
// finally command-line flags. The result is validated.
func LoadConfig(args []string) (*Config, error) {
	cfg, err := load(args)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// storageFields are the settings the offline import tool depends on.
var storageFields = []string{
	"DBDriver", "DatabaseDSN", "LogLevel", "LogFormat",
	"ClientCodePrefix", "ClientCodeStart", "ExpiryWarningMonths",
	"DocumentPrefixes", "RegionalLetter", "PinflDigits",
}

// LoadImportConfig loads the configuration like LoadConfig but validates
// only the storage and business-rule settings, so the import tool runs
// without a bot token or staff channels.
func LoadImportConfig(args []string) (*Config, error) {
	cfg, err := load(args)
	if err != nil {
		return nil, err
	}
	if err := validate.StructPartial(cfg, storageFields...); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
