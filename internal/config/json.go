package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cargobot/internal/flagx"
	"github.com/dmitrijs2005/cargobot/internal/timex"
)

// JsonConfig is the on-disk shape of the -c/-config file. Pointer fields let
// a file override only what it mentions; durations accept "30s" or
// nanoseconds.
type JsonConfig struct {
	BotToken            *string         `json:"token"`
	Admins              []int64         `json:"admins"`
	VerificationGroupID *int64          `json:"verification_group_id"`
	VerifiedGroupID     *int64          `json:"verified_group_id"`
	FeedbackGroupID     *int64          `json:"feedback_group_id"`
	DBDriver            *string         `json:"db_driver"`
	DatabaseDSN         *string         `json:"database_dsn"`
	RedisURL            *string         `json:"redis_url"`
	SessionTTL          *timex.Duration `json:"session_ttl"`
	LogLevel            *string         `json:"log_level"`
	LogFormat           *string         `json:"log_format"`
	HTTPAddr            *string         `json:"http_addr"`
	GRPCAddr            *string         `json:"grpc_addr"`
	S3AccessKey         *string         `json:"s3_access_key"`
	S3SecretKey         *string         `json:"s3_secret_key"`
	S3Bucket            *string         `json:"s3_bucket"`
	S3Region            *string         `json:"s3_region"`
	S3BaseEndpoint      *string         `json:"s3_base_endpoint"`
	DocumentKey         *string         `json:"document_key"`
	TemplatesDir        *string         `json:"templates_dir"`
	TempDir             *string         `json:"temp_dir"`
	NotifyWorkers       *int            `json:"notify_workers"`
	NotifyQueueSize     *int            `json:"notify_queue_size"`
	NotifyMaxRetries    *uint64         `json:"notify_max_retries"`
	NotifyBackoff       *timex.Duration `json:"notify_backoff"`
	ClientCodePrefix    *string         `json:"client_code_prefix"`
	ClientCodeStart     *int            `json:"client_code_start"`
	ExpiryWarningMonths *int            `json:"expiry_warning_months"`
	DocumentPrefixes    []string        `json:"document_prefixes"`
	PinflDigits         *string         `json:"pinfl_digits"`
	RegionalLetter      *string         `json:"regional_letter"`
	WarehousePhone      *string         `json:"warehouse_phone"`
	ContactPhone        *string         `json:"contact_phone"`
	ContactHandle       *string         `json:"contact_handle"`
}

// parseJson overlays the JSON file named by -c/-config onto config. Nothing
// happens when no file is given.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlags(args).JSON
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	set(&config.BotToken, c.BotToken)
	if len(c.Admins) > 0 {
		config.Admins = c.Admins
	}
	set(&config.VerificationGroupID, c.VerificationGroupID)
	set(&config.VerifiedGroupID, c.VerifiedGroupID)
	set(&config.FeedbackGroupID, c.FeedbackGroupID)
	set(&config.DBDriver, c.DBDriver)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.RedisURL, c.RedisURL)
	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	set(&config.LogLevel, c.LogLevel)
	set(&config.LogFormat, c.LogFormat)
	set(&config.HTTPAddr, c.HTTPAddr)
	set(&config.GRPCAddr, c.GRPCAddr)
	set(&config.S3AccessKey, c.S3AccessKey)
	set(&config.S3SecretKey, c.S3SecretKey)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.DocumentKey, c.DocumentKey)
	set(&config.TemplatesDir, c.TemplatesDir)
	set(&config.TempDir, c.TempDir)
	set(&config.NotifyWorkers, c.NotifyWorkers)
	set(&config.NotifyQueueSize, c.NotifyQueueSize)
	set(&config.NotifyMaxRetries, c.NotifyMaxRetries)
	if c.NotifyBackoff != nil {
		config.NotifyBackoff = c.NotifyBackoff.Duration
	}
	set(&config.ClientCodePrefix, c.ClientCodePrefix)
	set(&config.ClientCodeStart, c.ClientCodeStart)
	set(&config.ExpiryWarningMonths, c.ExpiryWarningMonths)
	if len(c.DocumentPrefixes) > 0 {
		config.DocumentPrefixes = c.DocumentPrefixes
	}
	set(&config.PinflDigits, c.PinflDigits)
	set(&config.RegionalLetter, c.RegionalLetter)
	set(&config.WarehousePhone, c.WarehousePhone)
	set(&config.ContactPhone, c.ContactPhone)
	set(&config.ContactHandle, c.ContactHandle)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
