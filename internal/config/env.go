package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv loads the dotenv file (-env, or ./.env when present) without
// overriding variables already set in the process, then reads the
// environment into config. Unset variables leave config untouched.
func parseEnv(config *Config, args []string) error {
	if err := loadDotenv(flagx.ConfigFileFlags(args).Env); err != nil {
		return err
	}
	return readEnv(config, os.LookupEnv)
}

func loadDotenv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func readEnv(config *Config, lookup lookupFunc) error {
	r := envReader{lookup: lookup}

	r.str("TOKEN", &config.BotToken)
	r.ids("ADMINS", &config.Admins)
	r.id("VERIFICATION_GROUP_ID", &config.VerificationGroupID)
	r.id("VERIFIED_GROUP_ID", &config.VerifiedGroupID)
	r.id("FEEDBACK_GROUP_ID", &config.FeedbackGroupID)
	r.str("DB_DRIVER", &config.DBDriver)
	r.str("DATABASE_DSN", &config.DatabaseDSN)
	r.str("REDIS_URL", &config.RedisURL)
	r.duration("SESSION_TTL", &config.SessionTTL)
	r.str("LOG_LEVEL", &config.LogLevel)
	r.str("LOG_FORMAT", &config.LogFormat)
	r.str("HTTP_ADDR", &config.HTTPAddr)
	r.str("GRPC_ADDR", &config.GRPCAddr)
	r.str("S3_ACCESS_KEY", &config.S3AccessKey)
	r.str("S3_SECRET_KEY", &config.S3SecretKey)
	r.str("S3_BUCKET", &config.S3Bucket)
	r.str("S3_REGION", &config.S3Region)
	r.str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	r.str("DOCUMENT_KEY", &config.DocumentKey)
	r.str("TEMPLATES_DIR", &config.TemplatesDir)
	r.str("TEMP_DIR", &config.TempDir)
	r.num("CLIENT_CODE_START", &config.ClientCodeStart)
	r.str("CLIENT_CODE_PREFIX", &config.ClientCodePrefix)
	r.num("PASSPORT_EXPIRY_WARNING_MONTHS", &config.ExpiryWarningMonths)
	r.list("VALID_PASSPORT_PREFIXES", &config.DocumentPrefixes)
	r.str("VALID_PINFL_FIRST_DIGITS", &config.PinflDigits)
	r.str("REGIONAL_LETTER", &config.RegionalLetter)
	r.str("WAREHOUSE_PHONE", &config.WarehousePhone)
	r.str("CONTACT_PHONE", &config.ContactPhone)
	r.str("CONTACT_HANDLE", &config.ContactHandle)

	return errors.Join(r.errs...)
}

type envReader struct {
	lookup lookupFunc
	errs   []error
}

func (r *envReader) get(key string) (string, bool) {
	v, ok := r.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (r *envReader) fail(key string, err error) {
	r.errs = append(r.errs, fmt.Errorf("env %s: %w", key, err))
}

func (r *envReader) str(key string, dst *string) {
	if v, ok := r.get(key); ok {
		*dst = v
	}
}

func (r *envReader) num(key string, dst *int) {
	if v, ok := r.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			r.fail(key, err)
			return
		}
		*dst = n
	}
}

func (r *envReader) id(key string, dst *int64) {
	if v, ok := r.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			r.fail(key, err)
			return
		}
		*dst = n
	}
}

// ids parses a comma separated id list; blank and non-numeric items are
// skipped the same way the admin list has always been read.
func (r *envReader) ids(key string, dst *[]int64) {
	v, ok := r.get(key)
	if !ok {
		return
	}
	var out []int64
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	*dst = out
}

func (r *envReader) list(key string, dst *[]string) {
	v, ok := r.get(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}

func (r *envReader) duration(key string, dst *time.Duration) {
	if v, ok := r.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			r.fail(key, err)
			return
		}
		*dst = d
	}
}
