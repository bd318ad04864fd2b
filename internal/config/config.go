package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingCloudName is returned when either account identifier is absent.
var ErrMissingCloudName = errors.New("missing credentials: SOURCE_CLOUD_NAME and DEST_CLOUD_NAME are required")

// MaxPageSize is the largest page the Admin API returns for a resource listing.
const MaxPageSize = 500

type Config struct {
	Provider string
	APIURL   string

	Source Credentials
	Dest   Credentials

	ResourceType string
	PageSize     int

	StartDelay       time.Duration
	BatchSize        int
	BatchPause       time.Duration
	ProgressEvery    int
	ErrorReportLimit int

	HTTPTimeout        time.Duration
	HTTPRetryMax       int
	SignatureAlgorithm string
}

// Credentials identify one media account.
type Credentials struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Load reads config from environment variables, applies defaults and validates.
func Load() (Config, error) {
	get := func(key, def string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return def
	}

	parseInt := func(key string, def int) int {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
				return n
			}
		}
		return def
	}

	parseDur := func(key string, def time.Duration) time.Duration {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d >= 0 {
				return d
			}
		}
		return def
	}

	cfg := Config{
		Provider: strings.ToLower(get("MEDIA_PROVIDER", "cloudinary")),
		APIURL:   get("CLOUDINARY_API_URL", "https://api.cloudinary.com"),

		Source: Credentials{
			CloudName: get("SOURCE_CLOUD_NAME", ""),
			APIKey:    get("SOURCE_API_KEY", ""),
			APISecret: get("SOURCE_API_SECRET", ""),
		},
		Dest: Credentials{
			CloudName: get("DEST_CLOUD_NAME", ""),
			APIKey:    get("DEST_API_KEY", ""),
			APISecret: get("DEST_API_SECRET", ""),
		},

		ResourceType: strings.ToLower(get("RESOURCE_TYPE", "image")),
		PageSize:     parseInt("PAGE_SIZE", MaxPageSize),

		StartDelay:       parseDur("START_DELAY", 5*time.Second),
		BatchSize:        parseInt("BATCH_SIZE", 50),
		BatchPause:       parseDur("BATCH_PAUSE", 3*time.Second),
		ProgressEvery:    parseInt("PROGRESS_EVERY", 10),
		ErrorReportLimit: parseInt("ERROR_REPORT_LIMIT", 20),

		HTTPTimeout:        parseDur("HTTP_TIMEOUT", 0),
		HTTPRetryMax:       parseInt("HTTP_RETRY_MAX", 0),
		SignatureAlgorithm: strings.ToLower(get("SIGNATURE_ALGORITHM", "sha1")),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate runs before any client is built, so a bad config never reaches the network.
func (c *Config) validate() error {
	if c.Source.CloudName == "" || c.Dest.CloudName == "" {
		return ErrMissingCloudName
	}
	if c.PageSize <= 0 || c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	if c.ProgressEvery <= 0 {
		c.ProgressEvery = 10
	}
	switch c.SignatureAlgorithm {
	case "sha1", "sha256":
	default:
		return fmt.Errorf("unsupported signature algorithm: %s", c.SignatureAlgorithm)
	}
	if c.ResourceType == "" {
		c.ResourceType = "image"
	}
	return nil
}
