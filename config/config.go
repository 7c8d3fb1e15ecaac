package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultMaxFailedAttempts  = 5
	defaultLockoutDuration    = 15 * time.Minute
	defaultAccessTokenTTL     = 15 * time.Minute
	defaultRefreshTokenTTL    = 7 * 24 * time.Hour
	defaultMaxActiveSessions  = 5
	defaultBcryptCost         = 12
	defaultStoreTimeout       = 5 * time.Second
	defaultSlowQueryThreshold = 200 * time.Millisecond
	defaultPoolMonitorPeriod  = 5 * time.Second
	defaultPoolWaitWarnAfter  = 50 * time.Millisecond
	defaultAuditQueueSize     = 1024
	defaultAuditWorkers       = 2
	defaultAuditMaxRetries    = 3
	defaultAuditRetryBackoff  = 200 * time.Millisecond
	defaultAuditWriteTimeout  = 2 * time.Second
	defaultRetentionDays      = 365
	defaultRetentionInterval  = 24 * time.Hour
	defaultRetentionBatchSize = 1000
	defaultTokenCleanupPeriod = time.Hour
	defaultRefreshCookieName  = "refresh_token"
	defaultRequestsPerMinute  = 30
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		Cookie CookieConfig `json:"cookie" yaml:"cookie"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Lockout *LockoutConfig `json:"lockout" yaml:"lockout"`

	Store *StoreConfig `json:"store" yaml:"store"`

	// Audit configures the asynchronous security event pipeline
	Audit *AuditConfig `json:"audit" yaml:"audit"`

	// PubSub configuration for exporting security events
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	Telemetry *TelemetryConfig `json:"telemetry" yaml:"telemetry"`

	Migration *MigrationConfig `json:"migration" yaml:"migration"`

	// Bootstrap seeds an admin credential on an empty database
	Bootstrap *BootstrapConfig `json:"bootstrap" yaml:"bootstrap"`
}

// CookieConfig controls the httpOnly refresh-token cookie
type CookieConfig struct {
	Name   string `json:"name" yaml:"name"`
	Domain string `json:"domain" yaml:"domain"`
	Secure bool   `json:"secure" yaml:"secure"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost        int           `json:"bcryptCost" yaml:"bcryptCost"`
	MaxActiveSessions int           `json:"maxActiveSessions" yaml:"maxActiveSessions"`
	AccessTokenTTL    time.Duration `json:"accessTokenTTL" yaml:"accessTokenTTL"`
	RefreshTokenTTL   time.Duration `json:"refreshTokenTTL" yaml:"refreshTokenTTL"`

	// TokenCleanupInterval is how often expired sessions are deleted
	TokenCleanupInterval time.Duration `json:"tokenCleanupInterval" yaml:"tokenCleanupInterval"`
}

// LockoutConfig defines the brute-force lockout policy
type LockoutConfig struct {
	MaxFailedAttempts int           `json:"maxFailedAttempts" yaml:"maxFailedAttempts"`
	Duration          time.Duration `json:"duration" yaml:"duration"`
}

// StoreConfig bounds every store round trip made on the request path
type StoreConfig struct {
	OperationTimeout    time.Duration `json:"operationTimeout" yaml:"operationTimeout"`
	SlowQueryThreshold  time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
	PoolMonitorInterval time.Duration `json:"poolMonitorInterval" yaml:"poolMonitorInterval"`
	PoolWaitWarnAfter   time.Duration `json:"poolWaitWarnAfter" yaml:"poolWaitWarnAfter"`
}

// AuditConfig defines the security event recorder and retention job
type AuditConfig struct {
	QueueSize    int             `json:"queueSize" yaml:"queueSize"`
	Workers      int             `json:"workers" yaml:"workers"`
	MaxRetries   int             `json:"maxRetries" yaml:"maxRetries"`
	RetryBackoff time.Duration   `json:"retryBackoff" yaml:"retryBackoff"`
	WriteTimeout time.Duration   `json:"writeTimeout" yaml:"writeTimeout"`
	Retention    RetentionConfig `json:"retention" yaml:"retention"`
}

// RetentionConfig defines archival of old security events.
// BucketURL is a gocloud.dev blob URL, e.g. file:///var/lib/crm/audit or gs://bucket
type RetentionConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled"`
	Days      int           `json:"days" yaml:"days"`
	BucketURL string        `json:"bucketURL" yaml:"bucketURL"`
	Interval  time.Duration `json:"interval" yaml:"interval"`
	BatchSize int           `json:"batchSize" yaml:"batchSize"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// RateLimitConfig throttles credential endpoints per client IP
type RateLimitConfig struct {
	Enabled           bool `json:"enabled" yaml:"enabled"`
	RequestsPerMinute int  `json:"requestsPerMinute" yaml:"requestsPerMinute"`
}

// TelemetryConfig defines OTLP trace export
type TelemetryConfig struct {
	Enabled     bool    `json:"enabled" yaml:"enabled"`
	Endpoint    string  `json:"endpoint" yaml:"endpoint"`
	Insecure    bool    `json:"insecure" yaml:"insecure"`
	SampleRatio float64 `json:"sampleRatio" yaml:"sampleRatio"`
}

// MigrationConfig controls schema migration at startup
type MigrationConfig struct {
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
}

// BootstrapConfig defines the first admin account
type BootstrapConfig struct {
	AdminEmail    string `json:"adminEmail" yaml:"adminEmail"`
	AdminPassword string `json:"adminPassword" yaml:"adminPassword"`
	AdminName     string `json:"adminName" yaml:"adminName"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// ApplyDefaults fills every optional section so consumers never nil-check.
func ApplyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.HTTP.Cookie.Name == "" {
		cfg.HTTP.Cookie.Name = defaultRefreshCookieName
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	cfg.Auth.BcryptCost = orDefault(cfg.Auth.BcryptCost, defaultBcryptCost)
	cfg.Auth.MaxActiveSessions = orDefault(cfg.Auth.MaxActiveSessions, defaultMaxActiveSessions)
	cfg.Auth.AccessTokenTTL = orDefault(cfg.Auth.AccessTokenTTL, defaultAccessTokenTTL)
	cfg.Auth.RefreshTokenTTL = orDefault(cfg.Auth.RefreshTokenTTL, defaultRefreshTokenTTL)
	cfg.Auth.TokenCleanupInterval = orDefault(cfg.Auth.TokenCleanupInterval, defaultTokenCleanupPeriod)

	if cfg.Lockout == nil {
		cfg.Lockout = &LockoutConfig{}
	}
	cfg.Lockout.MaxFailedAttempts = orDefault(cfg.Lockout.MaxFailedAttempts, defaultMaxFailedAttempts)
	cfg.Lockout.Duration = orDefault(cfg.Lockout.Duration, defaultLockoutDuration)

	if cfg.Store == nil {
		cfg.Store = &StoreConfig{}
	}
	cfg.Store.OperationTimeout = orDefault(cfg.Store.OperationTimeout, defaultStoreTimeout)
	cfg.Store.SlowQueryThreshold = orDefault(cfg.Store.SlowQueryThreshold, defaultSlowQueryThreshold)
	cfg.Store.PoolMonitorInterval = orDefault(cfg.Store.PoolMonitorInterval, defaultPoolMonitorPeriod)
	cfg.Store.PoolWaitWarnAfter = orDefault(cfg.Store.PoolWaitWarnAfter, defaultPoolWaitWarnAfter)

	if cfg.Audit == nil {
		cfg.Audit = &AuditConfig{}
	}
	cfg.Audit.QueueSize = orDefault(cfg.Audit.QueueSize, defaultAuditQueueSize)
	cfg.Audit.Workers = orDefault(cfg.Audit.Workers, defaultAuditWorkers)
	cfg.Audit.MaxRetries = orDefault(cfg.Audit.MaxRetries, defaultAuditMaxRetries)
	cfg.Audit.RetryBackoff = orDefault(cfg.Audit.RetryBackoff, defaultAuditRetryBackoff)
	cfg.Audit.WriteTimeout = orDefault(cfg.Audit.WriteTimeout, defaultAuditWriteTimeout)
	cfg.Audit.Retention.Days = orDefault(cfg.Audit.Retention.Days, defaultRetentionDays)
	cfg.Audit.Retention.Interval = orDefault(cfg.Audit.Retention.Interval, defaultRetentionInterval)
	cfg.Audit.Retention.BatchSize = orDefault(cfg.Audit.Retention.BatchSize, defaultRetentionBatchSize)

	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimitConfig{}
	}
	cfg.RateLimit.RequestsPerMinute = orDefault(cfg.RateLimit.RequestsPerMinute, defaultRequestsPerMinute)

	if cfg.Telemetry == nil {
		cfg.Telemetry = &TelemetryConfig{}
	}
	if cfg.Telemetry.SampleRatio <= 0 || cfg.Telemetry.SampleRatio > 1 {
		cfg.Telemetry.SampleRatio = 1
	}
	if cfg.Migration == nil {
		cfg.Migration = &MigrationConfig{}
	}
	if cfg.Bootstrap == nil {
		cfg.Bootstrap = &BootstrapConfig{}
	}
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}

	return v
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
