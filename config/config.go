package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"marketbridge/internal/domain/constants"

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
	defaultHandlerTimeout     = 30 * time.Second
	defaultDailyResetSpec     = "0 0 * * *"
	defaultTimeZone           = "Asia/Kolkata"
	defaultMetricsPath        = "/metrics"
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
	} `json:"http" yaml:"http"`

	// Worker configuration for the change-event worker
	Worker WorkerConfig `json:"worker" yaml:"worker"`

	// Store selects and tunes the document store adapter
	Store StoreConfig `json:"store" yaml:"store"`

	// Collections maps entity types to document store collections
	Collections CollectionsConfig `json:"collections" yaml:"collections"`

	// Postgres is only read when store.provider is "postgres"
	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Firebase configuration shared by Firestore, FCM and ID token verification
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// PubSub configuration for change event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// NotificationSink configuration for welcome notification delivery
	NotificationSink *NotificationSinkConfig `json:"notificationSink" yaml:"notificationSink"`

	// Auth configuration for callable API callers
	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Scheduler configuration for batch maintenance
	Scheduler *SchedulerConfig `json:"scheduler" yaml:"scheduler"`

	// Metrics configuration for the Prometheus endpoint
	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`

	// Tracing configuration for OpenTelemetry
	Tracing *TracingConfig `json:"tracing" yaml:"tracing"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// WorkerConfig defines the change-event worker behaviour
type WorkerConfig struct {
	// Upper bound for handling a single pushed event
	HandlerTimeout time.Duration `json:"handlerTimeout" yaml:"handlerTimeout"`

	// Verify Google-signed push tokens on /events and /jobs (ignored in develop)
	VerifyPushAuth bool `json:"verifyPushAuth" yaml:"verifyPushAuth"`
}

// StoreConfig defines the document store adapter
type StoreConfig struct {
	// Provider type: "firestore", "postgres" or "memory"
	Provider string `json:"provider" yaml:"provider"`

	// Maximum writes per atomic batch; 0 uses the adapter's limit
	MaxBatchSize int `json:"maxBatchSize" yaml:"maxBatchSize"`
}

// CollectionsConfig names the collections the engine reads and writes
type CollectionsConfig struct {
	Listings      string `json:"listings" yaml:"listings"`
	Accounts      string `json:"accounts" yaml:"accounts"`
	Notifications string `json:"notifications" yaml:"notifications"`
}

// FirebaseConfig defines Firebase configuration
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
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

// NotificationSinkConfig defines where persisted notification records are pushed
type NotificationSinkConfig struct {
	// Provider type: "fcm" or empty for no push delivery
	Provider string `json:"provider" yaml:"provider"`

	// FCM topic prefix; the account key is appended
	TopicPrefix string `json:"topicPrefix" yaml:"topicPrefix"`
}

// AuthConfig defines how callable API callers are verified
type AuthConfig struct {
	// Provider type: "firebase" (ID tokens) or "jwt" (HS256 shared secret)
	Provider string `json:"provider" yaml:"provider"`

	// Shared secret for the jwt provider
	JWTSecret string `json:"jwtSecret" yaml:"jwtSecret"`

	// Expected issuer for the jwt provider (optional)
	Issuer string `json:"issuer" yaml:"issuer"`
}

// SchedulerConfig defines the batch maintenance schedule
type SchedulerConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Five-field cron expression for the daily reset
	DailyResetSpec string `json:"dailyResetSpec" yaml:"dailyResetSpec"`

	// IANA time zone the schedule is evaluated in
	TimeZone string `json:"timeZone" yaml:"timeZone"`

	// Lock keeps replicas from running the same cycle twice (optional)
	Lock *LockConfig `json:"lock" yaml:"lock"`
}

// LockConfig defines the Redis-backed job lock
type LockConfig struct {
	RedisAddr string        `json:"redisAddr" yaml:"redisAddr"`
	Password  string        `json:"password" yaml:"password"`
	DB        int           `json:"db" yaml:"db"`
	TTL       time.Duration `json:"ttl" yaml:"ttl"`
}

// MetricsConfig defines the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// TracingConfig defines OpenTelemetry tracing
type TracingConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Exporter type: "otlp" or "stdout"
	Exporter string `json:"exporter" yaml:"exporter"`

	// OTLP/HTTP endpoint host:port (for otlp exporter)
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	Insecure    bool    `json:"insecure" yaml:"insecure"`
	SampleRatio float64 `json:"sampleRatio" yaml:"sampleRatio"`
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

	applyDefaults(cfg)

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Worker.HandlerTimeout <= 0 {
		cfg.Worker.HandlerTimeout = defaultHandlerTimeout
	}
	if cfg.Store.Provider == "" {
		cfg.Store.Provider = constants.StoreProviderFirestore
	}
	if cfg.Collections.Listings == "" {
		cfg.Collections.Listings = constants.DefaultListingsCollection
	}
	if cfg.Collections.Accounts == "" {
		cfg.Collections.Accounts = constants.DefaultAccountsCollection
	}
	if cfg.Collections.Notifications == "" {
		cfg.Collections.Notifications = constants.DefaultNotificationsCollection
	}
	if cfg.Scheduler != nil {
		if cfg.Scheduler.DailyResetSpec == "" {
			cfg.Scheduler.DailyResetSpec = defaultDailyResetSpec
		}
		if cfg.Scheduler.TimeZone == "" {
			cfg.Scheduler.TimeZone = defaultTimeZone
		}
	}
	if cfg.Metrics != nil && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}
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
