package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Outbound API names. The values double as environment variable names that
// override the endpoint table.
const (
	APIOTPGen         = "OTP_GEN_URL"
	APIIDRepoIdentity = "IDREPO_IDENTITY_URL"
	APIAIDStatus      = "AID_STATUS_URL"
	APIIDAToken       = "IDA_TOKEN_URL"
)

// Server captures service level configuration.
type Server struct {
	Addr     string
	LogLevel string
	// LangCode is stamped on transaction records.
	LangCode string

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	RefIDHashAlgorithm string
	UpstreamTimeout    time.Duration
	OTPRatePerMinute   int
	OTPRateBurst       int
	AuditAsyncBuffer   int

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Identity IdentityConfig
	OTPQuota QuotaConfig

	// APIs maps an outbound API name to its URL template.
	APIs map[string]string
}

// DatabaseConfig configures the Postgres pool. An empty URL selects the
// in-memory stores.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the identity token cache. An empty URL selects the
// in-process cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit event sink. No brokers disables it.
type KafkaConfig struct {
	Brokers           []string
	AuditTopic        string
	Partitions        int32
	ReplicationFactor int16
}

type IdentityConfig struct {
	CacheTTL time.Duration
}

// QuotaConfig caps OTP requests per individual id. A zero Limit disables it.
type QuotaConfig struct {
	Limit  int
	Window time.Duration
}

// defaultAPIs point at a local mock of the platform services.
var defaultAPIs = map[string]string{
	APIOTPGen:         "http://localhost:8090/resident/v1/req/otp",
	APIIDRepoIdentity: "http://localhost:8090/idrepository/v1/identity/idvid/{id}",
	APIAIDStatus:      "http://localhost:8090/resident/v1/aid/status/{aid}",
	APIIDAToken:       "http://localhost:8090/idauthentication/v1/internal/token",
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present, and the
// endpoint table is read from RESIDENT_API_CONFIG when that is set.
func FromEnv() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}

	apis, err := loadAPIs(os.Getenv("RESIDENT_API_CONFIG"))
	if err != nil {
		return Server{}, err
	}

	cfg := Server{
		Addr:     getEnv("RESIDENT_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LangCode: getEnv("LANG_CODE", "eng"),

		// Use a default for development - should be overridden in production
		JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     getEnv("JWT_ISSUER", "resident"),
		JWTAudience:   getEnv("JWT_AUDIENCE", "resident-ui"),

		RefIDHashAlgorithm: getEnv("REF_ID_HASH_ALGORITHM", "SHA-256"),
		UpstreamTimeout:    getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		OTPRatePerMinute:   getInt("OTP_RATE_PER_MINUTE", 10),
		OTPRateBurst:       getInt("OTP_RATE_BURST", 3),
		AuditAsyncBuffer:   getInt("AUDIT_ASYNC_BUFFER", 256),

		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:           splitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic:        getEnv("AUDIT_TOPIC", "resident.audit"),
			Partitions:        int32(getInt("AUDIT_TOPIC_PARTITIONS", 3)),
			ReplicationFactor: int16(getInt("AUDIT_TOPIC_REPLICATION", 1)),
		},
		Identity: IdentityConfig{
			CacheTTL: getDuration("IDENTITY_CACHE_TTL", 15*time.Minute),
		},
		OTPQuota: QuotaConfig{
			Limit:  getInt("OTP_QUOTA_LIMIT", 5),
			Window: getDuration("OTP_QUOTA_WINDOW", time.Hour),
		},
		APIs: apis,
	}
	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// RefIDHashAlgorithms lists the accepted REF_ID_HASH_ALGORITHM values.
var RefIDHashAlgorithms = []string{"SHA-256", "SHA3-256", "BLAKE2B-256"}

func (c Server) validate() error {
	if !slices.Contains(RefIDHashAlgorithms, strings.ToUpper(c.RefIDHashAlgorithm)) {
		return fmt.Errorf("REF_ID_HASH_ALGORITHM %q is not one of %s",
			c.RefIDHashAlgorithm, strings.Join(RefIDHashAlgorithms, ", "))
	}
	// a zero rate never refills the bucket, locking every client out after the burst
	if c.OTPRatePerMinute <= 0 {
		return fmt.Errorf("OTP_RATE_PER_MINUTE must be positive, got %d", c.OTPRatePerMinute)
	}
	if c.OTPRateBurst < 0 {
		return fmt.Errorf("OTP_RATE_BURST must not be negative, got %d", c.OTPRateBurst)
	}
	return nil
}

type apiFile struct {
	APIs map[string]string `yaml:"apis"`
}

// loadAPIs merges defaults, the optional YAML file and env overrides, in
// increasing precedence.
func loadAPIs(path string) (map[string]string, error) {
	apis := make(map[string]string, len(defaultAPIs))
	for name, url := range defaultAPIs {
		apis[name] = url
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read api config: %w", err)
		}
		var file apiFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parse api config %s: %w", path, err)
		}
		for name, url := range file.APIs {
			apis[name] = url
		}
	}

	for name := range apis {
		if v := os.Getenv(name); v != "" {
			apis[name] = v
		}
	}
	return apis, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for part := range strings.SplitSeq(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
