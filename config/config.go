package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Log        LogConfig        `mapstructure:"log"`
	Oracle     OracleConfig     `mapstructure:"oracle"`
	Chain      ChainConfig      `mapstructure:"chain"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
	Notify     NotifyConfig     `mapstructure:"notify"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LockTimeout     time.Duration `mapstructure:"lock_timeout"` // bounds row-lock waits inside ledger transactions
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"` // per dial and per command
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig configures validation of identity-provider bearer tokens.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"` // lifetime of tokens minted by claimsctl
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// OracleConfig configures the external evaluation oracle.
type OracleConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Secret  string        `mapstructure:"secret"` // HMAC key for request signing
}

// ChainConfig configures the escrow contract gateway.
type ChainConfig struct {
	Mode            string        `mapstructure:"mode"` // rpc, simulated
	RPCURL          string        `mapstructure:"rpc_url"`
	ContractAddress string        `mapstructure:"contract_address"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ConfirmTimeout  time.Duration `mapstructure:"confirm_timeout"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	ReleaseLease    time.Duration `mapstructure:"release_lease"`
}

// ReconcilerConfig configures the background settlement reconciler.
type ReconcilerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Interval    time.Duration `mapstructure:"interval"`
	GracePeriod time.Duration `mapstructure:"grace_period"`
	MaxBackoff  time.Duration `mapstructure:"max_backoff"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	BatchSize   int           `mapstructure:"batch_size"`
	LockTTL     time.Duration `mapstructure:"lock_ttl"`
}

// NotifyConfig configures status-change webhooks. Empty URL disables them.
type NotifyConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
	Secret     string `mapstructure:"secret"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CEE_ (Claim Escrow Engine).
// Nested keys use underscore: CEE_DATABASE_HOST, CEE_ORACLE_BASE_URL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CEE_DATABASE_HOST -> database.host
	v.SetEnvPrefix("CEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "claim_escrow")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.lock_timeout", "5s")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.timeout", "500ms")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "claims-idp")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("oracle.base_url", "http://localhost:9000")
	v.SetDefault("oracle.timeout", "15s")
	v.SetDefault("oracle.secret", "")
	v.SetDefault("chain.mode", "simulated")
	v.SetDefault("chain.rpc_url", "http://localhost:8545")
	v.SetDefault("chain.contract_address", "")
	v.SetDefault("chain.request_timeout", "10s")
	v.SetDefault("chain.confirm_timeout", "2m")
	v.SetDefault("chain.poll_interval", "2s")
	v.SetDefault("chain.release_lease", "5m")
	v.SetDefault("reconciler.enabled", true)
	v.SetDefault("reconciler.interval", "30s")
	v.SetDefault("reconciler.grace_period", "2m")
	v.SetDefault("reconciler.max_backoff", "1h")
	v.SetDefault("reconciler.max_attempts", 8)
	v.SetDefault("reconciler.batch_size", 50)
	v.SetDefault("reconciler.lock_ttl", "5m")
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.secret", "")
	v.SetDefault("metrics.enabled", true)
}

// Validate checks cross-field constraints that defaults cannot express.
func (c *Config) Validate() error {
	switch c.Chain.Mode {
	case "rpc", "simulated":
	default:
		return fmt.Errorf("invalid chain.mode %q: must be rpc or simulated", c.Chain.Mode)
	}
	if c.Chain.Mode == "rpc" && c.Chain.ContractAddress == "" {
		return fmt.Errorf("chain.contract_address is required in rpc mode")
	}
	if c.Reconciler.MaxAttempts < 1 {
		return fmt.Errorf("reconciler.max_attempts must be at least 1")
	}
	if c.Reconciler.BatchSize < 1 {
		return fmt.Errorf("reconciler.batch_size must be at least 1")
	}
	// The release lease must outlive a confirmation wait, or a second submitter
	// could take over while the first is still polling.
	if c.Chain.ReleaseLease <= c.Chain.ConfirmTimeout {
		return fmt.Errorf("chain.release_lease must be longer than chain.confirm_timeout")
	}
	return nil
}
