// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Exchanges ExchangesConfig `mapstructure:"exchanges"`
	Trading   TradingConfig   `mapstructure:"trading"`
	Risk      RiskConfig      `mapstructure:"risk"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	DryRun    bool            `mapstructure:"dry_run"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
	UI       string `mapstructure:"ui"` // "console" or "tui"
}

// ExchangesConfig holds both venues' gateway settings.
type ExchangesConfig struct {
	A VenueConfig `mapstructure:"a"`
	B VenueConfig `mapstructure:"b"`
}

// VenueConfig holds one venue's REST/WS endpoints and credentials.
type VenueConfig struct {
	RestBase      string        `mapstructure:"rest_base"`
	WebSocketURL  string        `mapstructure:"websocket_url"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// TradingConfig holds the strategy's trading parameters.
type TradingConfig struct {
	SymbolA       string   `mapstructure:"symbol_a"`
	SymbolB       string   `mapstructure:"symbol_b"`
	MinProfitRate string   `mapstructure:"min_profit_rate"`
	MaxVolume     string   `mapstructure:"max_volume"`
	FeeA          string   `mapstructure:"fee_a"`
	FeeB          string   `mapstructure:"fee_b"`
	Pairs         []string `mapstructure:"pairs"`
	PollInterval  float64  `mapstructure:"poll_interval"`
}

// MinProfitRateDecimal parses MinProfitRate.
func (c *TradingConfig) MinProfitRateDecimal() decimal.Decimal {
	return decimal.RequireFromString(orZero(c.MinProfitRate))
}

// MaxVolumeDecimal parses MaxVolume.
func (c *TradingConfig) MaxVolumeDecimal() decimal.Decimal {
	return decimal.RequireFromString(orZero(c.MaxVolume))
}

// FeeADecimal parses FeeA.
func (c *TradingConfig) FeeADecimal() decimal.Decimal {
	return decimal.RequireFromString(orZero(c.FeeA))
}

// FeeBDecimal parses FeeB.
func (c *TradingConfig) FeeBDecimal() decimal.Decimal {
	return decimal.RequireFromString(orZero(c.FeeB))
}

// PollIntervalDuration converts the poll interval (seconds) to a Duration.
func (c *TradingConfig) PollIntervalDuration() time.Duration {
	if c.PollInterval <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.PollInterval * float64(time.Second))
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// RiskConfig holds risk-manager parameters.
type RiskConfig struct {
	ReserveRatio            string        `mapstructure:"reserve_ratio"`
	MaxVolume               string        `mapstructure:"max_volume"`
	MaxNotional             string        `mapstructure:"max_notional"`
	CircuitBreakerThreshold int           `mapstructure:"circuit_breaker_threshold"`
	CircuitBreakerCooldown  time.Duration `mapstructure:"circuit_breaker_cooldown"`
}

// ReserveRatioDecimal parses ReserveRatio.
func (c *RiskConfig) ReserveRatioDecimal() decimal.Decimal {
	return decimal.RequireFromString(orZero(c.ReserveRatio))
}

// MaxVolumeDecimal parses MaxVolume.
func (c *RiskConfig) MaxVolumeDecimal() decimal.Decimal {
	return decimal.RequireFromString(orZero(c.MaxVolume))
}

// MaxNotionalDecimal parses MaxNotional.
func (c *RiskConfig) MaxNotionalDecimal() decimal.Decimal {
	return decimal.RequireFromString(orZero(c.MaxNotional))
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("ARB")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadPairs reads a secondary pairs file (config/pairs.yaml style: a bare
// `pairs: [...]` list) and falls back through trading.pairs, and finally a
// single pair derived from symbol_a/symbol_b, exactly mirroring the
// original operator tooling's resolution order. If MAX_DRYRUN_PAIRS is set
// to a valid non-negative integer smaller than the list length, the resolved
// list is truncated to that many
// entries, matching the original dry-run tooling's startup pair cap.
func LoadPairs(pairsPath string, cfg *Config) []string {
	pairs := resolvePairs(pairsPath, cfg)

	if raw := os.Getenv("MAX_DRYRUN_PAIRS"); raw != "" {
		if max, err := strconv.Atoi(raw); err == nil && max >= 0 && max < len(pairs) {
			pairs = pairs[:max]
		}
	}

	return pairs
}

func resolvePairs(pairsPath string, cfg *Config) []string {
	if pairsPath != "" {
		v := viper.New()
		v.SetConfigFile(pairsPath)
		if err := v.ReadInConfig(); err == nil {
			if pairs := v.GetStringSlice("pairs"); len(pairs) > 0 {
				return pairs
			}
		}
	}
	if len(cfg.Trading.Pairs) > 0 {
		return cfg.Trading.Pairs
	}
	return []string{fmt.Sprintf("%s/%s", cfg.Trading.SymbolA, cfg.Trading.SymbolB)}
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("app.name", "ARB_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.log_level", "ARB_LOG_LEVEL", "LOG_LEVEL")

	v.BindEnv("exchanges.a.rest_base", "ARB_EX_A_REST_BASE")
	v.BindEnv("exchanges.a.websocket_url", "ARB_EX_A_WS_URL")
	v.BindEnv("exchanges.a.access_key", "EX_A_ACCESS_KEY")
	v.BindEnv("exchanges.a.secret_key", "EX_A_SECRET_KEY")

	v.BindEnv("exchanges.b.rest_base", "ARB_EX_B_REST_BASE")
	v.BindEnv("exchanges.b.websocket_url", "ARB_EX_B_WS_URL")
	v.BindEnv("exchanges.b.access_key", "EX_B_ACCESS_KEY")
	v.BindEnv("exchanges.b.secret_key", "EX_B_SECRET_KEY")

	v.BindEnv("trading.pairs", "ARB_PAIRS")
	v.BindEnv("trading.min_profit_rate", "ARB_MIN_PROFIT_RATE")
	v.BindEnv("trading.max_volume", "ARB_MAX_VOLUME")

	v.BindEnv("dry_run", "ARB_DRY_RUN")

	v.BindEnv("telemetry.enabled", "ARB_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "ARB_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "ARB_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "k-arb")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.ui", "console")

	v.SetDefault("exchanges.a.request_timeout", "10s")
	v.SetDefault("exchanges.b.request_timeout", "10s")

	v.SetDefault("trading.symbol_a", "KRW-BTC")
	v.SetDefault("trading.symbol_b", "BTC_KRW")
	v.SetDefault("trading.min_profit_rate", "0.005")
	v.SetDefault("trading.max_volume", "0.1")
	v.SetDefault("trading.fee_a", "0.001")
	v.SetDefault("trading.fee_b", "0.0025")
	v.SetDefault("trading.poll_interval", 0.5)

	v.SetDefault("risk.reserve_ratio", "0.1")
	v.SetDefault("risk.max_volume", "0.5")
	v.SetDefault("risk.max_notional", "100000000")
	v.SetDefault("risk.circuit_breaker_threshold", 3)
	v.SetDefault("risk.circuit_breaker_cooldown", "5s")

	v.SetDefault("dry_run", true)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "k-arb")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Exchanges.A.RestBase == "" {
		return fmt.Errorf("exchanges.a.rest_base is required")
	}
	if c.Exchanges.B.RestBase == "" {
		return fmt.Errorf("exchanges.b.rest_base is required")
	}
	if c.Trading.SymbolA == "" || c.Trading.SymbolB == "" {
		return fmt.Errorf("trading.symbol_a and trading.symbol_b are required")
	}
	if _, err := decimal.NewFromString(orZero(c.Trading.MinProfitRate)); err != nil {
		return fmt.Errorf("invalid trading.min_profit_rate: %w", err)
	}
	if c.Risk.CircuitBreakerThreshold <= 0 {
		return fmt.Errorf("risk.circuit_breaker_threshold must be positive")
	}
	return nil
}
