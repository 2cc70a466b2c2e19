package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses YAML duration strings like "10s" (plain integers are
// taken as nanoseconds).
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Environment string `yaml:"environment"`
	Log         struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Server struct {
		Port            int      `yaml:"port"`
		ReadTimeout     Duration `yaml:"read_timeout"`
		WriteTimeout    Duration `yaml:"write_timeout"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Backend struct {
		Type         string   `yaml:"type"`
		BatchSize    int      `yaml:"batch_size"`
		BatchTimeout Duration `yaml:"batch_timeout"`
	} `yaml:"backend"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int      `yaml:"max_attempts"`
			Linger       Duration `yaml:"linger"`
			BatchBytes   int      `yaml:"batch_bytes"`
			BatchSize    int      `yaml:"batch_size"`
			WriteTimeout Duration `yaml:"write_timeout"`
			ReadTimeout  Duration `yaml:"read_timeout"`
			Async        bool     `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string   `yaml:"host"`
		Port             int      `yaml:"port"`
		Database         string   `yaml:"database"`
		User             string   `yaml:"user"`
		Password         string   `yaml:"password"`
		UseHTTP          bool     `yaml:"use_http"`
		AsyncInsert      bool     `yaml:"async_insert"`
		WaitForAsync     bool     `yaml:"wait_for_async_insert"`
		DialTimeout      Duration `yaml:"dial_timeout"`
		ReadTimeout      Duration `yaml:"read_timeout"`
		WriteTimeout     Duration `yaml:"write_timeout"`
		MaxExecutionTime Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Cache struct {
		TTL   Duration `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Simulation struct {
		Symbol                string    `yaml:"symbol"`
		BasePrice             float64   `yaml:"base_price"`
		BaseVolatility        float64   `yaml:"base_volatility"`
		BaseSpread            float64   `yaml:"base_spread"`
		VolatilityPersistence float64   `yaml:"volatility_persistence"`
		Start                 time.Time `yaml:"start"`
		TickInterval          Duration  `yaml:"tick_interval"`
		Lookback              int       `yaml:"lookback"`
		Seed                  uint64    `yaml:"seed"`
		ExportOnStart         bool      `yaml:"export_on_start"`
		ExportN               int       `yaml:"export_n"`
	} `yaml:"simulation"`
	RateLimit struct {
		Enabled      bool    `yaml:"enabled"`
		Capacity     float64 `yaml:"capacity"`
		RefillPerSec float64 `yaml:"refill_per_sec"`
	} `yaml:"rate_limit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		c.Simulation.Symbol = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Backend.Type == "" {
		return fmt.Errorf("backend.type is required")
	}
	if c.Backend.Type != "kafka" && c.Backend.Type != "clickhouse" {
		return fmt.Errorf("backend.type must be 'kafka' or 'clickhouse', got '%s'", c.Backend.Type)
	}
	if c.Simulation.Symbol == "" {
		return fmt.Errorf("simulation.symbol is required")
	}
	if c.Simulation.BasePrice <= 0 {
		return fmt.Errorf("simulation.base_price must be positive")
	}
	if c.Simulation.BaseVolatility <= 0 || c.Simulation.BaseSpread <= 0 {
		return fmt.Errorf("simulation base volatility and spread must be positive")
	}
	if p := c.Simulation.VolatilityPersistence; p < 0 || p >= 1 {
		return fmt.Errorf("simulation.volatility_persistence must be in [0, 1)")
	}
	return nil
}
