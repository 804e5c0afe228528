package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Feed     FeedConfig     `yaml:"feed"`
	Filter   FilterConfig   `yaml:"filter"`
	Cache    CacheConfig    `yaml:"cache"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	HTTP     HTTPConfig     `yaml:"http"`
	LogLevel string         `yaml:"log_level"`
}

type RabbitMQConfig struct {
	URL       string `yaml:"url"`
	Exchange  string `yaml:"exchange"`
	QueueName string `yaml:"queue_name"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type YouTubeConfig struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	PageSize          int           `yaml:"page_size"`
	MinLongVideos     int           `yaml:"min_long_videos"`
	MaxPages          int           `yaml:"max_pages"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout"`
	Retry             RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type RelayConfig struct {
	Kind string `yaml:"kind"` // "allorigins", "raw" or "direct"
	URL  string `yaml:"url"`
}

type FeedConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Relays         []RelayConfig `yaml:"relays"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`
	MaxBodySize    int64         `yaml:"max_body_size"`
}

type FilterConfig struct {
	Shorts         *bool `yaml:"shorts"`
	ShortThreshold int   `yaml:"short_threshold"`
}

type CacheConfig struct {
	TTL       time.Duration `yaml:"ttl"`
	Retention time.Duration `yaml:"retention"`
}

type FetchConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent"`
	Timeout       time.Duration `yaml:"timeout"`
}

type RefreshConfig struct {
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse expands ${VAR} references and decodes YAML, then applies defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// FilterShorts returns the configured default for the short-form filter.
func (c *Config) FilterShorts() bool {
	return c.Filter.Shorts == nil || *c.Filter.Shorts
}

func (c *Config) setDefaults() {
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "safetube"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "safetube_events"
	}
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = "https://youtube.googleapis.com/"
	}
	if c.YouTube.PageSize == 0 {
		c.YouTube.PageSize = 20
	}
	if c.YouTube.MinLongVideos == 0 {
		c.YouTube.MinLongVideos = 5
	}
	if c.YouTube.MaxPages == 0 {
		c.YouTube.MaxPages = 3
	}
	if c.YouTube.RequestsPerSecond == 0 {
		c.YouTube.RequestsPerSecond = 5
	}
	if c.YouTube.Timeout == 0 {
		c.YouTube.Timeout = 15 * time.Second
	}
	if c.YouTube.Retry.MaxAttempts == 0 {
		c.YouTube.Retry.MaxAttempts = 3
	}
	if c.YouTube.Retry.InitialBackoff == 0 {
		c.YouTube.Retry.InitialBackoff = 500 * time.Millisecond
	}
	if c.YouTube.Retry.MaxBackoff == 0 {
		c.YouTube.Retry.MaxBackoff = 5 * time.Second
	}
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = "https://www.youtube.com/feeds/videos.xml"
	}
	if len(c.Feed.Relays) == 0 {
		c.Feed.Relays = []RelayConfig{
			{Kind: "allorigins", URL: "https://api.allorigins.win/get?url="},
			{Kind: "raw", URL: "https://corsproxy.io/?url="},
			{Kind: "direct"},
		}
	}
	if c.Feed.AttemptTimeout == 0 {
		c.Feed.AttemptTimeout = 6 * time.Second
	}
	if c.Feed.MaxBodySize == 0 {
		c.Feed.MaxBodySize = 5 << 20
	}
	if c.Filter.ShortThreshold == 0 {
		c.Filter.ShortThreshold = 90
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = time.Hour
	}
	if c.Cache.Retention == 0 {
		c.Cache.Retention = 7 * 24 * time.Hour
	}
	if c.Fetch.MaxConcurrent == 0 {
		c.Fetch.MaxConcurrent = 8
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 2 * time.Minute
	}
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = 30 * time.Minute
	}
	if c.Refresh.Timeout == 0 {
		c.Refresh.Timeout = 2 * time.Minute
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
