// Package config loads and validates tool configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nervousmark/firecrawl-integration/internal/firecrawl"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Target     TargetConfig     `mapstructure:"target"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Poll       PollConfig       `mapstructure:"poll"`
	Output     OutputConfig     `mapstructure:"output"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	GCS        GCSConfig        `mapstructure:"gcs"`
	PubSub     PubSubConfig     `mapstructure:"pubsub"`
	Debug      DebugConfig      `mapstructure:"debug"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// APIConfig locates and authenticates against the crawl API.
// The key comes from the FIRECRAWL_API_KEY environment variable.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Key            string `mapstructure:"key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// TargetConfig names the page submitted for extraction.
type TargetConfig struct {
	URL string `mapstructure:"url"`
}

// ExtractionConfig overrides the extraction directive.
type ExtractionConfig struct {
	Prompt string `mapstructure:"prompt"`
}

// PollConfig governs the status polling loop.
type PollConfig struct {
	MaxAttempts  int `mapstructure:"max_attempts"`
	DelaySeconds int `mapstructure:"delay_seconds"`
}

// OutputConfig sets the local CSV destination.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig enables the Postgres sink when a DSN is set.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// GCSConfig enables the GCS sink when a bucket is set.
type GCSConfig struct {
	Bucket string `mapstructure:"bucket"`
	Object string `mapstructure:"object"`
}

// PubSubConfig enables completion events when a topic is set.
type PubSubConfig struct {
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// DebugConfig enables the debug HTTP listener when an address is set.
type DebugConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FIRECRAWL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", firecrawl.DefaultBaseURL)
	// Registered empty so environment-only values survive Unmarshal.
	v.SetDefault("api.key", "")
	v.SetDefault("api.timeout_seconds", 15)
	v.SetDefault("extraction.prompt", "")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("gcs.bucket", "")
	v.SetDefault("pubsub.project_id", "")
	v.SetDefault("pubsub.topic_name", "")
	v.SetDefault("debug.listen_addr", "")
	v.SetDefault("target.url", "https://www.bizbuysell.com/Business-Opportunity/Bathroom-and-Kitchen-Wholesale-and-Retail-Distributor-for-sale/2307073/")
	v.SetDefault("poll.max_attempts", 30)
	v.SetDefault("poll.delay_seconds", 2)
	v.SetDefault("output.path", "bizbuysell_listings.csv")
	v.SetDefault("gcs.object", "bizbuysell_listings.csv")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits. The API key is
// deliberately not checked here; its absence is reported as a credential
// error by the run itself, before any network call.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must be set")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be > 0")
	}
	if c.Target.URL == "" {
		return fmt.Errorf("target.url must be set")
	}
	if c.Poll.MaxAttempts < 1 {
		return fmt.Errorf("poll.max_attempts must be >= 1")
	}
	if c.Poll.DelaySeconds < 0 {
		return fmt.Errorf("poll.delay_seconds must be >= 0")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must be set")
	}
	if c.GCS.Bucket != "" && c.GCS.Object == "" {
		return fmt.Errorf("gcs.object must be set when gcs.bucket is set")
	}
	if c.PubSub.TopicName != "" && c.PubSub.ProjectID == "" {
		return fmt.Errorf("pubsub.project_id must be set when pubsub.topic_name is set")
	}
	return nil
}

// APITimeout converts the configured request timeout into a duration.
func (c Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// PollDelay converts the configured delay between attempts into a duration.
func (c Config) PollDelay() time.Duration {
	return time.Duration(c.Poll.DelaySeconds) * time.Second
}
