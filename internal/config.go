package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when present and no --config is given
const DefaultConfigFile = "assistant-runner.yaml"

// DefaultDatasetPath is the CSV the validation workflow uploads
const DefaultDatasetPath = "utils/github_scores.csv"

// Config holds runtime settings
type Config struct {
	APIKey            string        `yaml:"-"`
	BaseURL           string        `yaml:"base_url,omitempty"`
	Model             string        `yaml:"model"`
	PollInterval      time.Duration `yaml:"poll_interval"`
	PollTimeout       time.Duration `yaml:"poll_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	DatasetPath       string        `yaml:"dataset_path"`
	Assistants        AssistantIDs  `yaml:"assistants"`
}

// AssistantIDs holds the pre-created assistant per workflow
type AssistantIDs struct {
	Validation string `yaml:"validation"`
	Outliers   string `yaml:"outliers"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Model:             DefaultModel,
		PollInterval:      DefaultPollInterval,
		RequestTimeout:    2 * time.Minute,
		RequestsPerSecond: 2,
		DatasetPath:       DefaultDatasetPath,
	}
}

// LoadConfig layers defaults, the YAML file, a .env file and the environment.
// An explicit path must exist; the default file is optional.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		LogDebug("loaded config from %s", path)
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// godotenv never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		LogWarn("failed to load .env: %v", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.APIKey = os.Getenv("API_KEY")
	if c.APIKey == "" {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if v := os.Getenv("ASSISTANT_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("ASSISTANT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("VALIDATION_ASSISTANT_ID"); v != "" {
		c.Assistants.Validation = v
	}
	if v := os.Getenv("OUTLIER_ASSISTANT_ID"); v != "" {
		c.Assistants.Outliers = v
	}
	if v := os.Getenv("ASSISTANT_POLL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: ASSISTANT_POLL_TIMEOUT: %v", ErrInvalidValue, err)
		}
		c.PollTimeout = d
	}
	if v := os.Getenv("ASSISTANT_REQUESTS_PER_SECOND"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: ASSISTANT_REQUESTS_PER_SECOND: %v", ErrInvalidValue, err)
		}
		c.RequestsPerSecond = f
	}
	return nil
}

// Validate checks settings needed before any remote call
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive", ErrInvalidValue)
	}
	if c.PollTimeout < 0 {
		return fmt.Errorf("%w: poll_timeout must not be negative", ErrInvalidValue)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests_per_second must not be negative", ErrInvalidValue)
	}
	return nil
}
