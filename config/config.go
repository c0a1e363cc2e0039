// Package config loads pipeline settings from defaults, an optional YAML
// file and TOPLINKS_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/fwojciec/toplinks"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load. Field names
// map to upper snake case, so WorkDir is read from TOPLINKS_WORK_DIR.
const EnvPrefix = "TOPLINKS"

// Config holds the settings of a pipeline run.
type Config struct {
	// Sources are the home pages harvested on every run.
	Sources []string `yaml:"sources" split_words:"true"`

	// WorkDir is the git and DVC working directory.
	WorkDir string `yaml:"work_dir" split_words:"true"`

	// Path is the dataset file, relative to WorkDir.
	Path string `yaml:"path" split_words:"true"`

	StoreRemoteName string `yaml:"store_remote_name" split_words:"true"`
	StoreRemoteURL  string `yaml:"store_remote_url" split_words:"true"`
	OriginName      string `yaml:"origin_name" split_words:"true"`
	OriginURL       string `yaml:"origin_url" split_words:"true"`
	Branch          string `yaml:"branch" split_words:"true"`
	CommitMessage   string `yaml:"commit_message" split_words:"true"`

	// Schedule is a cron spec; descriptors such as @daily are accepted.
	Schedule string `yaml:"schedule" split_words:"true"`

	Policy toplinks.FailurePolicy `yaml:"policy" split_words:"true"`

	FetchTimeout time.Duration `yaml:"fetch_timeout" split_words:"true"`
	ToolTimeout  time.Duration `yaml:"tool_timeout" split_words:"true"`

	// RateLimit caps requests per second to a single host. Zero disables it.
	RateLimit float64 `yaml:"rate_limit" split_words:"true"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Sources:         []string{"https://www.dawn.com/", "https://www.bbc.com/"},
		WorkDir:         ".",
		Path:            "top_links.csv",
		StoreRemoteName: "gdrive",
		StoreRemoteURL:  "gdrive://1ZkKLL4GlflIbu9f5DayQwN4tXTKfujay",
		OriginName:      "origin",
		OriginURL:       "https://github.com/Aeiman191/Web-links-Extraction.git",
		Branch:          "main",
		CommitMessage:   "Added top_links.csv",
		Schedule:        "@daily",
		Policy:          toplinks.ContinueOnFailure,
		FetchTimeout:    10 * time.Second,
		ToolTimeout:     2 * time.Minute,
		RateLimit:       1,
	}
}

// Load builds a Config from the defaults, the YAML file at path and the
// environment. An empty path skips the file. When envFile names an existing
// file its variables are loaded first; variables already set in the process
// environment win.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, toplinks.Errorf(toplinks.EINVALID, "parse %s: %v", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, toplinks.Errorf(toplinks.EINVALID, "load %s: %v", envFile, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, toplinks.Errorf(toplinks.EINVALID, "environment: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration cannot drive a run.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return toplinks.Errorf(toplinks.EINVALID, "at least one source is required")
	}
	for _, s := range c.Sources {
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return toplinks.Errorf(toplinks.EINVALID, "invalid source %q", s)
		}
	}
	if c.Path == "" {
		return toplinks.Errorf(toplinks.EINVALID, "dataset path required")
	}
	if c.StoreRemoteName == "" || c.StoreRemoteURL == "" {
		return toplinks.Errorf(toplinks.EINVALID, "store remote name and url required")
	}
	if c.OriginName == "" || c.OriginURL == "" {
		return toplinks.Errorf(toplinks.EINVALID, "origin name and url required")
	}
	if c.Branch == "" {
		return toplinks.Errorf(toplinks.EINVALID, "branch required")
	}
	if c.CommitMessage == "" {
		return toplinks.Errorf(toplinks.EINVALID, "commit message required")
	}
	if _, err := cron.ParseStandard(c.Schedule); err != nil {
		return toplinks.Errorf(toplinks.EINVALID, "invalid schedule %q: %v", c.Schedule, err)
	}
	if err := c.Policy.Validate(); err != nil {
		return err
	}
	if c.FetchTimeout <= 0 || c.ToolTimeout <= 0 {
		return toplinks.Errorf(toplinks.EINVALID, "timeouts must be positive")
	}
	if c.RateLimit < 0 {
		return toplinks.Errorf(toplinks.EINVALID, "rate limit must not be negative")
	}
	return nil
}

// SourceList returns the configured sources.
func (c *Config) SourceList() []toplinks.Source {
	sources := make([]toplinks.Source, len(c.Sources))
	for i, s := range c.Sources {
		sources[i] = toplinks.Source(s)
	}
	return sources
}

// StoreRemote returns the DVC storage remote.
func (c *Config) StoreRemote() toplinks.Remote {
	return toplinks.Remote{Name: c.StoreRemoteName, URL: c.StoreRemoteURL}
}

// Origin returns the git remote.
func (c *Config) Origin() toplinks.Remote {
	return toplinks.Remote{Name: c.OriginName, URL: c.OriginURL}
}
