// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/streamchat/lib/secret"
)

// EnvConfigPath names the environment variable read by Load.
const EnvConfigPath = "STREAMCHAT_CONFIG"

// Config is the CLI configuration file.
type Config struct {
	// DefaultProfile is used when no profile is requested. May be empty
	// when the file has exactly one profile.
	DefaultProfile string `yaml:"default_profile"`

	// Profiles maps profile names to connection settings.
	Profiles map[string]*Profile `yaml:"profiles"`
}

// Profile holds the settings for one application.
type Profile struct {
	// Name is the key of the profile in Config.Profiles. Set by the
	// loader.
	Name string `yaml:"-"`

	// APIKey identifies the application.
	APIKey string `yaml:"api_key"`

	// APISecretFile is a file holding the API secret, or "-" for the
	// first line of stdin.
	APISecretFile string `yaml:"api_secret_file"`

	// APISecretEnv names an environment variable holding the API
	// secret. Used when APISecretFile is empty.
	APISecretEnv string `yaml:"api_secret_env"`

	// BaseURL overrides the API endpoint.
	BaseURL string `yaml:"base_url"`

	// Timeout is a Go duration string bounding each request.
	Timeout string `yaml:"timeout"`
}

// Load loads configuration from the file named by STREAMCHAT_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvConfigPath)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your streamchat.yaml config file, or use --config flag", EnvConfigPath)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, expands
// variables, and validates the result.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns and
// records profile names.
func (c *Config) expandVariables() {
	c.DefaultProfile = expandVars(c.DefaultProfile)
	for name, profile := range c.Profiles {
		if profile == nil {
			continue
		}
		profile.Name = name
		profile.APIKey = expandVars(profile.APIKey)
		profile.APISecretFile = expandVars(profile.APISecretFile)
		profile.APISecretEnv = expandVars(profile.APISecretEnv)
		profile.BaseURL = expandVars(profile.BaseURL)
		profile.Timeout = expandVars(profile.Timeout)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Profiles) == 0 {
		errs = append(errs, fmt.Errorf("at least one profile is required"))
	}
	if c.DefaultProfile != "" {
		if _, ok := c.Profiles[c.DefaultProfile]; !ok {
			errs = append(errs, fmt.Errorf("default_profile %q is not defined", c.DefaultProfile))
		}
	}

	for _, name := range c.ProfileNames() {
		profile := c.Profiles[name]
		if profile == nil {
			errs = append(errs, fmt.Errorf("profiles.%s is empty", name))
			continue
		}
		if profile.APIKey == "" {
			errs = append(errs, fmt.Errorf("profiles.%s.api_key is required", name))
		}
		if profile.APISecretFile == "" && profile.APISecretEnv == "" {
			errs = append(errs, fmt.Errorf("profiles.%s needs api_secret_file or api_secret_env", name))
		}
		if profile.Timeout != "" {
			if _, err := time.ParseDuration(profile.Timeout); err != nil {
				errs = append(errs, fmt.Errorf("profiles.%s.timeout: %w", name, err))
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ProfileNames returns the profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile returns the named profile. An empty name selects
// DefaultProfile, or the only profile when there is exactly one.
func (c *Config) Profile(name string) (*Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" {
		if len(c.Profiles) != 1 {
			return nil, fmt.Errorf("no profile selected and no default_profile set (available: %v)", c.ProfileNames())
		}
		name = c.ProfileNames()[0]
	}

	profile, ok := c.Profiles[name]
	if !ok || profile == nil {
		return nil, fmt.Errorf("profile %q not found (available: %v)", name, c.ProfileNames())
	}
	return profile, nil
}

// TimeoutDuration parses Timeout. Empty means zero, leaving the SDK
// default in place.
func (p *Profile) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(p.Timeout)
}

// OpenSecret reads the API secret into protected memory. The caller
// owns the returned key.
func (p *Profile) OpenSecret() (*secret.Key, error) {
	switch {
	case p.APISecretFile != "":
		return secret.ReadFromPath(p.APISecretFile)
	case p.APISecretEnv != "":
		return secret.FromEnv(p.APISecretEnv)
	default:
		return nil, fmt.Errorf("profile %q has no api secret source", p.Name)
	}
}
