package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cosmez/redisrest-go"
)

// ProfileConfig holds the connection settings of one named endpoint.
type ProfileConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// LoggingConfig defines basic logging knobs.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// File is the decoded config.toml.
type File struct {
	DefaultProfile string                   `toml:"default_profile"`
	Profiles       map[string]ProfileConfig `toml:"profiles"`
	Logging        LoggingConfig            `toml:"logging"`
}

// Overrides are the values given on the command line. Empty fields defer to
// the environment and then to the file.
type Overrides struct {
	URL      string
	Token    string
	Profile  string
	LogLevel string
}

// Settings is the fully resolved configuration the CLI runs with.
type Settings struct {
	Profile   string
	URL       string
	Token     string
	LogLevel  string
	LogFormat string
}

// DefaultPath returns $XDG_CONFIG_HOME/redisrest/config.toml, or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "redisrest", "config.toml"), nil
}

// Load reads the config file at path. A missing file yields an empty File
// unless required is set.
func Load(path string, required bool) (*File, error) {
	cfg := &File{Profiles: map[string]ProfileConfig{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]ProfileConfig{}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *File) validate() error {
	if cfg.DefaultProfile != "" {
		if _, ok := cfg.Profiles[cfg.DefaultProfile]; !ok {
			return fmt.Errorf("default_profile %q is not defined", cfg.DefaultProfile)
		}
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", cfg.Logging.Format)
	}
	return nil
}

// ProfileNames lists the defined profiles in order.
func (cfg *File) ProfileNames() []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve merges flags, environment and file, in that order of precedence.
func (cfg *File) Resolve(o Overrides) (Settings, error) {
	s := Settings{
		Profile:   o.Profile,
		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
	}
	if s.Profile == "" {
		s.Profile = cfg.DefaultProfile
	}

	var profile ProfileConfig
	if s.Profile != "" {
		p, ok := cfg.Profiles[s.Profile]
		if !ok && o.Profile != "" {
			return Settings{}, fmt.Errorf("profile %q not found in config", s.Profile)
		}
		profile = p
	}

	s.URL = firstNonEmpty(o.URL, os.Getenv(redisrest.EnvURL), profile.URL)
	s.Token = firstNonEmpty(o.Token, os.Getenv(redisrest.EnvToken), profile.Token)
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}

	if s.URL == "" {
		return Settings{}, fmt.Errorf("no URL configured: use --url, %s or a profile", redisrest.EnvURL)
	}
	if s.Token == "" {
		return Settings{}, fmt.Errorf("no token configured: use --token, %s or a profile", redisrest.EnvToken)
	}
	return s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
