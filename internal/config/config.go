// Package config loads and validates the settings of a single run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/naka-gawa/github-streak-stats/internal/domain"
)

// configName is the config file name without extension.
const configName = ".github-streak-stats"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for settings other than the token.
const envPrefix = "GITHUB_STREAK_STATS"

// tokenEnv is the environment variable holding the GitHub API token.
const tokenEnv = "GITHUB_TOKEN"

// DefaultOffset is the UTC offset used to interpret dates when none is given.
const DefaultOffset = "+0900"

var (
	// ErrMissingToken is returned when no GitHub API token was supplied.
	ErrMissingToken = errors.New("GitHub API token is required: set GITHUB_TOKEN or pass --github-token")
	// ErrInvalidTheme is returned for a theme other than dark, light or auto.
	ErrInvalidTheme = errors.New("invalid theme")
)

// Theme selects the palette of the contribution matrix.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
	ThemeAuto  Theme = "auto"
)

// ParseTheme accepts any value whose first letter, ignoring case, names a theme.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s) + " ")[0] {
	case 'd':
		return ThemeDark, nil
	case 'l':
		return ThemeLight, nil
	case 'a':
		return ThemeAuto, nil
	}
	return "", fmt.Errorf("%w %q: possible values are dark, light, auto", ErrInvalidTheme, s)
}

// Config holds every option of a run.
type Config struct {
	Login                     string `mapstructure:"login"`
	Token                     string `mapstructure:"github_token"`
	GraphQLURL                string `mapstructure:"graphql_url"`
	RESTURL                   string `mapstructure:"rest_url"`
	From                      string `mapstructure:"from"`
	To                        string `mapstructure:"to"`
	Offset                    string `mapstructure:"offset"`
	DisplayPublicRepositories bool   `mapstructure:"display_public_repositories"`
	DisplayMatrix             bool   `mapstructure:"display_matrix"`
	Theme                     Theme  `mapstructure:"theme"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"github-token":                "github_token",
	"graphql-url":                 "graphql_url",
	"rest-url":                    "rest_url",
	"from":                        "from",
	"to":                          "to",
	"offset":                      "offset",
	"display-public-repositories": "display_public_repositories",
	"display-matrix":              "display_matrix",
	"theme":                       "theme",
}

// RegisterFlags defines the flags that Load understands.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("github-token", "g", "", "GitHub personal access token (env GITHUB_TOKEN)")
	flags.String("graphql-url", "", "GitHub Enterprise GraphQL endpoint")
	flags.String("rest-url", "", "GitHub Enterprise REST endpoint")
	flags.StringP("from", "f", "", "Start date (YYYY-MM-DD). Defaults to the first Sunday before 52 weeks ago; if given, the first Sunday before it")
	flags.StringP("to", "t", "", "End date (YYYY-MM-DD). Defaults to the first Saturday after today; if given, the first Saturday after it. 'from' and 'to' together must not span more than a year")
	flags.StringP("offset", "o", DefaultOffset, "Offset from UTC, in (+|-)HHMM format")
	flags.BoolP("display-public-repositories", "r", false, "Display number of public repositories owned")
	flags.BoolP("display-matrix", "m", false, "Display contribution matrix")
	flags.StringP("theme", "e", string(ThemeDark), "Theme for the contribution matrix: dark, light, auto")
}

// Load reads the configuration from a .env file, the config file, the environment and flags.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing .env and config files are not errors.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("offset", DefaultOffset)
	v.SetDefault("theme", string(ThemeDark))
	v.SetDefault("login", "")

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("github_token", tokenEnv); err != nil {
		return nil, fmt.Errorf("bind %s: %w", tokenEnv, err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the options and normalizes the theme.
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if _, err := domain.ParseOffset(c.Offset); err != nil {
		return err
	}
	theme, err := ParseTheme(string(c.Theme))
	if err != nil {
		return err
	}
	c.Theme = theme
	return nil
}
