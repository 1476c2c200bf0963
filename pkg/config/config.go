package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata" // timezone names must resolve on hosts without zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/harrisonrobin/dailies/pkg/auth"
	"github.com/harrisonrobin/dailies/pkg/habitica"
	"github.com/harrisonrobin/dailies/pkg/notion"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	configFile = "config.json"
	envPrefix  = "DAILIES"
)

// HabiticaConfig holds the task service endpoint and credentials.
type HabiticaConfig struct {
	BaseURL string `mapstructure:"base_url" json:"base_url" validate:"required,url"`
	UserID  string `mapstructure:"user_id" json:"user_id" validate:"required"`
	APIKey  string `mapstructure:"api_key" json:"api_key" validate:"required"`
}

// NotionConfig holds the ledger endpoint, token and page ids.
// An empty StatsPageID disables the stats update.
type NotionConfig struct {
	BaseURL     string `mapstructure:"base_url" json:"base_url" validate:"required,url"`
	Version     string `mapstructure:"version" json:"version" validate:"required"`
	Token       string `mapstructure:"token" json:"token" validate:"required"`
	DatabaseID  string `mapstructure:"database_id" json:"database_id" validate:"required"`
	StatsPageID string `mapstructure:"stats_page_id" json:"stats_page_id"`
}

// Config is the resolved configuration for one invocation.
type Config struct {
	Habitica HabiticaConfig `mapstructure:"habitica" json:"habitica"`
	Notion   NotionConfig   `mapstructure:"notion" json:"notion"`
	Timezone string         `mapstructure:"timezone" json:"timezone"`
	LogLevel string         `mapstructure:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogJSON  bool           `mapstructure:"log_json" json:"log_json"`
}

// envNames maps config keys to the environment variables that can set them,
// highest priority first.
var envNames = map[string][]string{
	"habitica.user_id":     {"DAILIES_HABITICA_USER_ID", "HABITICA_USER"},
	"habitica.api_key":     {"DAILIES_HABITICA_API_KEY", "HABITICA_TOKEN"},
	"notion.token":         {"DAILIES_NOTION_TOKEN", "NOTION_TOKEN"},
	"notion.database_id":   {"DAILIES_NOTION_DATABASE_ID", "DB_TOKEN"},
	"notion.stats_page_id": {"DAILIES_NOTION_STATS_PAGE_ID", "STATS_ID"},
}

// Persistable lists the keys `config set` may write. Secrets stay in the environment.
var Persistable = []string{
	"habitica.base_url",
	"notion.base_url",
	"notion.version",
	"notion.database_id",
	"notion.stats_page_id",
	"timezone",
	"log_level",
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
	})
}

// GetConfigPath returns the default config file location.
func GetConfigPath() (string, error) {
	dir, err := auth.GetXdgHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// LoadDotEnv loads .env files into the process environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("habitica.base_url", habitica.DefaultBaseURL)
	v.SetDefault("notion.base_url", notion.DefaultBaseURL)
	v.SetDefault("notion.version", notion.DefaultVersion)
	v.SetDefault("notion.stats_page_id", "")
	v.SetDefault("timezone", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

// Load resolves the configuration from defaults, the JSON config file on fs,
// the environment and any flags already bound to v. An empty cfgFile means
// the default path; a missing default file is not an error. When validation
// fails the decoded Config is still returned alongside the error.
func Load(v *viper.Viper, fs afero.Fs, cfgFile string) (*Config, error) {
	v.SetFs(fs)
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envNames {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	path := cfgFile
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, err
		}
		if ok, _ := afero.Exists(fs, path); !ok {
			path = ""
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return &cfg, err
	}
	return &cfg, nil
}

// Validate checks required settings and reports which variable sets each missing one.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		if _, tzErr := c.Location(); tzErr != nil {
			return tzErr
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		msg := fmt.Sprintf("%s failed %q", key, fe.Tag())
		if fe.Tag() == "required" {
			msg = key + " is required"
		}
		if names, ok := envNames[key]; ok {
			msg += fmt.Sprintf(" (set %s)", names[len(names)-1])
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Location is the zone that decides the user's calendar day.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Masked returns a copy safe to print.
func (c Config) Masked() Config {
	c.Habitica.APIKey = mask(c.Habitica.APIKey)
	c.Notion.Token = mask(c.Notion.Token)
	return c
}

func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// Save writes key=value into the JSON config file at path, keeping other keys.
func Save(fs afero.Fs, path, key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	allowed := false
	for _, k := range Persistable {
		if k == key {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("unknown or non-persistable key %q (allowed: %s)", key, strings.Join(Persistable, ", "))
	}
	if key == "timezone" && value != "" {
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", value, err)
		}
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if ok, _ := afero.Exists(fs, path); ok {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	v.Set(key, value)

	if err := fs.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
