package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSecrets(t *testing.T) {
	t.Setenv("HABITICA_USER", "user-1")
	t.Setenv("HABITICA_TOKEN", "key-1234567")
	t.Setenv("NOTION_TOKEN", "secret_notion")
	t.Setenv("DB_TOKEN", "db-1")
	t.Setenv("STATS_ID", "stats-1")
}

func TestLoadFromEnvironment(t *testing.T) {
	setSecrets(t)
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(viper.New(), afero.NewMemMapFs(), "")
	require.NoError(t, err)

	assert.Equal(t, "user-1", cfg.Habitica.UserID)
	assert.Equal(t, "key-1234567", cfg.Habitica.APIKey)
	assert.Equal(t, "https://habitica.com/api/v3", cfg.Habitica.BaseURL)
	assert.Equal(t, "secret_notion", cfg.Notion.Token)
	assert.Equal(t, "db-1", cfg.Notion.DatabaseID)
	assert.Equal(t, "stats-1", cfg.Notion.StatsPageID)
	assert.Equal(t, "2022-06-28", cfg.Notion.Version)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestPrefixedEnvironmentWins(t *testing.T) {
	setSecrets(t)
	t.Setenv("HOME", "/home/tester")
	t.Setenv("DAILIES_HABITICA_USER_ID", "override")

	cfg, err := Load(viper.New(), afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, "override", cfg.Habitica.UserID)
}

func TestLoadReadsDefaultConfigFile(t *testing.T) {
	setSecrets(t)
	t.Setenv("HOME", "/home/tester")
	fs := afero.NewMemMapFs()

	path := filepath.Join("/home/tester", ".config", "dailies", "config.json")
	require.NoError(t, afero.WriteFile(fs, path, []byte(`{
		"timezone": "Asia/Tehran",
		"log_level": "debug",
		"notion": {"base_url": "http://localhost:9999/v1"}
	}`), 0600))

	cfg, err := Load(viper.New(), fs, "")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tehran", cfg.Timezone)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:9999/v1", cfg.Notion.BaseURL)
	assert.Equal(t, "db-1", cfg.Notion.DatabaseID, "env still fills keys the file omits")

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tehran", loc.String())
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	setSecrets(t)
	_, err := Load(viper.New(), afero.NewMemMapFs(), "/nowhere/config.json")
	assert.Error(t, err)
}

func TestLoadReportsMissingSecrets(t *testing.T) {
	for _, name := range []string{"HABITICA_USER", "HABITICA_TOKEN", "NOTION_TOKEN", "DB_TOKEN", "DAILIES_HABITICA_USER_ID"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv("HOME", "/home/tester")

	_, err := Load(viper.New(), afero.NewMemMapFs(), "")
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "habitica.user_id is required (set HABITICA_USER)")
	assert.Contains(t, msg, "habitica.api_key is required (set HABITICA_TOKEN)")
	assert.Contains(t, msg, "notion.token is required (set NOTION_TOKEN)")
	assert.Contains(t, msg, "notion.database_id is required (set DB_TOKEN)")
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Config{
		Habitica: HabiticaConfig{BaseURL: "not a url", UserID: "u", APIKey: "k"},
		Notion:   NotionConfig{BaseURL: "https://api.notion.com/v1", Version: "v", Token: "t", DatabaseID: "d"},
		LogLevel: "loud",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "habitica.base_url")
	assert.Contains(t, err.Error(), "log_level")

	cfg.Habitica.BaseURL = "https://habitica.com/api/v3"
	cfg.LogLevel = "warn"
	cfg.Timezone = "Mars/Olympus"
	assert.ErrorContains(t, cfg.Validate(), "invalid timezone")

	cfg.Timezone = ""
	assert.NoError(t, cfg.Validate())
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestMasked(t *testing.T) {
	cfg := Config{
		Habitica: HabiticaConfig{APIKey: "abcdefgh"},
		Notion:   NotionConfig{Token: "xyz"},
	}
	m := cfg.Masked()
	assert.Equal(t, "****efgh", m.Habitica.APIKey)
	assert.Equal(t, "***", m.Notion.Token)
	assert.Equal(t, "abcdefgh", cfg.Habitica.APIKey, "original untouched")
}

func TestSaveMergesKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/home/tester/.config/dailies/config.json"

	require.NoError(t, Save(fs, path, "notion.stats_page_id", "stats-9"))
	require.NoError(t, Save(fs, path, "Timezone", "Europe/Berlin"))

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, "stats-9", v.GetString("notion.stats_page_id"))
	assert.Equal(t, "Europe/Berlin", v.GetString("timezone"))
}

func TestSaveRejectsSecretsAndBadZones(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/cfg/config.json"

	assert.ErrorContains(t, Save(fs, path, "habitica.api_key", "x"), "non-persistable")
	assert.ErrorContains(t, Save(fs, path, "timezone", "Nowhere/Land"), "invalid timezone")

	exists, _ := afero.Exists(fs, path)
	assert.False(t, exists)
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DAILIES_DOTENV_PROBE=loaded\n"), 0600))
	t.Setenv("DAILIES_DOTENV_PROBE", "")
	os.Unsetenv("DAILIES_DOTENV_PROBE")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("DAILIES_DOTENV_PROBE"))
}
