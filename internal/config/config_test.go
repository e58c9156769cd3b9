package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("SLACK_SIGNING_SECRET", "secret")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-token")
	t.Setenv("JIRA_BASE_URL", "https://tracker.example.com")
	t.Setenv("JIRA_USER", "bot@example.com")
	t.Setenv("JIRA_API_TOKEN", "api-token")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
	assert.Equal(t, []string{defaultAllowedChannel}, cfg.AllowedChannels)
	assert.Equal(t, defaultCommands, cfg.Commands)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SLACK_SIGNING_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SLACK_SIGNING_SECRET")
}

func TestLoadAllowedChannelsOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALLOWED_CHANNELS", "C0AAAAAAA, C0BBBBBBB ,C0CCCCCCC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"C0AAAAAAA", "C0BBBBBBB", "C0CCCCCCC"}, cfg.AllowedChannels)
}

func TestLoadCommandsOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COMMANDS_JSON", `[{"token":"guardia","query":"labels = oncall","description":"On-call issues"}]`)

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.Commands, 1)
	assert.Equal(t, "guardia", cfg.Commands[0].Token)
	assert.Equal(t, "labels = oncall", cfg.Commands[0].Query)
}

func TestLoadInvalidCommandsJSON(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COMMANDS_JSON", "{not json")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadInvalidTimeout(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QUERY_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}
