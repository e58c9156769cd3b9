package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// defaultAllowedChannel is used when no allow-list override is provided.
const defaultAllowedChannel = "C024BE91L"

// Command is one registry entry provided through configuration.
type Command struct {
	Token       string `json:"token"`
	Query       string `json:"query"`
	Description string `json:"description"`
}

// Config holds all process-wide settings. It is built once at startup and
// never mutated afterwards.
type Config struct {
	SigningSecret   string
	BotToken        string
	JiraBaseURL     string
	JiraUser        string
	JiraAPIToken    string
	AllowedChannels []string
	Port            string
	LogLevel        string
	QueryTimeout    time.Duration
	Commands        []Command
}

var defaultCommands = []Command{
	{
		Token:       "problemashoy",
		Query:       "priority in (Blocker, Critical) AND status not in (Closed, Resolved) ORDER BY created DESC",
		Description: "Open high-priority problems",
	},
	{
		Token:       "pendientes",
		Query:       "status = Open ORDER BY priority DESC, created ASC",
		Description: "All open issues by priority",
	},
}

// Load reads configuration from the environment, with an optional .env file
// for local runs. Missing required values fail the process at startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("QUERY_TIMEOUT", "10s")
	v.SetDefault("ALLOWED_CHANNELS", defaultAllowedChannel)

	cfg := &Config{
		SigningSecret: v.GetString("SLACK_SIGNING_SECRET"),
		BotToken:      v.GetString("SLACK_BOT_TOKEN"),
		JiraBaseURL:   v.GetString("JIRA_BASE_URL"),
		JiraUser:      v.GetString("JIRA_USER"),
		JiraAPIToken:  v.GetString("JIRA_API_TOKEN"),
		Port:          v.GetString("PORT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
	}

	var missing []string
	for key, value := range map[string]string{
		"SLACK_SIGNING_SECRET": cfg.SigningSecret,
		"SLACK_BOT_TOKEN":      cfg.BotToken,
		"JIRA_BASE_URL":        cfg.JiraBaseURL,
		"JIRA_USER":            cfg.JiraUser,
		"JIRA_API_TOKEN":       cfg.JiraAPIToken,
	} {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	timeout, err := time.ParseDuration(v.GetString("QUERY_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUERY_TIMEOUT: %w", err)
	}
	cfg.QueryTimeout = timeout

	for _, channel := range strings.Split(v.GetString("ALLOWED_CHANNELS"), ",") {
		if channel = strings.TrimSpace(channel); channel != "" {
			cfg.AllowedChannels = append(cfg.AllowedChannels, channel)
		}
	}

	cfg.Commands = defaultCommands
	if raw := v.GetString("COMMANDS_JSON"); raw != "" {
		var commands []Command
		if err := json.Unmarshal([]byte(raw), &commands); err != nil {
			return nil, fmt.Errorf("invalid COMMANDS_JSON: %w", err)
		}
		cfg.Commands = commands
	}

	return cfg, nil
}
