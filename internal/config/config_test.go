package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTelegramConfig() *Config {
	return &Config{
		EnabledSources:      []string{"amadeus", "google"},
		UseTelegram:         true,
		TelegramBotToken:    "tok",
		TelegramChatID:      "42",
		AmadeusClientId:     "id",
		AmadeusClientSecret: "secret",
	}
}

func TestValidate_TelegramChannelOK(t *testing.T) {
	require.NoError(t, validTelegramConfig().Validate())
}

func TestValidate_MissingTelegramCredentials(t *testing.T) {
	cfg := validTelegramConfig()
	cfg.TelegramBotToken = ""
	cfg.TelegramChatID = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram_bot_token")
	assert.Contains(t, err.Error(), "telegram_chat_id")
}

func TestValidate_EmailChannel(t *testing.T) {
	cfg := validTelegramConfig()
	cfg.UseTelegram = false

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email_address")

	cfg.EmailAddress = "me@example.com"
	cfg.EmailPassword = "hunter2"
	require.NoError(t, cfg.Validate())
}

func TestValidate_AmadeusOnlyWhenEnabled(t *testing.T) {
	cfg := validTelegramConfig()
	cfg.AmadeusClientId = ""
	cfg.AmadeusClientSecret = ""

	require.Error(t, cfg.Validate())

	cfg.EnabledSources = []string{"google", "kayak"}
	require.NoError(t, cfg.Validate())
}

func TestSourceEnabled(t *testing.T) {
	cfg := &Config{EnabledSources: []string{"amadeus", "kayak"}}
	assert.True(t, cfg.SourceEnabled("amadeus"))
	assert.False(t, cfg.SourceEnabled("google"))
}

func TestSplitSources(t *testing.T) {
	assert.Equal(t, []string{"amadeus", "google", "kayak"}, splitSources(" Amadeus, google ,,KAYAK "))
	assert.Nil(t, splitSources(""))
}
