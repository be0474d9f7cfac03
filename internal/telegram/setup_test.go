package telegram

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/mindfulbot/internal/bot/handlers"
)

func TestNewTelegramBot_EmptyToken(t *testing.T) {
	t.Parallel()

	b, err := NewTelegramBot("", nil)
	require.ErrorIs(t, err, ErrEmptyToken)
	assert.Nil(t, b)
}

func TestBotCommands(t *testing.T) {
	t.Parallel()

	registered := map[string]handlers.RegisteredHandler{
		"/report": {Pattern: "report", Description: "Report"},
		"/help":   {Pattern: "help", Description: "Help"},
		"/hidden": {Pattern: "hidden"},
	}

	commands := BotCommands(registered)
	require.Len(t, commands, 2)
	assert.Equal(t, "help", commands[0].Command)
	assert.Equal(t, "report", commands[1].Command)
	assert.Equal(t, "Report", commands[1].Description)
}

func TestRegisterHandlers_NilBot(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := RegisterHandlers(nil, logger, nil)
	assert.Error(t, err)
}

func TestTokenPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "...", tokenPrefix("short"))
	assert.Equal(t, "12345678...", tokenPrefix("123456789:ABC"))
}
