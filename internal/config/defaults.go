package config

import "time"

// Default values for configuration
const (
	DefaultLogLevel = "info"

	DefaultDBDriver = "sqlite"
	DefaultDBPath   = "mindfulbot.db"

	DefaultTelegramReplyTimeout = 30 * time.Second

	DefaultHTTPAddr            = ":8080"
	DefaultHTTPReadTimeout     = 10 * time.Second
	DefaultHTTPWriteTimeout    = 30 * time.Second
	DefaultHTTPShutdownTimeout = 10 * time.Second
	DefaultHTTPReplyTimeout    = 10 * time.Second

	DefaultMinUserMessages = 3
	DefaultReplyDelay      = 500 * time.Millisecond

	DefaultSQLMaintenanceSchedule = "0 30 3 * * *" // daily at 03:30

	DefaultMaxMessageLength = 4096 // Telegram's maximum message length
)

// DefaultMessages are the built-in user-facing texts.
var DefaultMessages = MessagesConfig{
	Welcome: "Hi! I'm MindfulChat, your mental health companion. I'm here to chat, listen, " +
		"and support you through your journey. How are you feeling today?",
	Help: "Just write to me about how you feel and I'll listen.\n\n" +
		"/report - your 7-day mood and mental health summary\n" +
		"/help - show this message",
	GeneralError:   "Something went wrong on my side. Please try again in a moment.",
	EmptyMessage:   "I'm listening. Tell me a bit about how you're feeling.",
	MessageTooLong: "That message is a little long for me. Please keep it under %d characters.",
	MaxLength:      DefaultMaxMessageLength,
}

var defaults = map[string]any{
	"logger.level": DefaultLogLevel,
	"logger.json":  false,

	"database.driver": DefaultDBDriver,
	"database.path":   DefaultDBPath,

	"telegram.enabled":       true,
	"telegram.token":         "",
	"telegram.reply_timeout": DefaultTelegramReplyTimeout,

	"http.enabled":          false,
	"http.addr":             DefaultHTTPAddr,
	"http.read_timeout":     DefaultHTTPReadTimeout,
	"http.write_timeout":    DefaultHTTPWriteTimeout,
	"http.shutdown_timeout": DefaultHTTPShutdownTimeout,
	"http.reply_timeout":    DefaultHTTPReplyTimeout,

	"analysis.tables_path":       "",
	"analysis.min_user_messages": DefaultMinUserMessages,
	"analysis.reply_delay":       DefaultReplyDelay,
	"analysis.seed":              0,

	"scheduler.tasks.sql_maintenance.enabled":  true,
	"scheduler.tasks.sql_maintenance.schedule": DefaultSQLMaintenanceSchedule,

	"messages.welcome":          DefaultMessages.Welcome,
	"messages.help":             DefaultMessages.Help,
	"messages.general_error":    DefaultMessages.GeneralError,
	"messages.empty_message":    DefaultMessages.EmptyMessage,
	"messages.message_too_long": DefaultMessages.MessageTooLong,
	"messages.max_length":       DefaultMessages.MaxLength,
}
