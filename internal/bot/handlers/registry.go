package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a command handler with its middleware.
// It encapsulates all information needed to register and document a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
	Description string
}

// RegisterAllCommands initializes and returns a map of all available bot commands.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	private := []tgbot.Middleware{PrivateOnly(deps)}

	return map[string]RegisteredHandler{
		"/start": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "start",
			Handler:     NewStartHandler(deps),
			MatchType:   tgbot.MatchTypeCommandStartOnly,
			Middleware:  private,
			Description: "Start a conversation",
		},
		"/help": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "help",
			Handler:     NewHelpHandler(deps),
			MatchType:   tgbot.MatchTypeCommandStartOnly,
			Description: "Show what I can do",
		},
		"/report": {
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     "report",
			Handler:     NewReportHandler(deps),
			MatchType:   tgbot.MatchTypeCommandStartOnly,
			Middleware:  private,
			Description: "Your 7-day mood report",
		},
	}
}

// DefaultHandler returns the handler for every message no command matched.
func DefaultHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return PrivateOnly(deps)(NewChatHandler(deps))
}
