package render

import (
	"fmt"

	"github.com/futig/churn-console/internal/entity"
	"github.com/futig/churn-console/internal/usecase/console"
)

const (
	MsgWelcome = "Hi! I answer questions about customer churn.\n\n" +
		"Send me a question and I will analyze it against the churn knowledge base. " +
		"Use /mode to switch between plain retrieval, single-agent and multi-agent analysis, " +
		"and /retriever to pick a retrieval strategy for plain mode."

	MsgHelp = "Commands:\n" +
		"/mode - choose analysis mode\n" +
		"/retriever - choose retrieval strategy (plain mode)\n" +
		"/status - check backend availability\n" +
		"/help - show this message\n\n" +
		"Any other text is treated as a question."

	MsgChooseMode      = "Choose analysis mode:"
	MsgChooseRetriever = "Choose retrieval strategy:"
	MsgAnalyzing       = "Analyzing, this can take a while..."
	MsgNoAnswer        = "Nothing to export yet. Ask a question first."
	MsgBadFormat       = "Unknown export format."
)

// Status renders the backend availability for /status.
func Status(status entity.BackendStatus) string {
	switch status {
	case entity.BackendOnline:
		return "Backend is online ✅"
	case entity.BackendOffline:
		return "Backend is offline ❌"
	default:
		return "Checking backend availability..."
	}
}

// ModeChanged confirms a mode switch.
func ModeChanged(mode entity.Mode) string {
	return fmt.Sprintf("Mode set to %s.", mode.Label())
}

// RetrieverChanged confirms a retrieval strategy switch.
func RetrieverChanged(kind entity.RetrieverKind) string {
	return fmt.Sprintf("Retrieval strategy set to %s.", kind.Label())
}

// Answer renders a completed analysis as a markdown message.
func Answer(ans *entity.Answer) string {
	return console.BuildReport(ans)
}
