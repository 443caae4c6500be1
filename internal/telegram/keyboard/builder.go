package keyboard

import (
	"github.com/futig/churn-console/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// ModeKeyboard creates the analysis mode selection buttons. The active
// mode is marked; pressing another one replaces it.
func (b *Builder) ModeKeyboard(active entity.Mode) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	for _, mode := range []entity.Mode{entity.ModePlainRAG, entity.ModeSingleAgent, entity.ModeMultiAgent} {
		label := mode.Label()
		if mode == active {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, EncodeCallback("mode", string(mode))),
		))
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// RetrieverKeyboard creates retrieval strategy buttons for plain-rag mode.
func (b *Builder) RetrieverKeyboard(active entity.RetrieverKind) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	for _, kind := range entity.RetrieverKinds {
		label := kind.Label()
		if kind == active {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, EncodeCallback("retriever", string(kind))),
		))
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ExportKeyboard creates download format buttons shown under an answer.
func (b *Builder) ExportKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Markdown", EncodeCallback("export", "md")),
			tgbotapi.NewInlineKeyboardButtonData("📕 PDF", EncodeCallback("export", "pdf")),
		),
	)
}
