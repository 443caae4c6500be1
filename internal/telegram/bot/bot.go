package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/churn-console/internal/config"
	"github.com/futig/churn-console/internal/entity"
	"github.com/futig/churn-console/internal/pkg/formatter"
	"github.com/futig/churn-console/internal/telegram/keyboard"
	"github.com/futig/churn-console/internal/telegram/render"
	"github.com/futig/churn-console/internal/telegram/state"
	"github.com/futig/churn-console/internal/usecase/console"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	probeTimeout  = 15 * time.Second
	submitTimeout = 3 * time.Minute
)

// Bot is the Telegram front-end over the console controller. Each chat
// gets its own session state, so mode and retriever choices are per chat.
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	sessions    *state.Store
	controller  *console.Controller
	formats     *formatter.Factory
	keyboard    *keyboard.Builder
	logger      *zap.Logger
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	sessions *state.Store,
	controller *console.Controller,
	formats *formatter.Factory,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return &Bot{
		api:        api,
		cfg:        cfg,
		sessions:   sessions,
		controller: controller,
		formats:    formats,
		keyboard:   keyboard.NewBuilder(),
		logger:     logger,
		stopChan:   make(chan struct{}),
	}, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdate(u)
			}(update)
		}
	}
}

// handleUpdate routes an update to the matching handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	chatID := message.Chat.ID
	sess, created := b.sessions.GetOrCreate(chatID)
	if created {
		b.probe(sess)
	}

	b.submitQuery(ctx, sess, message.Text)
}

// submitQuery runs one analysis round and reports the outcome to the chat.
func (b *Bot) submitQuery(ctx context.Context, sess *state.Session, text string) {
	chatID := sess.ChatID

	b.sendTyping(chatID)
	b.sendMessage(chatID, render.MsgAnalyzing, nil)

	reqCtx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	var submitErr error
	sess.WithLock(func(st *console.State) {
		b.controller.SetQuery(st, text)
		submitErr = b.controller.Submit(reqCtx, st)
	})

	if submitErr != nil {
		switch submitErr {
		case entity.ErrEmptyQuery:
			b.sendMessage(chatID, "Send a non-empty question.", nil)
		case entity.ErrBackendOffline:
			b.sendMessage(chatID, render.Status(entity.BackendOffline), nil)
		default:
			ctxzap.Debug(ctx, "submit skipped",
				zap.Error(submitErr),
				zap.Int64("chat_id", chatID),
			)
		}
		return
	}

	st := sess.Snapshot()
	if st.Phase == console.PhaseError {
		b.sendMessage(chatID, st.ErrorMessage, nil)
		return
	}
	if st.Answer == nil {
		return
	}

	msg := tgbotapi.NewMessage(chatID, render.Answer(st.Answer))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = b.keyboard.ExportKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		ctxzap.Error(ctx, "failed to send answer",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		// Markdown from the model is not always valid Telegram markdown.
		plain := tgbotapi.NewMessage(chatID, st.Answer.Text())
		plain.ReplyMarkup = b.keyboard.ExportKeyboard()
		b.api.Send(plain)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()
	chatID := message.Chat.ID

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("chat_id", chatID),
	)

	sess, created := b.sessions.GetOrCreate(chatID)
	if created {
		b.probe(sess)
	}

	switch command {
	case "start":
		b.sendMessage(chatID, render.MsgWelcome, nil)
	case "help":
		b.sendMessage(chatID, render.MsgHelp, nil)
	case "mode":
		b.sendMessage(chatID, render.MsgChooseMode, b.keyboard.ModeKeyboard(sess.Snapshot().Mode))
	case "retriever":
		b.sendMessage(chatID, render.MsgChooseRetriever, b.keyboard.RetrieverKeyboard(sess.Snapshot().Retriever))
	case "status":
		b.probeSync(ctx, sess)
		b.sendMessage(chatID, render.Status(sess.Snapshot().Backend), nil)
	default:
		b.sendMessage(chatID, "Unknown command. Use /help", nil)
	}
}

// handleCallbackQuery handles callback button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	action, value, ok := keyboard.ParseCallback(query.Data)
	if !ok {
		ctxzap.Warn(ctx, "invalid callback data",
			zap.String("data", query.Data),
		)
		b.answerCallback(query.ID, "")
		return
	}

	chatID := query.Message.Chat.ID
	sess, created := b.sessions.GetOrCreate(chatID)
	if created {
		b.probe(sess)
	}

	switch action {
	case "mode":
		mode, err := entity.ParseMode(value)
		if err != nil {
			b.answerCallback(query.ID, "")
			return
		}
		sess.WithLock(func(st *console.State) {
			b.controller.SelectMode(st, mode)
		})
		b.answerCallback(query.ID, "")
		b.sendMessage(chatID, render.ModeChanged(mode), nil)

	case "retriever":
		kind, err := entity.ParseRetrieverKind(value)
		if err != nil {
			b.answerCallback(query.ID, "")
			return
		}
		sess.WithLock(func(st *console.State) {
			b.controller.SetRetriever(st, kind)
		})
		b.answerCallback(query.ID, "")
		b.sendMessage(chatID, render.RetrieverChanged(kind), nil)

	case "export":
		b.answerCallback(query.ID, "Preparing file...")
		b.exportAnswer(ctx, sess, value)

	default:
		b.answerCallback(query.ID, "")
	}
}

// exportAnswer renders the last answer into a downloadable file.
func (b *Bot) exportAnswer(ctx context.Context, sess *state.Session, value string) {
	chatID := sess.ChatID

	format, err := entity.ParseResultFormat(value)
	if err != nil {
		b.sendMessage(chatID, render.MsgBadFormat, nil)
		return
	}

	st := sess.Snapshot()
	if st.Answer == nil {
		b.sendMessage(chatID, render.MsgNoAnswer, nil)
		return
	}

	f, err := b.formats.Create(format)
	if err != nil {
		b.sendMessage(chatID, render.MsgBadFormat, nil)
		return
	}

	data, err := f.Format(console.BuildReport(st.Answer))
	if err != nil {
		ctxzap.Error(ctx, "failed to format report",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	if err := b.sendDocument(chatID, "churn-report"+f.FileExtension(), data); err != nil {
		ctxzap.Error(ctx, "failed to send report",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// probe checks backend availability in the background so the first
// message never waits on the health endpoint.
func (b *Bot) probe(sess *state.Session) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		b.probeSync(ctxzap.ToContext(ctx, b.logger), sess)
	}()
}

func (b *Bot) probeSync(ctx context.Context, sess *state.Session) {
	sess.WithLock(func(st *console.State) {
		b.controller.Probe(ctx, st)
	})
}

// sendMessage sends a message to chat
func (b *Bot) sendMessage(chatID int64, text string, replyMarkup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// sendDocument sends a document
func (b *Bot) sendDocument(chatID int64, filename string, data []byte) error {
	doc := tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	}

	msg := tgbotapi.NewDocument(chatID, doc)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send document: %w", err)
	}

	return nil
}

// sendTyping shows the typing indicator while a request is in flight
func (b *Bot) sendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := b.api.Request(action); err != nil {
		b.logger.Debug("failed to send chat action",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}
