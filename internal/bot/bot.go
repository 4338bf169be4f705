// internal/bot/bot.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"lessons_bot/internal/command"
	"lessons_bot/internal/config"
	"lessons_bot/internal/metrics"
	"lessons_bot/internal/middleware"
	"lessons_bot/internal/model"
	"lessons_bot/internal/service"
	"lessons_bot/internal/spam"
	"lessons_bot/internal/texts"
)

// Bot はTelegramのロングポーリングループと更新のディスパッチを担います。
// 1更新 = 1ゴルーチン。更新同士の順序は保証しない (正しさはストア側で担保)
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	logger  *slog.Logger
}

func New(api *tgbotapi.BotAPI, handler *Handler, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{api: api, handler: handler, logger: logger}
}

// Run はctxがキャンセルされるまで更新を受け続けます
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot update loop started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Bot update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				b.logger.Info("Bot update channel closed")
				return
			}
			go b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	updateLogger := b.logger.With(
		"req_id", uuid.NewString(),
		"update_id", update.UpdateID,
	)
	ctx = middleware.WithLogger(ctx, updateLogger)

	switch {
	case update.Message != nil:
		b.handler.HandleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handler.HandleCallback(ctx, update.CallbackQuery)
	}
}

// Handler は個々の更新を処理します。Sender 経由で返信するのでテストでは
// フェイクに差し替えられる
type Handler struct {
	sender  Sender
	svc     service.LessonService
	spamGen *spam.Generator
	cfg     *config.Config
	metrics *metrics.Metrics
}

func NewHandler(sender Sender, svc service.LessonService, spamGen *spam.Generator, cfg *config.Config, m *metrics.Metrics) *Handler {
	return &Handler{
		sender:  sender,
		svc:     svc,
		spamGen: spamGen,
		cfg:     cfg,
		metrics: m,
	}
}

// HandleMessage は受信テキストを振り分けます。コマンドでない素のテキストは
// レッスン投稿として扱う
func (h *Handler) HandleMessage(ctx context.Context, m *tgbotapi.Message) {
	logger := middleware.GetLogger(ctx)
	h.metrics.UpdatesTotal.WithLabelValues("message").Inc()

	repl := ReplierFromMessage(h.sender, m)

	if m.Text == "" {
		h.reply(ctx, repl.SendText(texts.T.TextOnly.To(repl.Lang()), nil))
		return
	}

	if strings.HasPrefix(m.Text, "/") {
		h.handleCommand(ctx, repl, h.isModerator(m.From), m.Text)
		return
	}

	if !m.Chat.IsPrivate() || m.From == nil {
		h.reply(ctx, repl.SendText(texts.T.PrivateOnly.To(repl.Lang()), nil))
		return
	}

	spamToken := h.spamGen.Generate(m.From.ID)
	result, err := h.svc.AddLesson(ctx, spamToken, m.Text)
	if err != nil {
		logger.Error("Error adding lesson", "error", err)
		h.reply(ctx, repl.SendText(texts.T.InternalError.To(repl.Lang()), nil))
		return
	}
	if result.Throttled() {
		h.reply(ctx, repl.SendText(
			fmt.Sprintf(texts.T.Flood.To(repl.Lang()), result.WaitSeconds), nil))
		return
	}
	h.reply(ctx, repl.SendText(texts.T.LessonSaved.To(repl.Lang()), nil))
}

// HandleCallback はインラインボタンからのコールバックを振り分けます
func (h *Handler) HandleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	logger := middleware.GetLogger(ctx)
	h.metrics.UpdatesTotal.WithLabelValues("callback").Inc()

	if q.Message == nil || q.Data == "" {
		return
	}

	repl := NewReplier(h.sender, q.Message.Chat.ID, q.Message.MessageID, texts.LangFrom(q.From.LanguageCode))
	isModerator := h.isModerator(q.From)

	if setCmd, ok := command.ParseSet(q.Data); ok {
		if !isModerator {
			h.metrics.ForbiddenAttempts.Inc()
			logger.Warn("Forbidden moderation attempt", "user_id", q.From.ID, "lesson_id", setCmd.LessonID)
			h.reply(ctx, repl.AnswerCallback(q.ID, texts.T.Forbidden.To(repl.Lang())))
			return
		}
		h.applyTransition(ctx, repl, q.ID, setCmd)
		return
	}

	if strings.HasPrefix(q.Data, "/") {
		h.handleCommand(ctx, repl, isModerator, q.Data)
		h.reply(ctx, repl.AnswerCallback(q.ID, ""))
		return
	}

	h.metrics.UnknownCommands.Inc()
	h.reply(ctx, repl.AnswerCallback(q.ID, texts.T.UnknownCommand.To(repl.Lang())))
}

// handleCommand はスラッシュコマンドとコールバックの両方から呼ばれます
func (h *Handler) handleCommand(ctx context.Context, repl *Replier, isModerator bool, cmd string) {
	switch {
	case cmd == "/start" || cmd == "/help":
		keyboard := startKeyboard(ctx, h.svc, repl.Lang(), isModerator)
		h.reply(ctx, repl.SendHTML(texts.T.HelpMessage.To(repl.Lang()), &keyboard))
	case cmd == "/add":
		h.reply(ctx, repl.SendText(texts.T.AddLessonMessage.To(repl.Lang()), nil))
	default:
		if opts, ok := command.ParseRead(cmd); ok {
			h.replyNextLesson(ctx, repl, isModerator, opts)
			return
		}
		h.metrics.UnknownCommands.Inc()
		h.reply(ctx, repl.SendText(texts.T.UnknownCommand.To(repl.Lang()), nil))
	}
}

// replyNextLesson はカーソルの次のレッスンを表示します。レンジが尽きたら
// スタートメニューに戻す
func (h *Handler) replyNextLesson(ctx context.Context, repl *Replier, isModerator bool, opts command.ReadOptions) {
	lesson, err := h.svc.NextLesson(ctx, opts.Range, opts.PrevID)
	switch {
	case err == nil:
		keyboard := lessonKeyboard(lesson, opts.Range, repl.Lang(), isModerator)
		h.reply(ctx, repl.SendText(lessonMessage(lesson, isModerator), &keyboard))
	case errors.Is(err, model.ErrNotFound):
		keyboard := startKeyboard(ctx, h.svc, repl.Lang(), isModerator)
		h.reply(ctx, repl.SendText(texts.T.NoMoreLessons.To(repl.Lang()), &keyboard))
	default:
		h.reply(ctx, repl.SendText(texts.T.InternalError.To(repl.Lang()), nil))
	}
}

// applyTransition はステータスを変更し、元のレッスン表示を書き換えます
func (h *Handler) applyTransition(ctx context.Context, repl *Replier, callbackID string, cmd command.SetStatus) {
	lesson, err := h.svc.SetStatus(ctx, cmd.LessonID, cmd.Status)
	if err != nil {
		h.reply(ctx, repl.SendText(texts.T.InternalError.To(repl.Lang()), nil))
		h.reply(ctx, repl.AnswerCallback(callbackID, ""))
		return
	}

	keyboard := lessonKeyboard(lesson, cmd.Range, repl.Lang(), true)
	h.reply(ctx, repl.EditText(lessonMessage(lesson, true), &keyboard))
	h.reply(ctx, repl.AnswerCallback(callbackID, texts.T.StatusUpdated.To(repl.Lang())))
}

func (h *Handler) isModerator(u *tgbotapi.User) bool {
	return u != nil && h.cfg.IsModerator(u.ID)
}

// reply は送信エラーをログに落とすだけで処理は続行します。返信の失敗で
// ストア側の状態が壊れることはない
func (h *Handler) reply(ctx context.Context, err error) {
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to reply via transport", "error", err)
	}
}
