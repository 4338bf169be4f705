// internal/bot/replier.go
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lessons_bot/internal/texts"
)

// Sender はテストでTelegram APIを差し替えるための最小インターフェース。
// *tgbotapi.BotAPI がこれを満たす
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Replier は1つの受信メッセージに対する返信先 (チャット・メッセージ・言語) を束ねます
type Replier struct {
	api       Sender
	chatID    int64
	messageID int
	lang      texts.Lang
}

func NewReplier(api Sender, chatID int64, messageID int, lang texts.Lang) *Replier {
	return &Replier{api: api, chatID: chatID, messageID: messageID, lang: lang}
}

func ReplierFromMessage(api Sender, m *tgbotapi.Message) *Replier {
	lang := texts.En
	if m.From != nil {
		lang = texts.LangFrom(m.From.LanguageCode)
	}
	return NewReplier(api, m.Chat.ID, m.MessageID, lang)
}

func (r *Replier) Lang() texts.Lang {
	return r.lang
}

// SendText はプレーンテキストを送信します。markup は省略可
func (r *Replier) SendText(text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(r.chatID, text)
	msg.DisableWebPagePreview = true
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	_, err := r.api.Send(msg)
	return err
}

// SendHTML はHTMLとして整形済みのテキストを送信します
func (r *Replier) SendHTML(html string, markup *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(r.chatID, html)
	msg.DisableWebPagePreview = true
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	_, err := r.api.Send(msg)
	return err
}

// EditText は受信元メッセージを書き換えます (ステータス変更後の再描画用)
func (r *Replier) EditText(text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	if markup != nil {
		edit := tgbotapi.NewEditMessageTextAndMarkup(r.chatID, r.messageID, text, *markup)
		_, err := r.api.Send(edit)
		return err
	}
	edit := tgbotapi.NewEditMessageText(r.chatID, r.messageID, text)
	_, err := r.api.Send(edit)
	return err
}

// AnswerCallback はコールバッククエリにトースト的な応答を返します
func (r *Replier) AnswerCallback(callbackID, text string) error {
	_, err := r.api.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}
