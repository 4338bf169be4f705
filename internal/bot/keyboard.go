// internal/bot/keyboard.go
package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lessons_bot/internal/command"
	"lessons_bot/internal/middleware"
	"lessons_bot/internal/model"
	"lessons_bot/internal/service"
	"lessons_bot/internal/texts"
)

// startKeyboard はスタートメニューを組み立てます。モデレーターには
// 未処理キューの件数つきの行を追加する。件数取得の失敗はメニューを
// 止めず、-1 表示に落とす
func startKeyboard(ctx context.Context, svc service.LessonService, lang texts.Lang, isModerator bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				texts.T.ReadBest.To(lang),
				command.NewReadOptions(model.RangeBest, nil).Encode(),
			),
			tgbotapi.NewInlineKeyboardButtonData(
				texts.T.ReadApproved.To(lang),
				command.NewReadOptions(model.RangeApproved, nil).Encode(),
			),
			tgbotapi.NewInlineKeyboardButtonData(
				texts.T.ReadAll.To(lang),
				command.NewReadOptions(model.RangeAll, nil).Encode(),
			),
		),
	}

	if isModerator {
		newCount, rejectedCount := int64(-1), int64(-1)
		if stats, err := svc.StatusCounts(ctx); err == nil {
			newCount, rejectedCount = stats.New, stats.Rejected
		} else {
			middleware.GetLogger(ctx).Warn("Failed to load moderation queue counts", "error", err)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("Moderate New (%d)", newCount),
				command.NewReadOptions(model.RangeNew, nil).Encode(),
			),
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("Moderate Rejected (%d)", rejectedCount),
				command.NewReadOptions(model.RangeRejected, nil).Encode(),
			),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(texts.T.AddLesson.To(lang), "/add"),
		tgbotapi.NewInlineKeyboardButtonData(texts.T.Help.To(lang), "/help"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// モデレーター用の遷移ボタン。現在のステータスのボタンは出さない
var transitionButtons = []struct {
	status model.Status
	label  string
}{
	{model.StatusApproved, "👍 Approve"},
	{model.StatusRejected, "👎 Reject"},
	{model.StatusBest, "🏆 Mark best"},
}

// lessonKeyboard はレッスン表示につけるキーボードを組み立てます。
// カーソル (表示中のレッスンID) とレンジはコマンド文字列に埋め込む
func lessonKeyboard(lesson *model.Lesson, rng model.StatusRange, lang texts.Lang, isModerator bool) tgbotapi.InlineKeyboardMarkup {
	id := lesson.ID
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(
			texts.T.NextLesson.To(lang),
			command.NewReadOptions(rng, &id).Encode(),
		),
	}

	if isModerator {
		for _, b := range transitionButtons {
			if lesson.Status == b.status {
				continue
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				b.label,
				command.NewSetStatus(rng, lesson.ID, b.status).Encode(),
			))
		}
	}

	row = append(row, tgbotapi.NewInlineKeyboardButtonData(texts.T.Help.To(lang), "/help"))
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// lessonMessage はレッスン本文を整形します。モデレーターにはメタ情報も見せる
func lessonMessage(lesson *model.Lesson, isModerator bool) string {
	if !isModerator {
		return lesson.Text
	}
	return fmt.Sprintf("%s\n\nid: %d, status: %s, created: %s ago",
		lesson.Text,
		lesson.ID,
		lesson.Status,
		ago(time.Since(lesson.CreatedAt)),
	)
}

// ago は経過時間を粗い2桁程度の表現に丸めます
func ago(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", h, m)
	default:
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		return fmt.Sprintf("%dd %dh", days, h)
	}
}
