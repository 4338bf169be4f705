// internal/texts/texts.go
package texts

import (
	"bytes"
	_ "embed"
	"log"

	"github.com/spf13/viper"
)

//go:embed texts.toml
var rawTexts []byte

// Lang はユーザー向けメッセージの言語
type Lang int

const (
	En Lang = iota
	Ru
	Ua
)

// LangFrom はTelegramの言語コードから Lang を決定します。未知のコードは英語
func LangFrom(code string) Lang {
	switch code {
	case "ru":
		return Ru
	case "uk":
		return Ua
	default:
		return En
	}
}

// Entry は1メッセージ分の翻訳セット
type Entry struct {
	En string `mapstructure:"en"`
	Ru string `mapstructure:"ru"`
	Ua string `mapstructure:"ua"`
}

func (e Entry) To(lang Lang) string {
	switch lang {
	case Ru:
		return e.Ru
	case Ua:
		return e.Ua
	default:
		return e.En
	}
}

// Table は埋め込みTOMLから読み込まれる全メッセージ
type Table struct {
	AddLesson        Entry `mapstructure:"add_lesson"`
	AddLessonMessage Entry `mapstructure:"add_lesson_message"`
	Flood            Entry `mapstructure:"flood"`
	Forbidden        Entry `mapstructure:"forbidden"`
	Help             Entry `mapstructure:"help"`
	HelpMessage      Entry `mapstructure:"help_message"`
	InternalError    Entry `mapstructure:"internal_error"`
	LessonSaved      Entry `mapstructure:"lesson_saved"`
	NextLesson       Entry `mapstructure:"next_lesson"`
	NoMoreLessons    Entry `mapstructure:"no_more_lessons"`
	PrivateOnly      Entry `mapstructure:"private_only"`
	ReadAll          Entry `mapstructure:"read_all"`
	ReadApproved     Entry `mapstructure:"read_approved"`
	ReadBest         Entry `mapstructure:"read_best"`
	StatusUpdated    Entry `mapstructure:"status_updated"`
	TextOnly         Entry `mapstructure:"text_only"`
	UnknownCommand   Entry `mapstructure:"unknown_command"`
}

// T は共有メッセージテーブル。プロセス起動時に一度だけ読み込まれる
var T Table

func init() {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(rawTexts)); err != nil {
		log.Fatalf("texts: failed to read embedded texts.toml: %v", err)
	}
	if err := v.Unmarshal(&T); err != nil {
		log.Fatalf("texts: failed to unmarshal texts.toml: %v", err)
	}
}
