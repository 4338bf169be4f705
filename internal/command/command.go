// internal/command/command.go
//
// コールバックチャネルで運ぶコマンド文字列のエンコード/デコード。
// トランスポートが運べるのは短い不透明文字列だけなので、ページング位置や
// 絞り込み条件はすべて文字列自体に埋め込む (サーバ側セッションは持たない)。
package command

import (
	"fmt"
	"strconv"
	"strings"

	"lessons_bot/internal/model"
)

const (
	readPrefix      = "/view"
	setStatusPrefix = "/set-lesson-status"
)

// ReadOptions は「次のレッスンを読む」要求。PrevID が nil ならフィードの先頭
type ReadOptions struct {
	Range  model.StatusRange
	PrevID *int64
}

func NewReadOptions(r model.StatusRange, prevID *int64) ReadOptions {
	return ReadOptions{Range: r, PrevID: prevID}
}

// ParseRead はコマンド文字列をデコードします。このコマンドでない、または
// トークンが不正な場合は ok=false (エラーではなく「認識できない」扱い)
func ParseRead(cmd string) (ReadOptions, bool) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 || parts[0] != readPrefix || len(parts) > 3 {
		return ReadOptions{}, false
	}

	opts := ReadOptions{Range: model.DefaultRange}
	if len(parts) >= 2 {
		r, ok := model.ParseStatusRange(parts[1])
		if !ok {
			return ReadOptions{}, false
		}
		opts.Range = r
	}
	if len(parts) == 3 {
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return ReadOptions{}, false
		}
		opts.PrevID = &id
	}
	return opts, true
}

// Encode は ParseRead の逆変換
func (o ReadOptions) Encode() string {
	if o.PrevID != nil {
		return fmt.Sprintf("%s %s %d", readPrefix, o.Range, *o.PrevID)
	}
	return fmt.Sprintf("%s %s", readPrefix, o.Range)
}

// SetStatus はモデレーターによるステータス変更要求。Range は変更後の返信で
// ナビゲーション位置を保つために運ぶだけで、遷移の可否判定には使わない
type SetStatus struct {
	Range    model.StatusRange
	LessonID int64
	Status   model.Status
}

func NewSetStatus(r model.StatusRange, lessonID int64, st model.Status) SetStatus {
	return SetStatus{Range: r, LessonID: lessonID, Status: st}
}

// ParseSet は4トークン全てが必須。欠落・型不一致は ok=false
func ParseSet(cmd string) (SetStatus, bool) {
	parts := strings.Fields(cmd)
	if len(parts) != 4 || parts[0] != setStatusPrefix {
		return SetStatus{}, false
	}
	r, ok := model.ParseStatusRange(parts[1])
	if !ok {
		return SetStatus{}, false
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return SetStatus{}, false
	}
	st, ok := model.ParseStatus(parts[3])
	if !ok {
		return SetStatus{}, false
	}
	return SetStatus{Range: r, LessonID: id, Status: st}, true
}

// Encode は ParseSet の逆変換
func (s SetStatus) Encode() string {
	return fmt.Sprintf("%s %s %d %s", setStatusPrefix, s.Range, s.LessonID, s.Status)
}
