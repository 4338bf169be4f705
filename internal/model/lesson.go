// internal/model/lesson.go
package model

import (
	"time"

	"github.com/goccy/go-json"
)

// Lesson は投稿された教訓テキストとそのモデレーション状態を表します
type Lesson struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	Status    Status    `gorm:"type:smallint;not null;index;default:2" json:"status"`
	SpamToken string    `gorm:"not null;index" json:"-"` // 投稿者の入れ替わり型フィンガープリント
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// Status はレッスンのモデレーション状態。値の大小がレンジ検索の順序を決める
type Status int16

const (
	StatusRejected Status = iota
	StatusNew
	StatusApproved
	StatusBest
)

// DefaultStatus は新規投稿に付くステータス。投稿は即座に公開され、
// モデレーターが後から降格させる運用
const DefaultStatus = StatusApproved

var statusNames = map[Status]string{
	StatusRejected: "rejected",
	StatusNew:      "new",
	StatusApproved: "approved",
	StatusBest:     "best",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus は小文字のステータス名をパースします。大文字は受け付けません
func ParseStatus(name string) (Status, bool) {
	for st, n := range statusNames {
		if n == name {
			return st, true
		}
	}
	return 0, false
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	st, ok := ParseStatus(name)
	if !ok {
		return ErrInvalidInput
	}
	*s = st
	return nil
}

// StatusRange はモデレーションキューの絞り込み条件。ステータス軸上の閉区間に対応する
type StatusRange int

const (
	RangeRejected StatusRange = iota
	RangeNew
	RangeApproved
	RangeBest
	RangeAll
)

// DefaultRange は一般ユーザー向けの公開ビュー
const DefaultRange = RangeApproved

var rangeNames = map[StatusRange]string{
	RangeRejected: "rejected",
	RangeNew:      "new",
	RangeApproved: "approved",
	RangeBest:     "best",
	RangeAll:      "all",
}

func (r StatusRange) String() string {
	if name, ok := rangeNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r StatusRange) Valid() bool {
	_, ok := rangeNames[r]
	return ok
}

func ParseStatusRange(name string) (StatusRange, bool) {
	for rg, n := range rangeNames {
		if n == name {
			return rg, true
		}
	}
	return 0, false
}

// Bounds は範囲を [min, max] の閉区間にマッピングします。純粋関数で、
// 全てのレンジに対して min <= max が成り立ちます
func (r StatusRange) Bounds() (Status, Status) {
	switch r {
	case RangeRejected:
		return StatusRejected, StatusRejected
	case RangeNew:
		return StatusNew, StatusNew
	case RangeBest:
		return StatusBest, StatusBest
	case RangeAll:
		return StatusNew, StatusBest
	default: // RangeApproved: 公開ビュー (approved 以上すべて)
		return StatusApproved, StatusBest
	}
}

// LessonStatsResponse は管理APIのステータス別件数レスポンス
type LessonStatsResponse struct {
	Rejected int64 `json:"rejected"`
	New      int64 `json:"new"`
	Approved int64 `json:"approved"`
	Best     int64 `json:"best"`
}
