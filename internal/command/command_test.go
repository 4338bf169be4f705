package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lessons_bot/internal/model"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestParseRead(t *testing.T) {
	tests := []struct {
		name   string
		cmd    string
		want   ReadOptions
		wantOK bool
	}{
		{"別コマンド", "/unknown", ReadOptions{}, false},
		{"レンジ省略はデフォルト", "/view", ReadOptions{Range: model.DefaultRange}, true},
		{"未知のレンジ名", "/view unknown", ReadOptions{}, false},
		{"レンジ指定", "/view best", ReadOptions{Range: model.RangeBest}, true},
		{"IDが整数でない", "/view best bad", ReadOptions{}, false},
		{"レンジとID", "/view best 3", ReadOptions{Range: model.RangeBest, PrevID: int64Ptr(3)}, true},
		{"approvedとID", "/view approved 5", ReadOptions{Range: model.RangeApproved, PrevID: int64Ptr(5)}, true},
		{"二桁のID", "/view best 35", ReadOptions{Range: model.RangeBest, PrevID: int64Ptr(35)}, true},
		{"余分なトークン", "/view best 3 junk", ReadOptions{}, false},
		{"空文字", "", ReadOptions{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRead(tt.cmd)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestReadOptions_Encode(t *testing.T) {
	assert.Equal(t, "/view approved", NewReadOptions(model.DefaultRange, nil).Encode())
	assert.Equal(t, "/view best 35", NewReadOptions(model.RangeBest, int64Ptr(35)).Encode())
}

func TestParseSet(t *testing.T) {
	tests := []struct {
		name   string
		cmd    string
		want   SetStatus
		wantOK bool
	}{
		{"別コマンド", "/unknown", SetStatus{}, false},
		{"トークン不足", "/set-lesson-status", SetStatus{}, false},
		{"トークン不足2", "/set-lesson-status foo bar", SetStatus{}, false},
		{"レンジが不正", "/set-lesson-status 1 2 best", SetStatus{}, false},
		{"IDが整数でない", "/set-lesson-status approved foo best", SetStatus{}, false},
		{"ステータスが不正", "/set-lesson-status approved 1 bar", SetStatus{}, false},
		{"正常系", "/set-lesson-status approved 1 best",
			SetStatus{Range: model.RangeApproved, LessonID: 1, Status: model.StatusBest}, true},
		{"余分なトークン", "/set-lesson-status approved 1 best extra", SetStatus{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSet(tt.cmd)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSetStatus_Encode(t *testing.T) {
	cmd := NewSetStatus(model.RangeNew, 42, model.StatusRejected)
	assert.Equal(t, "/set-lesson-status new 42 rejected", cmd.Encode())
}

// エンコードとデコードは互いに逆写像
func TestRoundTrip(t *testing.T) {
	ranges := []model.StatusRange{
		model.RangeRejected, model.RangeNew, model.RangeApproved, model.RangeBest, model.RangeAll,
	}
	statuses := []model.Status{
		model.StatusRejected, model.StatusNew, model.StatusApproved, model.StatusBest,
	}

	for _, rng := range ranges {
		for _, prev := range []*int64{nil, int64Ptr(1), int64Ptr(982)} {
			opts := NewReadOptions(rng, prev)
			decoded, ok := ParseRead(opts.Encode())
			require.True(t, ok, opts.Encode())
			assert.Equal(t, opts, decoded)
		}
		for _, st := range statuses {
			cmd := NewSetStatus(rng, 7, st)
			decoded, ok := ParseSet(cmd.Encode())
			require.True(t, ok, cmd.Encode())
			assert.Equal(t, cmd, decoded)
		}
	}
}
