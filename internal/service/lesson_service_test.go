package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lessons_bot/internal/config"
	"lessons_bot/internal/metrics"
	"lessons_bot/internal/model"
	"lessons_bot/internal/repository/mocks"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func newTestService(t *testing.T, repo *mocks.LessonRepository, cfg *config.Config) *lessonService {
	db := setupTestDB(t)
	m := metrics.New(prometheus.NewRegistry())
	svc := NewLessonService(db, repo, cfg, m).(*lessonService)
	return svc
}

func floodConfig(limit int, window time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.RateLimit.Messages = limit
	cfg.RateLimit.Window = window
	return cfg
}

func TestLessonService_AddLesson(t *testing.T) {
	ctx := context.Background()
	const token = "deadbeef"

	base := time.Unix(1_700_000_000, 0).UTC()
	at := func(sec int) time.Time { return base.Add(time.Duration(sec) * time.Second) }

	tests := []struct {
		name      string
		cfg       *config.Config
		text      string
		setupMock func(repo *mocks.LessonRepository, since time.Time)
		now       time.Time
		wantWait  int
		wantErr   error
	}{
		{
			name: "正常系: ウィンドウ内の投稿が上限未満なら保存",
			cfg:  floodConfig(3, time.Minute),
			text: "lesson learned",
			now:  at(30),
			setupMock: func(repo *mocks.LessonRepository, since time.Time) {
				repo.On("RecentTimes", ctx, mock.AnythingOfType("*gorm.DB"), token, since).
					Return([]time.Time{at(20), at(10)}, nil).Once()
				repo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Lesson")).
					Run(func(args mock.Arguments) {
						lesson := args.Get(2).(*model.Lesson)
						assert.Equal(t, "lesson learned", lesson.Text)
						assert.Equal(t, model.StatusApproved, lesson.Status)
						assert.Equal(t, token, lesson.SpamToken)
						lesson.ID = 1
					}).Return(nil).Once()
			},
		},
		{
			name: "抑制: 上限ちょうどで4件目は待ち時間30秒",
			cfg:  floodConfig(3, time.Minute),
			text: "one more",
			now:  at(30),
			setupMock: func(repo *mocks.LessonRepository, since time.Time) {
				// t=0,10,20 に投稿済み。最古の t=0 が (now-60s) を抜けるまで30秒
				repo.On("RecentTimes", ctx, mock.AnythingOfType("*gorm.DB"), token, since).
					Return([]time.Time{at(20), at(10), at(0)}, nil).Once()
			},
			wantWait: 30,
		},
		{
			name: "正常系: 別フィンガープリントには履歴がない",
			cfg:  floodConfig(3, time.Minute),
			text: "other sender",
			now:  at(30),
			setupMock: func(repo *mocks.LessonRepository, since time.Time) {
				repo.On("RecentTimes", ctx, mock.AnythingOfType("*gorm.DB"), token, since).
					Return(nil, nil).Once()
				repo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Lesson")).
					Return(nil).Once()
			},
		},
		{
			name: "正常系: limit=0 なら履歴を見ずに常に許可",
			cfg:  floodConfig(0, time.Minute),
			text: "no limits",
			now:  at(30),
			setupMock: func(repo *mocks.LessonRepository, since time.Time) {
				repo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Lesson")).
					Return(nil).Once()
			},
		},
		{
			name:      "異常系: 空テキスト",
			cfg:       floodConfig(3, time.Minute),
			text:      "   ",
			now:       at(30),
			setupMock: func(repo *mocks.LessonRepository, since time.Time) {},
			wantErr:   model.ErrInvalidInput,
		},
		{
			name: "異常系: 履歴クエリの失敗は内部エラーとして伝播",
			cfg:  floodConfig(3, time.Minute),
			text: "boom",
			now:  at(30),
			setupMock: func(repo *mocks.LessonRepository, since time.Time) {
				repo.On("RecentTimes", ctx, mock.AnythingOfType("*gorm.DB"), token, since).
					Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: model.ErrInternalServer,
		},
		{
			name: "異常系: 保存失敗は内部エラー",
			cfg:  floodConfig(3, time.Minute),
			text: "lesson",
			now:  at(30),
			setupMock: func(repo *mocks.LessonRepository, since time.Time) {
				repo.On("RecentTimes", ctx, mock.AnythingOfType("*gorm.DB"), token, since).
					Return(nil, nil).Once()
				repo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Lesson")).
					Return(errors.New("insert failed")).Once()
			},
			wantErr: model.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.LessonRepository)
			svc := newTestService(t, mockRepo, tt.cfg)
			svc.now = func() time.Time { return tt.now }

			tt.setupMock(mockRepo, tt.now.Add(-tt.cfg.RateLimit.Window))

			result, err := svc.AddLesson(ctx, token, tt.text)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantWait, result.WaitSeconds)
				assert.Equal(t, tt.wantWait > 0, result.Throttled())
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLessonService_NextLesson(t *testing.T) {
	ctx := context.Background()
	after := int64(5)

	t.Run("正常系: リポジトリの結果をそのまま返す", func(t *testing.T) {
		mockRepo := new(mocks.LessonRepository)
		svc := newTestService(t, mockRepo, floodConfig(3, time.Minute))

		expected := &model.Lesson{ID: 4, Text: "lesson", Status: model.StatusApproved}
		mockRepo.On("Next", ctx, mock.AnythingOfType("*gorm.DB"), model.RangeApproved, &after).
			Return(expected, nil).Once()

		lesson, err := svc.NextLesson(ctx, model.RangeApproved, &after)
		require.NoError(t, err)
		assert.Equal(t, expected, lesson)
		mockRepo.AssertExpectations(t)
	})

	t.Run("レンジが尽きたら ErrNotFound", func(t *testing.T) {
		mockRepo := new(mocks.LessonRepository)
		svc := newTestService(t, mockRepo, floodConfig(3, time.Minute))

		mockRepo.On("Next", ctx, mock.AnythingOfType("*gorm.DB"), model.RangeBest, (*int64)(nil)).
			Return(nil, model.ErrNotFound).Once()

		_, err := svc.NextLesson(ctx, model.RangeBest, nil)
		require.ErrorIs(t, err, model.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ストア障害は内部エラーに変換", func(t *testing.T) {
		mockRepo := new(mocks.LessonRepository)
		svc := newTestService(t, mockRepo, floodConfig(3, time.Minute))

		mockRepo.On("Next", ctx, mock.AnythingOfType("*gorm.DB"), model.RangeAll, (*int64)(nil)).
			Return(nil, errors.New("connection refused")).Once()

		_, err := svc.NextLesson(ctx, model.RangeAll, nil)
		require.ErrorIs(t, err, model.ErrInternalServer)
		mockRepo.AssertExpectations(t)
	})
}

func TestLessonService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 更新後の行を返す", func(t *testing.T) {
		mockRepo := new(mocks.LessonRepository)
		svc := newTestService(t, mockRepo, floodConfig(3, time.Minute))

		updated := &model.Lesson{ID: 7, Text: "kept", Status: model.StatusRejected}
		mockRepo.On("SetStatus", ctx, mock.AnythingOfType("*gorm.DB"), int64(7), model.StatusRejected).
			Return(updated, nil).Once()

		lesson, err := svc.SetStatus(ctx, 7, model.StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected, lesson.Status)
		assert.Equal(t, "kept", lesson.Text)
		assert.Equal(t, int64(7), lesson.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("存在しないIDは ErrNotFound", func(t *testing.T) {
		mockRepo := new(mocks.LessonRepository)
		svc := newTestService(t, mockRepo, floodConfig(3, time.Minute))

		mockRepo.On("SetStatus", ctx, mock.AnythingOfType("*gorm.DB"), int64(999), model.StatusBest).
			Return(nil, model.ErrNotFound).Once()

		_, err := svc.SetStatus(ctx, 999, model.StatusBest)
		require.ErrorIs(t, err, model.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("不正なステータス値は弾く", func(t *testing.T) {
		mockRepo := new(mocks.LessonRepository)
		svc := newTestService(t, mockRepo, floodConfig(3, time.Minute))

		_, err := svc.SetStatus(ctx, 1, model.Status(42))
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestLessonService_StatusCounts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.LessonRepository)
	svc := newTestService(t, mockRepo, floodConfig(3, time.Minute))

	counts := map[model.Status]int64{
		model.StatusRejected: 2,
		model.StatusNew:      5,
		model.StatusApproved: 40,
		model.StatusBest:     3,
	}
	for st, n := range counts {
		mockRepo.On("CountByStatus", ctx, mock.AnythingOfType("*gorm.DB"), st).
			Return(n, nil).Once()
	}

	stats, err := svc.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.LessonStatsResponse{Rejected: 2, New: 5, Approved: 40, Best: 3}, stats)
	mockRepo.AssertExpectations(t)
}
