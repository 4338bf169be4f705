//go:generate mockery --name LessonService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"lessons_bot/internal/config"
	"lessons_bot/internal/metrics"
	"lessons_bot/internal/middleware"
	"lessons_bot/internal/model"
	"lessons_bot/internal/repository"

	"gorm.io/gorm"
)

// MaxLessonLength はTelegramのメッセージ長上限に合わせた投稿テキストの上限
const MaxLessonLength = 4096

// AddResult は投稿処理の結果。WaitSeconds > 0 なら洪水制御による抑制で、
// その秒数待てば枠が空く (エラーではなく正常系の結果)
type AddResult struct {
	WaitSeconds int
}

func (r AddResult) Throttled() bool {
	return r.WaitSeconds > 0
}

type LessonService interface {
	// AddLesson は洪水制御を通過すればレッスンを保存します
	AddLesson(ctx context.Context, spamToken, text string) (AddResult, error)
	// NextLesson はレンジ内で after より古い最新のレッスンを返します
	NextLesson(ctx context.Context, rng model.StatusRange, after *int64) (*model.Lesson, error)
	// SetStatus はモデレーターの指定したステータスへ遷移させます。
	// どの状態からどの状態へも遷移できる (モデレーションは可逆な分類)
	SetStatus(ctx context.Context, lessonID int64, status model.Status) (*model.Lesson, error)
	// StatusCounts はモデレーションキューの件数一覧を返します
	StatusCounts(ctx context.Context) (*model.LessonStatsResponse, error)
}

type lessonService struct {
	db         *gorm.DB
	lessonRepo repository.LessonRepository
	cfg        *config.Config
	metrics    *metrics.Metrics

	now func() time.Time // テストで差し替える
}

func NewLessonService(db *gorm.DB, lessonRepo repository.LessonRepository, cfg *config.Config, m *metrics.Metrics) LessonService {
	return &lessonService{
		db:         db,
		lessonRepo: lessonRepo,
		cfg:        cfg,
		metrics:    m,
		now:        time.Now,
	}
}

func (s *lessonService) AddLesson(ctx context.Context, spamToken, text string) (AddResult, error) {
	logger := middleware.GetLogger(ctx)

	text = strings.TrimSpace(text)
	if text == "" || len(text) > MaxLessonLength {
		return AddResult{}, model.ErrInvalidInput
	}

	wait, err := s.checkFlood(ctx, spamToken)
	if err != nil {
		logger.Error("Flood check failed", "error", err, "spam_token", spamToken)
		return AddResult{}, model.ErrInternalServer
	}
	if wait > 0 {
		s.metrics.ThrottledTotal.Inc()
		return AddResult{WaitSeconds: wait}, nil
	}

	lesson := &model.Lesson{
		Text:      text,
		Status:    model.DefaultStatus,
		SpamToken: spamToken,
	}
	if err := s.lessonRepo.Create(ctx, s.db, lesson); err != nil {
		logger.Error("Error creating lesson", "error", err, "spam_token", spamToken)
		s.metrics.StoreErrorsTotal.WithLabelValues("create").Inc()
		if errors.Is(err, model.ErrInvalidInput) {
			return AddResult{}, model.ErrInvalidInput
		}
		return AddResult{}, model.ErrInternalServer
	}

	s.metrics.SubmissionsTotal.Inc()
	logger.Info("Lesson saved", "lesson_id", lesson.ID)
	return AddResult{}, nil
}

func (s *lessonService) NextLesson(ctx context.Context, rng model.StatusRange, after *int64) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.Next(ctx, s.db, rng, after)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error reading next lesson",
			"error", err,
			"range", rng.String(),
		)
		s.metrics.StoreErrorsTotal.WithLabelValues("next").Inc()
		return nil, model.ErrInternalServer
	}
	return lesson, nil
}

func (s *lessonService) SetStatus(ctx context.Context, lessonID int64, status model.Status) (*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)

	if !status.Valid() {
		return nil, model.ErrInvalidInput
	}

	var updated *model.Lesson
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = s.lessonRepo.SetStatus(ctx, tx, lessonID, status)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error setting lesson status",
			"error", err,
			"lesson_id", lessonID,
			"status", status.String(),
		)
		s.metrics.StoreErrorsTotal.WithLabelValues("set_status").Inc()
		return nil, model.ErrInternalServer
	}

	s.metrics.TransitionsTotal.WithLabelValues(status.String()).Inc()
	logger.Info("Lesson status updated",
		"lesson_id", updated.ID,
		"status", updated.Status.String(),
	)
	return updated, nil
}

func (s *lessonService) StatusCounts(ctx context.Context) (*model.LessonStatsResponse, error) {
	stats := &model.LessonStatsResponse{}
	for _, item := range []struct {
		status model.Status
		dst    *int64
	}{
		{model.StatusRejected, &stats.Rejected},
		{model.StatusNew, &stats.New},
		{model.StatusApproved, &stats.Approved},
		{model.StatusBest, &stats.Best},
	} {
		count, err := s.lessonRepo.CountByStatus(ctx, s.db, item.status)
		if err != nil {
			middleware.GetLogger(ctx).Error("Error counting lessons",
				"error", err,
				"status", item.status.String(),
			)
			s.metrics.StoreErrorsTotal.WithLabelValues("count").Inc()
			return nil, model.ErrInternalServer
		}
		*item.dst = count
	}
	return stats, nil
}
