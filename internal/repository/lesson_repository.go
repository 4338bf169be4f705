//go:generate mockery --name LessonRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lessons_bot/internal/middleware"
	"lessons_bot/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// LessonRepository インターフェース。レッスンは追記のみで、削除は行わない
type LessonRepository interface {
	// Create は新しいレッスン行を挿入します。IDはDB側で単調増加に採番される
	Create(ctx context.Context, tx *gorm.DB, lesson *model.Lesson) error
	// RecentTimes は since より後に作成された同一トークンの投稿時刻を新しい順に返します
	RecentTimes(ctx context.Context, db *gorm.DB, spamToken string, since time.Time) ([]time.Time, error)
	// Next はレンジ内で after より古い最新のレッスンを返します。
	// after が nil ならフィードの先頭。レンジが尽きたら model.ErrNotFound
	Next(ctx context.Context, db *gorm.DB, r model.StatusRange, after *int64) (*model.Lesson, error)
	// SetStatus は1行をアトミックに更新し、更新後の行を返します
	SetStatus(ctx context.Context, tx *gorm.DB, id int64, status model.Status) (*model.Lesson, error)
	// CountByStatus はモデレーションキューの件数を返します
	CountByStatus(ctx context.Context, db *gorm.DB, status model.Status) (int64, error)
}

type gormLessonRepository struct{}

func NewGormLessonRepository() LessonRepository {
	return &gormLessonRepository{}
}

func (r *gormLessonRepository) Create(ctx context.Context, tx *gorm.DB, lesson *model.Lesson) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(lesson)
	if result.Error != nil {
		logger.Error("Error creating lesson in DB",
			"error", result.Error,
			"spam_token", lesson.SpamToken,
		)
		return fmt.Errorf("gormLessonRepository.Create: %w", translatePgError(result.Error))
	}
	return nil
}

func (r *gormLessonRepository) RecentTimes(ctx context.Context, db *gorm.DB, spamToken string, since time.Time) ([]time.Time, error) {
	logger := middleware.GetLogger(ctx)
	var times []time.Time
	result := db.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("spam_token = ? AND created_at > ?", spamToken, since).
		Order("created_at DESC").
		Pluck("created_at", &times)
	if result.Error != nil {
		logger.Error("Error listing recent submission times in DB",
			"error", result.Error,
			"spam_token", spamToken,
		)
		return nil, fmt.Errorf("gormLessonRepository.RecentTimes: %w", result.Error)
	}
	return times, nil
}

func (r *gormLessonRepository) Next(ctx context.Context, db *gorm.DB, rng model.StatusRange, after *int64) (*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	minStatus, maxStatus := rng.Bounds()

	query := db.WithContext(ctx).
		Where("status >= ? AND status <= ?", minStatus, maxStatus)
	if after != nil {
		query = query.Where("id < ?", *after)
	}

	var lesson model.Lesson
	result := query.Order("id DESC").First(&lesson)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error reading next lesson in DB",
			"error", result.Error,
			"range", rng.String(),
		)
		return nil, fmt.Errorf("gormLessonRepository.Next: %w", result.Error)
	}
	return &lesson, nil
}

func (r *gormLessonRepository) SetStatus(ctx context.Context, tx *gorm.DB, id int64, status model.Status) (*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		logger.Error("Error updating lesson status in DB",
			"error", result.Error,
			"lesson_id", id,
			"status", status.String(),
		)
		return nil, fmt.Errorf("gormLessonRepository.SetStatus: %w", translatePgError(result.Error))
	}
	if result.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}

	var lesson model.Lesson
	if err := tx.WithContext(ctx).First(&lesson, id).Error; err != nil {
		logger.Error("Error fetching updated lesson in DB",
			"error", err,
			"lesson_id", id,
		)
		return nil, fmt.Errorf("gormLessonRepository.SetStatus: %w", err)
	}
	return &lesson, nil
}

func (r *gormLessonRepository) CountByStatus(ctx context.Context, db *gorm.DB, status model.Status) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("status = ?", status).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting lessons by status in DB",
			"error", result.Error,
			"status", status.String(),
		)
		return 0, fmt.Errorf("gormLessonRepository.CountByStatus: %w", result.Error)
	}
	return count, nil
}

// translatePgError はPostgres固有のエラーコードをアプリケーションエラーに寄せます。
// クラス23 (整合性制約違反) は入力の問題として扱う
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23" {
		return fmt.Errorf("%w: %s", model.ErrInvalidInput, pgErr.Message)
	}
	return err
}
