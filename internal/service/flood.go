// internal/service/flood.go
package service

import (
	"context"
	"math"

	"lessons_bot/internal/middleware"
)

// checkFlood はスライディングウィンドウ内の投稿数を数え、許可なら0を、
// 抑制なら待つべき秒数を返します。判定はストアの現在状態から毎回導出する
func (s *lessonService) checkFlood(ctx context.Context, spamToken string) (int, error) {
	limit := s.cfg.RateLimit.Messages
	if limit == 0 {
		// 機能無効
		return 0, nil
	}

	now := s.now()
	from := now.Add(-s.cfg.RateLimit.Window)

	times, err := s.lessonRepo.RecentTimes(ctx, s.db, spamToken, from)
	if err != nil {
		s.metrics.StoreErrorsTotal.WithLabelValues("recent_times").Inc()
		return 0, err
	}

	if len(times) < limit {
		return 0, nil
	}

	// ウィンドウ内で最も古い投稿が期限切れになるまでの残り時間。
	// 境界との時計ずれで負にならないよう絶対値を取る
	oldest := times[len(times)-1]
	left := oldest.Sub(from).Seconds()
	wait := int(math.Ceil(math.Abs(left)))

	middleware.GetLogger(ctx).Info("Submission throttled",
		"spam_token", spamToken,
		"recent", len(times),
		"wait_seconds", wait,
	)
	return wait, nil
}
