// internal/handlers/lesson_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"lessons_bot/internal/middleware"
	"lessons_bot/internal/model"
	"lessons_bot/internal/service"
	"lessons_bot/internal/webutil"

	"github.com/go-playground/validator/v10"
)

// LessonHandler は読み取り専用のモデレーションAPI。書き込みはボット側のみ
type LessonHandler struct {
	service service.LessonService
	logger  *slog.Logger
}

func NewLessonHandler(s service.LessonService, logger *slog.Logger) *LessonHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonHandler{
		service: s,
		logger:  logger,
	}
}

// nextLessonQuery はクエリパラメータのDTO
type nextLessonQuery struct {
	Range string `json:"range" validate:"omitempty,oneof=rejected new approved best all"`
	After string `json:"after" validate:"omitempty,number"`
}

// GetNextLesson はレンジ内で after より古い最新のレッスンを返します
func (h *LessonHandler) GetNextLesson(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	query := nextLessonQuery{
		Range: r.URL.Query().Get("range"),
		After: r.URL.Query().Get("after"),
	}
	if err := webutil.Validator.Struct(query); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", "errors", validationErrors.Error())
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", "error", err)
			webutil.HandleError(w, logger, err)
		}
		return
	}

	rng := model.DefaultRange
	if query.Range != "" {
		rng, _ = model.ParseStatusRange(query.Range)
	}

	var after *int64
	if query.After != "" {
		id, err := strconv.ParseInt(query.After, 10, 64)
		if err != nil {
			appErr := model.NewAppError("INVALID_CURSOR", "The 'after' parameter must be an integer id.", "after", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		after = &id
	}

	lesson, err := h.service.NextLesson(r.Context(), rng, after)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			appErr := model.NewAppError("NO_MORE_LESSONS", "No lesson matches the requested range and cursor.", "", model.ErrNotFound)
			webutil.HandleError(w, logger, appErr)
			return
		}
		logger.Error("Error reading next lesson in service", "error", err, "range", rng.String())
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, lesson, logger)
}

// GetStats はステータス別の件数を返します
func (h *LessonHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	stats, err := h.service.StatusCounts(r.Context())
	if err != nil {
		logger.Error("Error counting lessons in service", "error", err)
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}
