package handlers_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lessons_bot/internal/handlers"
	"lessons_bot/internal/model"
	"lessons_bot/internal/service/mocks"
)

func setupRouter(svc *mocks.MockLessonService) http.Handler {
	handler := handlers.NewLessonHandler(svc, slog.Default())
	r := chi.NewRouter()
	r.Get("/api/v1/lessons/next", handler.GetNextLesson)
	r.Get("/api/v1/lessons/stats", handler.GetStats)
	return r
}

func TestLessonHandler_GetNextLesson(t *testing.T) {
	lesson := &model.Lesson{ID: 42, Text: "stock up on candles", Status: model.StatusApproved}

	tests := []struct {
		name       string
		url        string
		setupMock  func(svc *mocks.MockLessonService)
		wantStatus int
		wantCode   string
		check      func(t *testing.T, body []byte)
	}{
		{
			name: "正常系: パラメータなしはデフォルトレンジの先頭",
			url:  "/api/v1/lessons/next",
			setupMock: func(svc *mocks.MockLessonService) {
				svc.On("NextLesson", mock.Anything, model.RangeApproved, (*int64)(nil)).
					Return(lesson, nil).Once()
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got model.Lesson
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, int64(42), got.ID)
				assert.Equal(t, model.StatusApproved, got.Status)
			},
		},
		{
			name: "正常系: range と after を指定",
			url:  "/api/v1/lessons/next?range=all&after=42",
			setupMock: func(svc *mocks.MockLessonService) {
				after := int64(42)
				svc.On("NextLesson", mock.Anything, model.RangeAll, &after).
					Return(&model.Lesson{ID: 41, Text: "older", Status: model.StatusNew}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "レンジが尽きたら404",
			url:  "/api/v1/lessons/next?range=best",
			setupMock: func(svc *mocks.MockLessonService) {
				svc.On("NextLesson", mock.Anything, model.RangeBest, (*int64)(nil)).
					Return(nil, model.ErrNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "NO_MORE_LESSONS",
		},
		{
			name:       "異常系: 未知のレンジはバリデーションで400",
			url:        "/api/v1/lessons/next?range=amazing",
			setupMock:  func(svc *mocks.MockLessonService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "異常系: after が数値でなければ400",
			url:        "/api/v1/lessons/next?after=abc",
			setupMock:  func(svc *mocks.MockLessonService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name: "異常系: サービスの内部エラーは500",
			url:  "/api/v1/lessons/next",
			setupMock: func(svc *mocks.MockLessonService) {
				svc.On("NextLesson", mock.Anything, model.RangeApproved, (*int64)(nil)).
					Return(nil, model.ErrInternalServer).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockLessonService)
			tt.setupMock(mockSvc)
			router := setupRouter(mockSvc)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var errResp model.APIErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tt.wantCode, errResp.Error.Code)
			}
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestLessonHandler_GetStats(t *testing.T) {
	t.Run("正常系: ステータス別の件数を返す", func(t *testing.T) {
		mockSvc := new(mocks.MockLessonService)
		mockSvc.On("StatusCounts", mock.Anything).
			Return(&model.LessonStatsResponse{Rejected: 1, New: 2, Approved: 30, Best: 4}, nil).Once()
		router := setupRouter(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/lessons/stats", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var stats model.LessonStatsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		assert.Equal(t, int64(30), stats.Approved)
		assert.Equal(t, int64(2), stats.New)
		mockSvc.AssertExpectations(t)
	})

	t.Run("異常系: サービスの内部エラーは500", func(t *testing.T) {
		mockSvc := new(mocks.MockLessonService)
		mockSvc.On("StatusCounts", mock.Anything).
			Return(nil, model.ErrInternalServer).Once()
		router := setupRouter(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/lessons/stats", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		mockSvc.AssertExpectations(t)
	})
}
