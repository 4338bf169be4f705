// internal/webutil/validator.go
package webutil

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"lessons_bot/internal/model"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです
var Validator *validator.Validate

func init() {
	Validator = validator.New()

	// エラーメッセージにはJSONタグのフィールド名を使う
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// NewValidationErrorResponse はバリデーションエラーをAppErrorに変換します
func NewValidationErrorResponse(errs validator.ValidationErrors) *model.AppError {
	var fields []string
	var messages []string
	for _, err := range errs {
		fields = append(fields, err.Field())
		messages = append(messages, "Field validation for '"+err.Field()+"' failed on the '"+err.Tag()+"' tag")
	}
	return model.NewAppError(
		"VALIDATION_ERROR",
		strings.Join(messages, "; "),
		strings.Join(fields, ","),
		model.ErrInvalidInput,
	)
}
