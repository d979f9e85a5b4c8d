package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/FilipLeonard/blogql/internal/apperrors"
)

var validate = validator.New()

// Сообщения по имени поля — одинаковые для любого нарушенного правила поля
// (пустое значение и слишком короткое дают одно и то же нарушение).
var fieldMessages = map[string]string{
	"Email":    "E-Mail is invalid",
	"Password": "Password too short",
	"Title":    "Title is invalid",
	"Content":  "Content is invalid",
}

// Check валидирует структуру по ее `validate`-тегам и накапливает ВСЕ
// нарушения (не останавливается на первом). Непустой список — ошибка 422
// с полным списком нарушений; запись в хранилище после нее не происходит.
func Check(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	violations := make([]apperrors.Violation, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		violations = append(violations, apperrors.Violation{Message: msg})
	}

	return apperrors.Validation("invalid input", violations)
}
