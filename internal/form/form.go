package form

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldError — ошибка уровня поля: имя поля и код правила, которое оно нарушило
// коды совпадают с тегами validate ("required", "email", "gt"), чтобы экран
// мог подобрать текст сообщения сам
type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

var validate = validator.New()

// fieldErrors переводит ошибку validator-а в список ошибок по полям
// структура формы невалидного типа — ошибка программирования, паникуем
func fieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		panic("form: unexpected validation error type: " + err.Error())
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Code: fe.Tag()})
	}
	return out
}
