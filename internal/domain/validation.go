package domain

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// CinemaBirthday — минимально допустимая дата релиза фильма:
// день первого публичного киносеанса братьев Люмьер.
var CinemaBirthday = NewDate(1895, time.December, 28)

// NewValidator собирает валидатор с доменными правилами поверх
// стандартных тегов go-playground/validator.
func NewValidator() *validator.Validate {
	v := validator.New()

	// Date прозрачно для валидатора ведет себя как time.Time,
	// поэтому required и omitempty работают с нулевой датой.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(Date); ok {
			return d.Time
		}
		return nil
	}, Date{})

	// notblank: строка содержит хоть один непробельный символ.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// nospace: логин не может содержать пробелы.
	_ = v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), " ")
	})

	// notfuture: дата рождения не может быть в будущем.
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.After(time.Now())
	})

	// releasedate: дата релиза не раньше дня рождения кино.
	_ = v.RegisterValidation("releasedate", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.Before(CinemaBirthday.Time)
	})

	return v
}
