package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validFilmRequest() CreateFilmRequest {
	return CreateFilmRequest{
		Name:        "Криминальное чтиво",
		Description: "Фильм Квентина Тарантино",
		ReleaseDate: NewDate(1994, time.May, 21),
		Duration:    154,
	}
}

func validUserRequest() CreateUserRequest {
	return CreateUserRequest{
		Email:    "user@mail.ru",
		Login:    "tarantino",
		Birthday: NewDate(1963, time.March, 27),
	}
}

func TestValidator_Film(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		mutate  func(*CreateFilmRequest)
		wantErr bool
	}{
		{"valid", func(r *CreateFilmRequest) {}, false},
		{"blank name", func(r *CreateFilmRequest) { r.Name = "   " }, true},
		{"empty name", func(r *CreateFilmRequest) { r.Name = "" }, true},
		{"description exactly 200", func(r *CreateFilmRequest) { r.Description = strings.Repeat("о", 200) }, false},
		{"description 201", func(r *CreateFilmRequest) { r.Description = strings.Repeat("о", 201) }, true},
		{"release on cinema birthday", func(r *CreateFilmRequest) { r.ReleaseDate = NewDate(1895, time.December, 28) }, false},
		{"release before cinema birthday", func(r *CreateFilmRequest) { r.ReleaseDate = NewDate(1895, time.December, 27) }, true},
		{"zero duration", func(r *CreateFilmRequest) { r.Duration = 0 }, true},
		{"negative duration", func(r *CreateFilmRequest) { r.Duration = -10 }, true},
		{"one minute duration", func(r *CreateFilmRequest) { r.Duration = 1 }, false},
		{"unknown genre id shape", func(r *CreateFilmRequest) { r.Genres = []GenreRef{{ID: -1}} }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validFilmRequest()
			tc.mutate(&req)
			err := v.Struct(req)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_User(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		mutate  func(*CreateUserRequest)
		wantErr bool
	}{
		{"valid", func(r *CreateUserRequest) {}, false},
		{"empty email", func(r *CreateUserRequest) { r.Email = "" }, true},
		{"malformed email", func(r *CreateUserRequest) { r.Email = "not-an-email" }, true},
		{"blank login", func(r *CreateUserRequest) { r.Login = "  " }, true},
		{"login with space", func(r *CreateUserRequest) { r.Login = "quentin tarantino" }, true},
		{"future birthday", func(r *CreateUserRequest) {
			future := time.Now().AddDate(1, 0, 0)
			r.Birthday = NewDate(future.Year(), future.Month(), future.Day())
		}, true},
		{"missing birthday", func(r *CreateUserRequest) { r.Birthday = Date{} }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validUserRequest()
			tc.mutate(&req)
			err := v.Struct(req)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_PartialUpdateOmitted(t *testing.T) {
	v := NewValidator()

	// Непереданные поля не валидируются.
	assert.NoError(t, v.Struct(UpdateFilmRequest{ID: 1}))
	assert.NoError(t, v.Struct(UpdateUserRequest{ID: 1}))

	// Явный нулевой duration больше не означает "не задано".
	zero := 0
	assert.Error(t, v.Struct(UpdateFilmRequest{ID: 1, Duration: &zero}))

	// id обязателен.
	assert.Error(t, v.Struct(UpdateFilmRequest{}))
}
