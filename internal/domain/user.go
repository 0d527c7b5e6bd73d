package domain

// User — доменная модель пользователя. ID назначается хранилищем при
// создании. Email глобально уникален. Пустое имя при создании заменяется
// логином.
type User struct {
	ID       int64  `json:"id" db:"user_id"`
	Email    string `json:"email" db:"email"`
	Login    string `json:"login" db:"login"`
	Name     string `json:"name" db:"name"`
	Birthday Date   `json:"birthday" db:"birthday"`
}

// CreateUserRequest — тело POST /users.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required,notblank,nospace"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday" validate:"required,notfuture"`
}

// UpdateUserRequest — тело PUT /users, частичное обновление (см. UpdateFilmRequest).
type UpdateUserRequest struct {
	ID       int64   `json:"id" validate:"required,gt=0"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Login    *string `json:"login,omitempty" validate:"omitempty,notblank,nospace"`
	Name     *string `json:"name,omitempty"`
	Birthday *Date   `json:"birthday,omitempty" validate:"omitempty,notfuture"`
}
