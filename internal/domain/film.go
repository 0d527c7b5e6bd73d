package domain

// Genre — элемент фиксированного справочника жанров.
type Genre struct {
	ID   int    `json:"id" db:"genre_id"`
	Name string `json:"name" db:"name"`
}

// Mpa — рейтинг Ассоциации кинокомпаний (G, PG, ...), фиксированный справочник.
type Mpa struct {
	ID   int    `json:"id" db:"mpa_id"`
	Name string `json:"name" db:"name"`
}

// Film — доменная модель фильма. ID назначается хранилищем при создании
// и далее не меняется. Mpa всегда заполнен: при создании без рейтинга
// хранилище подставляет рейтинг по умолчанию (id=1, "G").
type Film struct {
	ID          int64   `json:"id" db:"film_id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	ReleaseDate Date    `json:"releaseDate" db:"release_date"`
	Duration    int     `json:"duration" db:"duration"`
	Mpa         Mpa     `json:"mpa"`
	Genres      []Genre `json:"genres"`
}

// MpaRef и GenreRef — ссылки на справочники в телах запросов: клиент
// передает только id, имя подставляется хранилищем.
type MpaRef struct {
	ID int `json:"id" validate:"required,gt=0"`
}

type GenreRef struct {
	ID int `json:"id" validate:"required,gt=0"`
}

// CreateFilmRequest — тело POST /films.
type CreateFilmRequest struct {
	Name        string     `json:"name" validate:"required,notblank"`
	Description string     `json:"description" validate:"max=200"`
	ReleaseDate Date       `json:"releaseDate" validate:"required,releasedate"`
	Duration    int        `json:"duration" validate:"required,gt=0"`
	Mpa         *MpaRef    `json:"mpa,omitempty"`
	Genres      []GenreRef `json:"genres,omitempty" validate:"omitempty,dive"`
}

// UpdateFilmRequest — тело PUT /films. Частичное обновление: nil означает
// "поле не передано", непустой указатель всегда перезаписывает сохраненное
// значение. Это снимает двусмысленность "0 == не задано" для duration:
// явный duration: 0 теперь ошибка валидации, а не молчаливый пропуск.
type UpdateFilmRequest struct {
	ID          int64      `json:"id" validate:"required,gt=0"`
	Name        *string    `json:"name,omitempty" validate:"omitempty,notblank"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=200"`
	ReleaseDate *Date      `json:"releaseDate,omitempty" validate:"omitempty,releasedate"`
	Duration    *int       `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Mpa         *MpaRef    `json:"mpa,omitempty"`
	Genres      []GenreRef `json:"genres,omitempty" validate:"omitempty,dive"`
}
