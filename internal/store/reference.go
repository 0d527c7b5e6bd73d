package store

import "filmorate/internal/domain"

// Справочники жанров и рейтингов MPA. Ими наполняется in-memory
// хранилище; для PostgreSQL тот же набор заливается миграцией
// (migrations/000001_init.up.sql) — списки должны совпадать.
var (
	ReferenceGenres = []domain.Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}

	ReferenceMpa = []domain.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
)

// DefaultMpa — рейтинг, который получает фильм, созданный без рейтинга.
var DefaultMpa = domain.Mpa{ID: 1, Name: "G"}
