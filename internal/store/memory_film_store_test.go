package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testFilm(name string) *domain.Film {
	return &domain.Film{
		Name:        name,
		Description: "описание",
		ReleaseDate: domain.NewDate(2000, time.January, 1),
		Duration:    120,
	}
}

func TestMemoryFilmStore_SaveAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFilmStore(testLogger())

	first, err := s.Save(ctx, testFilm("первый"))
	require.NoError(t, err)
	second, err := s.Save(ctx, testFilm("второй"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestMemoryFilmStore_SaveAppliesDefaultMpa(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFilmStore(testLogger())

	saved, err := s.Save(ctx, testFilm("без рейтинга"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMpa, saved.Mpa)
}

func TestMemoryFilmStore_SaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFilmStore(testLogger())

	film := testFilm("Хороший, плохой, злой")
	film.Mpa = domain.Mpa{ID: 4}
	film.Genres = []domain.Genre{{ID: 2}, {ID: 1}, {ID: 2}}

	saved, err := s.Save(ctx, film)
	require.NoError(t, err)

	got, err := s.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
	assert.Equal(t, "R", got.Mpa.Name)
	// Жанры дедуплицированы и отсортированы по id, имена подставлены.
	require.Len(t, got.Genres, 2)
	assert.Equal(t, domain.Genre{ID: 1, Name: "Комедия"}, got.Genres[0])
	assert.Equal(t, domain.Genre{ID: 2, Name: "Драма"}, got.Genres[1])
}

func TestMemoryFilmStore_SaveUnknownReferences(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFilmStore(testLogger())

	unknownGenre := testFilm("x")
	unknownGenre.Genres = []domain.Genre{{ID: 99}}
	_, err := s.Save(ctx, unknownGenre)
	assert.ErrorIs(t, err, ErrGenreNotFound)

	unknownMpa := testFilm("y")
	unknownMpa.Mpa = domain.Mpa{ID: 99}
	_, err = s.Save(ctx, unknownMpa)
	assert.ErrorIs(t, err, ErrMpaNotFound)
}

func TestMemoryFilmStore_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFilmStore(testLogger())

	missing := testFilm("нет такого")
	missing.ID = 42
	_, err := s.Update(ctx, missing)
	assert.ErrorIs(t, err, ErrFilmNotFound)
}

func TestMemoryFilmStore_Likes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFilmStore(testLogger())

	film, err := s.Save(ctx, testFilm("лайкабельный"))
	require.NoError(t, err)

	require.NoError(t, s.AddLike(ctx, film.ID, 1))
	// Повторный лайк того же пользователя — конфликт.
	assert.ErrorIs(t, s.AddLike(ctx, film.ID, 1), ErrLikeExists)

	// Снятие отсутствующего лайка — no-op.
	require.NoError(t, s.RemoveLike(ctx, film.ID, 77))
	require.NoError(t, s.RemoveLike(ctx, film.ID, 1))
	require.NoError(t, s.AddLike(ctx, film.ID, 1))
}

func TestMemoryFilmStore_GetPopular(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFilmStore(testLogger())

	filmA, err := s.Save(ctx, testFilm("A"))
	require.NoError(t, err)
	filmB, err := s.Save(ctx, testFilm("B"))
	require.NoError(t, err)
	filmC, err := s.Save(ctx, testFilm("C"))
	require.NoError(t, err)

	// B — два лайка, C — один, A — ни одного.
	require.NoError(t, s.AddLike(ctx, filmB.ID, 1))
	require.NoError(t, s.AddLike(ctx, filmB.ID, 2))
	require.NoError(t, s.AddLike(ctx, filmC.ID, 1))

	popular, err := s.GetPopular(ctx, 3)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	// Фильмы без лайков включаются и идут последними.
	assert.Equal(t, filmB.ID, popular[0].ID)
	assert.Equal(t, filmC.ID, popular[1].ID)
	assert.Equal(t, filmA.ID, popular[2].ID)

	top1, err := s.GetPopular(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top1, 1)
	assert.Equal(t, filmB.ID, top1[0].ID)
}

func TestMemoryFilmStore_GetPopularTieBreaksByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFilmStore(testLogger())

	first, err := s.Save(ctx, testFilm("первый"))
	require.NoError(t, err)
	second, err := s.Save(ctx, testFilm("второй"))
	require.NoError(t, err)

	require.NoError(t, s.AddLike(ctx, first.ID, 1))
	require.NoError(t, s.AddLike(ctx, second.ID, 1))

	popular, err := s.GetPopular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, first.ID, popular[0].ID)
	assert.Equal(t, second.ID, popular[1].ID)
}

func TestMemoryFilmStore_ReturnedCopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFilmStore(testLogger())

	saved, err := s.Save(ctx, testFilm("неизменяемый"))
	require.NoError(t, err)

	saved.Name = "подмененный"
	got, err := s.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "неизменяемый", got.Name)
}
