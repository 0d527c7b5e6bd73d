package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/domain"
	"filmorate/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Сервисы тестируются поверх in-memory хранилищ: у них та же
// семантика контракта, что и у реляционных.
func newFilmFixture(t *testing.T) (*FilmService, *UserService) {
	t.Helper()
	logger := testLogger()
	films := store.NewMemoryFilmStore(logger)
	users := store.NewMemoryUserStore(logger)
	return NewFilmService(films, users, logger), NewUserService(users, logger)
}

func createFilmRequest(name string) *domain.CreateFilmRequest {
	return &domain.CreateFilmRequest{
		Name:        name,
		Description: "описание",
		ReleaseDate: domain.NewDate(1999, time.October, 14),
		Duration:    139,
	}
}

func createUserRequest(email, login string) *domain.CreateUserRequest {
	return &domain.CreateUserRequest{
		Email:    email,
		Login:    login,
		Birthday: domain.NewDate(1985, time.April, 10),
	}
}

func TestFilmService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	films, _ := newFilmFixture(t)

	created, err := films.Create(ctx, createFilmRequest("Бойцовский клуб"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, store.DefaultMpa, created.Mpa)

	got, err := films.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestFilmService_GetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	films, _ := newFilmFixture(t)

	_, err := films.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Фильм с id = 404 не найден", err.Error())
}

func TestFilmService_UpdateMergesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	films, _ := newFilmFixture(t)

	req := createFilmRequest("Старое имя")
	req.Mpa = &domain.MpaRef{ID: 3}
	req.Genres = []domain.GenreRef{{ID: 2}}
	created, err := films.Create(ctx, req)
	require.NoError(t, err)

	newName := "Новое имя"
	updated, err := films.Update(ctx, &domain.UpdateFilmRequest{ID: created.ID, Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Новое имя", updated.Name)
	// Остальные поля не тронуты.
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.ReleaseDate, updated.ReleaseDate)
	assert.Equal(t, created.Duration, updated.Duration)
	assert.Equal(t, created.Mpa, updated.Mpa)
	assert.Equal(t, created.Genres, updated.Genres)
}

func TestFilmService_UpdateUnknownFilm(t *testing.T) {
	ctx := context.Background()
	films, _ := newFilmFixture(t)

	name := "не важно"
	_, err := films.Update(ctx, &domain.UpdateFilmRequest{ID: 404, Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilmService_UpdateUnknownGenre(t *testing.T) {
	ctx := context.Background()
	films, _ := newFilmFixture(t)

	created, err := films.Create(ctx, createFilmRequest("с жанрами"))
	require.NoError(t, err)

	_, err = films.Update(ctx, &domain.UpdateFilmRequest{
		ID:     created.ID,
		Genres: []domain.GenreRef{{ID: 99}},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// Неудачное обновление не изменило запись.
	got, err := films.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestFilmService_LikesRequireExistingFilmAndUser(t *testing.T) {
	ctx := context.Background()
	films, users := newFilmFixture(t)

	film, err := films.Create(ctx, createFilmRequest("лайки"))
	require.NoError(t, err)
	user, err := users.Create(ctx, createUserRequest("liker@mail.ru", "liker"))
	require.NoError(t, err)

	assert.ErrorIs(t, films.AddLike(ctx, film.ID, 404), ErrNotFound)
	assert.ErrorIs(t, films.AddLike(ctx, 404, user.ID), ErrNotFound)

	require.NoError(t, films.AddLike(ctx, film.ID, user.ID))
	assert.ErrorIs(t, films.AddLike(ctx, film.ID, user.ID), ErrConflict)

	require.NoError(t, films.RemoveLike(ctx, film.ID, user.ID))
	// Повторное снятие — no-op.
	require.NoError(t, films.RemoveLike(ctx, film.ID, user.ID))
}

func TestFilmService_GetPopularDefaultsCount(t *testing.T) {
	ctx := context.Background()
	films, _ := newFilmFixture(t)

	for i := 0; i < store.DefaultPopularCount+2; i++ {
		_, err := films.Create(ctx, createFilmRequest("фильм"))
		require.NoError(t, err)
	}

	popular, err := films.GetPopular(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, popular, store.DefaultPopularCount)

	popular, err = films.GetPopular(ctx, -5)
	require.NoError(t, err)
	assert.Len(t, popular, store.DefaultPopularCount)

	popular, err = films.GetPopular(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, popular, 3)
}
