package store

import (
	"context"
	"errors"

	"filmorate/internal/domain"
)

// Сентинельные ошибки хранилищ. Сервисный слой переводит их в свою
// таксономию, чтобы детали хранения не утекали на HTTP-уровень.
var (
	ErrFilmNotFound  = errors.New("film not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrGenreNotFound = errors.New("genre not found")
	ErrMpaNotFound   = errors.New("mpa rating not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrLikeExists    = errors.New("like already exists")
)

// DefaultPopularCount — размер выдачи /films/popular, когда count
// не передан или не положителен.
const DefaultPopularCount = 10

// FilmStore — операции над фильмами и лайками. Save назначает фильму
// новый id (монотонно с 1, без переиспользования), проставляет рейтинг
// по умолчанию и возвращает сохраненную запись с заполненными именами
// жанров и рейтинга. Update получает уже слитую (merged) сущность и
// полностью перезаписывает строку; частичное слияние — забота сервиса.
type FilmStore interface {
	Save(ctx context.Context, film *domain.Film) (*domain.Film, error)
	Update(ctx context.Context, film *domain.Film) (*domain.Film, error)
	GetByID(ctx context.Context, id int64) (*domain.Film, error)
	GetAll(ctx context.Context) ([]domain.Film, error)
	// AddLike возвращает ErrLikeExists при повторном лайке того же
	// пользователя. RemoveLike отсутствующей связи — no-op.
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	// GetPopular: по убыванию числа лайков, при равенстве — по
	// возрастанию id; фильмы без лайков включаются и идут последними.
	GetPopular(ctx context.Context, count int) ([]domain.Film, error)
}

// UserStore — операции над пользователями и дружбой. Дружба
// однонаправленная: AddFriend записывает ребро userID -> friendID,
// обратное ребро не создается.
type UserStore interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	GetFriends(ctx context.Context, userID int64) ([]domain.User, error)
	GetCommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error)
}

// GenreStore и MpaStore — доступ к справочникам, только чтение.
type GenreStore interface {
	GetAll(ctx context.Context) ([]domain.Genre, error)
	GetByID(ctx context.Context, id int) (*domain.Genre, error)
}

type MpaStore interface {
	GetAll(ctx context.Context) ([]domain.Mpa, error)
	GetByID(ctx context.Context, id int) (*domain.Mpa, error)
}
