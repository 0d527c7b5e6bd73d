package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"filmorate/internal/domain"
)

// MemoryFilmStore — потокобезопасное in-memory хранилище фильмов.
// Все карты защищены RWMutex, наружу всегда отдаются копии записей,
// чтобы вызывающий код не мог изменить состояние в обход блокировки.
type MemoryFilmStore struct {
	mu     sync.RWMutex
	films  map[int64]*domain.Film
	likes  map[int64]map[int64]struct{} // filmID -> множество userID
	nextID int64
	genres map[int]domain.Genre
	mpa    map[int]domain.Mpa
	logger *slog.Logger
}

func NewMemoryFilmStore(logger *slog.Logger) *MemoryFilmStore {
	genres := make(map[int]domain.Genre, len(ReferenceGenres))
	for _, g := range ReferenceGenres {
		genres[g.ID] = g
	}
	mpa := make(map[int]domain.Mpa, len(ReferenceMpa))
	for _, m := range ReferenceMpa {
		mpa[m.ID] = m
	}
	return &MemoryFilmStore{
		films:  make(map[int64]*domain.Film),
		likes:  make(map[int64]map[int64]struct{}),
		genres: genres,
		mpa:    mpa,
		logger: logger,
	}
}

func (s *MemoryFilmStore) Save(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized, err := s.resolveReferences(film)
	if err != nil {
		return nil, err
	}

	s.nextID++
	normalized.ID = s.nextID
	s.films[normalized.ID] = normalized

	s.logger.InfoContext(ctx, "film saved in memory store", slog.Int64("filmID", normalized.ID))
	copied := copyFilm(normalized)
	return &copied, nil
}

func (s *MemoryFilmStore) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return nil, ErrFilmNotFound
	}

	normalized, err := s.resolveReferences(film)
	if err != nil {
		return nil, err
	}
	normalized.ID = film.ID
	s.films[film.ID] = normalized

	s.logger.InfoContext(ctx, "film updated in memory store", slog.Int64("filmID", film.ID))
	copied := copyFilm(normalized)
	return &copied, nil
}

func (s *MemoryFilmStore) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	film, ok := s.films[id]
	if !ok {
		return nil, ErrFilmNotFound
	}
	copied := copyFilm(film)
	return &copied, nil
}

func (s *MemoryFilmStore) GetAll(ctx context.Context) ([]domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]domain.Film, 0, len(s.films))
	for _, film := range s.films {
		films = append(films, copyFilm(film))
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (s *MemoryFilmStore) AddLike(ctx context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[filmID]; !ok {
		return ErrFilmNotFound
	}
	userLikes, ok := s.likes[filmID]
	if !ok {
		userLikes = make(map[int64]struct{})
		s.likes[filmID] = userLikes
	}
	if _, liked := userLikes[userID]; liked {
		return ErrLikeExists
	}
	userLikes[userID] = struct{}{}
	return nil
}

// RemoveLike отсутствующего лайка — идемпотентный no-op.
func (s *MemoryFilmStore) RemoveLike(ctx context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[filmID]; !ok {
		return ErrFilmNotFound
	}
	if userLikes, ok := s.likes[filmID]; ok {
		delete(userLikes, userID)
	}
	return nil
}

func (s *MemoryFilmStore) GetPopular(ctx context.Context, count int) ([]domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]domain.Film, 0, len(s.films))
	for _, film := range s.films {
		films = append(films, copyFilm(film))
	}
	sort.Slice(films, func(i, j int) bool {
		li, lj := len(s.likes[films[i].ID]), len(s.likes[films[j].ID])
		if li != lj {
			return li > lj
		}
		return films[i].ID < films[j].ID
	})
	if count < len(films) {
		films = films[:count]
	}
	return films, nil
}

// resolveReferences проверяет, что рейтинг и жанры существуют в
// справочниках, подставляет рейтинг по умолчанию и возвращает копию
// фильма с заполненными именами. Жанры дедуплицируются и сортируются
// по id — так же, как отдает реляционный бэкенд.
func (s *MemoryFilmStore) resolveReferences(film *domain.Film) (*domain.Film, error) {
	copied := copyFilm(film)

	if copied.Mpa.ID == 0 {
		copied.Mpa = DefaultMpa
	} else {
		mpa, ok := s.mpa[copied.Mpa.ID]
		if !ok {
			return nil, ErrMpaNotFound
		}
		copied.Mpa = mpa
	}

	seen := make(map[int]struct{}, len(copied.Genres))
	genres := make([]domain.Genre, 0, len(copied.Genres))
	for _, ref := range copied.Genres {
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		genre, ok := s.genres[ref.ID]
		if !ok {
			return nil, ErrGenreNotFound
		}
		seen[ref.ID] = struct{}{}
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	copied.Genres = genres

	return &copied, nil
}

func copyFilm(film *domain.Film) domain.Film {
	copied := *film
	copied.Genres = make([]domain.Genre, len(film.Genres))
	copy(copied.Genres, film.Genres)
	return copied
}
