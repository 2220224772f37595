package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"petclinic-web/internal/entity"
)

var (
	ErrNotFound = errors.New("not found")
	ErrHasID    = errors.New("new record cannot already have an id")
	ErrNoID     = errors.New("record id required")
)

// Store es un repo in-memory genérico con ids secuenciales.
// setID asigna el id generado al registro nuevo.
type Store[T entity.Identifiable] struct {
	mu     sync.RWMutex
	byID   map[int64]T
	nextID int64
	setID  func(*T, int64)
}

func NewStore[T entity.Identifiable](setID func(*T, int64)) *Store[T] {
	return &Store[T]{
		byID:   make(map[int64]T),
		nextID: 1,
		setID:  setID,
	}
}

func (s *Store[T]) Create(ctx context.Context, rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.GetID() != nil {
		return rec, ErrHasID
	}
	id := s.nextID
	s.nextID++
	s.setID(&rec, id)
	s.byID[id] = rec
	return rec, nil
}

func (s *Store[T]) Update(ctx context.Context, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.GetID()
	if id == nil {
		return ErrNoID
	}
	if _, exists := s.byID[*id]; !exists {
		return ErrNotFound
	}
	s.byID[*id] = rec
	return nil
}

func (s *Store[T]) GetByID(ctx context.Context, id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return rec, nil
}

// List devuelve todo ordenado por id asc.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}
