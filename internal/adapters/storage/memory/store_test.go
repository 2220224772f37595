package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	ID   *int64
	Name string
}

func (r rec) GetID() *int64 { return r.ID }

func newRecStore() *Store[rec] {
	return NewStore(func(r *rec, id int64) { r.ID = &id })
}

func TestStore_CreateAssignsSequentialIDs(t *testing.T) {
	s := newRecStore()
	ctx := context.Background()

	a, err := s.Create(ctx, rec{Name: "a"})
	require.NoError(t, err)
	b, err := s.Create(ctx, rec{Name: "b"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), *a.ID)
	assert.Equal(t, int64(2), *b.ID)

	_, err = s.Create(ctx, a)
	assert.ErrorIs(t, err, ErrHasID)
}

func TestStore_UpdateGetDelete(t *testing.T) {
	s := newRecStore()
	ctx := context.Background()

	a, _ := s.Create(ctx, rec{Name: "a"})
	a.Name = "a2"
	require.NoError(t, s.Update(ctx, a))

	got, err := s.GetByID(ctx, *a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a2", got.Name)

	require.NoError(t, s.Delete(ctx, *a.ID))
	_, err = s.GetByID(ctx, *a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, *a.ID), ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, rec{Name: "x"}), ErrNoID)
}

func TestStore_ListOrderedByID(t *testing.T) {
	s := newRecStore()
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		_, err := s.Create(ctx, rec{Name: n})
		require.NoError(t, err)
	}

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "c", items[2].Name)
}
