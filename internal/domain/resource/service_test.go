package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID     int64
	UserID int64
	Text   string
}

type noteCreate struct{ Text *string }

func (p noteCreate) Validate() error {
	if p.Text == nil {
		return MissingFields("text")
	}
	return nil
}

type noteUpdate struct{ Text *string }

func (p noteUpdate) Validate() error { return nil }
func (p noteUpdate) IsEmpty() bool   { return p.Text == nil }

// memRepo keeps notes in a map and applies the owner predicate the way SQL repositories do.
type memRepo struct {
	nextID int64
	notes  map[int64]*note
	err    error
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, notes: map[int64]*note{}}
}

func (m *memRepo) ListByUserID(ctx context.Context, userID int64) ([]*note, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*note
	for _, n := range m.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memRepo) GetByID(ctx context.Context, userID, id int64) (*note, error) {
	if m.err != nil {
		return nil, m.err
	}
	n, ok := m.notes[id]
	if !ok || n.UserID != userID {
		return nil, ErrNotFound
	}
	return n, nil
}

func (m *memRepo) Create(ctx context.Context, userID int64, p noteCreate) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	id := m.nextID
	m.nextID++
	m.notes[id] = &note{ID: id, UserID: userID, Text: *p.Text}
	return id, nil
}

func (m *memRepo) Update(ctx context.Context, userID, id int64, p noteUpdate) error {
	if m.err != nil {
		return m.err
	}
	n, ok := m.notes[id]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	if p.Text != nil {
		n.Text = *p.Text
	}
	return nil
}

func (m *memRepo) Delete(ctx context.Context, userID, id int64) error {
	if m.err != nil {
		return m.err
	}
	n, ok := m.notes[id]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	id, err := svc.Create(ctx, 1, noteCreate{Text: ptr("rent")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := svc.Get(ctx, 1, id)
	require.NoError(t, err)
	assert.Equal(t, "rent", got.Text)
	assert.Equal(t, int64(1), got.UserID)
}

func TestService_Create_MissingFields(t *testing.T) {
	svc := NewService(newMemRepo())

	_, err := svc.Create(context.Background(), 1, noteCreate{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "text is required", err.Error())
}

func TestService_List_EmptyIsNotNil(t *testing.T) {
	svc := NewService(newMemRepo())

	got, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_OtherOwnerLooksMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	id, err := svc.Create(ctx, 1, noteCreate{Text: ptr("groceries")})
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, id)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Update(ctx, 2, id, noteUpdate{Text: ptr("stolen")})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, 2, id)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := svc.Get(ctx, 1, id)
	require.NoError(t, err)
	assert.Equal(t, "groceries", got.Text)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	id, err := svc.Create(ctx, 1, noteCreate{Text: ptr("old")})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, 1, id, noteUpdate{Text: ptr("new")}))

	got, err := svc.Get(ctx, 1, id)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Text)
}

func TestService_Update_NoFields(t *testing.T) {
	svc := NewService(newMemRepo())

	err := svc.Update(context.Background(), 1, 1, noteUpdate{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	assert.True(t, IsValidation(err))
}

func TestService_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	id, err := svc.Create(ctx, 1, noteCreate{Text: ptr("x")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, id))
	assert.ErrorIs(t, svc.Delete(ctx, 1, id), ErrNotFound)
}

func TestService_StorageErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.err = errors.New("connection refused")
	svc := NewService(repo)

	_, err := svc.List(ctx, 1)
	assert.ErrorIs(t, err, ErrStorage)

	_, err = svc.Get(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrStorage)

	_, err = svc.Create(ctx, 1, noteCreate{Text: ptr("x")})
	assert.ErrorIs(t, err, ErrStorage)

	err = svc.Delete(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestService_RequiresOwner(t *testing.T) {
	svc := NewService(newMemRepo())

	_, err := svc.List(context.Background(), 0)
	assert.ErrorIs(t, err, ErrNoOwner)
}

func TestMissingFields(t *testing.T) {
	tests := []struct {
		fields []string
		want   string
	}{
		{[]string{"name"}, "name is required"},
		{[]string{"category", "amount"}, "category and amount are required"},
		{[]string{"transaction_date", "description", "amount", "transaction_type"},
			"transaction_date, description, amount, and transaction_type are required"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			err := MissingFields(tt.fields...)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}

	assert.NoError(t, MissingFields())
}
