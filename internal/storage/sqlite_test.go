package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/Veraticus/smart-finance/internal/session"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := OpenSQLiteStorage(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestNewSQLiteStorage_RejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.Migrate(ctx))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSlot_ReadWriteDelete(t *testing.T) {
	ctx := context.Background()
	slot := createTestStorage(t).Slot("currentUser")

	_, ok, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, slot.Write(ctx, []byte(`{"token":"a"}`)))
	require.NoError(t, slot.Write(ctx, []byte(`{"token":"b"}`)))

	data, ok, err := slot.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"token":"b"}`, string(data))

	require.NoError(t, slot.Delete(ctx))
	require.NoError(t, slot.Delete(ctx))

	_, ok, err = slot.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSlot_NamesAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.Slot("a").Write(ctx, []byte("1")))
	require.NoError(t, store.Slot("b").Write(ctx, []byte("2")))
	require.NoError(t, store.Slot("a").Delete(ctx))

	_, ok, err := store.Slot("a").Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	data, ok, err := store.Slot("b").Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2", string(data))
}

func TestSlot_BacksSessionCell(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "finance", "session.db")

	store, err := OpenSQLiteStorage(ctx, dbPath)
	require.NoError(t, err)

	want := model.Session{Token: "tok", UserID: 9, Name: "Ada", Email: "ada@example.com", Currency: "EUR"}
	cell := session.NewCell(ctx, store.Slot("currentUser"))
	require.NoError(t, cell.Set(ctx, want))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLiteStorage(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok := session.NewCell(ctx, reopened.Slot("currentUser")).Current()
	require.True(t, ok)
	assert.Equal(t, want, got)
}
