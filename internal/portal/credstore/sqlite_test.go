package credstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := InitDatabase(context.Background(), "file:credstore?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	// Each test starts from an empty namespace; the shared in-memory DSN can
	// carry rows over between tests in the same binary.
	require.NoError(t, s.Clear(context.Background()))
	return s
}

func TestLoad_Empty(t *testing.T) {
	s := setupStore(t)

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, ErrNoToken)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "T1"))

	token, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "T1", token)
}

func TestSave_Overwrites(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "T1"))
	require.NoError(t, s.Save(ctx, "T2"))

	token, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "T2", token)
}

func TestClear_Idempotent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "T1"))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNoToken)
}
