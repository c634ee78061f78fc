package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/security"
	"github.com/bellsbalance/backend/pkg/model"
)

func TestFileStateStore_MissingFileIsNotAnError(t *testing.T) {
	store := NewFileStateStore(filepath.Join(t.TempDir(), "state.json"), nil, zap.NewNop())

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestFileStateStore_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewFileStateStore(path, nil, zap.NewNop())
	ctx := context.Background()

	saved := model.DefaultAppState()
	saved.Gamification.Points = 120
	saved.Gamification.Level = 2
	saved.Records = []model.IntakeRecord{{
		ID:        "rec-1",
		Amount:    500,
		Timestamp: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		DrinkType: model.DrinkTypeTea,
	}}
	require.NoError(t, store.Save(ctx, &saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 120, loaded.Gamification.Points)
	assert.Equal(t, 2, loaded.Gamification.Level)
	require.Len(t, loaded.Records, 1)
	assert.Equal(t, model.DrinkTypeTea, loaded.Records[0].DrinkType)
	assert.True(t, loaded.Records[0].Timestamp.Equal(saved.Records[0].Timestamp))

	// No temp file left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStateStore_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "state.json")
	store := NewFileStateStore(path, nil, zap.NewNop())

	state := model.DefaultAppState()
	require.NoError(t, store.Save(context.Background(), &state))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStateStore_SealedRoundtrip(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	sealer, err := security.NewBlobSealer(key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "state.bin")
	store := NewFileStateStore(path, sealer, zap.NewNop())
	ctx := context.Background()

	saved := model.DefaultAppState()
	saved.Profile.DailyGoalMl = 3000
	require.NoError(t, store.Save(ctx, &saved))

	// The blob on disk is not plaintext JSON
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "daily_goal")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 3000, loaded.Profile.DailyGoalMl)
}

func TestFileStateStore_WrongKeyFailsToLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.bin")
	ctx := context.Background()

	sealerA, err := security.NewBlobSealer([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	state := model.DefaultAppState()
	require.NoError(t, NewFileStateStore(path, sealerA, zap.NewNop()).Save(ctx, &state))

	sealerB, err := security.NewBlobSealer([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)
	_, err = NewFileStateStore(path, sealerB, zap.NewNop()).Load(ctx)
	assert.Error(t, err)
}

func TestFileStateStore_CorruptFileFailsToLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStateStore(path, nil, zap.NewNop()).Load(context.Background())
	assert.Error(t, err)
}
