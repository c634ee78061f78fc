package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/pkg/model"
)

// DefaultStateKey is the row key used for the single-user state blob
const DefaultStateKey = "default"

// PostgresStateStore persists the whole app state as a JSON blob in a
// single-row key-value table. The blob is written atomically with an
// upsert; there is no partial persistence.
type PostgresStateStore struct {
	db     *pgxpool.Pool
	key    string
	logger *zap.Logger
}

// NewPostgresStateStore creates a new PostgresStateStore for the given
// state key
func NewPostgresStateStore(db *pgxpool.Pool, key string, logger *zap.Logger) *PostgresStateStore {
	if key == "" {
		key = DefaultStateKey
	}
	return &PostgresStateStore{
		db:     db,
		key:    key,
		logger: logger,
	}
}

// Migrate creates the state table when it does not exist
func (s *PostgresStateStore) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := s.db.Exec(ctx, query); err != nil {
		s.logger.Error("failed to create app_state table", zap.Error(err))
		return fmt.Errorf("failed to create app_state table: %w", err)
	}
	return nil
}

// Load reads and decodes the state blob. A missing row is not an
// error: it returns nil state so the caller starts from defaults.
func (s *PostgresStateStore) Load(ctx context.Context) (*model.AppState, error) {
	query := `
		SELECT data
		FROM app_state
		WHERE key = $1
	`

	var data []byte
	err := s.db.QueryRow(ctx, query, s.key).Scan(&data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		s.logger.Error("failed to load state", zap.Error(err), zap.String("key", s.key))
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	var state model.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Error("failed to decode state", zap.Error(err), zap.String("key", s.key))
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	return &state, nil
}

// Save encodes the whole state and upserts it under the store's key
func (s *PostgresStateStore) Save(ctx context.Context, state *model.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	query := `
		INSERT INTO app_state (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`

	if _, err := s.db.Exec(ctx, query, s.key, data); err != nil {
		s.logger.Error("failed to save state", zap.Error(err), zap.String("key", s.key))
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}
