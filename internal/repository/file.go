package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/security"
	"github.com/bellsbalance/backend/pkg/model"
)

// FileStateStore persists the whole app state as a JSON blob on local
// disk. When a sealer is supplied the blob is encrypted at rest.
type FileStateStore struct {
	path   string
	sealer *security.BlobSealer
	logger *zap.Logger
}

// NewFileStateStore creates a new FileStateStore; sealer may be nil for
// plaintext storage
func NewFileStateStore(path string, sealer *security.BlobSealer, logger *zap.Logger) *FileStateStore {
	return &FileStateStore{
		path:   path,
		sealer: sealer,
		logger: logger,
	}
}

// Load reads and decodes the state blob. A missing file is not an
// error: it returns nil state so the caller starts from defaults.
func (s *FileStateStore) Load(_ context.Context) (*model.AppState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		s.logger.Error("failed to read state file", zap.Error(err), zap.String("path", s.path))
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if s.sealer != nil {
		data, err = s.sealer.Open(data)
		if err != nil {
			return nil, fmt.Errorf("failed to unseal state file: %w", err)
		}
	}

	var state model.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Error("failed to decode state file", zap.Error(err), zap.String("path", s.path))
		return nil, fmt.Errorf("failed to decode state file: %w", err)
	}
	return &state, nil
}

// Save encodes the whole state and replaces the blob atomically via a
// temp file rename
func (s *FileStateStore) Save(_ context.Context, state *model.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if s.sealer != nil {
		data, err = s.sealer.Seal(data)
		if err != nil {
			return fmt.Errorf("failed to seal state: %w", err)
		}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		s.logger.Error("failed to write state file", zap.Error(err), zap.String("path", tmp))
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
