package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"automix-bot/internal/core/domain"
)

// IdentityFile stores the leaderboard message pointer as {"id": "..."}.
type IdentityFile struct {
	path string
}

func NewIdentityFile(path string) *IdentityFile {
	return &IdentityFile{path: path}
}

func (f *IdentityFile) Path() string {
	return f.path
}

// Load returns domain.ErrNotFound for a missing, empty or malformed file.
func (f *IdentityFile) Load(ctx context.Context) (*domain.MessageIdentity, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read identity file: %w", err)
	}

	var identity domain.MessageIdentity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("%w: malformed identity file: %v", domain.ErrNotFound, err)
	}

	identity.ID = strings.TrimSpace(identity.ID)
	if identity.ID == "" {
		return nil, domain.ErrNotFound
	}

	return &identity, nil
}

// Save replaces the file atomically via a sibling temp file.
func (f *IdentityFile) Save(ctx context.Context, identity domain.MessageIdentity) error {
	data, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create identity dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".identity-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace identity file: %w", err)
	}

	return nil
}
