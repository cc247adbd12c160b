package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lzuhelper/joyrun/models"
)

// CacheFileName is the session cache file inside the cache directory. The
// name is kept compatible with the caches written by earlier versions of the
// helper.
const CacheFileName = "Joyrun_LoginInfo.json"

type fileSessionStore struct {
	path string
}

// NewFileSessionStore returns a [SessionStore] backed by a JSON cache file
// in cacheDir. The file holds a single keyed record {userName, sid, uid};
// running several accounts against the same directory overwrites it, which
// is why multi-account setups should prefer the SQLite backend.
func NewFileSessionStore(cacheDir string) SessionStore {
	return &fileSessionStore{path: filepath.Join(cacheDir, CacheFileName)}
}

func (s *fileSessionStore) Load(_ context.Context) (models.Identity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Identity{}, ErrSessionNotFound
		}
		return models.Identity{}, fmt.Errorf("read session cache file: %w", err)
	}

	var identity models.Identity
	if err = json.Unmarshal(data, &identity); err != nil {
		// A corrupted cache is indistinguishable from no cache.
		return models.Identity{}, ErrSessionNotFound
	}

	return identity, nil
}

func (s *fileSessionStore) Save(_ context.Context, identity models.Identity) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session cache dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session cache: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write session cache file: %w", err)
	}

	return nil
}
