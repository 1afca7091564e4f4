package implementation

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"news-feed-client/internal/repository/contract"
)

// filePreferenceRepository stores one JSON array per username, mirroring
// the preferences_<username> keying of the original storage layer.
type filePreferenceRepository struct {
	dir string
	mu  sync.Mutex
}

func NewFilePreferenceRepository(dataDir string) (contract.PreferenceRepository, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}
	return &filePreferenceRepository{dir: dataDir}, nil
}

func (r *filePreferenceRepository) path(username string) string {
	// Usernames come from the server but still get escaped before they
	// touch the filesystem.
	return filepath.Join(r.dir, "preferences_"+url.PathEscape(username)+".json")
}

func (r *filePreferenceRepository) Get(_ context.Context, username string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path(username))
	if err != nil {
		return []string{}, nil
	}

	var categories []string
	if err := json.Unmarshal(raw, &categories); err != nil {
		// Corrupted preferences degrade to "no filter".
		return []string{}, nil
	}
	return categories, nil
}

func (r *filePreferenceRepository) Set(_ context.Context, username string, categories []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if categories == nil {
		categories = []string{}
	}
	raw, err := json.Marshal(categories)
	if err != nil {
		return err
	}

	tmp := r.path(username) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, r.path(username))
}
