package implementation

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"news-feed-client/internal/entity"
	"news-feed-client/internal/repository/contract"
)

const credentialFileName = "credential.json"

// fileCredentialRepository keeps the credential in one JSON document under
// the data directory, the desktop equivalent of the browser's localStorage
// entry. Saves go through a temp file and rename so a crash mid-write
// cannot leave a half-written credential.
type fileCredentialRepository struct {
	dir string
	mu  sync.Mutex
}

func NewFileCredentialRepository(dataDir string) (contract.CredentialRepository, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}
	return &fileCredentialRepository{dir: dataDir}, nil
}

func (r *fileCredentialRepository) path() string {
	return filepath.Join(r.dir, credentialFileName)
}

func (r *fileCredentialRepository) Load(_ context.Context) (*entity.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path())
	if err != nil {
		// Absent is a normal first-run state.
		return nil, nil
	}

	var cred entity.Credential
	if err := json.Unmarshal(raw, &cred); err != nil {
		// Corrupted durable data degrades to absent, never errors.
		return nil, nil
	}
	if cred.Token == "" {
		return nil, nil
	}
	return &cred, nil
}

func (r *fileCredentialRepository) Save(_ context.Context, cred *entity.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	tmp := r.path() + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, r.path())
}

func (r *fileCredentialRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
