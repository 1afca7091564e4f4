package contract

import (
	"context"

	"news-feed-client/internal/entity"
)

// CredentialRepository persists the bearer token together with the
// last-known user snapshot. Implementations must degrade gracefully:
// a missing or corrupted record reads as absent, never as an error
// the session manager has to handle specially.
type CredentialRepository interface {
	// Load returns (nil, nil) when no credential is stored.
	Load(ctx context.Context) (*entity.Credential, error)
	Save(ctx context.Context, cred *entity.Credential) error
	Clear(ctx context.Context) error
}
