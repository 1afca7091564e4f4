package redis

import (
	"context"
	"encoding/json"

	"news-feed-client/internal/entity"
	"news-feed-client/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const credentialKey = "newsfeed:credential"

// credentialRepository is the redis-backed alternative to the file store,
// for deployments where the client state should live off the local disk.
// Same degrade-to-absent contract as the file implementation.
type credentialRepository struct {
	rdb *redis.Client
}

func NewCredentialRepository(rdb *redis.Client) contract.CredentialRepository {
	return &credentialRepository{rdb: rdb}
}

func (r *credentialRepository) Load(ctx context.Context) (*entity.Credential, error) {
	raw, err := r.rdb.Get(ctx, credentialKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cred entity.Credential
	if err := json.Unmarshal(raw, &cred); err != nil {
		return nil, nil
	}
	if cred.Token == "" {
		return nil, nil
	}
	return &cred, nil
}

func (r *credentialRepository) Save(ctx context.Context, cred *entity.Credential) error {
	raw, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, credentialKey, raw, 0).Err()
}

func (r *credentialRepository) Clear(ctx context.Context) error {
	return r.rdb.Del(ctx, credentialKey).Err()
}
