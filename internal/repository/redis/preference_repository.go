package redis

import (
	"context"
	"encoding/json"

	"news-feed-client/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type preferenceRepository struct {
	rdb *redis.Client
}

func NewPreferenceRepository(rdb *redis.Client) contract.PreferenceRepository {
	return &preferenceRepository{rdb: rdb}
}

func preferenceKey(username string) string {
	return "newsfeed:preferences:" + username
}

func (r *preferenceRepository) Get(ctx context.Context, username string) ([]string, error) {
	raw, err := r.rdb.Get(ctx, preferenceKey(username)).Bytes()
	if err == redis.Nil {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal(raw, &categories); err != nil {
		return []string{}, nil
	}
	return categories, nil
}

func (r *preferenceRepository) Set(ctx context.Context, username string, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	raw, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, preferenceKey(username), raw, 0).Err()
}
