// FILE: internal/service/preference_service.go
package service

import (
	"context"
	"sort"
	"strings"

	"news-feed-client/internal/pkg/apierror"
	"news-feed-client/internal/pkg/logger"
	"news-feed-client/internal/repository/contract"
)

// KnownCategories is the fixed set of content categories the backend
// classifies articles into.
var KnownCategories = []string{"entertainment", "sports", "crime", "politics"}

type IPreferenceService interface {
	// Get returns the stored set for the username, normalized. Empty means
	// "no filter". Never fails on corrupted durable data.
	Get(ctx context.Context, username string) ([]string, error)
	// Set overwrites the stored set. Unknown categories are rejected
	// client-side before anything is written.
	Set(ctx context.Context, username string, categories []string) error
}

type preferenceService struct {
	preferences contract.PreferenceRepository
	log         logger.ILogger
}

func NewPreferenceService(preferences contract.PreferenceRepository, log logger.ILogger) IPreferenceService {
	return &preferenceService{preferences: preferences, log: log}
}

func (s *preferenceService) Get(ctx context.Context, username string) ([]string, error) {
	if username == "" {
		return []string{}, nil
	}
	stored, err := s.preferences.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return NormalizeCategories(stored), nil
}

func (s *preferenceService) Set(ctx context.Context, username string, categories []string) error {
	if username == "" {
		return apierror.New(apierror.KindValidation, "username must not be empty")
	}

	normalized := NormalizeCategories(categories)
	for _, category := range normalized {
		if !isKnownCategory(category) {
			return apierror.New(apierror.KindValidation, "unknown category: "+category)
		}
	}

	if err := s.preferences.Set(ctx, username, normalized); err != nil {
		return err
	}
	s.log.Info("preferences", "preferences updated", map[string]interface{}{
		"username":   username,
		"categories": normalized,
	})
	return nil
}

// NormalizeCategories lowercases, trims, deduplicates and sorts a category
// set. Two sets selecting the same categories always normalize to the same
// slice, which keeps feed cache keys canonical.
func NormalizeCategories(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	normalized := make([]string, 0, len(categories))
	for _, category := range categories {
		category = strings.ToLower(strings.TrimSpace(category))
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		normalized = append(normalized, category)
	}
	sort.Strings(normalized)
	return normalized
}

func isKnownCategory(category string) bool {
	for _, known := range KnownCategories {
		if category == known {
			return true
		}
	}
	return false
}
