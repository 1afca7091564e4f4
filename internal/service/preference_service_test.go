// FILE: internal/service/preference_service_test.go
package service

import (
	"context"
	"testing"

	"news-feed-client/internal/pkg/apierror"
	"news-feed-client/internal/pkg/logger"
	"news-feed-client/internal/repository/implementation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPreferenceService(t *testing.T) IPreferenceService {
	t.Helper()
	repo, err := implementation.NewFilePreferenceRepository(t.TempDir())
	require.NoError(t, err)
	return NewPreferenceService(repo, logger.NewNopLogger())
}

func TestNormalizeCategories(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: []string{}},
		{name: "already normal", in: []string{"politics", "sports"}, want: []string{"politics", "sports"}},
		{name: "case and whitespace", in: []string{" Sports ", "POLITICS"}, want: []string{"politics", "sports"}},
		{name: "duplicates", in: []string{"crime", "crime", "Crime"}, want: []string{"crime"}},
		{name: "unsorted", in: []string{"sports", "crime", "politics"}, want: []string{"crime", "politics", "sports"}},
		{name: "empty entries dropped", in: []string{"", "  ", "sports"}, want: []string{"sports"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategories(tt.in))
		})
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	svc := newTestPreferenceService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "alice", []string{"Sports", "crime"}))

	got, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"crime", "sports"}, got)
}

func TestPreferencesAreScopedPerUsername(t *testing.T) {
	svc := newTestPreferenceService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "alice", []string{"sports"}))

	// A different user sees their own (empty) set, never alice's.
	got, err := svc.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, svc.Set(ctx, "bob", []string{"politics"}))
	aliceSet, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"sports"}, aliceSet)
}

func TestPreferencesOverwriteWithoutMerge(t *testing.T) {
	svc := newTestPreferenceService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "alice", []string{"sports", "crime"}))
	require.NoError(t, svc.Set(ctx, "alice", []string{"politics"}))

	got, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"politics"}, got)
}

func TestSetRejectsUnknownCategories(t *testing.T) {
	svc := newTestPreferenceService(t)

	err := svc.Set(context.Background(), "alice", []string{"sports", "astrology"})
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindValidation))

	// Nothing was written.
	got, gerr := svc.Get(context.Background(), "alice")
	require.NoError(t, gerr)
	assert.Empty(t, got)
}

func TestGetForUnknownUserIsEmptyNotError(t *testing.T) {
	svc := newTestPreferenceService(t)

	got, err := svc.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}
