package contract

import "context"

// PreferenceRepository stores the selected category set per username,
// independently of the session token: preferences survive logout and are
// keyed by username so each account keeps its own set.
type PreferenceRepository interface {
	// Get returns an empty set when nothing is stored or the stored value
	// is corrupted. Empty means "no filter", not "show nothing".
	Get(ctx context.Context, username string) ([]string, error)
	// Set overwrites the stored set. No merge semantics.
	Set(ctx context.Context, username string, categories []string) error
}
