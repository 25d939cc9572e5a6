package listing

import "context"

// HistoryStore persists scoring outcomes for audit and trend queries.
// Writes happen off the hot path, from the event consumer, so a slow store
// never delays a scoring response.
type HistoryStore interface {
	Save(ctx context.Context, result *ScoreResult) error
	SaveBatch(ctx context.Context, results []*ScoreResult) error

	// FindByListingID returns past results for one listing, newest first.
	FindByListingID(ctx context.Context, listingID string, limit int) ([]*ScoreResult, error)

	// ListHighRisk returns recent likely-counterfeit results, newest first.
	ListHighRisk(ctx context.Context, limit int) ([]*ScoreResult, error)
}

//Personal.AI order the ending
