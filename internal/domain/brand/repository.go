package brand

import (
	"context"
)

// GraphStore is the narrow read/write contract against the brand knowledge
// graph.  The scoring core issues only these query shapes; anything richer
// belongs to the upstream graph-construction pipeline.
//
// Fetch methods return ErrCodeBrandNotFound for brands absent from the graph
// and ErrCodeGraphUnavailable when the store is unreachable; callers decide
// whether to degrade to stale cache data.
type GraphStore interface {
	// FetchBrandRecord loads the canonical record, including product types,
	// regions, and price baselines.
	FetchBrandRecord(ctx context.Context, name string) (*BrandRecord, error)

	// FetchVariations loads the registered variations of a brand.
	FetchVariations(ctx context.Context, brandName string) ([]Variation, error)

	// FetchAttributeSchema loads the product-type → attribute → valid-values
	// mapping for a brand.
	FetchAttributeSchema(ctx context.Context, brandName string) (AttributeSchema, error)

	// FetchCounterfeitPatterns loads the counterfeit patterns registered
	// against a brand.
	FetchCounterfeitPatterns(ctx context.Context, brandName string) ([]CounterfeitPattern, error)

	// ListBrandNames enumerates every canonical brand name.  Used only by the
	// variation-index rebuild, which needs the full corpus.
	ListBrandNames(ctx context.Context) ([]string, error)

	// UpsertVariation registers a newly discovered variation.  Best-effort:
	// the scoring core calls it asynchronously and never depends on the
	// write landing.
	UpsertVariation(ctx context.Context, brandName string, v Variation) error

	// UpsertPattern registers a newly observed counterfeit pattern.
	// Best-effort, like UpsertVariation.
	UpsertPattern(ctx context.Context, brandName string, p CounterfeitPattern) error
}

//Personal.AI order the ending
