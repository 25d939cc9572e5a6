package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ListingsClient provides access to the listing analysis endpoints.
type ListingsClient struct {
	client *Client
}

// Listing is a product listing submitted for counterfeit analysis.
type Listing struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	Seller         string            `json:"seller"`
	ShippingOrigin string            `json:"shipping_origin"`
	DeclaredBrand  string            `json:"declared_brand"`
	Category       string            `json:"category"`
	Attributes     map[string]string `json:"attributes,omitempty"`
}

// Span is a half-open [Start, End) rune range in the listing text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// BrandMention is the brand the engine believes the listing refers to.
type BrandMention struct {
	Brand      string  `json:"brand"`
	Matched    string  `json:"matched"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Span       Span    `json:"span"`
}

// IndicatorResult is one detector's verdict on a listing.
type IndicatorResult struct {
	Name      string  `json:"name"`
	Evaluated bool    `json:"evaluated"`
	Triggered bool    `json:"triggered"`
	Severity  float64 `json:"severity"`
	Rationale string  `json:"rationale"`
}

// ScoreResult is the outcome of analyzing one listing.
type ScoreResult struct {
	ListingID         string            `json:"listing_id"`
	Score             int               `json:"score"`
	Confidence        float64           `json:"confidence"`
	RiskLevel         string            `json:"risk_level"`
	LikelyCounterfeit bool              `json:"likely_counterfeit"`
	Mention           *BrandMention     `json:"mention,omitempty"`
	Indicators        []IndicatorResult `json:"indicators"`
	Outcome           string            `json:"outcome"`
	Degraded          bool              `json:"degraded"`
	AnalyzedAt        time.Time         `json:"analyzed_at"`
}

// ErrorDetail is the error payload attached to a failed batch item.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// BatchItem pairs one listing's result with its error, in input order.
type BatchItem struct {
	Result *ScoreResult `json:"result,omitempty"`
	Error  *ErrorDetail `json:"error,omitempty"`
}

// BatchResult summarizes a batch analysis run.
type BatchResult struct {
	Results    []BatchItem `json:"results"`
	Scored     int         `json:"scored"`
	Rejected   int         `json:"rejected"`
	Incomplete int         `json:"incomplete"`
}

// SubmitReceipt acknowledges an asynchronous submission.
type SubmitReceipt struct {
	ListingID string `json:"listing_id"`
	Status    string `json:"status"`
}

// Analyze scores a single listing synchronously.
//
// A rejected listing answers HTTP 400 with the rejected-outcome result
// attached next to the error; in that case both the result and the
// *APIError are returned.
func (lc *ListingsClient) Analyze(ctx context.Context, in Listing) (*ScoreResult, error) {
	var result ScoreResult
	err := lc.client.post(ctx, "/api/v1/listings/analyze", in, &result)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && len(apiErr.Body) > 0 {
			var wrapped struct {
				Result *ScoreResult `json:"result"`
			}
			if json.Unmarshal(apiErr.Body, &wrapped) == nil && wrapped.Result != nil {
				return wrapped.Result, err
			}
		}
		return nil, err
	}
	return &result, nil
}

// AnalyzeBatch scores a batch of listings. Per-item failures are reported
// inside the BatchResult; the call errors only when the whole batch fails.
func (lc *ListingsClient) AnalyzeBatch(ctx context.Context, listings []Listing) (*BatchResult, error) {
	req := struct {
		Listings []Listing `json:"listings"`
	}{Listings: listings}

	var result BatchResult
	if err := lc.client.post(ctx, "/api/v1/listings/batch", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Submit queues a listing for asynchronous analysis and returns the
// acknowledgement with the (possibly server-assigned) listing ID.
func (lc *ListingsClient) Submit(ctx context.Context, in Listing) (*SubmitReceipt, error) {
	var receipt SubmitReceipt
	if err := lc.client.post(ctx, "/api/v1/listings/submit", in, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// History returns past score results for a listing, newest first.
func (lc *ListingsClient) History(ctx context.Context, listingID string, limit int) ([]ScoreResult, error) {
	if listingID == "" {
		return nil, fmt.Errorf("client: listingID is required")
	}

	path := fmt.Sprintf("/api/v1/listings/%s/history", url.PathEscape(listingID))
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var resp struct {
		ListingID string        `json:"listing_id"`
		Results   []ScoreResult `json:"results"`
	}
	if err := lc.client.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// HighRisk returns recent high-risk score results.
func (lc *ListingsClient) HighRisk(ctx context.Context, limit int) ([]ScoreResult, error) {
	path := "/api/v1/listings/high-risk"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var resp struct {
		Results []ScoreResult `json:"results"`
	}
	if err := lc.client.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

//Personal.AI order the ending
