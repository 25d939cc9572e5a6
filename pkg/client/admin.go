package client

import (
	"context"
	"time"
)

// AdminClient provides access to the operational endpoints.
type AdminClient struct {
	client *Client
}

// IndexStats describes the state of the in-memory brand variation index.
type IndexStats struct {
	Ready   bool      `json:"ready"`
	Brands  int       `json:"brands"`
	Entries int       `json:"entries"`
	BuiltAt time.Time `json:"built_at"`
}

// IndexStatus returns the current state of the variation index.
func (ac *AdminClient) IndexStatus(ctx context.Context) (*IndexStats, error) {
	var stats IndexStats
	if err := ac.client.get(ctx, "/api/v1/admin/index/status", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RebuildIndex triggers a synchronous index rebuild and returns the stats
// of the freshly built index. A rebuild already in flight on another
// instance answers HTTP 409.
func (ac *AdminClient) RebuildIndex(ctx context.Context) (*IndexStats, error) {
	var resp struct {
		Status string     `json:"status"`
		Index  IndexStats `json:"index"`
	}
	if err := ac.client.post(ctx, "/api/v1/admin/index/rebuild", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Index, nil
}

//Personal.AI order the ending
