package client

import (
	"context"
	"fmt"
	"net/url"
)

// BrandsClient provides access to the brand knowledge graph endpoints.
type BrandsClient struct {
	client *Client
}

// Variation is a known spelling variation of a brand name.
type Variation struct {
	Name       string  `json:"name"`
	Brand      string  `json:"brand,omitempty"`
	RiskWeight float64 `json:"risk_weight"`
}

// CounterfeitPattern is a named indicator pattern with a scoring weight.
type CounterfeitPattern struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description,omitempty"`
}

// BrandRecord is the core graph node for a brand.
type BrandRecord struct {
	Name         string               `json:"name"`
	ProductTypes []string             `json:"product_types"`
	Variations   []Variation          `json:"variations"`
	Patterns     []CounterfeitPattern `json:"patterns"`
	Regions      []string             `json:"regions"`
	Baselines    map[string]float64   `json:"baselines"`
}

// AttributeSchema maps category -> attribute -> allowed values.
type AttributeSchema map[string]map[string][]string

// BrandDetail is the assembled view of one brand.
type BrandDetail struct {
	Record     *BrandRecord         `json:"record"`
	Attributes AttributeSchema      `json:"attributes"`
	Patterns   []CounterfeitPattern `json:"patterns"`
}

// List returns the names of all protected brands.
func (bc *BrandsClient) List(ctx context.Context) ([]string, error) {
	var resp struct {
		Brands []string `json:"brands"`
	}
	if err := bc.client.get(ctx, "/api/v1/brands", &resp); err != nil {
		return nil, err
	}
	return resp.Brands, nil
}

// Get returns the assembled brand view: record, variations, attribute
// schema, and counterfeit patterns.
func (bc *BrandsClient) Get(ctx context.Context, name string) (*BrandDetail, error) {
	if name == "" {
		return nil, fmt.Errorf("client: brand name is required")
	}

	var detail BrandDetail
	path := fmt.Sprintf("/api/v1/brands/%s", url.PathEscape(name))
	if err := bc.client.get(ctx, path, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// AddVariation registers a new name variation for a brand.
func (bc *BrandsClient) AddVariation(ctx context.Context, brandName string, v Variation) error {
	if brandName == "" {
		return fmt.Errorf("client: brand name is required")
	}

	path := fmt.Sprintf("/api/v1/brands/%s/variations", url.PathEscape(brandName))
	return bc.client.post(ctx, path, v, nil)
}

// AddPattern registers a new counterfeit pattern for a brand.
func (bc *BrandsClient) AddPattern(ctx context.Context, brandName string, p CounterfeitPattern) error {
	if brandName == "" {
		return fmt.Errorf("client: brand name is required")
	}

	path := fmt.Sprintf("/api/v1/brands/%s/patterns", url.PathEscape(brandName))
	return bc.client.post(ctx, path, p, nil)
}

//Personal.AI order the ending
