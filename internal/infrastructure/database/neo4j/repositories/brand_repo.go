// Package repositories implements the brand.GraphStore contract against the
// Neo4j brand knowledge graph.
package repositories

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	driver "github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/database/neo4j"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

type neo4jBrandRepo struct {
	driver driver.DriverInterface
	log    logging.Logger
}

// NewNeo4jBrandRepo builds the graph-backed brand store.
func NewNeo4jBrandRepo(d driver.DriverInterface, log logging.Logger) brand.GraphStore {
	return &neo4jBrandRepo{
		driver: d,
		log:    log,
	}
}

// degrade maps a failed graph call to the error the scoring core reacts to:
// not-found passes through, everything else counts as the store being unable
// to serve, which lets the cache fall back to stale contexts.
func degrade(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.IsNotFound(err) {
		return err
	}
	return errors.Wrap(err, errors.ErrCodeGraphUnavailable, msg)
}

func (r *neo4jBrandRepo) FetchBrandRecord(ctx context.Context, name string) (*brand.BrandRecord, error) {
	query := `
		MATCH (b:Brand {name: $name})
		OPTIONAL MATCH (b)-[:PRODUCES]->(p:Product)
		OPTIONAL MATCH (b)-[:DISTRIBUTES_IN]->(reg:Region)
		RETURN b.name AS name,
		       collect(DISTINCT p {.type, .base_price}) AS products,
		       collect(DISTINCT reg.code) AS regions
	`
	out, err := r.driver.ExecuteRead(ctx, func(tx driver.Transaction) (interface{}, error) {
		result, err := tx.Run(ctx, query, map[string]any{"name": name})
		if err != nil {
			return nil, err
		}
		return driver.ExtractSingleRecord(ctx, result, func(rec *neo4j.Record) (*brand.BrandRecord, error) {
			return mapBrandRecord(rec)
		})
	})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Wrap(err, errors.ErrCodeBrandNotFound, "brand not registered in graph")
		}
		return nil, degrade(err, "failed to fetch brand record")
	}
	return out.(*brand.BrandRecord), nil
}

func mapBrandRecord(rec *neo4j.Record) (*brand.BrandRecord, error) {
	record := &brand.BrandRecord{
		Baselines: make(map[string]float64),
	}
	if v, ok := rec.Get("name"); ok {
		record.Name, _ = v.(string)
	}
	if v, ok := rec.Get("products"); ok {
		if items, ok := v.([]any); ok {
			for _, item := range items {
				props, ok := item.(map[string]any)
				if !ok {
					continue
				}
				ptype, _ := props["type"].(string)
				if ptype == "" {
					continue
				}
				record.ProductTypes = append(record.ProductTypes, ptype)
				if price, ok := props["base_price"].(float64); ok && price > 0 {
					record.Baselines[ptype] = price
				}
			}
		}
	}
	if v, ok := rec.Get("regions"); ok {
		if items, ok := v.([]any); ok {
			for _, item := range items {
				if code, ok := item.(string); ok && code != "" {
					record.Regions = append(record.Regions, code)
				}
			}
		}
	}
	return record, nil
}

func (r *neo4jBrandRepo) FetchVariations(ctx context.Context, brandName string) ([]brand.Variation, error) {
	query := `
		MATCH (b:Brand {name: $name})-[:HAS_VARIATION]->(v:Variation)
		RETURN v.name AS name, coalesce(v.risk_weight, 0.5) AS risk_weight
	`
	out, err := r.driver.ExecuteRead(ctx, func(tx driver.Transaction) (interface{}, error) {
		result, err := tx.Run(ctx, query, map[string]any{"name": brandName})
		if err != nil {
			return nil, err
		}
		return driver.CollectRecords(ctx, result, func(rec *neo4j.Record) (brand.Variation, error) {
			v := brand.Variation{Brand: brandName}
			if raw, ok := rec.Get("name"); ok {
				v.Name, _ = raw.(string)
			}
			if raw, ok := rec.Get("risk_weight"); ok {
				v.RiskWeight, _ = raw.(float64)
			}
			return v, nil
		})
	})
	if err != nil {
		return nil, degrade(err, "failed to fetch brand variations")
	}
	return out.([]brand.Variation), nil
}

func (r *neo4jBrandRepo) FetchAttributeSchema(ctx context.Context, brandName string) (brand.AttributeSchema, error) {
	query := `
		MATCH (b:Brand {name: $name})-[:PRODUCES]->(p:Product)
		      -[:HAS_ATTRIBUTE]->(a:Attribute)-[:VALID_VALUE]->(val:Value)
		RETURN p.type AS product_type, a.name AS attribute, collect(val.value) AS values
	`
	type row struct {
		productType string
		attribute   string
		values      []string
	}
	out, err := r.driver.ExecuteRead(ctx, func(tx driver.Transaction) (interface{}, error) {
		result, err := tx.Run(ctx, query, map[string]any{"name": brandName})
		if err != nil {
			return nil, err
		}
		return driver.CollectRecords(ctx, result, func(rec *neo4j.Record) (row, error) {
			var r row
			if raw, ok := rec.Get("product_type"); ok {
				r.productType, _ = raw.(string)
			}
			if raw, ok := rec.Get("attribute"); ok {
				r.attribute, _ = raw.(string)
			}
			if raw, ok := rec.Get("values"); ok {
				if items, ok := raw.([]any); ok {
					for _, item := range items {
						if s, ok := item.(string); ok {
							r.values = append(r.values, s)
						}
					}
				}
			}
			return r, nil
		})
	})
	if err != nil {
		return nil, degrade(err, "failed to fetch attribute schema")
	}

	schema := make(brand.AttributeSchema)
	for _, r := range out.([]row) {
		if r.productType == "" || r.attribute == "" {
			continue
		}
		if schema[r.productType] == nil {
			schema[r.productType] = make(map[string][]string)
		}
		schema[r.productType][r.attribute] = r.values
	}
	return schema, nil
}

func (r *neo4jBrandRepo) FetchCounterfeitPatterns(ctx context.Context, brandName string) ([]brand.CounterfeitPattern, error) {
	query := `
		MATCH (b:Brand {name: $name})-[:HAS_PATTERN]->(p:CounterfeitPattern)
		RETURN p.name AS name, coalesce(p.weight, 0.5) AS weight, coalesce(p.description, '') AS description
	`
	out, err := r.driver.ExecuteRead(ctx, func(tx driver.Transaction) (interface{}, error) {
		result, err := tx.Run(ctx, query, map[string]any{"name": brandName})
		if err != nil {
			return nil, err
		}
		return driver.CollectRecords(ctx, result, func(rec *neo4j.Record) (brand.CounterfeitPattern, error) {
			var p brand.CounterfeitPattern
			if raw, ok := rec.Get("name"); ok {
				p.Name, _ = raw.(string)
			}
			if raw, ok := rec.Get("weight"); ok {
				p.Weight, _ = raw.(float64)
			}
			if raw, ok := rec.Get("description"); ok {
				p.Description, _ = raw.(string)
			}
			return p, nil
		})
	})
	if err != nil {
		return nil, degrade(err, "failed to fetch counterfeit patterns")
	}
	return out.([]brand.CounterfeitPattern), nil
}

func (r *neo4jBrandRepo) ListBrandNames(ctx context.Context) ([]string, error) {
	query := `MATCH (b:Brand) RETURN b.name AS name ORDER BY name`
	out, err := r.driver.ExecuteRead(ctx, func(tx driver.Transaction) (interface{}, error) {
		result, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		return driver.CollectRecords(ctx, result, func(rec *neo4j.Record) (string, error) {
			if raw, ok := rec.Get("name"); ok {
				if s, ok := raw.(string); ok {
					return s, nil
				}
			}
			return "", nil
		})
	})
	if err != nil {
		return nil, degrade(err, "failed to enumerate brands")
	}
	return out.([]string), nil
}

func (r *neo4jBrandRepo) UpsertVariation(ctx context.Context, brandName string, v brand.Variation) error {
	query := `
		MATCH (b:Brand {name: $brand})
		MERGE (b)-[:HAS_VARIATION]->(var:Variation {name: $name})
		ON CREATE SET var.risk_weight = $risk_weight, var.discovered_at = datetime()
		ON MATCH SET var.risk_weight = CASE WHEN $risk_weight > var.risk_weight THEN $risk_weight ELSE var.risk_weight END
	`
	_, err := r.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (interface{}, error) {
		_, err := tx.Run(ctx, query, map[string]any{
			"brand":       brandName,
			"name":        v.Name,
			"risk_weight": v.RiskWeight,
		})
		return nil, err
	})
	if err != nil {
		r.log.Warn("variation upsert failed",
			logging.String("brand", brandName),
			logging.String("variation", v.Name),
			logging.Err(err),
		)
		return errors.Wrap(err, errors.ErrCodeVariationConflict, "failed to upsert variation")
	}
	return nil
}

func (r *neo4jBrandRepo) UpsertPattern(ctx context.Context, brandName string, p brand.CounterfeitPattern) error {
	query := `
		MATCH (b:Brand {name: $brand})
		MERGE (b)-[:HAS_PATTERN]->(pat:CounterfeitPattern {name: $name})
		SET pat.weight = $weight, pat.description = $description
	`
	_, err := r.driver.ExecuteWrite(ctx, func(tx driver.Transaction) (interface{}, error) {
		_, err := tx.Run(ctx, query, map[string]any{
			"brand":       brandName,
			"name":        p.Name,
			"weight":      p.Weight,
			"description": p.Description,
		})
		return nil, err
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodePatternWriteFailed, "failed to upsert counterfeit pattern")
	}
	return nil
}

//Personal.AI order the ending
