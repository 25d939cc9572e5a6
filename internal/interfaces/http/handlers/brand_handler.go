package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/brand"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

// GraphNotifier announces a graph write so every replica can invalidate its
// cached context for the brand.
type GraphNotifier interface {
	PublishGraphUpdated(ctx context.Context, brandName string) error
}

// BrandHandler serves read and write access to the brand knowledge graph.
// notifier may be nil; writes then land without cross-replica invalidation.
type BrandHandler struct {
	store    brand.GraphStore
	notifier GraphNotifier
	logger   logging.Logger
}

func NewBrandHandler(store brand.GraphStore, notifier GraphNotifier, logger logging.Logger) *BrandHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &BrandHandler{
		store:    store,
		notifier: notifier,
		logger:   logger.Named("brand_handler"),
	}
}

// List handles GET /api/v1/brands.
func (h *BrandHandler) List(c *gin.Context) {
	names, err := h.store.ListBrandNames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"brands": names})
}

// brandResponse is the assembled view of one brand: record, variations,
// attribute schema, and counterfeit patterns.
type brandResponse struct {
	Record     *brand.BrandRecord         `json:"record"`
	Attributes brand.AttributeSchema      `json:"attributes"`
	Patterns   []brand.CounterfeitPattern `json:"patterns"`
}

// Get handles GET /api/v1/brands/:name.
func (h *BrandHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	record, err := h.store.FetchBrandRecord(ctx, name)
	if err != nil {
		respondError(c, err)
		return
	}

	variations, err := h.store.FetchVariations(ctx, name)
	if err != nil {
		respondError(c, err)
		return
	}
	schema, err := h.store.FetchAttributeSchema(ctx, name)
	if err != nil {
		respondError(c, err)
		return
	}
	patterns, err := h.store.FetchCounterfeitPatterns(ctx, name)
	if err != nil {
		respondError(c, err)
		return
	}

	record.Variations = variations
	record.Patterns = patterns
	if schema == nil {
		schema = brand.AttributeSchema{}
	}
	if patterns == nil {
		patterns = []brand.CounterfeitPattern{}
	}

	c.JSON(http.StatusOK, brandResponse{Record: record, Attributes: schema, Patterns: patterns})
}

// AddVariation handles POST /api/v1/brands/:name/variations.
func (h *BrandHandler) AddVariation(c *gin.Context) {
	name := c.Param("name")

	var v brand.Variation
	if err := c.ShouldBindJSON(&v); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeSerialization, "malformed variation payload"))
		return
	}
	if v.Name == "" {
		respondError(c, errors.New(errors.ErrCodeValidation, "variation name is required"))
		return
	}
	if v.RiskWeight < 0 || v.RiskWeight > 1 {
		respondError(c, errors.New(errors.ErrCodeValidation, "variation risk_weight must be in [0,1]"))
		return
	}
	v.Brand = name

	if err := h.store.UpsertVariation(c.Request.Context(), name, v); err != nil {
		respondError(c, err)
		return
	}
	h.notify(c.Request.Context(), name)

	c.JSON(http.StatusCreated, gin.H{"brand": name, "variation": v.Name})
}

// AddPattern handles POST /api/v1/brands/:name/patterns.
func (h *BrandHandler) AddPattern(c *gin.Context) {
	name := c.Param("name")

	var p brand.CounterfeitPattern
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeSerialization, "malformed pattern payload"))
		return
	}
	if p.Name == "" {
		respondError(c, errors.New(errors.ErrCodeValidation, "pattern name is required"))
		return
	}
	if p.Weight < 0 || p.Weight > 1 {
		respondError(c, errors.New(errors.ErrCodeValidation, "pattern weight must be in [0,1]"))
		return
	}

	if err := h.store.UpsertPattern(c.Request.Context(), name, p); err != nil {
		respondError(c, err)
		return
	}
	h.notify(c.Request.Context(), name)

	c.JSON(http.StatusCreated, gin.H{"brand": name, "pattern": p.Name})
}

// notify is best-effort: a write that landed is never failed over a missed
// invalidation broadcast.
func (h *BrandHandler) notify(ctx context.Context, name string) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.PublishGraphUpdated(ctx, name); err != nil {
		h.logger.Warn("failed to publish graph update",
			logging.String("brand", name),
			logging.Err(err),
		)
	}
}

//Personal.AI order the ending
