package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/internal/intelligence/brandmatch"
)

// IndexRebuilder triggers one variation-index rebuild cycle.
type IndexRebuilder interface {
	RebuildOnce(ctx context.Context) error
}

// AdminHandler serves operational endpoints: index status and manual rebuild.
type AdminHandler struct {
	rebuilder IndexRebuilder
	index     *brandmatch.Index
	logger    logging.Logger
}

func NewAdminHandler(rebuilder IndexRebuilder, index *brandmatch.Index, logger logging.Logger) *AdminHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AdminHandler{
		rebuilder: rebuilder,
		index:     index,
		logger:    logger.Named("admin_handler"),
	}
}

// IndexStatus handles GET /api/v1/admin/index/status.
func (h *AdminHandler) IndexStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.index.Stats())
}

// RebuildIndex handles POST /api/v1/admin/index/rebuild.  A rebuild already
// running on another replica answers 409 through the error code mapping.
func (h *AdminHandler) RebuildIndex(c *gin.Context) {
	if err := h.rebuilder.RebuildOnce(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rebuilt", "index": h.index.Stats()})
}

//Personal.AI order the ending
