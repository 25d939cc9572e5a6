package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/BrandGuard-Intelligence/internal/application/scoring"
	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

// Analyzer scores a single listing.
type Analyzer interface {
	Analyze(ctx context.Context, in *listing.Input) (*listing.ScoreResult, error)
}

// BatchAnalyzer scores many listings with bounded concurrency.
type BatchAnalyzer interface {
	AnalyzeBatch(ctx context.Context, inputs []listing.Input) ([]scoring.ItemResult, error)
}

// Submitter queues a listing for asynchronous analysis.
type Submitter interface {
	PublishSubmitted(ctx context.Context, in *listing.Input) error
}

// ListingHandler serves the scoring API: synchronous analysis, batch
// analysis, asynchronous submission, and the score-history views.
// submitter and history may be nil when the deployment lacks Kafka or
// Postgres; the corresponding endpoints then answer 503.
type ListingHandler struct {
	analyzer  Analyzer
	batch     BatchAnalyzer
	submitter Submitter
	history   listing.HistoryStore
	logger    logging.Logger
}

func NewListingHandler(
	analyzer Analyzer,
	batch BatchAnalyzer,
	submitter Submitter,
	history listing.HistoryStore,
	logger logging.Logger,
) *ListingHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ListingHandler{
		analyzer:  analyzer,
		batch:     batch,
		submitter: submitter,
		history:   history,
		logger:    logger.Named("listing_handler"),
	}
}

// Analyze handles POST /api/v1/listings/analyze.
// A rejected listing answers 400 but still carries the rejected-outcome
// result, so clients see the outcome taxonomy consistently.
func (h *ListingHandler) Analyze(c *gin.Context) {
	var in listing.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeSerialization, "malformed listing payload"))
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), &in)
	if err != nil {
		if result != nil {
			c.JSON(errors.GetCode(err).HTTPStatus(), gin.H{"error": errorBody(err), "result": result})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// batchRequest is the POST /listings/batch payload.
type batchRequest struct {
	Listings []listing.Input `json:"listings"`
}

// batchItem pairs one listing's result with its error, preserving input order.
type batchItem struct {
	Result *listing.ScoreResult `json:"result,omitempty"`
	Error  *ErrorBody           `json:"error,omitempty"`
}

type batchResponse struct {
	Results    []batchItem `json:"results"`
	Scored     int         `json:"scored"`
	Rejected   int         `json:"rejected"`
	Incomplete int         `json:"incomplete"`
}

// AnalyzeBatch handles POST /api/v1/listings/batch.
func (h *ListingHandler) AnalyzeBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeSerialization, "malformed batch payload"))
		return
	}

	results, err := h.batch.AnalyzeBatch(c.Request.Context(), req.Listings)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := batchResponse{Results: make([]batchItem, len(results))}
	for i, item := range results {
		resp.Results[i] = batchItem{Result: item.Result, Error: errorBody(item.Err)}
		if item.Result == nil {
			continue
		}
		switch item.Result.Outcome {
		case listing.OutcomeScored:
			resp.Scored++
		case listing.OutcomeRejected:
			resp.Rejected++
		case listing.OutcomeIncomplete:
			resp.Incomplete++
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Submit handles POST /api/v1/listings/submit: the listing is validated,
// queued on the event stream, and scored by the ingestion worker.
func (h *ListingHandler) Submit(c *gin.Context) {
	if h.submitter == nil {
		respondError(c, errors.New(errors.ErrCodeServiceUnavailable, "asynchronous ingestion is not configured"))
		return
	}

	var in listing.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeSerialization, "malformed listing payload"))
		return
	}
	if err := in.Validate(); err != nil {
		respondError(c, err)
		return
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}

	if err := h.submitter.PublishSubmitted(c.Request.Context(), &in); err != nil {
		h.logger.Error("failed to queue listing", logging.String("listing_id", in.ID), logging.Err(err))
		respondError(c, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to queue listing for analysis"))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"listing_id": in.ID, "status": "queued"})
}

// History handles GET /api/v1/listings/:listingID/history.
func (h *ListingHandler) History(c *gin.Context) {
	if h.history == nil {
		respondError(c, errors.New(errors.ErrCodeServiceUnavailable, "score history is not configured"))
		return
	}

	listingID := c.Param("listingID")
	limit := parseLimit(c, 20, 100)

	results, err := h.history.FindByListingID(c.Request.Context(), listingID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listing_id": listingID, "results": results})
}

// HighRisk handles GET /api/v1/listings/high-risk.
func (h *ListingHandler) HighRisk(c *gin.Context) {
	if h.history == nil {
		respondError(c, errors.New(errors.ErrCodeServiceUnavailable, "score history is not configured"))
		return
	}

	limit := parseLimit(c, 50, 500)
	results, err := h.history.ListHighRisk(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

//Personal.AI order the ending
