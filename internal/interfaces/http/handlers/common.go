package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

// ErrorBody is the standard error response payload.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError maps an application error to its HTTP status via the error
// code table.  Errors without a code are masked as a plain 500.
func respondError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		c.JSON(appErr.Code.HTTPStatus(), ErrorBody{
			Code:    appErr.Code.String(),
			Message: appErr.Message,
			Detail:  appErr.Detail,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorBody{
		Code:    errors.ErrCodeInternal.String(),
		Message: "internal server error",
	})
}

// errorBody builds the ErrorBody for an error without writing it, for
// responses that carry both an error and a partial result.
func errorBody(err error) *ErrorBody {
	if err == nil {
		return nil
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return &ErrorBody{
			Code:    appErr.Code.String(),
			Message: appErr.Message,
			Detail:  appErr.Detail,
		}
	}
	return &ErrorBody{
		Code:    errors.ErrCodeInternal.String(),
		Message: err.Error(),
	}
}

// parseLimit reads the "limit" query parameter, clamped to [1, max].
func parseLimit(c *gin.Context, def, max int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

//Personal.AI order the ending
