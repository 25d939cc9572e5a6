package errors

import (
	"net/http"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeNotImplemented     ErrorCode = "COMMON_012"
)

// Listing Module Error Codes
const (
	ErrCodeListingInvalid    ErrorCode = "LST_001"
	ErrCodeListingEmptyBatch ErrorCode = "LST_002"
	ErrCodeListingIncomplete ErrorCode = "LST_003"
)

// Brand / Graph Store Error Codes
const (
	ErrCodeBrandNotFound      ErrorCode = "BRD_001"
	ErrCodeGraphUnavailable   ErrorCode = "BRD_002"
	ErrCodeGraphQueryFailed   ErrorCode = "BRD_003"
	ErrCodeVariationConflict  ErrorCode = "BRD_004"
	ErrCodePatternWriteFailed ErrorCode = "BRD_005"
)

// Variation Index Error Codes
const (
	ErrCodeIndexNotReady      ErrorCode = "IDX_001"
	ErrCodeIndexRebuildFailed ErrorCode = "IDX_002"
	ErrCodeIndexRebuildBusy   ErrorCode = "IDX_003"
)

// Context Cache Error Codes
const (
	ErrCodeCacheMiss         ErrorCode = "CCH_001"
	ErrCodeCacheStaleServed  ErrorCode = "CCH_002"
	ErrCodeCacheLoaderFailed ErrorCode = "CCH_003"
)

// Scoring Error Codes
const (
	ErrCodeScoringFailed       ErrorCode = "SCR_001"
	ErrCodeDetectorUnavailable ErrorCode = "SCR_002"
	ErrCodeBatchTimeout        ErrorCode = "SCR_003"
	ErrCodeHistoryWriteFailed  ErrorCode = "SCR_004"
)

// Aliases kept for call-site readability in generic layers.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeConflict     = ErrCodeConflict
	CodeTimeout      = ErrCodeTimeout
	CodeUnknown      = ErrorCode("UNKNOWN")
	CodeOK           = ErrorCode("OK")
)

// httpStatusByCode maps error codes to HTTP status codes for the API layer.
var httpStatusByCode = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusBadRequest,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeListingInvalid:    http.StatusBadRequest,
	ErrCodeListingEmptyBatch: http.StatusBadRequest,
	ErrCodeListingIncomplete: http.StatusAccepted,

	ErrCodeBrandNotFound:    http.StatusNotFound,
	ErrCodeGraphUnavailable: http.StatusServiceUnavailable,
	ErrCodeGraphQueryFailed: http.StatusInternalServerError,

	ErrCodeIndexNotReady:      http.StatusServiceUnavailable,
	ErrCodeIndexRebuildFailed: http.StatusInternalServerError,
	ErrCodeIndexRebuildBusy:   http.StatusConflict,

	ErrCodeScoringFailed: http.StatusInternalServerError,
	ErrCodeBatchTimeout:  http.StatusGatewayTimeout,
}

// HTTPStatus returns the HTTP status code associated with c.
// Unmapped codes default to 500.
func (c ErrorCode) HTTPStatus() int {
	if status, ok := httpStatusByCode[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

//Personal.AI order the ending
