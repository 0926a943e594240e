package api

import (
	"time"

	"github.com/edrostering/edflow/internal/validation"
)

// APIResponse is the standard response format for all endpoints.
type APIResponse struct {
	Data       interface{}        `json:"data,omitempty"`
	Validation *validation.Result `json:"validation,omitempty"`
	Error      *ErrorResponse     `json:"error,omitempty"`
	Meta       ResponseMeta       `json:"meta"`
}

// ErrorResponse contains error details.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResponseMeta contains response metadata.
type ResponseMeta struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Version   string    `json:"version,omitempty"`
}

// SuccessResponse returns a successful APIResponse with no validation issues.
func SuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{
		Data:       data,
		Validation: validation.NewResult(),
		Meta: ResponseMeta{
			Timestamp: time.Now().UTC(),
			Version:   "1.0",
		},
	}
}

// SuccessResponseWithValidation returns a successful APIResponse carrying
// the validation.Result produced along the way (e.g. warnings from a
// cycle run that still completed).
func SuccessResponseWithValidation(data interface{}, result *validation.Result) *APIResponse {
	return &APIResponse{
		Data:       data,
		Validation: result,
		Meta: ResponseMeta{
			Timestamp: time.Now().UTC(),
			Version:   "1.0",
		},
	}
}

// ErrorResponseWithCode returns an error APIResponse.
func ErrorResponseWithCode(code, message string) *APIResponse {
	return &APIResponse{
		Error: &ErrorResponse{
			Code:    code,
			Message: message,
		},
		Meta: ResponseMeta{
			Timestamp: time.Now().UTC(),
			Version:   "1.0",
		},
	}
}

// ValidationErrorResponse returns an APIResponse wrapping a single-error
// validation.Result, for handlers that reject a request outright.
func ValidationErrorResponse(code, message string) *APIResponse {
	return &APIResponse{
		Validation: validation.NewResult().AddError(code, message),
		Meta: ResponseMeta{
			Timestamp: time.Now().UTC(),
			Version:   "1.0",
		},
	}
}
