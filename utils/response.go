package utils

import "github.com/gofiber/fiber/v2"

// Error codes
const (
	ErrInvalidRequest  = "INVALID_REQUEST"
	ErrValidationError = "VALIDATION_ERROR"
	ErrInvalidURL      = "INVALID_URL"
	ErrInvalidFilename = "INVALID_FILENAME"
	ErrToolMissing     = "TOOL_MISSING"
	ErrExtractFailed   = "EXTRACT_FAILED"
	ErrDownloadFailed  = "DOWNLOAD_FAILED"
	ErrArtifactMissing = "ARTIFACT_MISSING"
	ErrFileNotFound    = "FILE_NOT_FOUND"
	ErrInternalError   = "INTERNAL_ERROR"
)

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a JSON error response
func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// BadRequest returns 400 error
func BadRequest(c *fiber.Ctx, code, message string) error {
	return Error(c, fiber.StatusBadRequest, code, message)
}

// NotFound returns 404 error
func NotFound(c *fiber.Ctx, code, message string) error {
	return Error(c, fiber.StatusNotFound, code, message)
}

// BadGateway returns 502 error
func BadGateway(c *fiber.Ctx, code, message string) error {
	return Error(c, fiber.StatusBadGateway, code, message)
}

// ServiceUnavailable returns 503 error
func ServiceUnavailable(c *fiber.Ctx, code, message string) error {
	return Error(c, fiber.StatusServiceUnavailable, code, message)
}

// InternalError returns 500 error
func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, ErrInternalError, message)
}
