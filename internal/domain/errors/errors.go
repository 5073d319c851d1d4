package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// Face capture and matching
	ErrNoFaceDetected        = errors.New("no face detected in image")
	ErrMultipleFacesDetected = errors.New("multiple faces detected, please upload single face image")
	ErrInvalidImage          = errors.New("invalid image format")
	ErrServiceUnavailable    = errors.New("face recognition service unavailable")
	ErrInvalidThreshold      = errors.New("threshold must be between 0.0 and 1.0")
	ErrInvalidEmbedding      = errors.New("invalid face embedding")

	// ErrStorage wraps every persistence failure surfaced to callers
	ErrStorage = errors.New("storage error")
)

// Error codes returned in API payloads
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeNoFaceDetected     = "NO_FACE_DETECTED"
	CodeMultipleFaces      = "MULTIPLE_FACES_DETECTED"
	CodeInvalidImage       = "INVALID_IMAGE"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInvalidThreshold   = "INVALID_THRESHOLD"
	CodeStorageError       = "STORAGE_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, ErrInvalidInput)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
		Err:     err,
	}
}

// FromError classifies any error returned by the usecases into an AppError.
// ServiceUnavailable is kept apart from biometric rejections so clients retry instead of giving up.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNoFaceDetected):
		return NewAppError(http.StatusUnprocessableEntity, CodeNoFaceDetected, ErrNoFaceDetected.Error(), err)
	case errors.Is(err, ErrMultipleFacesDetected):
		return NewAppError(http.StatusUnprocessableEntity, CodeMultipleFaces, ErrMultipleFacesDetected.Error(), err)
	case errors.Is(err, ErrInvalidImage):
		return NewAppError(http.StatusBadRequest, CodeInvalidImage, ErrInvalidImage.Error(), err)
	case errors.Is(err, ErrServiceUnavailable):
		return NewAppError(http.StatusServiceUnavailable, CodeServiceUnavailable,
			"Face recognition service is currently unavailable. Please try again later or contact support.", err)
	case errors.Is(err, ErrInvalidThreshold):
		return NewAppError(http.StatusBadRequest, CodeInvalidThreshold, ErrInvalidThreshold.Error(), err)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadRequest):
		return NewAppError(http.StatusBadRequest, CodeBadRequest, err.Error(), err)
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, err.Error(), err)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, CodeConflict, err.Error(), err)
	case errors.Is(err, ErrUnauthorized):
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, err.Error(), err)
	case errors.Is(err, ErrForbidden):
		return NewAppError(http.StatusForbidden, CodeForbidden, err.Error(), err)
	case errors.Is(err, ErrStorage):
		return NewAppError(http.StatusInternalServerError, CodeStorageError, "storage error, please retry", err)
	default:
		return InternalError(err)
	}
}
