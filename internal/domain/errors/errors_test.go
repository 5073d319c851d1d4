package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, CodeBadRequest, "bad", ErrBadRequest)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeBadRequest, err.Code)
	assert.Equal(t, "bad", err.Message)
	assert.Equal(t, ErrBadRequest.Error(), err.Error())
	assert.ErrorIs(t, err, ErrBadRequest)

	notFound := NotFound("missing")
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, CodeNotFound, notFound.Code)

	conflict := Conflict("exists")
	assert.Equal(t, http.StatusConflict, conflict.Status)

	internal := InternalError(stderrors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, CodeInternalError, internal.Code)

	custom := NewError("custom", ErrForbidden)
	assert.ErrorIs(t, custom, ErrForbidden)

	noWrapped := &AppError{Message: "plain"}
	assert.Equal(t, "plain", noWrapped.Error())
}

func TestFromError_Classification(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrNoFaceDetected, http.StatusUnprocessableEntity, CodeNoFaceDetected},
		{ErrMultipleFacesDetected, http.StatusUnprocessableEntity, CodeMultipleFaces},
		{ErrInvalidImage, http.StatusBadRequest, CodeInvalidImage},
		{fmt.Errorf("extract: %w", ErrServiceUnavailable), http.StatusServiceUnavailable, CodeServiceUnavailable},
		{ErrInvalidThreshold, http.StatusBadRequest, CodeInvalidThreshold},
		{fmt.Errorf("%w: name is required", ErrInvalidInput), http.StatusBadRequest, CodeBadRequest},
		{ErrNotFound, http.StatusNotFound, CodeNotFound},
		{fmt.Errorf("%w: list gallery", ErrStorage), http.StatusInternalServerError, CodeStorageError},
		{stderrors.New("boom"), http.StatusInternalServerError, CodeInternalError},
		{Forbidden("nope"), http.StatusForbidden, CodeForbidden},
	}

	for _, tc := range cases {
		got := FromError(tc.err)
		assert.Equal(t, tc.status, got.Status, tc.err.Error())
		assert.Equal(t, tc.code, got.Code, tc.err.Error())
	}
}

func TestFromError_ServiceUnavailableNeverLooksLikeRejection(t *testing.T) {
	unavailable := FromError(ErrServiceUnavailable)
	rejected := FromError(ErrNoFaceDetected)
	assert.NotEqual(t, unavailable.Status, rejected.Status)
	assert.NotEqual(t, unavailable.Code, rejected.Code)
}
