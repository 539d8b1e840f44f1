package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("layer: %w", Clone(ErrNotFound, "student not found"))

	got := FromError(wrapped)

	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Equal(t, "student not found", got.Message)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	got := FromError(errors.New("boom"))

	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.EqualError(t, got.Unwrap(), "boom")
}

func TestClonePreservesIdentity(t *testing.T) {
	clone := Clone(ErrUpstream, "Failed to get suggestions.")

	assert.True(t, errors.Is(clone, ErrUpstream))
	assert.False(t, errors.Is(clone, ErrInternal))
	assert.Equal(t, "upstream service failed", ErrUpstream.Message)
}

func TestFromErrorNil(t *testing.T) {
	assert.Nil(t, FromError(nil))
	assert.Nil(t, Clone(nil, "x"))
}
