package status

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		code int
	}{
		{KindBadRequest, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, HTTPStatus(tc.kind))
	}
}

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("handler context: %w", NotFound("Event not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Event not found", MessageOf(err))
}

func TestUnclassifiedErrorIsInternal(t *testing.T) {
	err := errors.New("driver: connection reset")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "Something went wrong", MessageOf(err))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("Failed to save", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "Failed to save", MessageOf(err))
}
