package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ErrValidation, http.StatusBadRequest},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"access denied", ErrAccessDenied, http.StatusForbidden},
		{"pdf parse", ErrPdfParse, http.StatusInternalServerError},
		{"upstream model", ErrUpstreamModel, http.StatusInternalServerError},
		{"upstream timeout", ErrUpstreamTimeout, http.StatusInternalServerError},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusCode(tc.err))
		})
	}
}

func TestStatusCodeSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("difficulty check: %w", ErrValidation)
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))

	err = fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrAccessDenied))
	assert.Equal(t, http.StatusForbidden, StatusCode(err))
}
