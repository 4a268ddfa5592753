package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{ErrInvalidState, http.StatusBadRequest},
		{ErrValidation, http.StatusBadRequest},
		{ErrInternal, http.StatusInternalServerError},
		{fmt.Errorf("some dynamo failure"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		assert.Equal(t, c.status, HTTPStatusFromError(c.err), c.err.Error())
	}
}

func TestWrappedErrorsClassify(t *testing.T) {
	wrapped := fmt.Errorf("hire h-1: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(wrapped))

	doubleWrapped := fmt.Errorf("respond: %w", fmt.Errorf("hire is not pending: %w", ErrInvalidState))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromError(doubleWrapped))
}
