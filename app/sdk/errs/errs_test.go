package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	err := Errorf(NotFound, "workspace %q not found", "ws1")

	assert.Equal(t, NotFound, err.Code)
	assert.Equal(t, `workspace "ws1" not found`, err.Error())
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus())
}

func TestIsErrorAndGetError(t *testing.T) {
	appErr := New(PermissionDenied, errors.New("access denied"))
	wrapped := fmt.Errorf("handling request: %w", appErr)

	assert.True(t, IsError(wrapped))
	assert.Equal(t, PermissionDenied, GetError(wrapped).Code)

	plain := errors.New("boom")
	assert.False(t, IsError(plain))
	assert.Equal(t, ErrCode{}, GetError(plain).Code)
}

func TestEncode(t *testing.T) {
	err := Errorf(InvalidArgument, "bad input")

	data, contentType, encErr := err.Encode()
	require.NoError(t, encErr)
	assert.Equal(t, "application/json", contentType)
	assert.Contains(t, string(data), "bad input")
}

func TestInternalOnlyLogStatus(t *testing.T) {
	err := Errorf(InternalOnlyLog, "PANIC [boom]")
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestFieldErrors(t *testing.T) {
	var fes FieldErrors
	fes.Add("email", errors.New("email is required"))
	fes.Add("name", errors.New("name is too short"))

	require.Len(t, fes, 2)
	assert.Equal(t, http.StatusUnprocessableEntity, fes.HTTPStatus())

	data, contentType, err := fes.Encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Contains(t, string(data), "email is required")

	var empty FieldErrors
	assert.Nil(t, empty.ToError())
	assert.Error(t, fes.ToError())
}
