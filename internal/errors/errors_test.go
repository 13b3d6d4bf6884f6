package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestNotFoundError_IsNotFoundError_Wrapped(t *testing.T) {
	err := fmt.Errorf("loading menu item: %w", NewNotFoundError("menu item with id 7 not found"))

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "menu item with id 7 not found", notFoundErr.Message)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "quantity", Message: "quantity must be between 1 and 10000"},
		{Field: "menu_item_id", Message: "menu_item_id is required"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, details, ve.Details)
}

func TestForbiddenError_IsForbiddenError(t *testing.T) {
	err := NewForbiddenError("only managers can update orders")

	fe, ok := IsForbiddenError(err)
	assert.True(t, ok)
	assert.Equal(t, "only managers can update orders", fe.Error())

	_, ok = IsNotFoundError(err)
	assert.False(t, ok)
}

func TestEmptyCartError(t *testing.T) {
	err := NewEmptyCartError(42)

	ece, ok := IsEmptyCartError(err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), ece.UserID)
	assert.Equal(t, "cart is empty", err.Error())
}

func TestUnauthorizedAndConflictErrors(t *testing.T) {
	_, ok := IsUnauthorizedError(NewUnauthorizedError("invalid token"))
	assert.True(t, ok)

	_, ok = IsConflictError(NewConflictError("username already taken"))
	assert.True(t, ok)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "failed to query database")
	assert.Contains(t, err.Error(), "database error")

	ie, ok := IsInternalError(fmt.Errorf("checkout: %w", err))
	assert.True(t, ok)
	assert.Equal(t, cause, ie.Cause)
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}
