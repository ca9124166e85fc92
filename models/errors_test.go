package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Message: "Required fields are missing", Fields: []string{"phone", "address"}}
	assert.Equal(t, "Required fields are missing: phone, address", err.Error())

	assert.Equal(t, "Cart is empty!", (&ValidationError{Message: "Cart is empty!"}).Error())
}

func TestNetworkErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("list chat: %w", &NetworkError{Err: cause})

	assert.ErrorIs(t, err, cause)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUserMessage(t *testing.T) {
	generic := "Failed to place order"

	assert.Equal(t, "Out of stock", UserMessage(&NetworkError{StatusCode: 400, Message: "Out of stock"}, generic))
	assert.Equal(t, generic, UserMessage(&NetworkError{StatusCode: 500}, generic))
	assert.Equal(t, "Please login first", UserMessage(fmt.Errorf("submit: %w", ErrAuthRequired), generic))
	assert.Equal(t, generic, UserMessage(errors.New("boom"), generic))
}
