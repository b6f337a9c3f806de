package apperrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/logbook-engine/internal/apperrors"
)

func TestInputValidationErrorMessage(t *testing.T) {
	err := &apperrors.InputValidationError{Problems: []string{"shift references unknown crew x", "role y invalid"}}
	assert.Contains(t, err.Error(), "shift references unknown crew x")
	assert.Contains(t, err.Error(), "role y invalid")
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := &apperrors.PersistenceError{Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
