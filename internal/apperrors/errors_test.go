package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientBalanceError(t *testing.T) {
	err := fmt.Errorf("record movement: %w", &InsufficientBalanceError{Requested: 61, Available: 60})

	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	assert.False(t, errors.Is(err, ErrReferentialMismatch))

	available, ok := AvailableFrom(err)
	assert.True(t, ok)
	assert.Equal(t, 60.0, available)
	assert.Contains(t, err.Error(), "available 60")

	_, ok = AvailableFrom(ErrNoPricePairs)
	assert.False(t, ok)
}
