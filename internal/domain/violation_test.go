package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolation(t *testing.T) {
	v := NewViolation(ErrOverlap, "déjà réservé : %s", "2024-01-01 → 2024-01-02")

	assert.Equal(t, "déjà réservé : 2024-01-01 → 2024-01-02", v.Error())
	assert.ErrorIs(t, v, ErrOverlap)
	assert.False(t, v.IsStructural())
	assert.True(t, NewViolation(ErrInvalidInput, "x").IsStructural())

	wrapped := fmt.Errorf("save: %w", v)
	got, ok := AsViolation(wrapped)
	require.True(t, ok)
	assert.Same(t, v, got)

	_, ok = AsViolation(errors.New("plain"))
	assert.False(t, ok)
}
