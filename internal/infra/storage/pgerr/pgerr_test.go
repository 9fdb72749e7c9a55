package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	wrapped := fmt.Errorf("repository: %w", &pq.Error{Code: CodeUndefinedTable})

	assert.True(t, IsUndefinedTable(wrapped))
	assert.False(t, IsUndefinedColumn(wrapped))

	assert.True(t, IsUndefinedColumn(&pq.Error{Code: CodeUndefinedColumn}))
	assert.True(t, IsExclusionViolation(&pq.Error{Code: CodeExclusionViolation}))
	assert.True(t, IsSerializationFailure(fmt.Errorf("commit: %w", &pq.Error{Code: CodeSerializationFailure})))

	assert.False(t, IsUndefinedTable(errors.New("connection refused")))
	assert.False(t, IsUndefinedTable(nil))
}

func TestCode(t *testing.T) {
	code, ok := Code(&pq.Error{Code: "23505"})
	assert.True(t, ok)
	assert.Equal(t, pq.ErrorCode("23505"), code)

	_, ok = Code(errors.New("plain"))
	assert.False(t, ok)
}
