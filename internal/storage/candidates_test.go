package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("exec: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}

func TestNullString(t *testing.T) {
	assert.False(t, nullString("").Valid)
	ns := nullString("jane@example.com")
	assert.True(t, ns.Valid)
	assert.Equal(t, "jane@example.com", ns.String)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"go", "postgresql"}, splitAndTrim("go, postgresql"))
	assert.Empty(t, splitAndTrim(" , ,"))
}
