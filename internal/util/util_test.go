package util

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewULID_UniqueAndSorted(t *testing.T) {
	prev := NewULID()
	for i := 0; i < 1000; i++ {
		next := NewULID()
		assert.True(t, IsValidULID(next))
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, IsValidULID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
	assert.False(t, IsValidULID(""))
	assert.False(t, IsValidULID("not-a-ulid"))
	assert.False(t, IsValidULID("01ARZ3NDEKTSV4RRFFQ69G5FA"))
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, NullString("").Valid)
	assert.Equal(t, "x", NullString("x").String)

	assert.False(t, NullTime(nil).Valid)
	assert.False(t, NullTime(&time.Time{}).Valid)
	assert.Nil(t, TimePtr(sql.NullTime{}))

	now := time.Now()
	nt := NullTime(&now)
	assert.True(t, nt.Valid)
	back := TimePtr(nt)
	if assert.NotNil(t, back) {
		assert.True(t, now.Equal(*back))
	}
}
