package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "try this fix")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func TestSentinelHierarchy(t *testing.T) {
	dup := Wrapf(ErrDuplicateEntry, "definition %s", "Color")
	assert.True(t, Is(dup, ErrDuplicateEntry))
	assert.True(t, Is(dup, ErrInvalidSchema))
	assert.False(t, Is(dup, ErrSearchFoldMismatch))
	assert.True(t, IsInvalidSchemaError(dup))

	fold := Wrap(ErrSearchFoldMismatch, "Color")
	assert.True(t, IsInvalidSchemaError(fold))
	assert.False(t, Is(fold, ErrDuplicateEntry))

	assert.False(t, IsInvalidSchemaError(nil))
	assert.False(t, IsInvalidSchemaError(ErrIncompatibleSchema))
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError("record %d has no name", 3)
	assert.True(t, IsInvalidSchemaError(err))
	assert.Contains(t, err.Error(), "record 3 has no name")
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("definition %q", "Perm")
	assert.True(t, IsNotFoundError(err))
	assert.False(t, IsNotFoundError(New("other")))
	assert.Contains(t, err.Error(), `definition "Perm"`)
}

func TestErrorChaining(t *testing.T) {
	err := Wrap(ErrInvalidSchema, "layer 1")
	err = WithHint(err, "helpful hint")
	err = WithDetail(err, "detailed info")
	err = Wrap(err, "layer 2")

	assert.True(t, Is(err, ErrInvalidSchema))
	assert.Contains(t, err.Error(), "layer 2")
	assert.Contains(t, GetAllHints(err), "helpful hint")
	assert.Contains(t, GetAllDetails(err), "detailed info")
}

func ExampleWithHint() {
	err := Wrap(ErrDuplicateEntry, "Color.Red")
	err = WithHint(err, "rename one of the entries")

	hints := GetAllHints(err)
	fmt.Println(hints[0])
	// Output: rename one of the entries
}
