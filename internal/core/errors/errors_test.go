package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "pages root not found")
		assert.Equal(t, "[NOT_FOUND] pages root not found", err.Error())
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("permission denied")
		err := Wrap(original, CodeFileUnreadable, "could not read file")
		assert.Equal(t, "[FILE_UNREADABLE] could not read file: permission denied", err.Error())
		assert.ErrorIs(t, err, original)
	})

	t.Run("Context", func(t *testing.T) {
		err := AddContext(New(CodeSyntax, "could not parse script"), CtxPath, "a.astro")
		assert.Equal(t, "[SYNTAX_ERROR] could not parse script map[path:a.astro]", err.Error())
	})

	t.Run("ContextOnPlainError", func(t *testing.T) {
		err := AddContext(errors.New("boom"), CtxPath, "x")
		assert.True(t, IsCode(err, CodeInternal))
	})

	t.Run("IsCodeWithWrapped", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(CodeGlob, "walk failed"))
		assert.True(t, IsCode(err, CodeGlob))
		assert.False(t, IsCode(err, CodeNotFound))
	})

	t.Run("ContextAccumulates", func(t *testing.T) {
		err := AddContext(New(CodeGlob, "bad pattern"), CtxSpecifier, "./*[")
		err = AddContext(err, CtxLine, 3)
		assert.Equal(t, "[GLOB_FAILED] bad pattern map[line:3 specifier:./*[]", err.Error())
	})

	t.Run("CodeOf", func(t *testing.T) {
		assert.Equal(t, CodeGlob, CodeOf(fmt.Errorf("outer: %w", New(CodeGlob, "x"))))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	})
}
