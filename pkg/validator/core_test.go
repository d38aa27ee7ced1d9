package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrjson/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("returns formatted message with single error", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "margin", Message: "must be at least 0"})
		assert.Equal(t, "validation failed: margin: must be at least 0", errs.Error())
	})

	t.Run("joins multiple errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "margin", Message: "must be at least 0"})
		errs.Add(validator.ValidationError{Field: "module_scale", Message: "must be greater than 0"})

		msg := errs.Error()
		assert.Contains(t, msg, "margin: must be at least 0")
		assert.Contains(t, msg, "module_scale: must be greater than 0")
	})
}

func TestValidationErrors_Lookup(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "level", Message: "first"},
		{Field: "level", Message: "second"},
		{Field: "dark_color", Message: "third"},
	}

	assert.True(t, errs.Has("level"))
	assert.False(t, errs.Has("margin"))
	assert.Equal(t, []string{"first", "second"}, errs.Get("level"))
	assert.Equal(t, []string{"level", "dark_color"}, errs.Fields())
	assert.False(t, errs.IsEmpty())
}

func TestApply(t *testing.T) {
	t.Run("returns nil when all rules pass", func(t *testing.T) {
		err := validator.Apply(
			validator.MinNum("margin", 4, 0),
			validator.Positive("module_scale", 8),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failing rule", func(t *testing.T) {
		err := validator.Apply(
			validator.MinNum("margin", -1, 0),
			validator.Positive("module_scale", 0),
			validator.MaxNum("ratio", 0.5, 1.0),
		)
		require.Error(t, err)

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 2)
		assert.Equal(t, []string{"margin", "module_scale"}, verrs.Fields())
	})
}

func TestWhen(t *testing.T) {
	failing := validator.Positive("module_scale", 0)

	assert.NoError(t, validator.Apply(validator.When(false, failing)))
	assert.Error(t, validator.Apply(validator.When(true, failing)))
}

func TestCustom(t *testing.T) {
	err := validator.Apply(validator.Custom("dark_color", "#zz", func() bool { return false }, "invalid color"))
	require.Error(t, err)

	verrs := validator.ExtractValidationErrors(err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "invalid color", verrs[0].Message)
	assert.Equal(t, "#zz", verrs[0].Value)
}

func TestExtractValidationErrors(t *testing.T) {
	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("plain")))

	wrapped := fmt.Errorf("resolve options: %w", validator.Apply(validator.Positive("module_scale", -2)))
	assert.True(t, validator.IsValidationError(wrapped))
	assert.Len(t, validator.ExtractValidationErrors(wrapped), 1)
	assert.False(t, validator.IsValidationError(errors.New("plain")))
}
