package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoWhitespace(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "no whitespace",
			input:     "validstring",
			shouldErr: false,
		},
		{
			name:      "leading whitespace",
			input:     " validstring",
			shouldErr: true,
		},
		{
			name:      "trailing whitespace",
			input:     "validstring ",
			shouldErr: true,
		},
		{
			name:      "both leading and trailing",
			input:     " validstring ",
			shouldErr: true,
		},
		{
			name:      "internal spaces allowed",
			input:     "valid string",
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NoWhitespace.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{
			name:      "valid string",
			input:     "validstring",
			shouldErr: false,
		},
		{
			name:      "only spaces",
			input:     "   ",
			shouldErr: true,
		},
		{
			name:      "only tabs",
			input:     "\t\t",
			shouldErr: true,
		},
		{
			name:      "only newlines",
			input:     "\n\n",
			shouldErr: true,
		},
		{
			name:      "mixed whitespace",
			input:     " \t\n ",
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NotBlank.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNonBlankEntries(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		shouldErr bool
		errMsg    string
	}{
		{
			name:      "valid entries",
			input:     map[string]string{"a1b2c3": "ciphertext"},
			shouldErr: false,
		},
		{
			name:      "empty map is left to Required",
			input:     map[string]string{},
			shouldErr: false,
		},
		{
			name:      "blank key",
			input:     map[string]string{" ": "ciphertext"},
			shouldErr: true,
			errMsg:    "blank keys",
		},
		{
			name:      "blank value",
			input:     map[string]string{"a1b2c3": ""},
			shouldErr: true,
			errMsg:    "blank values",
		},
		{
			name:      "wrong type",
			input:     []string{"a"},
			shouldErr: true,
			errMsg:    "map of strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NonBlankEntries.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNonBlankElements(t *testing.T) {
	assert.NoError(t, NonBlankElements.Validate([]string{"s1", "s2"}))
	assert.NoError(t, NonBlankElements.Validate([]string{}))
	assert.Error(t, NonBlankElements.Validate([]string{"s1", "  "}))
	assert.Error(t, NonBlankElements.Validate("s1"))
}

func TestWrapValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error returns nil",
			err:      nil,
			expected: false,
		},
		{
			name:     "wraps validation error",
			err:      assert.AnError,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapValidationError(tt.err)
			if tt.expected {
				assert.Error(t, result)
				assert.Contains(t, result.Error(), "invalid input")
			} else {
				assert.NoError(t, result)
			}
		})
	}
}

func TestBase64(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		shouldErr bool
	}{
		{name: "padded", input: "ZW5jcnlwdGVk", shouldErr: false},
		{name: "padded with equals", input: "ZW5jcnlwdGVkLXNlbGY=", shouldErr: false},
		{name: "unpadded", input: "ZW5jcnlwdGVkLXNlbGY", shouldErr: false},
		{name: "empty is left to Required", input: "", shouldErr: false},
		{name: "not base64", input: "not-valid-base64!@#$%", shouldErr: true},
		{name: "wrong type", input: 42, shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Base64.Validate(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
