package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantsy/licensegate/internal/infra/validation"
)

type inner struct {
	Timeout string `yaml:"timeout" validate:"omitempty,duration"`
}

type sample struct {
	ServerURL string `yaml:"server_url" validate:"required,url"`
	Nested    inner  `yaml:"nested"`
	NoTag     string `validate:"required"`
}

func TestStruct_Valid(t *testing.T) {
	err := validation.Struct(&sample{
		ServerURL: "https://license.example.com",
		Nested:    inner{Timeout: "5s"},
		NoTag:     "x",
	})
	assert.NoError(t, err)
}

func TestStruct_ReportsYAMLPaths(t *testing.T) {
	err := validation.Struct(&sample{
		ServerURL: "not a url",
		Nested:    inner{Timeout: "soon"},
	})
	require.Error(t, err)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 3)

	assert.Equal(t, "server_url", verr.Fields[0].Field)
	assert.Contains(t, verr.Fields[0].Message, "must be a valid URL")

	assert.Equal(t, "nested.timeout", verr.Fields[1].Field)
	assert.Equal(t, "timeout must be a positive duration such as 5s or 1m", verr.Fields[1].Message)

	assert.Equal(t, "no_tag", verr.Fields[2].Field)
	assert.Contains(t, err.Error(), "server_url: ")
}

func TestStruct_DurationMustBePositive(t *testing.T) {
	tests := []struct {
		timeout string
		valid   bool
	}{
		{timeout: "", valid: true},
		{timeout: "1ms", valid: true},
		{timeout: "1m30s", valid: true},
		{timeout: "0s"},
		{timeout: "-5s"},
		{timeout: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			err := validation.Struct(&inner{Timeout: tt.timeout})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "timeout: timeout must be a positive duration")
		})
	}
}
