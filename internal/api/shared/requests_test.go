package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Name  string `json:"name"  validate:"required"`
	Count int    `json:"count" validate:"min=0"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(
			http.MethodPost, "/test", strings.NewReader(`{"name":"backup","count":3}`),
		)

		var target decodeTarget
		require.NoError(t, DecodeJSON(req, &target))
		assert.Equal(t, "backup", target.Name)
		assert.Equal(t, 3, target.Count)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"name":`))

		var target decodeTarget
		assert.Error(t, DecodeJSON(req, &target))
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		assert.NoError(t, Validate.Struct(decodeTarget{Name: "backup"}))
	})

	t.Run("missing required field", func(t *testing.T) {
		err := Validate.Struct(decodeTarget{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Field validation")
	})
}
