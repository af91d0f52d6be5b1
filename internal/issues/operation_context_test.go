package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationContextString(t *testing.T) {
	tests := []struct {
		name     string
		ctx      OperationContext
		expected string
	}{
		{
			name:     "operation",
			ctx:      OperationContext{Method: "GET", Path: "/users/{id}"},
			expected: "(GET /users/{id})",
		},
		{
			name:     "path-level (no method)",
			ctx:      OperationContext{Path: "/users/{id}"},
			expected: "(path: /users/{id})",
		},
		{
			name:     "webhook",
			ctx:      OperationContext{Path: "newPet", IsWebhook: true},
			expected: "(webhook: newPet)",
		},
		{
			name:     "webhook operation",
			ctx:      OperationContext{Method: "POST", Path: "newPet", IsWebhook: true},
			expected: "(webhook: POST newPet)",
		},
		{
			name:     "component",
			ctx:      OperationContext{Component: "schemas/Pet"},
			expected: "(component: schemas/Pet)",
		},
		{
			name:     "empty",
			ctx:      OperationContext{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ctx.String())
		})
	}
}

func TestContextFromPointer(t *testing.T) {
	t.Run("operation pointer", func(t *testing.T) {
		c := ContextFromPointer("/paths/~1pets~1{id}/get/responses/200")
		require.NotNil(t, c)
		assert.Equal(t, "GET", c.Method)
		assert.Equal(t, "/pets/{id}", c.Path)
		assert.False(t, c.IsWebhook)
	})

	t.Run("path item level", func(t *testing.T) {
		c := ContextFromPointer("/paths/~1pets/parameters/0")
		require.NotNil(t, c)
		assert.Equal(t, "", c.Method)
		assert.Equal(t, "/pets", c.Path)
	})

	t.Run("webhook", func(t *testing.T) {
		c := ContextFromPointer("/webhooks/newPet/post")
		require.NotNil(t, c)
		assert.True(t, c.IsWebhook)
		assert.Equal(t, "POST", c.Method)
	})

	t.Run("component", func(t *testing.T) {
		c := ContextFromPointer("/components/schemas/Pet/example")
		require.NotNil(t, c)
		assert.Equal(t, "schemas/Pet", c.Component)
	})

	t.Run("outside operations", func(t *testing.T) {
		assert.Nil(t, ContextFromPointer("/info/title"))
		assert.Nil(t, ContextFromPointer("/components/schemas"))
		assert.Nil(t, ContextFromPointer(""))
	})
}
