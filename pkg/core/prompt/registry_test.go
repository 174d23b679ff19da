package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(&PromptTemplate{}))

	require.NoError(t, r.Register(&PromptTemplate{ID: "advisory.strategy", Category: "advisory"}))
	require.NoError(t, r.Register(&PromptTemplate{ID: "advisory.structured", Category: "advisory"}))
	require.NoError(t, r.Register(&PromptTemplate{ID: "ops.notes", Category: "ops"}))

	assert.Equal(t, 3, r.Count())
	assert.Equal(t, []string{"advisory.strategy", "advisory.structured", "ops.notes"}, r.ListPrompts())
	assert.Len(t, r.ListByCategory("advisory"), 2)

	pt, err := r.GetPrompt("ops.notes")
	require.NoError(t, err)
	assert.Equal(t, "ops", pt.Category)

	_, err = r.GetPrompt("missing")
	assert.Error(t, err)

	r.Clear()
	assert.Equal(t, 0, r.Count())
}

func TestGetIsSingleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}
