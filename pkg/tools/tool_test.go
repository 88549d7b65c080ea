package tools

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_NamesUniqueAndDescribed(t *testing.T) {
	seen := make(map[string]bool)
	for _, tool := range All() {
		assert.True(t, strings.HasPrefix(tool.Name, "browser_"), "tool %q", tool.Name)
		assert.False(t, seen[tool.Name], "duplicate tool name %q", tool.Name)
		seen[tool.Name] = true

		assert.NotEmpty(t, tool.Description, "tool %q", tool.Name)
		assert.NotNil(t, tool.InputSchema, "tool %q", tool.Name)
		assert.NotNil(t, tool.Handler, "tool %q", tool.Name)
	}
	assert.Len(t, seen, 10)
}

func TestAll_SchemasAreObjects(t *testing.T) {
	for _, tool := range All() {
		assert.Equal(t, "object", tool.InputSchema["type"], "tool %q", tool.Name)
		_, ok := tool.InputSchema["properties"].(map[string]any)
		assert.True(t, ok, "tool %q", tool.Name)
	}
}

func TestInputSchema(t *testing.T) {
	schema := inputSchema(map[string]any{
		"url": map[string]any{"type": "string"},
	}, []string{"url"})

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"url"}, schema["required"])

	// Schemas must marshal cleanly for the tools/list response.
	_, err := json.Marshal(schema)
	require.NoError(t, err)
}

func TestInputSchema_NoRequiredKeyWhenEmpty(t *testing.T) {
	schema := inputSchema(map[string]any{}, nil)
	_, ok := schema["required"]
	assert.False(t, ok)
}

func TestDecodeArgs(t *testing.T) {
	var a struct {
		URL string `json:"url"`
	}
	require.NoError(t, decodeArgs(json.RawMessage(`{"url":"https://example.com"}`), &a))
	assert.Equal(t, "https://example.com", a.URL)

	require.NoError(t, decodeArgs(nil, &a), "absent arguments are not an error")

	err := decodeArgs(json.RawMessage(`{broken`), &a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid arguments")
}

func TestMarkdownConverter_BasicConversion(t *testing.T) {
	conv := newMarkdownConverter()

	md, err := conv.ConvertString(`<h1>Title</h1><p>Some <strong>bold</strong> text.</p>`)
	require.NoError(t, err)
	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "**bold**")
}
