package response

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderRequest_MethodAndURLOnly(t *testing.T) {
	block := RenderRequest(RequestEntry{Method: "GET", URL: "https://example.com/page"})
	assert.Equal(t, "[GET] https://example.com/page", block)
}

func TestRenderRequest_PendingResponseOmitted(t *testing.T) {
	block := RenderRequest(RequestEntry{Method: "GET", URL: "https://example.com/slow"})
	assert.NotContains(t, block, "=>")
}

func TestRenderRequest_GraphQLWithJSONResponse(t *testing.T) {
	entry := RequestEntry{
		Method:      "POST",
		URL:         "https://api.example.com/graphql",
		ContentType: "application/json",
		PostData:    `{"query":"{ user { id } }"}`,
		HasPostData: true,
		Response: &ResponseEntry{
			Status:      200,
			StatusText:  "OK",
			ContentType: "application/json",
			Body:        `{"data":{"user":{"id":"42"}}}`,
			BodyOK:      true,
		},
	}

	block := RenderRequest(entry)
	assert.Contains(t, block, "[POST] https://api.example.com/graphql")
	assert.Contains(t, block, "Request Body:\n{\"query\":\"{ user { id } }\"}")
	assert.Contains(t, block, "=> [200] OK")
	// Pretty-printed with two-space indentation, key order preserved.
	assert.Contains(t, block, "Response Body:\n{\n  \"data\": {\n    \"user\": {\n      \"id\": \"42\"\n    }\n  }\n}")
}

func TestRenderRequest_NonJSONBodySkipped(t *testing.T) {
	entry := RequestEntry{
		Method:      "POST",
		URL:         "https://example.com/form",
		ContentType: "application/x-www-form-urlencoded",
		PostData:    "a=1&b=2",
		HasPostData: true,
		Response: &ResponseEntry{
			Status:      200,
			StatusText:  "OK",
			ContentType: "text/html",
			Body:        "<html></html>",
			BodyOK:      true,
		},
	}

	block := RenderRequest(entry)
	assert.NotContains(t, block, "Request Body:")
	assert.NotContains(t, block, "Response Body:")
	assert.Contains(t, block, "=> [200] OK")
}

func TestRenderRequest_MissingPostDataSilentlySkipped(t *testing.T) {
	entry := RequestEntry{
		Method:      "POST",
		URL:         "https://api.example.com/graphql",
		ContentType: "application/json",
		HasPostData: false,
	}

	assert.Equal(t, "[POST] https://api.example.com/graphql", RenderRequest(entry))
}

func TestRenderRequest_UnparseableJSONFallsBackToRawPrefix(t *testing.T) {
	raw := "not json at all " + strings.Repeat("z", 2000)
	entry := RequestEntry{
		Method: "GET",
		URL:    "https://api.example.com/data",
		Response: &ResponseEntry{
			Status:      200,
			StatusText:  "OK",
			ContentType: "application/json",
			Body:        raw,
			BodyOK:      true,
		},
	}

	block := RenderRequest(entry)
	assert.Contains(t, block, raw[:rawBodyLimit])
	assert.NotContains(t, block, raw)
}

func TestRenderRequest_UnreadableBodyPlaceholder(t *testing.T) {
	entry := RequestEntry{
		Method: "GET",
		URL:    "https://api.example.com/stream",
		Response: &ResponseEntry{
			Status:      200,
			StatusText:  "OK",
			ContentType: "application/json",
			BodyOK:      false,
		},
	}

	assert.Contains(t, RenderRequest(entry), "<unable to read response body>")
}

func TestIsGraphQLURL(t *testing.T) {
	assert.True(t, isGraphQLURL("https://api.example.com/graphql"))
	assert.True(t, isGraphQLURL("https://api.example.com/GraphQL?op=x"))
	assert.False(t, isGraphQLURL("https://api.example.com/rest"))
}

func TestIsJSONContent(t *testing.T) {
	assert.True(t, isJSONContent("application/json"))
	assert.True(t, isJSONContent("application/json; charset=utf-8"))
	assert.True(t, isJSONContent("application/graphql-response+json"))
	assert.False(t, isJSONContent("text/html"))
	assert.False(t, isJSONContent(""))
}
