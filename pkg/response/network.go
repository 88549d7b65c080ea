package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RequestEntry is one request/response pair from a tab's network log. The
// browser layer reads bodies best-effort before handing entries over, so
// rendering never touches the live page.
type RequestEntry struct {
	// Method and URL identify the request.
	Method string
	URL    string

	// ContentType is the request content-type header, empty when absent.
	ContentType string

	// PostData is the request body; HasPostData distinguishes an empty
	// body from an unreadable or absent one.
	PostData    string
	HasPostData bool

	// Response is nil while the request is in flight.
	Response *ResponseEntry
}

// ResponseEntry is the completed-response half of a RequestEntry.
type ResponseEntry struct {
	Status     int
	StatusText string

	// ContentType is the response content-type header, empty when absent.
	ContentType string

	// Body is the response body; BodyOK is false when the body could not
	// be read at all.
	Body   string
	BodyOK bool
}

// rawBodyLimit bounds how much of a non-JSON or unparseable body is echoed.
const rawBodyLimit = 1000

// isJSONContent reports whether a content type denotes a JSON payload.
func isJSONContent(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}

// isGraphQLURL reports whether a URL denotes a GraphQL endpoint.
func isGraphQLURL(url string) bool {
	return strings.Contains(strings.ToLower(url), "graphql")
}

// RenderRequest formats one request/response pair as a canonical text block.
//
// Bodies are included only for JSON content types or GraphQL endpoints.
// Every body-read or parse failure degrades to the next fallback and is never
// propagated: verbatim body, then the first rawBodyLimit characters of the
// raw body, then a placeholder marker.
func RenderRequest(entry RequestEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", entry.Method, entry.URL)

	if entry.HasPostData && (isJSONContent(entry.ContentType) || isGraphQLURL(entry.URL)) {
		b.WriteString("\nRequest Body:\n")
		b.WriteString(entry.PostData)
	}

	if resp := entry.Response; resp != nil {
		fmt.Fprintf(&b, "\n=> [%d] %s", resp.Status, resp.StatusText)
		if isJSONContent(resp.ContentType) || isGraphQLURL(entry.URL) {
			b.WriteString("\nResponse Body:\n")
			b.WriteString(renderResponseBody(resp))
		}
	}

	return b.String()
}

// renderResponseBody pretty-prints a JSON body, falling back to a raw prefix
// on parse failure and to a placeholder when the body is unreadable.
func renderResponseBody(resp *ResponseEntry) string {
	if !resp.BodyOK {
		return "<unable to read response body>"
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(resp.Body), "", "  "); err == nil {
		return pretty.String()
	}

	if len(resp.Body) > rawBodyLimit {
		return resp.Body[:rawBodyLimit]
	}
	return resp.Body
}
