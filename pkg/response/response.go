// Package response implements the response accumulation and rendering
// pipeline: it collects heterogeneous per-command output (result text,
// generated code, page snapshots, console messages, network traffic,
// downloads, modal dialogs, images) and deterministically serializes it
// either inline or to auxiliary files, under a single routing policy.
package response

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/entrhq/webpilot/pkg/config"
)

// Response accumulates the output of one tool invocation. It is a two-phase
// object: tool handlers mutate it during execution, Finish seals it (capturing
// the page snapshot if one was requested), and Serialize turns it into the
// protocol payload. A Response is never reused across invocations.
type Response struct {
	cfg    *config.Config
	policy FilePolicy
	source TabSource

	// Provenance, immutable after construction.
	toolName string
	toolArgs string

	results []string
	errors  []string
	code    []string
	images  []Image

	includeSnapshot bool
	includeTabs     bool

	// snapshot is populated at most once, by Finish.
	snapshot *TabSnapshot

	// files accumulates the auxiliary file paths written for this
	// invocation.
	files []string

	finished   bool
	serialized bool
}

// New creates a Response for one tool invocation. toolArgs is the raw
// argument payload, kept for provenance only.
func New(cfg *config.Config, source TabSource, toolName, toolArgs string) *Response {
	return &Response{
		cfg:      cfg,
		policy:   NewFilePolicy(cfg),
		source:   source,
		toolName: toolName,
		toolArgs: toolArgs,
	}
}

// AddResult appends a line to the result section. Empty strings are
// permitted and preserved.
func (r *Response) AddResult(text string) {
	r.results = append(r.results, text)
}

// AddError appends an error line and marks the response as failed. The
// error flag is sticky: once set it is never cleared.
func (r *Response) AddError(text string) {
	r.errors = append(r.errors, text)
}

// AddResultWithFileOption adds detailed content as a result, routing it to an
// auxiliary file when the active policy says so. When routed, the result line
// becomes a pointer to the written file. File write failures are propagated
// and fail the invocation.
func (r *Response) AddResultWithFileOption(text string, kind FileKind) error {
	if !r.policy.RouteToFile(kind, text) {
		r.AddResult(text)
		return nil
	}

	path, err := writeAuxFile(r.cfg, kind, text)
	if err != nil {
		return err
	}
	r.files = append(r.files, path)
	r.AddResult(fileHint(path))
	return nil
}

// AddCode appends a line of generated automation code.
func (r *Response) AddCode(text string) {
	r.code = append(r.code, text)
}

// AddImage attaches an image to the response. Images are always delivered
// inline as binary payload blocks, never routed to files, though the
// configuration may omit them entirely.
func (r *Response) AddImage(img Image) {
	r.images = append(r.images, img)
}

// SetIncludeSnapshot requests a page snapshot at Finish time. Idempotent.
func (r *Response) SetIncludeSnapshot() {
	r.includeSnapshot = true
}

// SetIncludeTabs requests the open-tabs listing. Idempotent.
func (r *Response) SetIncludeTabs() {
	r.includeTabs = true
}

// IsError reports whether AddError was called at least once.
func (r *Response) IsError() bool {
	return len(r.errors) > 0
}

// ToolName returns the name of the tool this response belongs to.
func (r *Response) ToolName() string {
	return r.toolName
}

// ToolArgs returns the raw argument payload of the invocation.
func (r *Response) ToolArgs() string {
	return r.toolArgs
}

// Files returns the auxiliary file paths written so far.
func (r *Response) Files() []string {
	return r.files
}

// Snapshot returns the captured tab snapshot, or nil.
func (r *Response) Snapshot() *TabSnapshot {
	return r.snapshot
}

// Finish seals the builder phase. If a snapshot was requested and a current
// tab exists, it performs the capture; the capture races against concurrent
// dialog state changes on the tab, and whatever dialog state the snapshot
// carries is what gets rendered, never refetched. Independently of the
// snapshot flag, every open tab's cached title is refreshed best-effort.
//
// Finish is tolerant of being reached twice but never captures a second
// snapshot: a snapshot is immutable once attached.
func (r *Response) Finish(ctx context.Context) error {
	r.finished = true

	if r.includeSnapshot && r.snapshot == nil {
		if tab := r.source.CurrentTab(); tab != nil {
			snap, err := tab.CaptureSnapshot(ctx)
			if err != nil {
				return fmt.Errorf("failed to capture page snapshot: %w", err)
			}
			r.snapshot = snap
		}
	}

	for _, tab := range r.source.Tabs() {
		// Title refresh is bookkeeping, not snapshot-gated; failures
		// are ignored.
		_ = tab.UpdateTitle(ctx)
	}
	return nil
}

// Serialize assembles the final protocol payload: one text block joining all
// sections, plus the attached images unless the configuration omits them.
//
// Serialize must be called exactly once, after Finish. Calling it again
// would re-derive file names with a fresh random component and duplicate
// files on disk, so misuse panics instead of silently recomputing.
func (r *Response) Serialize() (*mcp.CallToolResult, error) {
	if !r.finished {
		panic("response: Serialize called before Finish")
	}
	if r.serialized {
		panic("response: Serialize called twice")
	}
	r.serialized = true

	var sections []string

	// The result section always comes first and is never file-routed.
	if len(r.errors)+len(r.results) > 0 {
		lines := make([]string, 0, len(r.errors)+len(r.results))
		lines = append(lines, r.errors...)
		lines = append(lines, r.results...)
		sections = append(sections, "### Result\n"+strings.Join(lines, "\n"))
	}

	if len(r.code) > 0 && !r.policy.SuppressSummaries() {
		sections = append(sections, "### Ran code\n```go\n"+strings.Join(r.code, "\n")+"\n```")
	}

	if r.includeSnapshot || r.includeTabs {
		if section := r.renderTabs(); section != "" {
			sections = append(sections, section)
		}
	}

	if r.snapshot != nil {
		snapSections, snapFiles, err := renderTabSnapshot(r.cfg, r.policy, r.snapshot)
		if err != nil {
			return nil, err
		}
		sections = append(sections, snapSections...)
		r.files = append(r.files, snapFiles...)
	}

	content := []mcp.Content{
		&mcp.TextContent{Text: strings.Join(sections, "\n\n")},
	}
	if r.cfg.ImageResponses != config.ImagesOmit {
		for _, img := range r.images {
			content = append(content, &mcp.ImageContent{
				MIMEType: img.ContentType,
				Data:     img.Data,
			})
		}
	}

	return &mcp.CallToolResult{
		Content: content,
		IsError: r.IsError(),
	}, nil
}

// renderTabs produces the open-tabs listing, or empty when the listing is
// suppressed: a single tab that was not explicitly asked for carries no
// information, and full file routing drops summaries altogether.
func (r *Response) renderTabs() string {
	if r.policy.SuppressSummaries() {
		return ""
	}

	tabs := r.source.Tabs()
	if len(tabs) == 0 {
		return ""
	}
	if len(tabs) == 1 && !r.includeTabs {
		return ""
	}
	return renderTabsList(tabs, r.source.CurrentTab())
}
