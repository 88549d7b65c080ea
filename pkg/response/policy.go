package response

import "github.com/entrhq/webpilot/pkg/config"

// FileKind tags a piece of detailed content for the file writer and the
// routing policy. The tag becomes part of the auxiliary file name.
type FileKind string

const (
	KindSnapshot FileKind = "snapshot"
	KindConsole  FileKind = "console"
	KindNetwork  FileKind = "network"
)

// SizeThreshold is the inline size limit, in bytes, for the size-gated
// policy. Content at or below the threshold stays inline.
const SizeThreshold = 500

// FilePolicy decides where detailed content goes. The policy is selected at
// startup and applies uniformly to every call within a deployment; the two
// strategies are never mixed per-call.
//
// Regardless of strategy: the Result section is never file-routed, images
// are never file-routed, and every written file is echoed back as a basename
// plus a usage hint.
type FilePolicy interface {
	// RouteToFile reports whether the given detailed content goes to an
	// auxiliary file instead of inline.
	RouteToFile(kind FileKind, content string) bool

	// SuppressSummaries reports whether the normally-inlined summary
	// sections (code block, tab listing, downloads, inline page state)
	// are dropped from the response entirely.
	SuppressSummaries() bool
}

// NewFilePolicy selects the policy strategy for the given configuration.
func NewFilePolicy(cfg *config.Config) FilePolicy {
	if cfg.FileRouting == config.RoutingKind {
		return kindGatedPolicy{enabled: cfg.OutputToFiles}
	}
	return sizeGatedPolicy{enabled: cfg.OutputToFiles}
}

// sizeGatedPolicy routes content to a file only when file output is enabled
// and the content exceeds SizeThreshold. Summary sections are always kept.
type sizeGatedPolicy struct {
	enabled bool
}

func (p sizeGatedPolicy) RouteToFile(_ FileKind, content string) bool {
	return p.enabled && len(content) > SizeThreshold
}

func (p sizeGatedPolicy) SuppressSummaries() bool {
	return false
}

// kindGatedPolicy routes every detailed content kind to a file whenever file
// output is enabled, regardless of size, and suppresses summary sections.
// With file output disabled it behaves as if file routing did not exist.
type kindGatedPolicy struct {
	enabled bool
}

func (p kindGatedPolicy) RouteToFile(_ FileKind, _ string) bool {
	return p.enabled
}

func (p kindGatedPolicy) SuppressSummaries() bool {
	return p.enabled
}
