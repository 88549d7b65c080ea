package response

import (
	"context"
	"fmt"
	"strings"
)

// Tab is the narrow view of a browser tab the response pipeline consumes.
// The browser package provides the concrete implementation.
type Tab interface {
	// URL returns the tab's current URL.
	URL() string

	// Title returns the tab's cached title. The cache is refreshed by
	// UpdateTitle, not by this call.
	Title() string

	// UpdateTitle refreshes the cached title from the live page.
	UpdateTitle(ctx context.Context) error

	// CaptureSnapshot captures a point-in-time snapshot of the tab.
	CaptureSnapshot(ctx context.Context) (*TabSnapshot, error)
}

// TabSource provides the ordered list of open tabs and the active tab.
type TabSource interface {
	// Tabs returns all open tabs in registry order.
	Tabs() []Tab

	// CurrentTab returns the active tab, or nil when no tab is open.
	CurrentTab() Tab
}

// TabSnapshot is a point-in-time capture of one page. It is owned by the
// Response that captured it and never mutated afterwards.
type TabSnapshot struct {
	// URL and Title identify the page at capture time.
	URL   string
	Title string

	// AriaSnapshot is the textual accessibility tree of the page.
	AriaSnapshot string

	// Console holds the console messages accumulated since the previous
	// snapshot, in arrival order.
	Console []ConsoleMessage

	// Downloads lists the downloads observed on this tab, in start order.
	Downloads []DownloadRecord

	// ModalStates lists the blocking dialogs open at capture time. A
	// snapshot with modal states renders as a modal report instead of a
	// page report.
	ModalStates []ModalState
}

// ConsoleMessage is one console entry emitted by the page.
type ConsoleMessage struct {
	// Kind is the console method name: log, warning, error, and so on.
	Kind string

	// Text is the message payload.
	Text string
}

// String renders the message as a single report line.
func (m ConsoleMessage) String() string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(m.Kind), m.Text)
}

// DownloadRecord describes one download observed on a tab.
type DownloadRecord struct {
	// Filename is the suggested file name of the download.
	Filename string

	// Path is the destination path, set once the download finished.
	Path string

	// Finished reports whether the download has completed.
	Finished bool
}

// ModalState describes one open blocking dialog on a tab.
type ModalState struct {
	// Kind is the dialog type: alert, confirm, prompt, beforeunload or
	// filechooser.
	Kind string

	// Message is the dialog's message text, empty for file choosers.
	Message string
}

// RenderModalStates formats open modal states as report lines, each with a
// hint naming the tool that clears it.
func RenderModalStates(states []ModalState) []string {
	lines := make([]string, 0, len(states))
	for _, state := range states {
		switch state.Kind {
		case "filechooser":
			lines = append(lines, "- [File chooser]: call browser_handle_dialog to cancel, or a file upload tool to fulfill it")
		default:
			lines = append(lines, fmt.Sprintf("- [%q dialog with message %q]: call browser_handle_dialog to handle", state.Kind, state.Message))
		}
	}
	return lines
}

// Image is one binary image attached to a Response.
type Image struct {
	// ContentType is the MIME type, for example image/png.
	ContentType string

	// Data is the raw image payload.
	Data []byte
}
