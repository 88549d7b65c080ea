package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/webpilot/pkg/logging"
	"github.com/entrhq/webpilot/pkg/response"
)

// Tab wraps one Playwright page and buffers the asynchronous page output
// (console messages, downloads, network traffic, dialogs) the response
// pipeline reports on.
type Tab struct {
	page   playwright.Page
	logger *logging.Logger

	mu sync.Mutex

	// title is the cached page title, refreshed by UpdateTitle.
	title string

	// consoleLog is the full console history of the tab; recentConsole
	// holds only the messages since the previous snapshot and is drained
	// by CaptureSnapshot.
	consoleLog    []response.ConsoleMessage
	recentConsole []response.ConsoleMessage

	downloads []*downloadEntry

	// requests is the ordered request log, append-only until the main
	// frame navigates, which resets it.
	requests []playwright.Request

	// modals are the currently open blocking dialogs, in arrival order.
	modals []modalEntry
}

type downloadEntry struct {
	mu     sync.Mutex
	record response.DownloadRecord
}

type modalEntry struct {
	state  response.ModalState
	dialog playwright.Dialog
}

// newTab wraps a page and wires its event handlers. Events arrive on
// Playwright's goroutines, hence the locking.
func newTab(page playwright.Page, logger *logging.Logger) *Tab {
	t := &Tab{page: page, logger: logger}

	page.OnConsole(func(msg playwright.ConsoleMessage) {
		entry := response.ConsoleMessage{Kind: msg.Type(), Text: msg.Text()}
		t.mu.Lock()
		t.consoleLog = append(t.consoleLog, entry)
		t.recentConsole = append(t.recentConsole, entry)
		t.mu.Unlock()
	})

	page.OnDialog(func(dialog playwright.Dialog) {
		t.mu.Lock()
		t.modals = append(t.modals, modalEntry{
			state:  response.ModalState{Kind: dialog.Type(), Message: dialog.Message()},
			dialog: dialog,
		})
		t.mu.Unlock()
		t.logger.Debugf("dialog opened: %s %q", dialog.Type(), dialog.Message())
	})

	page.OnDownload(func(download playwright.Download) {
		entry := &downloadEntry{record: response.DownloadRecord{
			Filename: download.SuggestedFilename(),
		}}
		t.mu.Lock()
		t.downloads = append(t.downloads, entry)
		t.mu.Unlock()

		// Path blocks until the download completes or fails.
		go func() {
			path, err := download.Path()
			if err != nil {
				t.logger.Warnf("download %s failed: %v", download.SuggestedFilename(), err)
				return
			}
			entry.mu.Lock()
			entry.record.Path = path
			entry.record.Finished = true
			entry.mu.Unlock()
		}()
	})

	page.OnRequest(func(request playwright.Request) {
		t.mu.Lock()
		defer t.mu.Unlock()
		if request.IsNavigationRequest() && request.Frame() == page.MainFrame() {
			t.requests = nil
		}
		t.requests = append(t.requests, request)
	})

	return t
}

// Page exposes the underlying Playwright page for tool handlers.
func (t *Tab) Page() playwright.Page {
	return t.page
}

// URL returns the tab's current URL.
func (t *Tab) URL() string {
	return t.page.URL()
}

// Title returns the cached title. UpdateTitle refreshes the cache.
func (t *Tab) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title
}

// UpdateTitle refreshes the cached title from the live page.
func (t *Tab) UpdateTitle(_ context.Context) error {
	title, err := t.page.Title()
	if err != nil {
		return fmt.Errorf("failed to read page title: %w", err)
	}
	t.mu.Lock()
	t.title = title
	t.mu.Unlock()
	return nil
}

// CaptureSnapshot captures a point-in-time snapshot of the tab and drains
// the recent console buffer into it. When blocking dialogs are open the
// accessibility tree is skipped: page calls would hang behind the dialog,
// and the snapshot is a modal report anyway.
func (t *Tab) CaptureSnapshot(_ context.Context) (*response.TabSnapshot, error) {
	t.mu.Lock()
	modals := make([]response.ModalState, len(t.modals))
	for i, m := range t.modals {
		modals[i] = m.state
	}
	t.mu.Unlock()

	var aria string
	if len(modals) == 0 {
		var err error
		aria, err = t.page.Locator("html").AriaSnapshot()
		if err != nil {
			return nil, fmt.Errorf("failed to capture accessibility snapshot: %w", err)
		}
	}

	t.mu.Lock()
	console := t.recentConsole
	t.recentConsole = nil
	t.mu.Unlock()

	return &response.TabSnapshot{
		URL:          t.page.URL(),
		Title:        t.Title(),
		AriaSnapshot: aria,
		Console:      console,
		Downloads:    t.downloadRecords(),
		ModalStates:  modals,
	}, nil
}

func (t *Tab) downloadRecords() []response.DownloadRecord {
	t.mu.Lock()
	entries := make([]*downloadEntry, len(t.downloads))
	copy(entries, t.downloads)
	t.mu.Unlock()

	records := make([]response.DownloadRecord, len(entries))
	for i, e := range entries {
		e.mu.Lock()
		records[i] = e.record
		e.mu.Unlock()
	}
	return records
}

// ConsoleMessages returns the tab's full console history.
func (t *Tab) ConsoleMessages() []response.ConsoleMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]response.ConsoleMessage, len(t.consoleLog))
	copy(out, t.consoleLog)
	return out
}

// ModalStates returns the currently open dialog states.
func (t *Tab) ModalStates() []response.ModalState {
	t.mu.Lock()
	defer t.mu.Unlock()
	states := make([]response.ModalState, len(t.modals))
	for i, m := range t.modals {
		states[i] = m.state
	}
	return states
}

// RequestEntries converts the tab's request log into renderable entries,
// reading bodies best-effort. Unreadable bodies degrade to fallbacks inside
// the renderer and never fail the call.
func (t *Tab) RequestEntries() []response.RequestEntry {
	t.mu.Lock()
	requests := make([]playwright.Request, len(t.requests))
	copy(requests, t.requests)
	t.mu.Unlock()

	entries := make([]response.RequestEntry, 0, len(requests))
	for _, req := range requests {
		entry := response.RequestEntry{
			Method: req.Method(),
			URL:    req.URL(),
		}
		if ct, err := req.HeaderValue("content-type"); err == nil {
			entry.ContentType = ct
		}
		if data, err := req.PostData(); err == nil && data != "" {
			entry.PostData = data
			entry.HasPostData = true
		}

		if resp, err := req.Response(); err == nil && resp != nil {
			re := &response.ResponseEntry{
				Status:     resp.Status(),
				StatusText: resp.StatusText(),
			}
			if ct, err := resp.HeaderValue("content-type"); err == nil {
				re.ContentType = ct
			}
			if body, err := resp.Text(); err == nil {
				re.Body = body
				re.BodyOK = true
			}
			entry.Response = re
		}
		entries = append(entries, entry)
	}
	return entries
}

// HandleDialog resolves the oldest open dialog, accepting it with the given
// prompt text or dismissing it.
func (t *Tab) HandleDialog(accept bool, promptText string) error {
	t.mu.Lock()
	if len(t.modals) == 0 {
		t.mu.Unlock()
		return fmt.Errorf("no dialog is open")
	}
	entry := t.modals[0]
	t.modals = t.modals[1:]
	t.mu.Unlock()

	if accept {
		if err := entry.dialog.Accept(promptText); err != nil {
			return fmt.Errorf("failed to accept dialog: %w", err)
		}
		return nil
	}
	if err := entry.dialog.Dismiss(); err != nil {
		return fmt.Errorf("failed to dismiss dialog: %w", err)
	}
	return nil
}

// Navigate drives the page to the given URL and refreshes the title cache.
func (t *Tab) Navigate(ctx context.Context, url string) error {
	if _, err := t.page.Goto(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return t.UpdateTitle(ctx)
}

// Click clicks the first element matching the selector.
func (t *Tab) Click(selector string) error {
	if err := t.page.Locator(selector).Click(); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

// Type fills the element matching the selector with text, optionally
// pressing Enter afterwards to submit.
func (t *Tab) Type(selector, text string, submit bool) error {
	locator := t.page.Locator(selector)
	if err := locator.Fill(text); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	if submit {
		if err := locator.Press("Enter"); err != nil {
			return fmt.Errorf("submit failed: %w", err)
		}
	}
	return nil
}

// Screenshot captures the viewport as a PNG.
func (t *Tab) Screenshot() ([]byte, error) {
	data, err := t.page.Screenshot(playwright.PageScreenshotOptions{
		Type: playwright.ScreenshotTypePng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return data, nil
}

// Content returns the page's full HTML.
func (t *Tab) Content() (string, error) {
	html, err := t.page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return html, nil
}
