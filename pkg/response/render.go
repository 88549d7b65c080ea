package response

import (
	"fmt"
	"strings"

	"github.com/entrhq/webpilot/pkg/config"
)

const (
	// maxInlineConsoleMessages bounds how many console messages are
	// inlined before the renderer switches to an "and N more" line.
	maxInlineConsoleMessages = 5

	// maxConsoleMessageLength bounds the length of one inlined message.
	maxConsoleMessageLength = 100
)

// truncateMessage shortens a message to limit characters, appending an
// ellipsis marker when anything was cut.
func truncateMessage(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}

// renderTabSnapshot turns a captured snapshot into report sections, applying
// the routing policy to the console and page-state sub-sections. It returns
// the sections in order plus the paths of any auxiliary files written.
func renderTabSnapshot(cfg *config.Config, policy FilePolicy, snap *TabSnapshot) (sections []string, files []string, err error) {
	consoleSection, consoleFile, err := renderConsole(cfg, policy, snap.Console)
	if err != nil {
		return nil, nil, err
	}
	if consoleSection != "" {
		sections = append(sections, consoleSection)
	}
	if consoleFile != "" {
		files = append(files, consoleFile)
	}

	if downloads := renderDownloads(policy, snap.Downloads); downloads != "" {
		sections = append(sections, downloads)
	}

	// A snapshot is either a modal report or a page report, never both.
	if len(snap.ModalStates) > 0 {
		modal := "### Modal state\n" + strings.Join(RenderModalStates(snap.ModalStates), "\n")
		sections = append(sections, modal)
		return sections, files, nil
	}

	pageSection, pageFile, err := renderPageState(cfg, policy, snap)
	if err != nil {
		return nil, nil, err
	}
	if pageSection != "" {
		sections = append(sections, pageSection)
	}
	if pageFile != "" {
		files = append(files, pageFile)
	}

	return sections, files, nil
}

// renderConsole renders the console sub-section. When the policy routes the
// dump to a file, the inline section shrinks to a count line plus the file
// pointer; otherwise the first messages are inlined with truncation.
func renderConsole(cfg *config.Config, policy FilePolicy, messages []ConsoleMessage) (section string, file string, err error) {
	if len(messages) == 0 {
		return "", "", nil
	}

	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = msg.String()
	}
	dump := strings.Join(lines, "\n")

	var b strings.Builder
	b.WriteString("### New console messages\n")

	if policy.RouteToFile(KindConsole, dump) {
		path, err := writeAuxFile(cfg, KindConsole, dump)
		if err != nil {
			return "", "", err
		}
		fmt.Fprintf(&b, "%d console messages\n- %s", len(messages), fileHint(path))
		return b.String(), path, nil
	}

	shown := len(messages)
	if shown > maxInlineConsoleMessages {
		shown = maxInlineConsoleMessages
	}
	for i := 0; i < shown; i++ {
		b.WriteString("- " + truncateMessage(lines[i], maxConsoleMessageLength) + "\n")
	}
	if rest := len(messages) - shown; rest > 0 {
		fmt.Fprintf(&b, "… and %d more console messages\n", rest)
	}
	return strings.TrimRight(b.String(), "\n"), "", nil
}

// renderDownloads renders one line per download. The section is dropped
// entirely when the policy suppresses summaries.
func renderDownloads(policy FilePolicy, downloads []DownloadRecord) string {
	if len(downloads) == 0 || policy.SuppressSummaries() {
		return ""
	}

	var b strings.Builder
	b.WriteString("### Downloads")
	for _, d := range downloads {
		if d.Finished {
			fmt.Fprintf(&b, "\n- Downloaded file %s to %s", d.Filename, d.Path)
		} else {
			fmt.Fprintf(&b, "\n- Downloading file %s ...", d.Filename)
		}
	}
	return b.String()
}

// renderPageState renders the page report: URL, title and the accessibility
// tree fenced as a literal block, with the tree routed to a file when the
// policy says so.
func renderPageState(cfg *config.Config, policy FilePolicy, snap *TabSnapshot) (section string, file string, err error) {
	if !policy.RouteToFile(KindSnapshot, snap.AriaSnapshot) {
		return fmt.Sprintf("### Page state\n- Page URL: %s\n- Page Title: %s\n- Page Snapshot:\n```yaml\n%s\n```",
			snap.URL, snap.Title, snap.AriaSnapshot), "", nil
	}

	path, err := writeAuxFile(cfg, KindSnapshot, snap.AriaSnapshot)
	if err != nil {
		return "", "", err
	}

	if policy.SuppressSummaries() {
		return "### Page state\n- " + fileHint(path), path, nil
	}
	return fmt.Sprintf("### Page state\n- Page URL: %s\n- Page Title: %s\n- %s",
		snap.URL, snap.Title, fileHint(path)), path, nil
}

// renderTabsList formats the open-tabs listing.
func renderTabsList(tabs []Tab, current Tab) string {
	var b strings.Builder
	b.WriteString("### Open tabs")
	for i, tab := range tabs {
		marker := ""
		if tab == current {
			marker = "(current) "
		}
		fmt.Fprintf(&b, "\n- %d: %s[%s] (%s)", i, marker, tab.Title(), tab.URL())
	}
	return b.String()
}
