package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/entrhq/webpilot/pkg/response"
)

func navigateTool() Tool {
	return Tool{
		Name:        "browser_navigate",
		Description: "Navigate the current tab to a URL, opening a tab first if none is open.",
		InputSchema: inputSchema(map[string]any{
			"url": map[string]any{"type": "string", "description": "The URL to navigate to"},
		}, []string{"url"}),
		Handler: func(ctx context.Context, deps *Deps, args json.RawMessage, resp *response.Response) error {
			var a struct {
				URL string `json:"url"`
			}
			if err := decodeArgs(args, &a); err != nil {
				return err
			}
			if a.URL == "" {
				return fmt.Errorf("url is required")
			}

			tab, err := deps.Browser.EnsureTab()
			if err != nil {
				return err
			}
			if err := tab.Navigate(ctx, a.URL); err != nil {
				return err
			}

			resp.AddResult(fmt.Sprintf("Navigated to %s", a.URL))
			resp.AddCode(fmt.Sprintf("page.Goto(%q)", a.URL))
			resp.SetIncludeSnapshot()
			return nil
		},
	}
}

func snapshotTool() Tool {
	return Tool{
		Name:        "browser_snapshot",
		Description: "Capture an accessibility snapshot of the current page. Better than a screenshot for acting on page content.",
		InputSchema: inputSchema(map[string]any{}, nil),
		Handler: func(_ context.Context, deps *Deps, _ json.RawMessage, resp *response.Response) error {
			if _, err := deps.Browser.EnsureTab(); err != nil {
				return err
			}
			resp.SetIncludeSnapshot()
			return nil
		},
	}
}
