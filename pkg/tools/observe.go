package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/entrhq/webpilot/pkg/response"
)

func consoleMessagesTool() Tool {
	return Tool{
		Name:        "browser_console_messages",
		Description: "Return the full console history of the current tab.",
		InputSchema: inputSchema(map[string]any{}, nil),
		Handler: func(_ context.Context, deps *Deps, _ json.RawMessage, resp *response.Response) error {
			tab := deps.Browser.CurrentTab()
			if tab == nil {
				return fmt.Errorf("no open tab")
			}

			messages := tab.ConsoleMessages()
			if len(messages) == 0 {
				resp.AddResult("No console messages")
				return nil
			}

			lines := make([]string, len(messages))
			for i, msg := range messages {
				lines[i] = msg.String()
			}
			return resp.AddResultWithFileOption(strings.Join(lines, "\n"), response.KindConsole)
		},
	}
}

func networkRequestsTool() Tool {
	return Tool{
		Name:        "browser_network_requests",
		Description: "Return all network requests of the current tab since its last navigation.",
		InputSchema: inputSchema(map[string]any{}, nil),
		Handler: func(_ context.Context, deps *Deps, _ json.RawMessage, resp *response.Response) error {
			tab := deps.Browser.CurrentTab()
			if tab == nil {
				return fmt.Errorf("no open tab")
			}

			entries := tab.RequestEntries()
			if len(entries) == 0 {
				resp.AddResult("No network requests")
				return nil
			}

			blocks := make([]string, len(entries))
			for i, entry := range entries {
				blocks[i] = response.RenderRequest(entry)
			}
			return resp.AddResultWithFileOption(strings.Join(blocks, "\n\n"), response.KindNetwork)
		},
	}
}

func screenshotTool() Tool {
	return Tool{
		Name:        "browser_take_screenshot",
		Description: "Take a screenshot of the current page viewport. The image cannot be used to act on the page, use browser_snapshot for that.",
		InputSchema: inputSchema(map[string]any{}, nil),
		Handler: func(_ context.Context, deps *Deps, _ json.RawMessage, resp *response.Response) error {
			tab := deps.Browser.CurrentTab()
			if tab == nil {
				return fmt.Errorf("no open tab")
			}

			data, err := tab.Screenshot()
			if err != nil {
				return err
			}

			resp.AddResult("Took a screenshot of the current page")
			resp.AddImage(response.Image{ContentType: "image/png", Data: data})
			return nil
		},
	}
}
