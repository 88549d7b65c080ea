package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/entrhq/webpilot/pkg/response"
)

func clickTool() Tool {
	return Tool{
		Name:        "browser_click",
		Description: "Click an element on the current page.",
		InputSchema: inputSchema(map[string]any{
			"selector": map[string]any{"type": "string", "description": "CSS or text selector of the element to click"},
		}, []string{"selector"}),
		Handler: func(_ context.Context, deps *Deps, args json.RawMessage, resp *response.Response) error {
			var a struct {
				Selector string `json:"selector"`
			}
			if err := decodeArgs(args, &a); err != nil {
				return err
			}
			if a.Selector == "" {
				return fmt.Errorf("selector is required")
			}

			tab := deps.Browser.CurrentTab()
			if tab == nil {
				return fmt.Errorf("no open tab, navigate somewhere first")
			}
			if err := tab.Click(a.Selector); err != nil {
				return err
			}

			resp.AddResult(fmt.Sprintf("Clicked %s", a.Selector))
			resp.AddCode(fmt.Sprintf("page.Locator(%q).Click()", a.Selector))
			resp.SetIncludeSnapshot()
			return nil
		},
	}
}

func typeTool() Tool {
	return Tool{
		Name:        "browser_type",
		Description: "Type text into an editable element, optionally pressing Enter to submit.",
		InputSchema: inputSchema(map[string]any{
			"selector": map[string]any{"type": "string", "description": "CSS or text selector of the element to type into"},
			"text":     map[string]any{"type": "string", "description": "Text to type"},
			"submit":   map[string]any{"type": "boolean", "description": "Press Enter after typing"},
		}, []string{"selector", "text"}),
		Handler: func(_ context.Context, deps *Deps, args json.RawMessage, resp *response.Response) error {
			var a struct {
				Selector string `json:"selector"`
				Text     string `json:"text"`
				Submit   bool   `json:"submit"`
			}
			if err := decodeArgs(args, &a); err != nil {
				return err
			}
			if a.Selector == "" {
				return fmt.Errorf("selector is required")
			}

			tab := deps.Browser.CurrentTab()
			if tab == nil {
				return fmt.Errorf("no open tab, navigate somewhere first")
			}
			if err := tab.Type(a.Selector, a.Text, a.Submit); err != nil {
				return err
			}

			resp.AddResult(fmt.Sprintf("Typed %q into %s", a.Text, a.Selector))
			resp.AddCode(fmt.Sprintf("page.Locator(%q).Fill(%q)", a.Selector, a.Text))
			if a.Submit {
				resp.AddCode(fmt.Sprintf("page.Locator(%q).Press(\"Enter\")", a.Selector))
			}
			resp.SetIncludeSnapshot()
			return nil
		},
	}
}

func handleDialogTool() Tool {
	return Tool{
		Name:        "browser_handle_dialog",
		Description: "Accept or dismiss the oldest open dialog on the current tab.",
		InputSchema: inputSchema(map[string]any{
			"accept":     map[string]any{"type": "boolean", "description": "Accept the dialog instead of dismissing it"},
			"promptText": map[string]any{"type": "string", "description": "Text to enter when accepting a prompt dialog"},
		}, []string{"accept"}),
		Handler: func(_ context.Context, deps *Deps, args json.RawMessage, resp *response.Response) error {
			var a struct {
				Accept     bool   `json:"accept"`
				PromptText string `json:"promptText"`
			}
			if err := decodeArgs(args, &a); err != nil {
				return err
			}

			tab := deps.Browser.CurrentTab()
			if tab == nil {
				return fmt.Errorf("no open tab")
			}
			if err := tab.HandleDialog(a.Accept, a.PromptText); err != nil {
				return err
			}

			if a.Accept {
				resp.AddResult("Accepted dialog")
			} else {
				resp.AddResult("Dismissed dialog")
			}
			resp.SetIncludeSnapshot()
			return nil
		},
	}
}
