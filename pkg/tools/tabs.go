package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/entrhq/webpilot/pkg/response"
)

func tabsTool() Tool {
	return Tool{
		Name:        "browser_tabs",
		Description: "List, open, select or close browser tabs.",
		InputSchema: inputSchema(map[string]any{
			"action": map[string]any{
				"type":        "string",
				"enum":        []string{"list", "new", "select", "close"},
				"description": "Operation to perform",
			},
			"index": map[string]any{
				"type":        "integer",
				"description": "Tab index for select and close",
			},
		}, []string{"action"}),
		Handler: func(_ context.Context, deps *Deps, args json.RawMessage, resp *response.Response) error {
			var a struct {
				Action string `json:"action"`
				Index  *int   `json:"index"`
			}
			if err := decodeArgs(args, &a); err != nil {
				return err
			}

			resp.SetIncludeTabs()

			switch a.Action {
			case "list", "":
				return nil
			case "new":
				if _, err := deps.Browser.NewTab(); err != nil {
					return err
				}
				resp.AddResult("Opened a new tab")
				resp.SetIncludeSnapshot()
				return nil
			case "select":
				if a.Index == nil {
					return fmt.Errorf("index is required for select")
				}
				if err := deps.Browser.SelectTab(*a.Index); err != nil {
					return err
				}
				resp.AddResult(fmt.Sprintf("Selected tab %d", *a.Index))
				resp.SetIncludeSnapshot()
				return nil
			case "close":
				if a.Index == nil {
					return fmt.Errorf("index is required for close")
				}
				if err := deps.Browser.CloseTab(*a.Index); err != nil {
					return err
				}
				resp.AddResult(fmt.Sprintf("Closed tab %d", *a.Index))
				return nil
			default:
				return fmt.Errorf("unknown action %q", a.Action)
			}
		},
	}
}
