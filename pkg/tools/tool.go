// Package tools defines the browser tools exposed over MCP and the handler
// wrapper that owns the Response lifecycle for every invocation.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/config"
	"github.com/entrhq/webpilot/pkg/logging"
	"github.com/entrhq/webpilot/pkg/response"
)

// Deps bundles the collaborators every tool handler receives.
type Deps struct {
	Config  *config.Config
	Browser *browser.Context
	Logger  *logging.Logger
}

// Tool describes one MCP tool: its schema and its handler. Handlers mutate
// the Response; they never build protocol payloads themselves.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     func(ctx context.Context, deps *Deps, args json.RawMessage, resp *response.Response) error
}

// inputSchema builds a JSON schema object for a tool's arguments.
func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// All returns every tool webpilot exposes.
func All() []Tool {
	return []Tool{
		navigateTool(),
		snapshotTool(),
		clickTool(),
		typeTool(),
		handleDialogTool(),
		consoleMessagesTool(),
		networkRequestsTool(),
		screenshotTool(),
		tabsTool(),
		pageTextTool(),
	}
}

// Register wires every tool onto the MCP server. The wrapper owns the
// Response lifecycle: construct, run the handler, Finish (capturing the
// snapshot if requested), Serialize.
//
// Handler errors and capture failures surface through AddError and stay
// inside the response; only file-write failures during serialization fail
// the protocol call itself.
func Register(srv *mcp.Server, deps *Deps) {
	for _, tool := range All() {
		registerTool(srv, deps, tool)
	}
}

func registerTool(srv *mcp.Server, deps *Deps, tool Tool) {
	mcpTool := &mcp.Tool{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: tool.InputSchema,
	}

	srv.AddTool(mcpTool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.Params.Arguments
		resp := response.New(deps.Config, deps.Browser.TabSource(), tool.Name, string(args))

		deps.Logger.Debugf("tool %s called with %s", tool.Name, string(args))

		if err := tool.Handler(ctx, deps, args, resp); err != nil {
			resp.AddError(err.Error())
		}

		if err := resp.Finish(ctx); err != nil {
			resp.AddError(fmt.Sprintf("failed to capture page state: %v", err))
		}

		result, err := resp.Serialize()
		if err != nil {
			deps.Logger.Errorf("tool %s failed to serialize: %v", tool.Name, err)
			return nil, err
		}
		return result, nil
	})
}

// decodeArgs unmarshals tool arguments into a handler's argument struct.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
