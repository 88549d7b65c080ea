package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/entrhq/webpilot/pkg/response"
)

// newMarkdownConverter builds the HTML-to-markdown converter used by the
// page text tool.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
}

func pageTextTool() Tool {
	conv := newMarkdownConverter()

	return Tool{
		Name:        "browser_page_text",
		Description: "Return the current page content converted to markdown.",
		InputSchema: inputSchema(map[string]any{}, nil),
		Handler: func(_ context.Context, deps *Deps, _ json.RawMessage, resp *response.Response) error {
			tab := deps.Browser.CurrentTab()
			if tab == nil {
				return fmt.Errorf("no open tab")
			}

			html, err := tab.Content()
			if err != nil {
				return err
			}

			markdown, err := conv.ConvertString(html, converter.WithDomain(tab.URL()))
			if err != nil {
				return fmt.Errorf("failed to convert page content: %w", err)
			}

			// Page text rides the snapshot kind: it is page-state
			// content and shares its routing.
			return resp.AddResultWithFileOption(markdown, response.KindSnapshot)
		},
	}
}
