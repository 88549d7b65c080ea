package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/webpilot/pkg/config"
	"github.com/entrhq/webpilot/pkg/logging"
	"github.com/entrhq/webpilot/pkg/response"
)

// Context owns the Playwright browser and the ordered tab registry. One
// Context serves one MCP session.
type Context struct {
	cfg    *config.Config
	logger *logging.Logger

	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext

	mu      sync.Mutex
	tabs    []*Tab
	current int
}

// NewContext installs and starts Playwright, launches Chromium and creates
// an isolated browser context. Playwright's own output is discarded: stdout
// belongs to the MCP protocol.
func NewContext(cfg *config.Config, logger *logging.Logger) (*Context, error) {
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Browser.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  cfg.Browser.ViewportWidth,
			Height: cfg.Browser.ViewportHeight,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	bctx.SetDefaultTimeout(cfg.Browser.TimeoutMs)

	c := &Context{
		cfg:     cfg,
		logger:  logger,
		pw:      pw,
		browser: browser,
		bctx:    bctx,
	}

	// Popups and window.open targets become tabs of this context.
	bctx.OnPage(func(page playwright.Page) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.findTab(page) == nil {
			c.registerTabLocked(page)
		}
	})

	return c, nil
}

// findTab returns the registered tab for a page, or nil. Caller holds mu.
func (c *Context) findTab(page playwright.Page) *Tab {
	for _, t := range c.tabs {
		if t.page == page {
			return t
		}
	}
	return nil
}

// registerTabLocked wraps a page and appends it to the registry. Caller
// holds mu.
func (c *Context) registerTabLocked(page playwright.Page) *Tab {
	tab := newTab(page, c.logger)

	page.OnClose(func(closed playwright.Page) {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, t := range c.tabs {
			if t.page == closed {
				c.tabs = append(c.tabs[:i], c.tabs[i+1:]...)
				if c.current >= len(c.tabs) && c.current > 0 {
					c.current = len(c.tabs) - 1
				}
				break
			}
		}
	})

	c.tabs = append(c.tabs, tab)
	return tab
}

// Tabs returns all open tabs in registry order.
func (c *Context) Tabs() []*Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	tabs := make([]*Tab, len(c.tabs))
	copy(tabs, c.tabs)
	return tabs
}

// CurrentTab returns the active tab, or nil when no tab is open.
func (c *Context) CurrentTab() *Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tabs) == 0 {
		return nil
	}
	return c.tabs[c.current]
}

// EnsureTab returns the active tab, opening one first when none exists.
func (c *Context) EnsureTab() (*Tab, error) {
	if tab := c.CurrentTab(); tab != nil {
		return tab, nil
	}
	return c.NewTab()
}

// NewTab opens a new page and makes it the active tab.
func (c *Context) NewTab() (*Tab, error) {
	page, err := c.bctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open new tab: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	tab := c.findTab(page)
	if tab == nil {
		tab = c.registerTabLocked(page)
	}
	for i, t := range c.tabs {
		if t == tab {
			c.current = i
			break
		}
	}
	return tab, nil
}

// SelectTab makes the tab at index the active one.
func (c *Context) SelectTab(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.tabs) {
		return fmt.Errorf("no tab at index %d, %d tabs open", index, len(c.tabs))
	}
	c.current = index
	return nil
}

// CloseTab closes the tab at index. The page close event removes it from
// the registry.
func (c *Context) CloseTab(index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.tabs) {
		c.mu.Unlock()
		return fmt.Errorf("no tab at index %d, %d tabs open", index, len(c.tabs))
	}
	tab := c.tabs[index]
	c.mu.Unlock()

	if err := tab.page.Close(); err != nil {
		return fmt.Errorf("failed to close tab: %w", err)
	}
	return nil
}

// Close tears down the browser context, the browser and Playwright itself.
func (c *Context) Close() error {
	var errs []error
	if err := c.bctx.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := c.browser.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := c.pw.Stop(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing browser: %v", errs)
	}
	return nil
}

// TabSource adapts the Context to the response pipeline's view of tabs.
func (c *Context) TabSource() response.TabSource {
	return tabSource{c}
}

type tabSource struct {
	c *Context
}

func (s tabSource) Tabs() []response.Tab {
	tabs := s.c.Tabs()
	out := make([]response.Tab, len(tabs))
	for i, t := range tabs {
		out[i] = t
	}
	return out
}

func (s tabSource) CurrentTab() response.Tab {
	tab := s.c.CurrentTab()
	if tab == nil {
		// An untyped nil: a nil *Tab inside the interface would not
		// compare equal to nil at the caller.
		return nil
	}
	return tab
}
