// Package config holds the resolved process-wide configuration for webpilot.
//
// Configuration is resolved exactly once at startup from (in increasing
// precedence) built-in defaults, an optional YAML file, environment variables,
// and command-line flags. The resulting Config is shared by reference and is
// never mutated after Resolve returns.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ImagePolicy controls whether image blocks are included in tool responses.
type ImagePolicy string

const (
	// ImagesAllow includes screenshots and other images as binary payload blocks.
	ImagesAllow ImagePolicy = "allow"

	// ImagesOmit strips all image blocks from responses. Useful for clients
	// that cannot display images or want to save context.
	ImagesOmit ImagePolicy = "omit"
)

// RoutingMode selects the file-vs-inline routing strategy for verbose content.
type RoutingMode string

const (
	// RoutingSize routes a piece of detailed content to a file only when
	// file output is enabled and the content exceeds a size threshold.
	RoutingSize RoutingMode = "size"

	// RoutingKind routes every detailed content kind (console, network,
	// snapshot) to a file whenever file output is enabled, and suppresses
	// the inline summary sections entirely.
	RoutingKind RoutingMode = "kind"
)

// Default values applied when neither file nor environment provides a setting.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultTimeoutMs      = 30000
)

// Config is the resolved webpilot configuration.
type Config struct {
	// OutputToFiles enables routing of verbose content (console dumps,
	// network dumps, page snapshots) to auxiliary files.
	OutputToFiles bool `yaml:"outputToFiles"`

	// OutputDir is the directory auxiliary files are written to.
	// Empty means a webpilot-output directory under the system temp dir.
	OutputDir string `yaml:"outputDir"`

	// ImageResponses controls inclusion of image blocks ("allow" or "omit").
	ImageResponses ImagePolicy `yaml:"imageResponses"`

	// FileRouting selects the routing strategy ("size" or "kind").
	FileRouting RoutingMode `yaml:"fileRouting"`

	// Browser holds launch options for the underlying browser.
	Browser BrowserConfig `yaml:"browser"`
}

// BrowserConfig configures the Playwright browser launch.
type BrowserConfig struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool `yaml:"headless"`

	// ViewportWidth and ViewportHeight set the initial viewport size.
	ViewportWidth  int `yaml:"viewportWidth"`
	ViewportHeight int `yaml:"viewportHeight"`

	// TimeoutMs is the default timeout for page operations in milliseconds.
	TimeoutMs float64 `yaml:"timeoutMs"`
}

// Defaults returns a Config populated with built-in defaults.
func Defaults() *Config {
	return &Config{
		OutputToFiles:  false,
		ImageResponses: ImagesAllow,
		FileRouting:    RoutingSize,
		Browser: BrowserConfig{
			Headless:       true,
			ViewportWidth:  DefaultViewportWidth,
			ViewportHeight: DefaultViewportHeight,
			TimeoutMs:      DefaultTimeoutMs,
		},
	}
}

// Load reads configuration from the YAML file at path, layered over defaults.
// A missing file is not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// validate rejects settings that have no defined behavior.
func (c *Config) validate() error {
	switch c.ImageResponses {
	case "", ImagesAllow, ImagesOmit:
	default:
		return fmt.Errorf("imageResponses must be %q or %q, got %q", ImagesAllow, ImagesOmit, c.ImageResponses)
	}
	switch c.FileRouting {
	case "", RoutingSize, RoutingKind:
	default:
		return fmt.Errorf("fileRouting must be %q or %q, got %q", RoutingSize, RoutingKind, c.FileRouting)
	}
	if c.ImageResponses == "" {
		c.ImageResponses = ImagesAllow
	}
	if c.FileRouting == "" {
		c.FileRouting = RoutingSize
	}
	if c.Browser.ViewportWidth <= 0 {
		c.Browser.ViewportWidth = DefaultViewportWidth
	}
	if c.Browser.ViewportHeight <= 0 {
		c.Browser.ViewportHeight = DefaultViewportHeight
	}
	if c.Browser.TimeoutMs <= 0 {
		c.Browser.TimeoutMs = DefaultTimeoutMs
	}
	return nil
}

// EnsureOutputDir resolves the auxiliary output directory, creating it if
// necessary, and returns its absolute path.
func (c *Config) EnsureOutputDir() (string, error) {
	dir := c.OutputDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "webpilot-output")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory %s: %w", dir, err)
	}
	return abs, nil
}
