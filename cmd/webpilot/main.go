// Package main provides the webpilot MCP server: browser automation over
// the Model Context Protocol, with bounded, file-routable tool responses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/config"
	"github.com/entrhq/webpilot/pkg/logging"
	"github.com/entrhq/webpilot/pkg/tools"
)

const version = "0.1.0"

type cliFlags struct {
	configFile  string
	outputDir   string
	saveFiles   bool
	omitImages  bool
	headed      bool
	logLevel    string
	showVersion bool
}

func parseFlags() *cliFlags {
	f := &cliFlags{}
	flag.StringVar(&f.configFile, "config", "", "Path to YAML configuration file")
	flag.StringVar(&f.outputDir, "output-dir", "", "Directory for auxiliary output files")
	flag.BoolVar(&f.saveFiles, "save-files", false, "Route verbose content to files instead of inlining it")
	flag.BoolVar(&f.omitImages, "no-images", false, "Omit image blocks from responses")
	flag.BoolVar(&f.headed, "headed", false, "Run the browser with a visible window")
	flag.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flag.BoolVar(&f.showVersion, "version", false, "Print version and exit")
	flag.Parse()
	return f
}

func resolveConfig(f *cliFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}

	// Flags override the file.
	if f.outputDir != "" {
		cfg.OutputDir = f.outputDir
	}
	if f.saveFiles {
		cfg.OutputToFiles = true
	}
	if f.omitImages {
		cfg.ImageResponses = config.ImagesOmit
	}
	if f.headed {
		cfg.Browser.Headless = false
	}
	return cfg, nil
}

func main() {
	// Best-effort: a missing .env file is fine.
	_ = godotenv.Load()

	flags := parseFlags()
	if flags.showVersion {
		fmt.Printf("webpilot %s\n", version)
		return
	}

	cfg, err := resolveConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "webpilot: %v\n", err)
		os.Exit(1)
	}

	logger, logErr := logging.NewLogger("main", logging.ParseLevel(flags.logLevel))
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "webpilot: file logging unavailable: %v\n", logErr)
	}
	defer logger.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Infof("webpilot %s starting, session %s", version, logger.SessionID())

	browserCtx, err := browser.NewContext(cfg, logger)
	if err != nil {
		logger.Errorf("browser startup failed: %v", err)
		fmt.Fprintf(os.Stderr, "webpilot: browser startup failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := browserCtx.Close(); err != nil {
			logger.Warnf("browser shutdown: %v", err)
		}
	}()

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "webpilot",
		Version: version,
	}, nil)

	tools.Register(srv, &tools.Deps{
		Config:  cfg,
		Browser: browserCtx,
		Logger:  logger,
	})

	logger.Infof("serving MCP over stdio")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Errorf("server stopped: %v", err)
		fmt.Fprintf(os.Stderr, "webpilot: %v\n", err)
		os.Exit(1)
	}
	logger.Infof("shutdown complete")
}
