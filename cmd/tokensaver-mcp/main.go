package main

import (
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/tokensaver/config"
	"github.com/use-agent/tokensaver/logging"
	"github.com/use-agent/tokensaver/mcptools"
)

func main() {
	cfg := config.Load()

	// stdout carries the protocol; logs go to stderr.
	logging.Init(cfg.Log, os.Stderr)

	// A stdio server has no scrape endpoint, so it records no metrics.
	s := mcptools.NewServer(nil)

	slog.Info("TokenSaver MCP server running on stdio",
		"name", mcptools.ServerName,
		"version", mcptools.ServerVersion,
	)
	if err := server.ServeStdio(s); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
