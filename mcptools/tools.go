// Package mcptools exposes the cleaner as MCP tools for LLM clients.
package mcptools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/tokensaver/cleaner"
	"github.com/use-agent/tokensaver/metrics"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// ServerName and ServerVersion are announced during MCP initialisation.
	ServerName    = "tokensaver"
	ServerVersion = "1.0.0"
)

// NewServer returns an MCP server with the optimize_context and
// estimate_tokens tools registered. rec may be nil.
func NewServer(rec *metrics.Recorder) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
	)

	optimizeTool := mcp.NewTool("optimize_context",
		mcp.WithDescription("Clean and compress text to reduce token usage before sending to an LLM. "+
			"Removes redundant whitespace, repeated punctuation, zero-width chars, and decorative lines. "+
			"Returns the optimized text and estimated token savings."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The raw text to optimize"),
		),
		mcp.WithString("intensity",
			mcp.Description("soft: safe whitespace normalization only. "+
				"aggressive: also collapses blank lines, removes decorative separators, "+
				"and deduplicates repeated words."),
			mcp.Enum(string(cleaner.Soft), string(cleaner.Aggressive)),
			mcp.DefaultString(string(cleaner.Soft)),
		),
	)
	s.AddTool(optimizeTool, handleOptimize(rec))

	estimateTool := mcp.NewTool("estimate_tokens",
		mcp.WithDescription("Quickly estimate the token count of a text string without cleaning it."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to estimate token count for"),
		),
	)
	s.AddTool(estimateTool, handleEstimate(rec))

	return s
}

func handleOptimize(rec *metrics.Recorder) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		in := cleaner.Intensity(request.GetString("intensity", string(cleaner.Soft)))
		if !in.Valid() {
			return mcp.NewToolResultError("intensity must be one of: soft, aggressive"), nil
		}

		start := time.Now()
		res := cleaner.Clean(text, in)
		rec.ObserveClean("optimize_context", res, time.Since(start))

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(res.Text),
				mcp.NewTextContent(FormatStats(res)),
			},
		}, nil
	}
}

func handleEstimate(rec *metrics.Recorder) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		rec.ObserveEstimate("estimate_tokens")
		return mcp.NewToolResultText(FormatEstimate(cleaner.Analyze(text))), nil
	}
}

var printer = message.NewPrinter(language.English)

// FormatStats renders the stats block that follows the cleaned text.
func FormatStats(res cleaner.Result) string {
	return printer.Sprintf("\n---\n"+
		"📊 TokenSaver stats:\n"+
		"  Original:  %d chars\n"+
		"  Cleaned:   %d chars\n"+
		"  Saved:     %d chars (%s%%)\n"+
		"  Est. token savings: ~%d",
		res.OriginalChars, res.CleanedChars, res.SavedChars, res.SavedPct, res.EstimatedTokenSavings)
}

// FormatEstimate renders an estimate_tokens reply.
func FormatEstimate(b cleaner.Breakdown) string {
	return printer.Sprintf("Estimated tokens: ~%d\nCharacters: %d\n(CJK chars: %d, other: %d)",
		b.Tokens, b.Chars, b.CJK, b.Other)
}
