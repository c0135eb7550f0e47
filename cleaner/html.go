package cleaner

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"
)

// HTMLConverter turns an HTML clipboard flavor into plain Markdown text so
// it can go through Clean. Clean itself never sees markup.
//
// The converter is created once and reused across calls (goroutine-safe).
type HTMLConverter struct {
	md *converter.Converter
}

// NewHTMLConverter initialises an HTMLConverter.
func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{md: newMarkdownConverter()}
}

// ToText converts html to Markdown. When Markdown conversion fails it falls
// back to the document's visible text. An error is returned only when the
// input cannot be parsed at all.
func (h *HTMLConverter) ToText(html string) (string, error) {
	md, err := h.md.ConvertString(html)
	if err == nil {
		return md, nil
	}
	slog.Warn("html: markdown conversion failed, falling back to visible text", "error", err)

	text, err := visibleText(html)
	if err != nil {
		return "", fmt.Errorf("html: parse: %w", err)
	}
	return text, nil
}

// CleanHTML converts html and cleans the result. Character and token
// counts compare against the raw HTML, since that is what was pasted.
func (h *HTMLConverter) CleanHTML(html string, in Intensity) (Result, error) {
	text, err := h.ToText(html)
	if err != nil {
		return Result{}, err
	}
	return Rebase(html, Clean(text, in)), nil
}

// visibleText extracts the text nodes of an HTML fragment with goquery.
func visibleText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript").Remove()
	return doc.Text(), nil
}
