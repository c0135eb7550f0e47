package cleaner

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// hspace matches one horizontal whitespace character: anything a browser
// regex treats as \s except the line feed.
const hspace = `[\t\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

// inlineSpace is hspace without the carriage return, which still marks a
// line break for a lone CR.
const inlineSpace = `[\t\v\f \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

// jsSpace is hspace plus the line feed.
const jsSpace = `[\n\t\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

var (
	reTrailingSpace = regexp.MustCompile(hspace + `+(\n|$)`)
	reSpaceBeforeCR = regexp.MustCompile(inlineSpace + `+\r`)
	reBlankIndent   = regexp.MustCompile(`(?m)^ {4,}\n`)
	reBlankRun      = regexp.MustCompile(`\n{3,}`)
	reHSpaceRun     = regexp.MustCompile(hspace + `+`)
	reInlineRun     = regexp.MustCompile(inlineSpace + `+`)
	reBlankLine     = regexp.MustCompile(`\n` + jsSpace + `*\n`)
	reSeparatorLine = regexp.MustCompile(`(?m)^[-=*_~#]{4,}` + hspace + `*(?:\n|$)`)

	// Backreferences are outside RE2, so these two run on regexp2 with
	// ECMAScript semantics (ASCII \w and \b).
	reRepeatedPunct = regexp2.MustCompile(`([.!?,;])\1{2,}`, regexp2.ECMAScript)
	reRepeatedWord  = regexp2.MustCompile(`\b(\w+)( \1){2,}\b`, regexp2.ECMAScript|regexp2.IgnoreCase)

	zeroWidth = strings.NewReplacer("\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "")
)

// isHSpace reports whether r is in the hspace class.
func isHSpace(r rune) bool {
	switch r {
	case '\t', '\v', '\f', '\r', ' ', 0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

func isJSSpace(r rune) bool {
	return r == '\n' || isHSpace(r)
}

// isFancySpace reports whether r is a Unicode space variant that folds to ' '.
func isFancySpace(r rune) bool {
	switch r {
	case 0x00A0, 0x1680, 0x202F, 0x205F, 0x3000:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

// ── Soft stages ─────────────────────────────────────────────────────

func normalizeLineEndings(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// stripTrailingSpace drops whitespace before a line feed, before a lone
// CR and at the end of the text.
func stripTrailingSpace(s string) string {
	s = reTrailingSpace.ReplaceAllString(s, "$1")
	return reSpaceBeforeCR.ReplaceAllString(s, "\r")
}

// collapseBlankIndent empties lines made of 4+ spaces. The threshold is
// deliberately literal: shorter indent-only lines are left alone.
func collapseBlankIndent(s string) string {
	return reBlankIndent.ReplaceAllString(s, "\n")
}

func collapseBlankRuns(s string) string {
	return reBlankRun.ReplaceAllString(s, "\n\n")
}

// collapseInnerSpace folds every run of 2+ horizontal whitespace that sits
// between two characters on the same line. Runs starting a line are
// indentation and are kept verbatim. A lone CR counts as a line break.
func collapseInnerSpace(s string) string {
	locs := reInlineRun.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start == 0 || isLineBreak(s[start-1]) || end == len(s) || isLineBreak(s[end]) {
			continue
		}
		if utf8.RuneCountInString(s[start:end]) < 2 {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteByte(' ')
		last = end
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

func isLineBreak(c byte) bool {
	return c == '\n' || c == '\r'
}

func removeZeroWidth(s string) string {
	return zeroWidth.Replace(s)
}

// foldUnicodeSpace copies bytes it does not fold, so invalid UTF-8 passes
// through untouched.
func foldUnicodeSpace(s string) string {
	if strings.IndexFunc(s, isFancySpace) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isFancySpace(r) {
			b.WriteByte(' ')
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func trimOuter(s string) string {
	return strings.TrimFunc(s, isJSSpace)
}

// ── Aggressive stages ───────────────────────────────────────────────

func collapseAllSpace(s string) string {
	return reHSpaceRun.ReplaceAllString(s, " ")
}

func removeBlankLines(s string) string {
	return reBlankLine.ReplaceAllString(s, "\n")
}

func collapseRepeatedPunct(s string) string {
	return replace2(reRepeatedPunct, s, "$1$1$1")
}

// removeSeparatorLines drops decorative rules such as "-----" or "====="
// together with their line break.
func removeSeparatorLines(s string) string {
	return reSeparatorLine.ReplaceAllString(s, "")
}

func collapseRepeatedWords(s string) string {
	return replace2(reRepeatedWord, s, "$1")
}

// replace2 runs a regexp2 substitution over s. regexp2 decodes its input
// to runes, which would turn invalid bytes into U+FFFD, so only the valid
// UTF-8 stretches of s are handed to it and everything else is copied
// verbatim. Neither pattern can match across U+FFFD, so the result is the
// same as a whole-string replace.
func replace2(re *regexp2.Regexp, s, repl string) string {
	if utf8.ValidString(s) {
		return replaceValid(re, s, repl)
	}

	var b strings.Builder
	b.Grow(len(s))
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString(replaceValid(re, s[start:i], repl))
			b.WriteByte(s[i])
			start = i + 1
		}
		i += size
	}
	b.WriteString(replaceValid(re, s[start:], repl))
	return b.String()
}

// replaceValid is replace2 for valid UTF-8. regexp2 only errors on a
// match timeout, and none is set; s is returned unchanged if that ever
// happens so Clean stays total.
func replaceValid(re *regexp2.Regexp, s, repl string) string {
	if s == "" {
		return s
	}
	out, err := re.Replace(s, repl, -1, -1)
	if err != nil {
		return s
	}
	return out
}
