// Package cleaner reduces the character and token footprint of pasted text
// without changing its meaning: an ordered list of whitespace and
// redundancy rewrites plus a cheap token estimate.
package cleaner

// stage is a single text rewrite. Stages never fail.
type stage func(string) string

// softStages always run, in this order.
var softStages = []stage{
	normalizeLineEndings, // 1. CRLF → LF
	stripTrailingSpace,   // 2. trailing horizontal whitespace
	collapseBlankIndent,  // 3. 4+ space indent-only lines → empty
	collapseBlankRuns,    // 4. 3+ newlines → 2
	collapseInnerSpace,   // 5. mid-line runs → 1 space
	removeZeroWidth,      // 6. ZWSP, ZWNJ, ZWJ, BOM
	foldUnicodeSpace,     // 7. NBSP and friends → ' '
	trimOuter,            // 8. outer trim
}

// aggressiveStages are appended after softStages for Aggressive.
var aggressiveStages = []stage{
	collapseAllSpace,      // 9. every horizontal run → 1 space
	removeBlankLines,      // 10. no blank lines
	collapseRepeatedPunct, // 11. "!!!!!" → "!!!"
	removeSeparatorLines,  // 12. "-----" lines
	collapseRepeatedWords, // 13. "the the the" → "the"
	trimOuter,             // 14. final trim
}

// maxPasses bounds the fixed-point loop in run. Real input settles after
// one pass, rarely two (a zero-width space between two spaces only turns
// into a collapsible run once stage 6 has removed it).
const maxPasses = 8

// Clean normalizes raw at the given intensity. It is a pure, total
// function: every string is valid input and no error is possible.
// Unrecognized intensities run as Soft.
//
// Flow:
//  1. Soft stages until the text stops changing.
//  2. Aggressive only: aggressive stages until the text stops changing.
//  3. Compute character counts, percentage and token savings.
func Clean(raw string, in Intensity) Result {
	in = in.effective()

	text := run(softStages, raw)
	if in == Aggressive {
		text = run(aggressiveStages, text)
	}

	return newResult(raw, text, in)
}

// run applies stages in order, repeating the whole list until a pass
// leaves the text unchanged. The repetition is what makes Clean a fixed
// point: Clean(Clean(s).Text) == Clean(s).
func run(stages []stage, text string) string {
	for pass := 0; pass < maxPasses; pass++ {
		next := text
		for _, st := range stages {
			next = st(next)
		}
		if next == text {
			break
		}
		text = next
	}
	return text
}
