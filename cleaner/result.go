package cleaner

import (
	"math"
	"strconv"
)

// Result is the outcome of a single Clean call. It carries no identity
// beyond the call that produced it.
type Result struct {
	// Text is the normalized output.
	Text string `json:"text"`

	// OriginalChars and CleanedChars are UTF-16 lengths of input and output.
	OriginalChars int `json:"original_chars"`
	CleanedChars  int `json:"cleaned_chars"`

	// SavedChars is OriginalChars - CleanedChars, never negative.
	SavedChars int `json:"saved_chars"`

	// SavedPct is the share of characters removed, one decimal place.
	SavedPct string `json:"saved_pct"`

	// EstimatedTokenSavings is EstimateTokens(raw) - EstimateTokens(Text).
	// It can be zero and, for odd inputs, negative.
	EstimatedTokenSavings int `json:"estimated_token_savings"`

	// Intensity is the profile that actually ran.
	Intensity Intensity `json:"intensity"`
}

// Changed reports whether cleaning removed anything.
func (r Result) Changed() bool {
	return r.SavedChars > 0
}

func newResult(raw, text string, in Intensity) Result {
	originalChars := Len16(raw)
	cleanedChars := Len16(text)

	saved := originalChars - cleanedChars
	if saved < 0 {
		saved = 0
	}

	return Result{
		Text:                  text,
		OriginalChars:         originalChars,
		CleanedChars:          cleanedChars,
		SavedChars:            saved,
		SavedPct:              FormatPercent(saved, originalChars),
		EstimatedTokenSavings: EstimateTokens(raw) - EstimateTokens(text),
		Intensity:             in,
	}
}

// Rebase recomputes res's counts against raw, for callers that cleaned a
// converted form of raw (an HTML paste turned into Markdown, say).
func Rebase(raw string, res Result) Result {
	return newResult(raw, res.Text, res.Intensity)
}

// FormatPercent renders part/whole*100 with one decimal place. A zero
// whole yields "0.0". Exact halves round up (12.25 -> "12.3"), the way a
// browser's Number.toFixed does; strconv alone would round them to even.
func FormatPercent(part, whole int) string {
	if whole <= 0 {
		return "0.0"
	}
	pct := float64(part) / float64(whole) * 100

	// Only multiples of 0.25 can sit exactly on a .x5 boundary.
	if q := pct * 4; q == math.Trunc(q) && math.Mod(q, 2) == 1 {
		tenths := int64(math.Floor(pct*10)) + 1
		return strconv.FormatInt(tenths/10, 10) + "." + strconv.FormatInt(tenths%10, 10)
	}
	return strconv.FormatFloat(pct, 'f', 1, 64)
}
