package cleaner

// EstimateTokens provides a fast token count estimate without a tokenizer.
//
// Heuristic: ceil(cjk/2 + rest/4).
//
//   - CJK is every code point in U+4E00–U+9FFF (Han) or U+3040–U+30FF
//     (Hiragana/Katakana); that text averages ~2 chars/token.
//   - Everything else is counted in UTF-16 code units at ~4 chars/token.
//
// This is a cheap proxy for reporting savings, not a subword model.
func EstimateTokens(text string) int {
	cjk, rest := classify(text)
	return estimate(cjk, rest)
}

// Breakdown is the character-class view behind a token estimate.
type Breakdown struct {
	Tokens int `json:"tokens"`
	Chars  int `json:"chars"`
	CJK    int `json:"cjk_chars"`
	Other  int `json:"other_chars"`
}

// Analyze returns the token estimate for text together with the character
// counts it was derived from.
func Analyze(text string) Breakdown {
	cjk, rest := classify(text)
	return Breakdown{
		Tokens: estimate(cjk, rest),
		Chars:  cjk + rest,
		CJK:    cjk,
		Other:  rest,
	}
}

// Len16 returns the length of s in UTF-16 code units, the unit every
// character count in this package is expressed in.
func Len16(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3040 && r <= 0x30FF)
}

// classify splits text into CJK code points and the remaining UTF-16 units.
func classify(text string) (cjk, rest int) {
	for _, r := range text {
		switch {
		case isCJK(r):
			cjk++
		case r >= 0x10000:
			rest += 2
		default:
			rest++
		}
	}
	return cjk, rest
}

// estimate computes ceil(cjk/2 + rest/4) in integer arithmetic.
func estimate(cjk, rest int) int {
	return (2*cjk + rest + 3) / 4
}
