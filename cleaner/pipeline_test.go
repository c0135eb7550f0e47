package cleaner

import (
	"strings"
	"testing"
)

func TestClean_Soft(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \n\t \n  ", ""},
		{"crlf", "a\r\nb\r\nc", "a\nb\nc"},
		{"blank run", "a\n\n\n\n\nb", "a\n\nb"},
		{"single blank line kept", "a\n\nb", "a\n\nb"},
		{"mid-line spaces", "a    b", "a b"},
		{"every run collapses", "a  b  c", "a b c"},
		{"tabs mid-line", "key:\t\tvalue", "key: value"},
		{"trailing whitespace", "a  \t\nb \nc\t", "a\nb\nc"},
		{"indentation kept", "func f() {\n    return 1\n}", "func f() {\n    return 1\n}"},
		{"blank indent line", "a\n    \nb", "a\n\nb"},
		{"zero width", "a\u200bb\u200c\u200dc\ufeff", "abc"},
		{"unicode spaces", "a\u00a0b\u3000c\u2009d", "a b c d"},
		{"nbsp run", "a\u00a0\u00a0b", "a b"},
		{"zero width between spaces", "a \u200b b", "a b"},
		{"outer trim", "\n\n  hello  \n\n", "hello"},
		{"separator kept", "a\n----------\nb", "a\n----------\nb"},
		{"punctuation kept", "wow.......", "wow......."},
		{"repeated words kept", "the the the cat", "the the the cat"},
		{"space before lone cr", "a \rb", "a\rb"},
		{"run before lone cr", "a  \t\rb", "a\rb"},
		{"indent after lone cr", "x\r    y", "x\r    y"},
		{"invalid utf-8 kept", "\xff\xfe  a", "\xff\xfe a"},
		{"invalid utf-8 next to nbsp", "\xff\u00a0b", "\xff b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.in, Soft).Text
			if got != tt.want {
				t.Errorf("Clean(%q, soft) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_Aggressive(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"separator removed", "intro\n----------\nbody", "intro\nbody"},
		{"separator alone", "----------", ""},
		{"mixed separator", "a\n-=-=-=\nb", "a\nb"},
		{"separator with trailing space", "a\n====  \nb", "a\nb"},
		{"short rule kept", "a\n###\nb", "a\n###\nb"},
		{"heading kept", "#### Title\nbody", "#### Title\nbody"},
		{"repeated words", "the the the cat", "the cat"},
		{"repeated words case-insensitive", "The the THE cat", "The cat"},
		{"two repeats kept", "very very good", "very very good"},
		{"word boundary", "go go go gopher", "go gopher"},
		{"punctuation bound", "wow.......", "wow..."},
		{"mixed punctuation", "no!!!!!! yes??", "no!!! yes??"},
		{"three kept", "wait...", "wait..."},
		{"blank lines removed", "a\n\n\nb\n\nc", "a\nb\nc"},
		{"indentation flattened", "func f() {\n    return 1\n}", "func f() {\n return 1\n}"},
		{"lone cr folds to space", "a \rb", "a b"},
		{"invalid utf-8 before words", "x\xff the the the", "x\xff the"},
		{"invalid utf-8 after punctuation", "wow.....\xff", "wow...\xff"},
		{"invalid utf-8 between words", "go\xffgo go go", "go\xffgo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.in, Aggressive).Text
			if got != tt.want {
				t.Errorf("Clean(%q, aggressive) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_EndToEnd(t *testing.T) {
	raw := "Hello   world!!!!\n\n\n\nThis   is   a   test.\n----\n"

	soft := Clean(raw, Soft)
	if want := "Hello world!!!!\n\nThis is a test.\n----"; soft.Text != want {
		t.Errorf("soft = %q, want %q", soft.Text, want)
	}

	aggr := Clean(raw, Aggressive)
	if want := "Hello world!!!\nThis is a test."; aggr.Text != want {
		t.Errorf("aggressive = %q, want %q", aggr.Text, want)
	}

	if aggr.SavedChars <= soft.SavedChars {
		t.Errorf("aggressive saved %d chars, soft saved %d; want aggressive > soft",
			aggr.SavedChars, soft.SavedChars)
	}
}

// samples is a grab bag of realistic and awkward inputs for the
// property-style tests below.
var samples = []string{
	"",
	"   ",
	"plain text",
	"Hello   world!!!!\n\n\n\nThis   is   a   test.\n----\n",
	"def f():\r\n    return 1\r\n\r\n\r\n\r\nprint(f())\r\n",
	"a \u200b b\u00a0\u00a0c\u3000\u3000d",
	"\ufeffBOM first line  \n\n\n\nsecond\t\t\tline\t\n",
	"log: retrying......... failed!!!!! ok?????\nlog: done",
	"=====\nTitle\n=====\n\n\n\nBody body body body text.\n~~~~~~~~\n",
	"____ ____ ____\nnext",
	"中文   文本\n\n\n\n日本語　テキスト",
	"    \n    \n\n\n    indented after blanks",
	"x\v\f y  \r z",
	"bad \xff\xfe  bytes!!!!! the the the\xff",
}

func TestClean_SoftIsFixedPoint(t *testing.T) {
	for _, s := range samples {
		once := Clean(s, Soft).Text
		twice := Clean(once, Soft).Text
		if once != twice {
			t.Errorf("soft not idempotent for %q:\n once  %q\n twice %q", s, once, twice)
		}
	}
}

func TestClean_AggressiveConverges(t *testing.T) {
	for _, s := range samples {
		once := Clean(s, Aggressive)
		again := Clean(once.Text, Aggressive)
		if again.Text != once.Text {
			t.Errorf("aggressive shrank again for %q:\n once  %q\n again %q", s, once.Text, again.Text)
		}
	}
}

func TestClean_NeverGrows(t *testing.T) {
	for _, s := range samples {
		for _, in := range []Intensity{Soft, Aggressive} {
			res := Clean(s, in)
			if res.CleanedChars > res.OriginalChars {
				t.Errorf("Clean(%q, %s) grew: %d -> %d", s, in, res.OriginalChars, res.CleanedChars)
			}
			if res.SavedChars < 0 {
				t.Errorf("Clean(%q, %s) reported negative savings %d", s, in, res.SavedChars)
			}
		}
	}
}

func TestClean_AggressiveRemovesAtLeastSoft(t *testing.T) {
	for _, s := range samples {
		soft := Clean(s, Soft)
		aggr := Clean(s, Aggressive)
		if aggr.CleanedChars > soft.CleanedChars {
			t.Errorf("aggressive longer than soft for %q: %d > %d", s, aggr.CleanedChars, soft.CleanedChars)
		}
	}
}

func TestClean_UnknownIntensityIsSoft(t *testing.T) {
	raw := "Hello   world!!!!\n\n\n\n----\n"
	want := Clean(raw, Soft)

	for _, in := range []Intensity{"", "extreme", "AGGRESSIVE "} {
		got := Clean(raw, in)
		if got != want {
			t.Errorf("Clean(raw, %q) = %+v, want soft result %+v", in, got, want)
		}
	}
}

func TestClean_ResultCounts(t *testing.T) {
	res := Clean("a    b", Soft)

	if res.OriginalChars != 6 || res.CleanedChars != 3 || res.SavedChars != 3 {
		t.Errorf("counts = %d/%d/%d, want 6/3/3", res.OriginalChars, res.CleanedChars, res.SavedChars)
	}
	if res.SavedPct != "50.0" {
		t.Errorf("SavedPct = %q, want %q", res.SavedPct, "50.0")
	}
	if res.EstimatedTokenSavings != 1 {
		t.Errorf("EstimatedTokenSavings = %d, want 1", res.EstimatedTokenSavings)
	}
	if res.Intensity != Soft {
		t.Errorf("Intensity = %q, want soft", res.Intensity)
	}
	if !res.Changed() {
		t.Error("Changed() = false, want true")
	}
}

func TestClean_EmptyInput(t *testing.T) {
	res := Clean("", Aggressive)
	if res.SavedPct != "0.0" {
		t.Errorf("SavedPct = %q, want %q", res.SavedPct, "0.0")
	}
	if res.OriginalChars != 0 || res.CleanedChars != 0 || res.SavedChars != 0 || res.EstimatedTokenSavings != 0 {
		t.Errorf("empty input produced non-zero counts: %+v", res)
	}
	if res.Changed() {
		t.Error("Changed() = true for empty input")
	}
}

func TestClean_NothingToClean(t *testing.T) {
	res := Clean("already clean", Soft)
	if res.Changed() || res.SavedPct != "0.0" {
		t.Errorf("got %+v, want zero savings", res)
	}
}

func TestClean_CountsUTF16(t *testing.T) {
	// Each emoji is a surrogate pair.
	res := Clean("😀  😀", Soft)
	if res.OriginalChars != 6 || res.CleanedChars != 5 || res.SavedChars != 1 {
		t.Errorf("counts = %d/%d/%d, want 6/5/1", res.OriginalChars, res.CleanedChars, res.SavedChars)
	}
}

func TestCollapseInnerSpace_KeepsIndentation(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"    indented", "    indented"},
		{"x\n    y  z", "x\n    y z"},
		{"\t\tcode\t\t// note", "\t\tcode // note"},
		{"no runs here", "no runs here"},
		{"a b", "a b"},
		{"a  \rb", "a  \rb"},
		{"a\r  b", "a\r  b"},
		{"a  b\rc  d", "a b\rc d"},
	}
	for _, tt := range tests {
		if got := collapseInnerSpace(tt.in); got != tt.want {
			t.Errorf("collapseInnerSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollapseBlankIndent_Threshold(t *testing.T) {
	if got := collapseBlankIndent("a\n    \nb"); got != "a\n\nb" {
		t.Errorf("4 spaces: got %q", got)
	}
	if got := collapseBlankIndent("a\n   \nb"); got != "a\n   \nb" {
		t.Errorf("3 spaces should be left alone: got %q", got)
	}
}

func TestClean_LargeInput(t *testing.T) {
	line := "word   word\t\tword  \n"
	raw := strings.Repeat(line, 5000)

	res := Clean(raw, Soft)
	if strings.Contains(res.Text, "  ") {
		t.Error("soft output still contains a double space")
	}
	if res.SavedChars == 0 {
		t.Error("expected savings on large input")
	}
}
