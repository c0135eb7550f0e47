// Package paste decides what happens to a single paste in the interactive
// host: clean it, or let it through untouched.
package paste

import (
	"sync/atomic"

	"github.com/use-agent/tokensaver/cleaner"
	"github.com/use-agent/tokensaver/prefs"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Outcome is a paste that was worth replacing.
type Outcome struct {
	Text   string
	Result cleaner.Result
}

// Counter accumulates characters saved during a session.
type Counter struct {
	total atomic.Int64
}

// Add records n saved characters and returns the new total.
func (c *Counter) Add(n int) int64 { return c.total.Add(int64(n)) }

// Total returns the characters saved so far.
func (c *Counter) Total() int64 { return c.total.Load() }

// Reset zeroes the counter.
func (c *Counter) Reset() { c.total.Store(0) }

// Interceptor applies the user's preferences to each paste. Prefs is read
// on every call, so a settings change takes effect on the next paste.
type Interceptor struct {
	Prefs   func() prefs.Prefs
	Counter *Counter
}

// Handle cleans raw and reports whether the paste should be replaced.
// It returns false, leaving the paste alone, when interception is off,
// raw is empty or shorter than MinChars, or cleaning would save nothing.
func (i *Interceptor) Handle(raw string) (Outcome, bool) {
	p := prefs.Default()
	if i.Prefs != nil {
		p = i.Prefs()
	}

	if !p.Enabled || raw == "" || cleaner.Len16(raw) < p.MinChars {
		return Outcome{}, false
	}

	res := cleaner.Clean(raw, p.Intensity)
	if res.SavedChars <= 0 {
		return Outcome{}, false
	}

	if i.Counter != nil {
		i.Counter.Add(res.SavedChars)
	}
	return Outcome{Text: res.Text, Result: res}, true
}

var printer = message.NewPrinter(language.English)

// Toast renders the one-line notification shown after a cleaned paste.
func Toast(res cleaner.Result) string {
	return printer.Sprintf("TokenSaver — saved %d chars (~%d tokens, %s%%)",
		res.SavedChars, res.EstimatedTokenSavings, res.SavedPct)
}

// Stats is the session summary shown by the settings view.
type Stats struct {
	SavedChars  int64
	SavedTokens int64
}

// Summary converts a character total to the popup's figures. Tokens are
// the total divided by four, rounded up.
func Summary(total int64) Stats {
	if total < 0 {
		total = 0
	}
	return Stats{SavedChars: total, SavedTokens: (total + 3) / 4}
}

// String renders s with thousands separators.
func (s Stats) String() string {
	return printer.Sprintf("%d chars saved (~%d tokens)", s.SavedChars, s.SavedTokens)
}
