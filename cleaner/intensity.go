package cleaner

import "strings"

// Intensity selects which rewrite stages run.
type Intensity string

const (
	// Soft only normalizes whitespace. Code indentation survives.
	Soft Intensity = "soft"

	// Aggressive additionally removes blank lines, separator lines and
	// repeated words/punctuation. Meant for prose and logs, not code.
	Aggressive Intensity = "aggressive"
)

// Valid reports whether in is one of the known intensities.
func (in Intensity) Valid() bool {
	return in == Soft || in == Aggressive
}

// String implements fmt.Stringer.
func (in Intensity) String() string {
	return string(in)
}

// ParseIntensity maps s to an Intensity. Matching ignores case and
// surrounding whitespace; anything unrecognized becomes Soft.
func ParseIntensity(s string) Intensity {
	if Intensity(strings.ToLower(strings.TrimSpace(s))) == Aggressive {
		return Aggressive
	}
	return Soft
}

// effective returns the intensity Clean actually runs for in.
func (in Intensity) effective() Intensity {
	if in == Aggressive {
		return Aggressive
	}
	return Soft
}
