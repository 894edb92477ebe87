// Package output creates termenv outputs whose color profile matches where the bytes end up.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// fder is implemented by writers backed by a file descriptor, such as *os.File.
type fder interface {
	Fd() uintptr
}

// ProfileFor returns the color profile to use when writing to w.
// NO_COLOR forces Ascii. CI environments get ANSI for broad compatibility with log viewers.
// Terminals get their detected profile, anything else is treated as a plain pipe.
func ProfileFor(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if IsCI() {
		return termenv.ANSI
	}
	if f, ok := w.(fder); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // File descriptors fit in int
		return termenv.EnvColorProfile()
	}
	return termenv.Ascii
}

// IsCI reports whether the process runs under a CI system.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// New creates a new termenv.Output for w using ProfileFor.
// A nil writer selects os.Stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ProfileFor(w)),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
