package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/precache/internal/ui/output"
)

func TestProfileFor(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("NO_COLOR", "1")
	t.Setenv("CI", "true")
	assert.Equal(t, termenv.Ascii, output.ProfileFor(&buf), "NO_COLOR should win over CI")

	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.ProfileFor(&buf), "CI should force ANSI")

	t.Setenv("CI", "")
	assert.Equal(t, termenv.Ascii, output.ProfileFor(&buf), "a buffer is not a terminal")
}

func TestIsCI(t *testing.T) {
	for value, want := range map[string]bool{"true": true, "1": true, "": false, "false": false} {
		t.Setenv("CI", value)
		assert.Equal(t, want, output.IsCI(), "CI=%q", value)
	}
}

func TestNew(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := output.New(&buf)
	assert.NotNil(t, out)

	_, _ = out.WriteString(out.String("test").Foreground(termenv.ANSIRed).String())
	assert.Equal(t, "test", buf.String())
}

func TestNew_Nil(t *testing.T) {
	// Should default to stderr, we just check it doesn't panic
	out := output.New(nil)
	assert.NotNil(t, out)
}
