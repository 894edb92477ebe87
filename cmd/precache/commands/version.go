package commands

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.trai.ch/precache/internal/build"
	"go.trai.ch/precache/internal/ui/output"
	"go.trai.ch/precache/internal/ui/style"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		// Printing the version needs no config, logging or tracing.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			name := output.New(w).String("precache").Bold().Foreground(termenv.RGBColor(string(style.Iris)))
			_, _ = fmt.Fprintf(w, "%s version %s (commit: %s, date: %s)\n", name, build.Version, build.Commit, build.Date)
		},
	}
}
