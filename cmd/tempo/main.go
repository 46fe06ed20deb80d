package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	temperrors "github.com/tempo-ui/tempo/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔╦╗┌─┐┌┬┐┌─┐┌─┐
   ║ ├┤ │││├─┘│ │
   ╩ └─┘┴ ┴┴  └─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "tempo",
		Short: "A reactive scheduler with deterministic flush barriers",
		Long: `Tempo is a render/effect scheduler for Go.

State updates coalesce into render passes, effects run after commit,
and flush barriers make asynchronous work deterministic:

  • FlushSync settles synchronous updates and their effects
  • FlushAsync settles promise-chained work of any depth
  • WaitFor polls a predicate while firing due timers
  • VirtualClock makes timer-deferred work testable without sleeping`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var te *temperrors.TempoError
		if errors.As(err, &te) {
			fmt.Fprint(os.Stderr, te.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the Tempo ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
