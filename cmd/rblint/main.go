package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rblint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rblint",
	Short: "A fast linter for Ruby scripts",
	Long:  `rblint finds wasteful patterns in Ruby code and rewrites them automatically`,
}

// buildCLI wires subcommands and persistent flags onto the root command.
func buildCLI() *cobra.Command {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0=from config)")

	return rootCmd
}

func main() {
	// Exit code 1 is reserved for lint findings; tool failures use 2.
	if err := buildCLI().Execute(); err != nil {
		os.Exit(2)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color tri-state against the output stream.
func useColor(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch mode {
	case "on":
		color.NoColor = false
		return true, nil
	case "off":
		return false, nil
	}
	return isTerminal(os.Stdout), nil
}
