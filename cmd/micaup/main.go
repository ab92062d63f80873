package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"micaup/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "micaup [flags] <file.mica>...",
	Short: "Mica source upgrade assistant",
	Long: `micaup migrates Mica contracts to the current language version. It
compiles the given units, proposes rule-based source changes, and applies
the accepted ones one at a time, recompiling after each, until nothing is
left to do. Without --accept-safe or --accept-unsafe it only reports.

Not every breaking change is covered; findings the rules cannot fix are
reported for manual migration.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpgrade,
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color mode against the output terminal.
func useColor(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
