package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"prism/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "Compiler-style source diagnostic renderer",
	Long:  `Prism renders compiler-style diagnostics: a file:line:column header, a colored severity label, and the offending source excerpt with the span underlined`,
}

// main wires the subcommands and persistent flags, then executes the root
// command. A failed command exits with status 1; cobra already printed the
// error.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(spanCmd)
	rootCmd.AddCommand(versionCmd)

	// Пустое значение = взять режим из prism.toml (или auto).
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// configureColor applies the effective color mode to the global color
// switch. The flag wins over the config file; an empty mode means auto.
func configureColor(cmd *cobra.Command, configMode string) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if mode == "" {
		mode = configMode
	}

	switch mode {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("unknown color mode %q (must be auto, on, or off)", mode)
	}
	return nil
}
