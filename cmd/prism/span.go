package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"prism/internal/source"
)

const fallbackTermWidth = 80

var spanCmd = &cobra.Command{
	Use:   "span <file> <start> <end>",
	Short: "Resolve a byte-offset span to line/column positions",
	Long:  `Resolve a byte-offset span to its one-based line and column positions and echo the line it starts on, truncated to the terminal width`,
	Args:  cobra.ExactArgs(3),
	RunE:  runSpan,
}

func runSpan(cmd *cobra.Command, args []string) error {
	cfg, err := loadPrismConfig(".")
	if err != nil {
		return err
	}
	if err := configureColor(cmd, cfg.Render.Color); err != nil {
		return err
	}

	start, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid start offset %q: %w", args[1], err)
	}
	end, err := strconv.ParseUint(args[2], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid end offset %q: %w", args[2], err)
	}

	fs := source.NewFileSet()
	if _, err := fs.Load(args[0]); err != nil {
		return fmt.Errorf("failed to load %q: %w", args[0], err)
	}

	sp := source.NewSpan(args[0], uint32(start), uint32(end))
	if err := validateSpan(fs, sp); err != nil {
		return err
	}

	f, _ := fs.GetByName(sp.Name)
	from := f.LineColAt(sp.Start)
	to := f.LineColAt(sp.End)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:%d:%d-%d:%d (%d bytes)\n",
		sp.Name, from.Line+1, from.Col+1, to.Line+1, to.Col+1, sp.Len())
	fmt.Fprintln(out, fitToWidth(f.LineAt(sp.Start), terminalWidth()))
	return nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallbackTermWidth
}

// fitToWidth shortens value to the given display width, accounting for
// wide runes, and marks the cut with an ellipsis.
func fitToWidth(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
