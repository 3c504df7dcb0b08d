package main

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"prism/internal/diag"
	"prism/internal/diagfmt"
	"prism/internal/source"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <file>",
	Short: "Render a diagnostic against a source file",
	Long:  `Render a full diagnostic block for a byte-offset span in a source file: header, severity label, message, source excerpt with underline, and any secondary locations`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

// init registers CLI flags for the render command used by runRender.
func init() {
	renderCmd.Flags().Uint32("start", 0, "span start byte offset")
	renderCmd.Flags().Uint32("end", 0, "span end byte offset")
	renderCmd.Flags().String("severity", "error", "severity (error|warning|info)")
	renderCmd.Flags().String("message", "", "diagnostic message")
	renderCmd.Flags().StringArray("note", nil, "secondary location as start:end:label or file:start:end:label (repeatable)")
	renderCmd.Flags().StringArray("also", nil, "extra source files to load for cross-file notes (repeatable)")
	renderCmd.Flags().Bool("warnings-as-errors", false, "render warnings with the error severity")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadPrismConfig(".")
	if err != nil {
		return err
	}
	if err := configureColor(cmd, cfg.Render.Color); err != nil {
		return err
	}

	start, err := cmd.Flags().GetUint32("start")
	if err != nil {
		return fmt.Errorf("failed to get start flag: %w", err)
	}
	end, err := cmd.Flags().GetUint32("end")
	if err != nil {
		return fmt.Errorf("failed to get end flag: %w", err)
	}
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		return fmt.Errorf("failed to get message flag: %w", err)
	}
	notes, err := cmd.Flags().GetStringArray("note")
	if err != nil {
		return fmt.Errorf("failed to get note flag: %w", err)
	}
	also, err := cmd.Flags().GetStringArray("also")
	if err != nil {
		return fmt.Errorf("failed to get also flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	sevStr, err := cmd.Flags().GetString("severity")
	if err != nil {
		return fmt.Errorf("failed to get severity flag: %w", err)
	}
	if !cmd.Flags().Changed("severity") && cfg.Render.Severity != "" {
		sevStr = cfg.Render.Severity
	}
	sev, err := parseSeverity(sevStr)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	paths := append([]string{args[0]}, also...)
	if err := loadAll(fs, paths); err != nil {
		return err
	}

	primary := source.NewSpan(args[0], start, end)
	if err := validateSpan(fs, primary); err != nil {
		return err
	}

	d := diag.New(sev, primary, message)
	for _, spec := range notes {
		span, label, err := parseNoteSpec(spec, args[0])
		if err != nil {
			return err
		}
		if err := validateSpan(fs, span); err != nil {
			return err
		}
		d = d.WithSecondary(label, span)
	}

	renderSev := d.Severity
	if warningsAsErrors && renderSev == diag.SevWarning {
		renderSev = diag.SevError
	}

	f := diagfmt.NewFormatter(cmd.OutOrStdout(), resolverFor(fs), diagfmt.TermStyler{})
	f.WriteDiagnostic(d, renderSev)
	return nil
}

// loadAll reads the given files concurrently and adds them to the FileSet.
// The FileSet itself is not safe for concurrent use, so only the disk reads
// run in parallel.
func loadAll(fs *source.FileSet, paths []string) error {
	type loaded struct {
		content []byte
		flags   source.FileFlags
	}
	results := make([]loaded, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			content, flags, err := source.ReadNormalized(path)
			if err != nil {
				return fmt.Errorf("failed to read %q: %w", path, err)
			}
			results[i] = loaded{content: content, flags: flags}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range paths {
		fs.Add(path, results[i].content, results[i].flags)
	}
	return nil
}

// resolverFor adapts a FileSet to the scanner-resolution capability the
// formatter consumes.
func resolverFor(fs *source.FileSet) diagfmt.ResolveScanner {
	return func(name string) diagfmt.ScannerView {
		f, ok := fs.GetByName(name)
		if !ok {
			return nil
		}
		return f
	}
}

func parseSeverity(s string) (diag.Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return diag.SevError, nil
	case "warning":
		return diag.SevWarning, nil
	case "info":
		return diag.SevInfo, nil
	}
	return 0, fmt.Errorf("unknown severity %q (must be error, warning, or info)", s)
}

// parseNoteSpec parses a --note value: either "start:end:label" for a span
// in the primary file, or "file:start:end:label" for a cross-file note.
// Labels may contain colons.
func parseNoteSpec(spec, defaultName string) (*source.Span, string, error) {
	if parts := strings.SplitN(spec, ":", 3); len(parts) == 3 {
		start, startErr := strconv.ParseUint(parts[0], 10, 32)
		end, endErr := strconv.ParseUint(parts[1], 10, 32)
		if startErr == nil && endErr == nil {
			return source.NewSpan(defaultName, uint32(start), uint32(end)), parts[2], nil
		}
	}

	parts := strings.SplitN(spec, ":", 4)
	if len(parts) != 4 {
		return nil, "", fmt.Errorf("invalid note %q (want start:end:label or file:start:end:label)", spec)
	}
	start, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return nil, "", fmt.Errorf("invalid note start in %q: %w", spec, err)
	}
	end, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return nil, "", fmt.Errorf("invalid note end in %q: %w", spec, err)
	}
	return source.NewSpan(parts[0], uint32(start), uint32(end)), parts[3], nil
}

// validateSpan rejects spans the renderer would treat as precondition
// violations: unknown sources, inverted ranges, offsets past EOF.
func validateSpan(fs *source.FileSet, sp *source.Span) error {
	f, ok := fs.GetByName(sp.Name)
	if !ok {
		return fmt.Errorf("source %q was not loaded (pass it via --also)", sp.Name)
	}
	if sp.Start > sp.End {
		return fmt.Errorf("span start %d is past its end %d", sp.Start, sp.End)
	}
	if int64(sp.End) > int64(len(f.Content)) {
		return fmt.Errorf("span end %d is past the end of %q (%d bytes)", sp.End, sp.Name, len(f.Content))
	}
	return nil
}
