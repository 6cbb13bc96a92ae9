package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"rblint/internal/diag"
	"rblint/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.rb|directory>",
	Short: "Apply available fixes to a Ruby file or directory",
	Long:  "Run the linter, collect fix suggestions, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("diff", false, "print resulting changes without writing files")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	diffOnly, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	// Fixes must be built against the bytes being rewritten, so the
	// result cache stays out of the way here.
	res, _, err := lintTarget(cmd, targetPath, jobs, true)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	diagnostics := make([]diag.Diagnostic, 0)
	for _, f := range res.Files {
		diagnostics = append(diagnostics, f.Bag.Items()...)
	}

	opts := fix.ApplyOptions{Mode: mode, TargetID: targetID, DryRun: diffOnly}
	applyRes, applyErr := fix.Apply(res.FileSet, diagnostics, opts)
	return reportApplyResult(cmd, applyRes, applyErr, diffOnly)
}

func reportApplyResult(cmd *cobra.Command, res *fix.ApplyResult, applyErr error, diffOnly bool) error {
	if res == nil {
		return applyErr
	}
	out := cmd.OutOrStdout()

	if len(res.Applied) > 0 {
		verb := "Applied"
		if diffOnly {
			verb = "Would apply"
		}
		fmt.Fprintf(out, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.Path
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability)
		}
	}

	if len(res.FileChanges) > 0 {
		if diffOnly {
			for _, change := range res.FileChanges {
				fmt.Fprintf(out, "--- %s\n", change.Path)
				out.Write(change.NewContent)
			}
		} else {
			fmt.Fprintln(out, "Updated files:")
			for _, change := range res.FileChanges {
				fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
			}
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if errors.Is(applyErr, fix.ErrNoFixes) {
		fmt.Fprintln(out, "No applicable fixes found.")
		return nil
	}
	return applyErr
}
