package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rblint/internal/config"
	"rblint/internal/diagfmt"
	"rblint/internal/driver"
	"rblint/internal/rules"
	"rblint/internal/rules/strsub"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.rb|directory>",
	Short: "Lint a Ruby file or directory",
	Long:  `Run every enabled rule over the given file, or over all *.rb files within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("no-cache", false, "disable the persistent result cache")
}

// builtinRules lists every rule the binary ships with.
func builtinRules() []rules.Rule {
	return []rules.Rule{
		strsub.New(),
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	res, cfg, err := lintTarget(cmd, targetPath, jobs, noCache)
	if err != nil {
		return err
	}

	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	if maxDiags <= 0 {
		maxDiags = cfg.MaxDiagnostics
	}
	bag := res.Bag(maxDiags)

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "json":
		err = diagfmt.JSON(cmd.OutOrStdout(), bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
			IncludePreviews:  suggest,
		})
		if err != nil {
			return err
		}
	default:
		colorize, err := useColor(cmd)
		if err != nil {
			return err
		}
		diagfmt.Pretty(cmd.OutOrStdout(), bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     colorize,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			ShowFixes: suggest,
		})
	}

	// Info-level findings are advisory and do not fail the run.
	if bag.HasWarnings() {
		os.Exit(1)
	}
	return nil
}

// lintTarget runs the driver over a file or directory, wiring config,
// logging, and the result cache.
func lintTarget(cmd *cobra.Command, targetPath string, jobs int, noCache bool) (*driver.Result, *config.Config, error) {
	info, err := os.Stat(targetPath)
	if err != nil {
		return nil, nil, err
	}

	startDir := targetPath
	if !info.IsDir() {
		startDir = filepath.Dir(targetPath)
	}
	cfg, err := config.Discover(startDir)
	if err != nil {
		return nil, nil, err
	}
	enabled, err := cfg.Resolve(builtinRules())
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	var cache *driver.DiskCache
	if !noCache {
		cache, err = driver.OpenDiskCache("rblint")
		if err != nil {
			log.WithError(err).Debug("disk cache unavailable")
			cache = nil
		}
	}

	opts := driver.Options{
		Config: cfg,
		Rules:  enabled,
		Jobs:   jobs,
		Cache:  cache,
		Log:    log,
	}

	var res *driver.Result
	if info.IsDir() {
		res, err = driver.CheckDir(cmd.Context(), targetPath, opts)
	} else {
		res, err = driver.CheckFile(cmd.Context(), targetPath, opts)
	}
	if err != nil {
		return nil, nil, err
	}
	return res, cfg, nil
}
