// Package cmd implements csstool's cobra subcommands: check, fmt and
// dbg-parse. Grounded on vippsas-sqlcode's cli/cmd package layout (one
// file per subcommand, each registering itself with rootCmd from init).
package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/csstreelang/csscore/pkg/css"
)

var (
	rootCmd = &cobra.Command{
		Use:          "csstool",
		Short:        "csstool",
		SilenceUsage: true,
		Long:         `csstool parses, checks and reformats CSS Syntax Level 3 documents.`,
	}

	directory string
	verbose   bool

	log = logrus.New()
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "directory to look for .csstoolrc.yaml in")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug-level detail for each file processed")
	return rootCmd.Execute()
}

func init() {
	log.SetFormatter(&logrus.TextFormatter{})
}

func entryLogger() *logrus.Entry {
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	return logrus.NewEntry(log)
}

// logFields builds the one-logrus.Entry-per-invocation field set
// SPEC_FULL.md §B.2 calls for: file, rules, errors, duration.
func logFields(path string, sheet *css.StyleSheet, elapsed time.Duration) logrus.Fields {
	return logrus.Fields{
		"file":     path,
		"rules":    len(sheet.Root().Rules),
		"errors":   len(sheet.Diagnostics()),
		"duration": elapsed,
	}
}
