package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/csstreelang/csscore/internal/diag/pretty"
	"github.com/csstreelang/csscore/internal/source"
	"github.com/csstreelang/csscore/pkg/css"
)

var checkCmd = &cobra.Command{
	Use:   "check file...",
	Short: "Parse one or more CSS files and report diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			_ = cmd.Help()
			return fmt.Errorf("need at least one file argument")
		}
		cfg, err := LoadConfig(directory)
		if err != nil {
			return err
		}

		hadErrors := false
		for _, path := range args {
			n, err := checkOne(cfg, path)
			if err != nil {
				return err
			}
			if n > 0 {
				hadErrors = true
			}
		}
		if hadErrors {
			return fmt.Errorf("one or more files had diagnostics")
		}
		return nil
	},
}

// checkOne parses one file and reports its diagnostics, returning how
// many it found.
func checkOne(cfg Config, path string) (int, error) {
	start := time.Now()
	contents, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	sheet := css.Parse(path, string(contents), cfg.Features)
	errs := sheet.Diagnostics()

	entryLogger().WithFields(logFields(path, sheet, time.Since(start))).Debug("parsed")

	if len(errs) == 0 {
		return 0, nil
	}

	buf := source.New(path, string(contents))
	info := pretty.AutoTerminalInfo(os.Stderr)
	fmt.Fprintln(os.Stderr, pretty.FormatAll(buf, errs, info))
	return len(errs), nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
