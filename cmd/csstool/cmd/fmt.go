package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/csstreelang/csscore/pkg/css"
)

var (
	writeInPlace bool

	fmtCmd = &cobra.Command{
		Use:   "fmt file...",
		Short: "Parse and re-serialize CSS files, applying the configured print options",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return fmt.Errorf("need at least one file argument")
			}
			cfg, err := LoadConfig(directory)
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := fmtOne(cfg, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
)

func fmtOne(cfg Config, path string) error {
	start := time.Now()
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	sheet := css.Parse(path, string(contents), cfg.Features)
	out := css.Serialize(sheet, cfg.Print)

	entryLogger().WithFields(logFields(path, sheet, time.Since(start))).Info("formatted")

	if writeInPlace {
		return os.WriteFile(path, []byte(out), 0o644)
	}
	fmt.Print(out)
	return nil
}

func init() {
	fmtCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "write the result back to the file instead of stdout")
	rootCmd.AddCommand(fmtCmd)
}
