package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csstreelang/csscore/internal/ast"
	"github.com/csstreelang/csscore/pkg/css"
)

var dbgParseCmd = &cobra.Command{
	Use:   "dbg-parse file",
	Short: "Print the parsed tree, trivia and diagnostics for one file as indented text",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return fmt.Errorf("need exactly one file argument")
		}
		cfg, err := LoadConfig(directory)
		if err != nil {
			return err
		}

		path := args[0]
		contents, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sheet := css.Parse(path, string(contents), cfg.Features)

		var sb strings.Builder
		sb.WriteString("tree:\n")
		for _, r := range sheet.Root().Rules {
			dumpRule(&sb, sheet, r, 1)
		}

		sb.WriteString("trivia:\n")
		for _, c := range sheet.Trivia() {
			fmt.Fprintf(&sb, "  %s %q\n", c.Kind(), sheet.Text(c))
		}

		sb.WriteString("errors:\n")
		for _, e := range sheet.Diagnostics() {
			fmt.Fprintf(&sb, "  %s: %s\n", e.Code, e.Text)
		}

		fmt.Print(sb.String())
		return nil
	},
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func dumpRule(sb *strings.Builder, sheet *css.StyleSheet, r ast.R, depth int) {
	switch n := r.(type) {
	case *ast.AtRule:
		indent(sb, depth)
		fmt.Fprintf(sb, "AtRule(%s)\n", n.Name)
		if n.Block != nil {
			for _, child := range n.Block.Children {
				dumpRule(sb, sheet, child, depth+1)
			}
		}
	case *ast.QualifiedRule:
		indent(sb, depth)
		sb.WriteString("QualifiedRule")
		if n.Selectors != nil {
			fmt.Fprintf(sb, "(%d selectors)", len(n.Selectors.Selectors))
		}
		sb.WriteString("\n")
		if n.Block != nil {
			for _, child := range n.Block.Children {
				dumpRule(sb, sheet, child, depth+1)
			}
		}
	case *ast.Declaration:
		indent(sb, depth)
		fmt.Fprintf(sb, "Declaration(%s)\n", sheet.Text(n.Name))
	case *ast.BadDeclaration:
		indent(sb, depth)
		fmt.Fprintf(sb, "BadDeclaration(%d tokens)\n", len(n.Tokens))
	}
}

func init() {
	rootCmd.AddCommand(dbgParseCmd)
}
