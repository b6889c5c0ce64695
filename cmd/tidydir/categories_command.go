package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tidydir/internal/category"
)

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories [file...]",
		Short: "List the category table, or classify the named files",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := ctx.categoryTable()
			if err != nil {
				return fmt.Errorf("build category table: %w", err)
			}
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				rows := make([][]string, 0, len(args))
				for _, name := range args {
					ext := category.ExtensionOf(name)
					rows = append(rows, []string{name, displayExt(ext), table.Classify(ext)})
				}
				fmt.Fprintln(out, renderTable([]string{"File", "Extension", "Category"}, rows, nil))
				return nil
			}

			rows := make([][]string, 0, len(table.Names()))
			for _, def := range table.Definitions() {
				exts := strings.Join(def.Extensions, " ")
				if def.Name == table.Fallback() {
					exts = "(everything else)"
				}
				rows = append(rows, []string{def.Name, exts})
			}
			fmt.Fprintln(out, renderTable([]string{"Category", "Extensions"}, rows, nil))
			return nil
		},
	}
}

func displayExt(ext string) string {
	if ext == "" {
		return "(none)"
	}
	return ext
}
