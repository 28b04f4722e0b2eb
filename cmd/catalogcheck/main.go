package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"boycott-check/catalog"
	"boycott-check/services"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "catalogcheck",
		Short: "Validate boycott catalogs and run lookups offline",
		Long: `catalogcheck works on the same YAML catalog the server loads at startup.

Examples:
  catalogcheck validate catalog.yaml
  catalogcheck lookup "coca-cola" --catalog catalog.yaml`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.AddCommand(newValidateCmd(), newLookupCmd())
	return rootCmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Parse a catalog and report unmapped categories (default: embedded catalog)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			c, err := openCatalog(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "entries:    %d\n", c.Len())
			fmt.Fprintf(out, "categories: %d\n", len(c.Categories()))
			unmapped := c.UnmappedCategories()
			if len(unmapped) == 0 {
				fmt.Fprintln(out, "all categories have alternatives")
				return nil
			}
			for _, category := range unmapped {
				fmt.Fprintf(out, "warning: category %q has no alternatives\n", category)
			}
			return nil
		},
	}
}

func newLookupCmd() *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "lookup <product name>",
		Short: "Check a product name and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCatalog(catalogPath)
			if err != nil {
				return err
			}
			res, err := services.NewMatcher(c, nil).Check(args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(services.NewCheckResponse(res))
		},
	}
	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Catalog file (default: embedded catalog)")
	return cmd
}

func openCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}
