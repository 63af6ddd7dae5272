package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/formatter"
	"github.com/hammamikhairi/cookbook/internal/registry"
)

func newParseCmd(a *app) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "parse <text>...",
		Short: "Format free text into a display name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			if remote {
				name, err := a.client().Parse(cmd.Context(), input)
				if err != nil {
					return err
				}
				a.printer.PrintInfo(name)
				return nil
			}

			name, ok := formatter.Format(input)
			if !ok {
				return fmt.Errorf("%w: %q", domain.ErrNoName, input)
			}
			a.printer.PrintInfo(name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the server instead of formatting locally")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <catalog.yaml>",
		Short: "Add the entries of a YAML catalog (\"-\" reads stdin)",
		Long: `Add every entry of a YAML catalog, in document order. Stops at the
first entry the server rejects.

Catalog format:
  items:
    - {type: ingredient, name: Flour, cookTime: 5}
    - type: recipe
      name: Pancakes
      requiredItems:
        - {name: Flour, quantity: 2}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			cat, err := registry.DecodeCatalog(in)
			if err != nil {
				return err
			}

			c := a.client()
			for i, entry := range cat.Items {
				if err := c.AddEntry(cmd.Context(), entry); err != nil {
					a.printer.PrintHint(fmt.Sprintf("added %d of %d entries", i, len(cat.Items)))
					return fmt.Errorf("item %d (%q): %w", i, entry.Name, err)
				}
			}
			a.printer.PrintInfo(fmt.Sprintf("added %d entries", len(cat.Items)))
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one stored entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := a.client().Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printer.PrintEntry(entry)
			return nil
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "summary <recipe>",
		Short: "Show the total cook time and base ingredients of a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := a.client().Summary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			a.printer.PrintSummary(summary)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored entries in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.client().List(cmd.Context())
			if err != nil {
				return err
			}
			a.printer.PrintList(entries)
			return nil
		},
	}
}
