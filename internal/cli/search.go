package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/declget/declget/internal/registry"
)

var (
	searchAmbient bool
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search the registry for declaration sources",
	Long: `Search every registry source for a dependency name and list where it is
hosted. Use --ambient to include globally ambient declarations.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchAmbient, "ambient", "A", false, "Include ambient declaration sources")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	name := args[0]

	client := newRegistryClient()
	results, err := client.Search(cmd.Context(), registry.SearchQuery{Name: name, Ambient: searchAmbient})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		msg := fmt.Sprintf("No declarations found matching %q", name)
		if !searchAmbient {
			msg += " (try --ambient)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tNAME")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\n", r.Source, r.Label())
	}
	return w.Flush()
}
