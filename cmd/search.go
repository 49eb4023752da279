package cmd

import (
	"fmt"
	"strings"

	"github.com/planestic/ud-assistant/internal/tools"
	"github.com/spf13/cobra"
)

var searchListOnly bool

var searchCmd = &cobra.Command{
	Use:   "search <pregunta>",
	Short: "Print the ranked and packed search context for a question",
	Long: `Runs the rewrite, search, ranking and packing steps and prints the context
that would be sent to the model. The model is not called.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAssistant()
		if err != nil {
			return err
		}

		packed, ranked, outcome := a.Context(cmd.Context(), strings.Join(args, " "))
		if len(ranked) == 0 {
			if outcome.Err != nil {
				return fmt.Errorf("search failed after %d attempt(s) (%s): %w", outcome.Attempts, outcome.Kind, outcome.Err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "no results")
			return nil
		}

		if searchListOnly {
			fmt.Fprintln(cmd.OutOrStdout(), tools.FormatResults(ranked))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), packed)
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchListOnly, "list", false, "Print the ranked result list instead of the packed context")
	rootCmd.AddCommand(searchCmd)
}
