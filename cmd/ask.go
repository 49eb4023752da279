package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askShowSources bool

var askCmd = &cobra.Command{
	Use:   "ask <pregunta>",
	Short: "Answer one question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAssistant()
		if err != nil {
			return err
		}

		ans := a.Ask(cmd.Context(), strings.Join(args, " "))
		fmt.Fprintln(cmd.OutOrStdout(), ans.Text)

		if askShowSources && len(ans.Sources) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "\nFuentes:")
			for i, r := range ans.Sources {
				fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s (%s)\n", i+1, r.Title, r.URL)
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askShowSources, "sources", false, "Print the ranked sources after the answer")
	rootCmd.AddCommand(askCmd)
}
