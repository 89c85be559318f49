package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoziy/i18nmodel/internal/locale"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the configured languages",
	RunE:  runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	for _, l := range a.langs.Languages {
		marker := "  "
		accessor := locale.AccessorName(l.Code)
		if l.Code == a.langs.Default {
			marker = "* "
			accessor = "-"
		}
		fmt.Fprintf(out, "%s%-8s %-20s %s\n", marker, l.Code, l.Name, accessor)
	}
	return nil
}
