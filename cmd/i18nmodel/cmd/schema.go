package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkoziy/i18nmodel/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the derived translation schemas",
	Long: `Print every derived translation schema: its source, copied fields,
unique constraints and the DDL that creates its table.`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	out := cmd.OutOrStdout()
	for _, t := range a.reg.Translations() {
		fmt.Fprintf(out, "%s (source %s, table %s)\n", t.QualifiedName(), t.Source.QualifiedName(), t.Table)
		for _, f := range t.Fields {
			fmt.Fprintf(out, "  %-20s %-8s %s\n", f.Name, f.Kind, f.SQLType)
		}
		for _, group := range t.UniqueTogether {
			fmt.Fprintf(out, "  unique (%s)\n", strings.Join(group, ", "))
		}

		ddl, err := schema.SQL(a.db, t.CreateTableQuery(a.db))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s;\n\n", ddl)
	}
	return nil
}
