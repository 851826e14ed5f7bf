package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/andreyvit/trackgen"
)

func newJSONSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jsonschema",
		Short: "Print the JSON Schema of description files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(trackgen.SchemaFileJSONSchema())
		},
	}
}
