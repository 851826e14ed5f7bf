package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/andreyvit/trackgen"
)

func newManifestCmd(a *app) *cobra.Command {
	var (
		schemaFile string
		format     string
	)
	cmd := &cobra.Command{
		Use:   "manifest [dir]",
		Short: "Print the layout manifests of a package or description file",
		Long: `The manifest command prints, for every record, the tracked fields with
their bits, the tracker width and a layout fingerprint.

Example:
  trackgen manifest --format yaml
  trackgen manifest --schema models.yaml --format msgpack > layout.mp`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := trackgen.ParseEncoding(format)
			if err != nil {
				return err
			}
			src := packageSource(args)
			if schemaFile != "" {
				src = source{schemaFile: schemaFile}
			}
			scm, err := a.load(src)
			if err != nil {
				return err
			}
			raw, err := enc.Encode(trackgen.Manifests(scm, a.runID, time.Now()))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
	cmd.Flags().StringVar(&schemaFile, "schema", "", "Read a description file instead of a package")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, yaml or msgpack")
	return cmd
}
