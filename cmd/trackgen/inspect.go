package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andreyvit/trackgen"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		schemaFile string
		names      bool
		untracked  bool
		cached     bool
		forget     string
		clearAll   bool
	)
	cmd := &cobra.Command{
		Use:   "inspect [dir]",
		Short: "Show record layouts",
		Long: `The inspect command prints the bit layout of every record without
generating code. With --cached it lists the layouts remembered by the
layout cache instead.

Example:
  trackgen inspect
  trackgen inspect --schema models.yaml --names
  trackgen inspect --cache layouts.db --cached
  trackgen inspect --cache layouts.db --forget shop`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cached || forget != "" || clearAll {
				return a.inspectCache(cmd, forget, clearAll)
			}
			src := packageSource(args)
			if schemaFile != "" {
				src = source{schemaFile: schemaFile}
			}
			scm, err := a.load(src)
			if err != nil {
				return err
			}
			flags := trackgen.DumpRecordHeaders | trackgen.DumpFields
			if names {
				flags |= trackgen.DumpNames
			}
			if untracked {
				flags |= trackgen.DumpUntracked
			}
			fmt.Fprint(cmd.OutOrStdout(), scm.Dump(flags))
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaFile, "schema", "", "Inspect a description file instead of a package")
	cmd.Flags().BoolVar(&names, "names", false, "Show generated identifiers")
	cmd.Flags().BoolVar(&untracked, "untracked", false, "Show untracked fields")
	cmd.Flags().BoolVar(&cached, "cached", false, "List cached layouts")
	cmd.Flags().StringVar(&forget, "forget", "", "Drop cached layouts of the given schema")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Drop all cached layouts")
	return cmd
}

func (a *app) inspectCache(cmd *cobra.Command, forget string, clearAll bool) error {
	if a.cfg.Cache == "" {
		return errors.New("no layout cache configured; use --cache or TRACKGEN_CACHE")
	}
	cache, err := trackgen.OpenLayoutCache(a.cfg.Cache, a.logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	if clearAll {
		if err := cache.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "layout cache cleared")
		return nil
	}
	if forget != "" {
		n, err := cache.Forget(forget)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "forgot %d layouts of %s\n", n, forget)
		return nil
	}

	manifests, err := cache.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RECORD\tWIDTH\tFIELDS\tFINGERPRINT\tGENERATED\tRUN")
	for _, m := range manifests {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n", m.Key(), m.Width, len(m.Fields), m.Fingerprint, m.GeneratedAt.Format(time.RFC3339), m.RunID)
	}
	return w.Flush()
}
