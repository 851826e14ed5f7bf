package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/andreyvit/trackgen"
)

type generateFlags struct {
	check        bool
	strictLayout bool
}

func (f *generateFlags) register(flags *pflag.FlagSet) {
	flags.BoolVar(&f.check, "check", false, "Fail if the output file is missing or out of date instead of writing it")
	flags.BoolVar(&f.strictLayout, "strict-layout", false, "Fail if a field's bit moved since the cached layout")
}

func newGenerateCmd(a *app) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Generate tracking code for a Go package (default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, packageSource(args), f)
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newSchemaCmd(a *app) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "schema <file>",
		Short: "Generate complete structs with tracking from a description file",
		Long: `The schema command reads a YAML, JSON or MsgPack description file and
writes a Go file declaring every described struct, its tracker storage field
and the tracking API.

Example:
  trackgen schema models.yaml
  trackgen schema models.yaml -o - | less`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, source{schemaFile: args[0]}, f)
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, src source, f generateFlags) error {
	scm, err := a.load(src)
	if err != nil {
		return err
	}
	code, err := trackgen.Generate(scm)
	if err != nil {
		return err
	}

	out := a.outputPath(src)
	switch {
	case out == "-":
		if _, err := cmd.OutOrStdout().Write(code); err != nil {
			return err
		}
	case f.check:
		existing, err := os.ReadFile(out)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if !bytes.Equal(existing, code) {
			return fmt.Errorf("%s is out of date; run trackgen", out)
		}
		a.logger.Debug("up to date", "file", out)
		return nil
	default:
		written, err := writeFileIfChanged(out, code)
		if err != nil {
			return err
		}
		if written {
			a.logger.Info("generated", "file", out, "records", len(scm.Records()))
		} else {
			a.logger.Debug("unchanged", "file", out)
		}
	}

	drifts, err := a.recordLayouts(scm)
	if err != nil {
		return err
	}
	if f.strictLayout && len(drifts) > 0 {
		return fmt.Errorf("layout of %s changed: %s", src, drifts[0])
	}
	return nil
}

// writeFileIfChanged does not touch a file that already holds data.
func writeFileIfChanged(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := ensureDir(path); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
