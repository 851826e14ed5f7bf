package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/andreyvit/trackgen"
)

type app struct {
	cfg    Config
	types  []string
	runID  string
	logger *slog.Logger

	// session remembers layouts for the lifetime of a watch when no cache
	// file is configured.
	session *trackgen.LayoutCache
}

func newRootCmd() (*cobra.Command, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	a := &app{cfg: cfg}

	var gen generateFlags
	rootCmd := &cobra.Command{
		Use:   "trackgen [dir]",
		Short: "Generate bit-packed dirty tracking for Go structs",
		Long: `trackgen finds structs marked with //tracker:track in a Go package and
generates accessors that record which fields were modified in a compact
bit set stored inside each struct.

Example:
  trackgen
  trackgen ./internal/model --type User --type Order
  trackgen schema models.yaml`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setup(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, packageSource(args), gen)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfg.StorageField, "field", cfg.StorageField, "Name of the tracker storage field")
	pf.StringVarP(&a.cfg.Output, "output", "o", cfg.Output, "Output file, relative to the package directory or description file; - for stdout")
	pf.StringVar(&a.cfg.Cache, "cache", cfg.Cache, "Layout cache file; empty disables layout drift detection")
	pf.BoolVarP(&a.cfg.Verbose, "verbose", "v", cfg.Verbose, "Enable debug logging")
	pf.StringSliceVarP(&a.types, "type", "t", nil, "Generate only these struct types (default: all marked with //tracker:track)")
	gen.register(rootCmd.Flags())

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newSchemaCmd(a),
		newInspectCmd(a),
		newManifestCmd(a),
		newJSONSchemaCmd(),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return rootCmd, nil
}

func (a *app) setup(cmd *cobra.Command) {
	level := slog.LevelInfo
	if a.cfg.Verbose {
		level = slog.LevelDebug
	}
	a.runID = uuid.NewString()
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).With("run", a.runID)
}

func (a *app) options() trackgen.Options {
	return trackgen.Options{
		StorageField: a.cfg.StorageField,
		Logger:       a.logger,
	}
}

// source is where records come from: a package directory or a description
// file.
type source struct {
	dir        string
	schemaFile string
}

func packageSource(args []string) source {
	if len(args) == 0 {
		return source{dir: "."}
	}
	return source{dir: args[0]}
}

func (src source) String() string {
	if src.schemaFile != "" {
		return src.schemaFile
	}
	return src.dir
}

// outputPath resolves the configured output relative to the source.
func (a *app) outputPath(src source) string {
	out := a.cfg.Output
	if out == "-" || filepath.IsAbs(out) {
		return out
	}
	if src.schemaFile != "" {
		return filepath.Join(filepath.Dir(src.schemaFile), out)
	}
	return filepath.Join(src.dir, out)
}

func (a *app) load(src source) (*trackgen.Schema, error) {
	start := time.Now()
	var scm *trackgen.Schema
	var err error
	if src.schemaFile != "" {
		var sf *trackgen.SchemaFile
		sf, err = trackgen.ReadSchemaFile(src.schemaFile)
		if err == nil {
			scm, err = sf.Load(a.options())
		}
	} else {
		var skip []string
		if out := a.outputPath(src); out != "-" {
			skip = append(skip, out)
		}
		scm, err = trackgen.LoadPackage(src.dir, trackgen.LoadOptions{
			Options: a.options(),
			ParseOptions: trackgen.ParseOptions{
				Types: a.types,
				Skip:  skip,
			},
		})
	}
	if err != nil {
		return nil, err
	}
	a.logger.Debug("schema loaded", "source", src.String(), "records", len(scm.Records()), "elapsed", time.Since(start))
	return scm, nil
}

// recordLayouts stores the manifests in the layout cache, if one is
// configured, and returns the drift against the previous run.
func (a *app) recordLayouts(scm *trackgen.Schema) ([]trackgen.Drift, error) {
	manifests := trackgen.Manifests(scm, a.runID, time.Now())
	if a.cfg.Cache == "" {
		if a.session == nil {
			return nil, nil
		}
		return a.session.Record(manifests...)
	}
	cache, err := trackgen.OpenLayoutCache(a.cfg.Cache, a.logger)
	if err != nil {
		return nil, err
	}
	defer cache.Close()
	return cache.Record(manifests...)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
