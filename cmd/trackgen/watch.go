package main

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/andreyvit/trackgen"
)

const watchDebounce = 100 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	var (
		schemaFile string
		f          generateFlags
	)
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Regenerate whenever the package or description file changes",
		Long: `The watch command generates once, then regenerates on every change to
the package's Go files (or to the description file) until interrupted.
Schema errors are logged and do not stop watching. Without a layout cache,
moved bits are still reported between regenerations of one session.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := packageSource(args)
			if schemaFile != "" {
				src = source{schemaFile: schemaFile}
			}
			return a.watch(cmd.Context(), src, func() error {
				return a.runGenerate(cmd, src, f)
			})
		},
	}
	cmd.Flags().StringVar(&schemaFile, "schema", "", "Watch a description file instead of a package")
	f.register(cmd.Flags())
	return cmd
}

// watch runs regenerate once and then after every burst of relevant file
// events, until ctx is done. Regenerations are serialized on the calling
// goroutine.
func (a *app) watch(ctx context.Context, src source, regenerate func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := src.dir
	if src.schemaFile != "" {
		dir = filepath.Dir(src.schemaFile)
	}
	if err := w.Add(dir); err != nil {
		return err
	}
	if a.cfg.Cache == "" {
		a.session, err = trackgen.OpenLayoutCache("", a.logger)
		if err != nil {
			return err
		}
		defer func() {
			a.session.Close()
			a.session = nil
		}()
	}
	out, _ := filepath.Abs(a.outputPath(src))

	relevant := func(ev fsnotify.Event) bool {
		if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
			return false
		}
		path, _ := filepath.Abs(ev.Name)
		if path == out {
			return false
		}
		if src.schemaFile != "" {
			want, _ := filepath.Abs(src.schemaFile)
			return path == want
		}
		return strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go")
	}

	run := func() {
		if err := regenerate(); err != nil {
			a.logger.Error("regeneration failed", "source", src.String(), "err", err)
		}
	}

	a.logger.Info("watching", "dir", dir)
	run()

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if relevant(ev) {
				a.logger.Debug("change", "file", ev.Name, "op", ev.Op.String())
				timer.Reset(watchDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", "err", err)
		case <-timer.C:
			run()
		}
	}
}
