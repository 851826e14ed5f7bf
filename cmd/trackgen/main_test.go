package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andreyvit/trackgen"
)

const pointSource = `package shop

//tracker:track
type Point struct {
	X     int
	Y     int
	Label string ` + "`tracker:\"do_not_track\"`" + `

	tracker PointTracker
}
`

const reorderedPointSource = `package shop

//tracker:track
type Point struct {
	Y int
	X int

	tracker PointTracker
}
`

func execute(ctx context.Context, t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd, err := newRootCmd()
	require.NoError(t, err)
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(ctx)
	return outBuf.String(), errBuf.String(), err
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return execute(context.Background(), t, args...)
}

func cleanEnv(t *testing.T) {
	for _, name := range []string{"TRACKGEN_FIELD", "TRACKGEN_OUTPUT", "TRACKGEN_CACHE", "TRACKGEN_VERBOSE"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeShop(t *testing.T, src string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "shop")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "point.go"), []byte(src), 0o644))
	return dir
}

func TestGenerate(t *testing.T) {
	cleanEnv(t)
	dir := writeShop(t, pointSource)

	_, stderr, err := run(t, dir)
	require.NoError(t, err)
	require.Contains(t, stderr, "msg=generated")

	out := filepath.Join(dir, "tracker_gen.go")
	code, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(code, []byte(trackgen.GeneratedHeader)))
	require.Contains(t, string(code), "func (p *Point) SetX(value int)")
	require.NotContains(t, string(code), "SetLabel")

	// Regenerating sees its own output and leaves it alone.
	_, _, err = run(t, "generate", dir, "--check")
	require.NoError(t, err)
	_, stderr, err = run(t, "generate", dir, "-v")
	require.NoError(t, err)
	require.Contains(t, stderr, "msg=unchanged")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "point.go"), []byte(reorderedPointSource), 0o644))
	_, _, err = run(t, dir, "--check")
	require.ErrorContains(t, err, "is out of date")

	_, _, err = run(t, dir)
	require.NoError(t, err)
	code, err = os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(code), "PointMaskY PointTracker = 1 << 0")
}

func TestGenerateToStdout(t *testing.T) {
	cleanEnv(t)
	dir := writeShop(t, pointSource)

	stdout, _, err := run(t, dir, "-o", "-")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, trackgen.GeneratedHeader))
	require.NoFileExists(t, filepath.Join(dir, "tracker_gen.go"))
}

func TestGenerateFromEnvironment(t *testing.T) {
	cleanEnv(t)
	dir := writeShop(t, strings.Replace(pointSource, "tracker PointTracker", "dirty PointTracker", 1))
	t.Setenv("TRACKGEN_FIELD", "dirty")
	t.Setenv("TRACKGEN_OUTPUT", "dirty_gen.go")

	_, _, err := run(t, dir)
	require.NoError(t, err)
	code, err := os.ReadFile(filepath.Join(dir, "dirty_gen.go"))
	require.NoError(t, err)
	require.Contains(t, string(code), "p.dirty |= PointMaskX")
}

func TestGenerateSchemaErrors(t *testing.T) {
	cleanEnv(t)
	dir := writeShop(t, `package shop

//tracker:track
type Point struct {
	Tags []string

	tracker PointTracker
}
`)
	_, _, err := run(t, dir)
	require.Error(t, err)
	require.True(t, errors.Is(err, trackgen.ErrMissingEqualityCapability), "%v", err)
	require.ErrorContains(t, err, "point.go:5")
	require.NoFileExists(t, filepath.Join(dir, "tracker_gen.go"))

	_, _, err = run(t, dir, "--type", "Missing")
	require.ErrorContains(t, err, "struct type Missing not found")
}

func TestSchemaCommand(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`package: model
records:
  - name: User
    fields:
      - name: Name
        type: string
      - name: Roles
        type: "[]string"
        markers: [no_eq]
`), 0o644))

	_, _, err := run(t, "schema", path)
	require.NoError(t, err)
	code, err := os.ReadFile(filepath.Join(dir, "tracker_gen.go"))
	require.NoError(t, err)
	require.Contains(t, string(code), "// Source: users")
	require.Contains(t, string(code), "type User struct {")
	require.Contains(t, string(code), "func (u *User) SetRoles(value []string) {\n\tu.tracker |= UserMaskRoles")

	_, _, err = run(t, "schema")
	require.Error(t, err)
}

func TestManifestCommand(t *testing.T) {
	cleanEnv(t)
	dir := writeShop(t, pointSource)

	stdout, _, err := run(t, "manifest", dir)
	require.NoError(t, err)
	var manifests []trackgen.Manifest
	require.NoError(t, json.Unmarshal([]byte(stdout), &manifests))
	require.Len(t, manifests, 1)
	m := manifests[0]
	require.Equal(t, "shop.Point", m.Key())
	require.Equal(t, 8, m.Width)
	require.Equal(t, []trackgen.ManifestField{
		{Name: "X", Type: "int", Bit: 0, CheckEquality: true},
		{Name: "Y", Type: "int", Bit: 1, CheckEquality: true},
	}, m.Fields)
	require.NotEmpty(t, m.RunID)

	stdout, _, err = run(t, "manifest", dir, "-f", "yaml")
	require.NoError(t, err)
	require.Contains(t, stdout, "record: Point\n")

	_, _, err = run(t, "manifest", dir, "-f", "toml")
	require.ErrorContains(t, err, "unknown encoding")
}

func TestLayoutCache(t *testing.T) {
	cleanEnv(t)
	dir := writeShop(t, pointSource)
	cache := filepath.Join(t.TempDir(), "layouts.db")

	_, _, err := run(t, "inspect", "--cached")
	require.ErrorContains(t, err, "no layout cache configured")

	_, _, err = run(t, dir, "--cache", cache)
	require.NoError(t, err)

	stdout, _, err := run(t, "inspect", "--cache", cache, "--cached")
	require.NoError(t, err)
	require.Contains(t, stdout, "RECORD")
	require.Contains(t, stdout, "shop.Point")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "point.go"), []byte(reorderedPointSource), 0o644))
	_, stderr, err := run(t, dir, "--cache", cache, "--strict-layout")
	require.ErrorContains(t, err, "layout of "+dir+" changed: Point.X: bit 0 -> 1")
	require.Contains(t, stderr, "layout drift")

	// The new layout was remembered, so the next run is quiet.
	t.Setenv("TRACKGEN_CACHE", cache)
	_, stderr, err = run(t, dir, "--strict-layout")
	require.NoError(t, err)
	require.NotContains(t, stderr, "layout drift")

	stdout, _, err = run(t, "inspect", "--forget", "shop")
	require.NoError(t, err)
	require.Equal(t, "forgot 1 layouts of shop\n", stdout)

	stdout, _, err = run(t, "inspect", "--clear")
	require.NoError(t, err)
	require.Equal(t, "layout cache cleared\n", stdout)
}

func TestInspect(t *testing.T) {
	cleanEnv(t)
	dir := writeShop(t, pointSource)

	stdout, _, err := run(t, "inspect", dir, "--names", "--untracked")
	require.NoError(t, err)
	require.Contains(t, stdout, "Point (2 tracked, uint8, tracker PointTracker, all = 0x03)")
	require.Contains(t, stdout, "GetX GetMutX SetX UpdateX ChangedX PointMaskX")
	require.Contains(t, stdout, "untracked")
	require.NoFileExists(t, filepath.Join(dir, "tracker_gen.go"))
}

func TestJSONSchemaCommand(t *testing.T) {
	cleanEnv(t)
	stdout, _, err := run(t, "jsonschema")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Equal(t, "trackgen schema description", doc["title"])
	require.Contains(t, doc["properties"], "records")
}

func TestVersionCommand(t *testing.T) {
	cleanEnv(t)
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "trackgen "))
	require.Contains(t, stdout, "commit: none")
}

// syncBuffer is written by the watch goroutine while the test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	cleanEnv(t)
	dir := writeShop(t, pointSource)
	out := filepath.Join(dir, "tracker_gen.go")
	var stderr syncBuffer

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		cmd, err := newRootCmd()
		if err != nil {
			done <- err
			return
		}
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"watch", dir})
		done <- cmd.ExecuteContext(ctx)
	}()

	fileContains := func(s string) func() bool {
		return func() bool {
			code, err := os.ReadFile(out)
			return err == nil && strings.Contains(string(code), s)
		}
	}
	require.Eventually(t, fileContains("func (p *Point) SetX"), 10*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "point.go"), []byte(strings.Replace(pointSource, "\tY     int\n", "\tY     int\n\tZ     int\n", 1)), 0o644))
	require.Eventually(t, fileContains("func (p *Point) SetZ"), 10*time.Second, 20*time.Millisecond)
	require.NotContains(t, stderr.String(), "layout drift")

	// Without a cache file, moved bits are reported within the session.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "point.go"), []byte(reorderedPointSource), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), "drift=\"Point.X: bit 0 -> 1\"")
	}, 10*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop")
	}
}
