package project_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/althtml/althtml/althtml"
	"github.com/althtml/althtml/internal/project"
)

// writeTree creates the named files under a new temporary directory.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		err  string
	}{
		{"valid", "write:\n  - src: a.ahtml\n    dst: a.html\n", ""},
		{"empty", "", "empty configuration"},
		{"no writes", "headers: [x]\n", "no write pairs"},
		{"missing src", "write:\n  - dst: a.html\n", "write[0]: missing src"},
		{"missing dst", "write:\n  - src: a.ahtml\n", "write[0]: missing dst"},
		{"unknown field", "write:\n  - src: a\n    dst: b\nwatcher: []\n", "watcher"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := project.Parse(strings.NewReader(tc.in), "/site")
			if tc.err != "" {
				if assert.Error(t, err) {
					assert.Contains(t, err.Error(), tc.err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "/site", cfg.Dir)
		})
	}
}

func TestConfig_paths(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"partials/b.ahtml": "",
		"partials/a.ahtml": "",
		"partials/c.txt":   "",
		"site.css":         "",
	})
	cfg := &project.Config{
		Headers: []string{"partials/*.ahtml", "partials/a.ahtml"},
		Write:   []project.Pair{{Src: "index.ahtml", Dst: "/abs/index.html"}},
		Watch:   []string{"site.css"},
		Dir:     dir,
	}

	headers, err := cfg.HeaderFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "partials", "a.ahtml"),
		filepath.Join(dir, "partials", "b.ahtml"),
	}, headers)

	assert.Equal(t, []project.Pair{{
		Src: filepath.Join(dir, "index.ahtml"),
		Dst: filepath.FromSlash("/abs/index.html"),
	}}, cfg.Pairs())

	assert.True(t, cfg.Matches(filepath.Join(dir, "index.ahtml")))
	assert.True(t, cfg.Matches(filepath.Join(dir, "site.css")))
	assert.True(t, cfg.Matches(filepath.Join(dir, "partials", "new.ahtml")), "header globs match new files")
	assert.False(t, cfg.Matches(filepath.Join(dir, "partials", "c.txt")))
	assert.False(t, cfg.Matches(filepath.Join(dir, "index.html")))

	dirs, err := cfg.WatchDirs()
	require.NoError(t, err)
	assert.Equal(t, []string{dir, filepath.Join(dir, "partials")}, dirs)
}

func TestLoad(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"althtml.yaml": "write:\n  - src: index.ahtml\n    dst: out/index.html\n",
	})
	cfg, err := project.Load(filepath.Join(dir, "althtml.yaml"))
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)

	_, err = project.Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestBuild(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"partials/defs.ahtml": "set SITE = \"Example\"\n:macro footer\n  footer | SITE\n",
		"index.ahtml":         "body\n  h1 | SITE\n  @footer\n",
		"about.ahtml":         "p | About SITE\n",
	})
	cfg := &project.Config{
		Headers: []string{"partials/*.ahtml"},
		Write: []project.Pair{
			{Src: "index.ahtml", Dst: "public/index.html"},
			{Src: "about.ahtml", Dst: "public/about/index.html"},
		},
		Dir: dir,
	}

	rep, err := project.Builder{Config: cfg}.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "partials", "defs.ahtml")}, rep.Headers)
	assert.Len(t, rep.Written, 2)

	b, err := os.ReadFile(filepath.Join(dir, "public", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<body>\n  <h1>\n    Example\n  </h1>\n  <footer>\n    Example\n  </footer>\n</body>\n", string(b))

	b, err = os.ReadFile(filepath.Join(dir, "public", "about", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>\n  About Example\n</p>\n", string(b))

	info, err := os.Stat(filepath.Join(dir, "public", "about", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestBuild_error(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"good.ahtml": "p | ok\n",
		"bad.ahtml":  "div\n  @missing\n",
		"last.ahtml": "p | never\n",
	})
	cfg := &project.Config{
		Write: []project.Pair{
			{Src: "good.ahtml", Dst: "good.html"},
			{Src: "bad.ahtml", Dst: "bad.html"},
			{Src: "last.ahtml", Dst: "last.html"},
		},
		Dir: dir,
	}

	rep, err := project.Builder{Config: cfg}.Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, althtml.UndefinedError))
	assert.Contains(t, err.Error(), filepath.Join(dir, "bad.ahtml"))
	assert.Len(t, rep.Written, 1)

	_, err = os.Stat(filepath.Join(dir, "bad.html"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "failed sources must not be written")
	_, err = os.Stat(filepath.Join(dir, "last.html"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "build stops at the first error")
}

func TestBuild_cancelled(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.ahtml": "p"})
	cfg := &project.Config{Write: []project.Pair{{Src: "a.ahtml", Dst: "a.html"}}, Dir: dir}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := project.Builder{Config: cfg}.Build(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
