package project

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio"
	"go.uber.org/zap"

	"github.com/althtml/althtml/althtml"
	"github.com/althtml/althtml/internal/textutil"
)

// Report describes one build pass.
type Report struct {
	Headers []string // header files compiled
	Written []Pair   // pairs whose destination was replaced
	Elapsed time.Duration
}

// Builder runs build passes over a configuration.
type Builder struct {
	Config *Config
	Log    *zap.SugaredLogger
}

// Build runs one pass: every header is compiled for its definitions, then
// every source is compiled and its destination atomically replaced. All
// compiles share one compiler, so sources see the headers' definitions and
// those of earlier sources. The pass stops at the first error, which names
// the file it arose in.
func (bld Builder) Build(ctx context.Context) (rep Report, err error) {
	start := time.Now()
	defer func() { rep.Elapsed = time.Since(start) }()

	log := bld.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := althtml.Compiler{Log: log}

	headers, err := bld.Config.HeaderFiles()
	if err != nil {
		return rep, err
	}
	for _, name := range headers {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if _, err := compileFile(&c, name); err != nil {
			return rep, err
		}
		rep.Headers = append(rep.Headers, name)
		log.Debugw("compiled header", "file", name)
	}

	for _, pair := range bld.Config.Pairs() {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		html, err := compileFile(&c, pair.Src)
		if err != nil {
			return rep, err
		}
		if err := writeFile(pair.Dst, html); err != nil {
			return rep, fmt.Errorf("%s: %w", pair.Dst, err)
		}
		rep.Written = append(rep.Written, pair)
		log.Debugw("wrote", "src", pair.Src, "dst", pair.Dst, "bytes", len(html))
	}
	return rep, nil
}

func compileFile(c *althtml.Compiler, name string) (string, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	html, err := c.Compile(string(b))
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return html, nil
}

// writeFile replaces the named file's content atomically, creating its
// directory as needed; the content always ends in a newline.
func writeFile(name, html string) (rerr error) {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	f, err := renameio.TempFile("", name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Cleanup(); rerr == nil {
			rerr = cerr
		}
	}()
	if err := f.Chmod(0644); err != nil {
		return err
	}
	ew := textutil.ErrWriter{Writer: f}
	io.WriteString(&ew, html)
	if html != "" {
		io.WriteString(&ew, "\n")
	}
	if ew.Err != nil {
		return ew.Err
	}
	return f.CloseAtomicallyReplace()
}
