// Package project builds a set of althtml sources, as described by a YAML
// configuration, into their HTML destinations.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the configuration file looked for when none is given.
const DefaultConfigName = "althtml.yaml"

// Config maps althtml sources to their HTML destinations:
//
// 	headers: ["partials/*.ahtml"]
// 	write:
// 	  - src: index.ahtml
// 	    dst: public/index.html
// 	watch: ["styles/site.css"]
//
// Headers are compiled before every source, only for the variables and
// macros they define. Watch lists extra files whose changes trigger a
// rebuild. Relative paths resolve against Dir.
type Config struct {
	Headers []string `yaml:"headers,omitempty"`
	Write   []Pair   `yaml:"write"`
	Watch   []string `yaml:"watch,omitempty"`

	// Dir is the directory containing the configuration file.
	Dir string `yaml:"-"`
}

// Pair names a source file and the destination its HTML is written to.
type Pair struct {
	Src string `yaml:"src"`
	Dst string `yaml:"dst"`
}

var (
	errNoWrites = errors.New("no write pairs configured")
	errEmpty    = errors.New("empty configuration")
)

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration, whose relative paths resolve
// against dir.
func Parse(r io.Reader, dir string) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Dir: dir}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmpty
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration writes at least one destination,
// and that every pair names both of its files.
func (cfg *Config) Validate() error {
	if len(cfg.Write) == 0 {
		return errNoWrites
	}
	for i, pair := range cfg.Write {
		switch {
		case pair.Src == "":
			return fmt.Errorf("write[%d]: missing src", i)
		case pair.Dst == "":
			return fmt.Errorf("write[%d]: missing dst", i)
		}
	}
	return nil
}

// Path resolves a configured path against Dir.
func (cfg *Config) Path(name string) string {
	if filepath.IsAbs(name) || cfg.Dir == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(cfg.Dir, name)
}

// HeaderFiles expands the header globs into a sorted list of distinct files.
func (cfg *Config) HeaderFiles() ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	for _, pattern := range cfg.Headers {
		matches, err := filepath.Glob(cfg.Path(pattern))
		if err != nil {
			return nil, fmt.Errorf("header %q: %w", pattern, err)
		}
		for _, match := range matches {
			if _, dup := seen[match]; !dup {
				seen[match] = struct{}{}
				files = append(files, match)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// Pairs returns the write pairs with their paths resolved.
func (cfg *Config) Pairs() []Pair {
	pairs := make([]Pair, len(cfg.Write))
	for i, pair := range cfg.Write {
		pairs[i] = Pair{Src: cfg.Path(pair.Src), Dst: cfg.Path(pair.Dst)}
	}
	return pairs
}

// Matches reports whether a change to the named file should trigger a
// rebuild: it is a source, an extra watch path, or matches a header glob.
func (cfg *Config) Matches(name string) bool {
	name = filepath.Clean(name)
	for _, pair := range cfg.Pairs() {
		if pair.Src == name {
			return true
		}
	}
	for _, watch := range cfg.Watch {
		if cfg.Path(watch) == name {
			return true
		}
	}
	for _, pattern := range cfg.Headers {
		if ok, _ := filepath.Match(cfg.Path(pattern), name); ok {
			return true
		}
	}
	return false
}

// WatchDirs returns the sorted, distinct directories holding the files that
// Matches accepts.
func (cfg *Config) WatchDirs() ([]string, error) {
	seen := make(map[string]struct{})
	add := func(name string) { seen[filepath.Dir(name)] = struct{}{} }
	for _, pair := range cfg.Pairs() {
		add(pair.Src)
	}
	for _, watch := range cfg.Watch {
		add(cfg.Path(watch))
	}
	for _, pattern := range cfg.Headers {
		pattern = cfg.Path(pattern)
		if dir := filepath.Dir(pattern); !hasMeta(dir) {
			seen[dir] = struct{}{}
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("header %q: %w", pattern, err)
		}
		for _, match := range matches {
			add(match)
		}
	}
	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}

func hasMeta(path string) bool { return strings.ContainsAny(path, `*?[\`) }
