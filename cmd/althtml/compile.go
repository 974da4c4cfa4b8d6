package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/althtml/althtml/althtml"
)

var (
	flagHeaders []string
	flagOut     string
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile one file, or stdin, to HTML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger(flagVerbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		c := althtml.Compiler{Log: log}
		for _, name := range flagHeaders {
			if _, err := compileNamed(&c, name, nil); err != nil {
				return err
			}
		}

		var html string
		if len(args) == 0 {
			html, err = compileNamed(&c, "<stdin>", cmd.InOrStdin())
		} else {
			html, err = compileNamed(&c, args[0], nil)
		}
		if err != nil {
			return err
		}
		if html != "" {
			html += "\n"
		}

		if flagOut == "" {
			_, err = io.WriteString(cmd.OutOrStdout(), html)
			return err
		}
		return os.WriteFile(flagOut, []byte(html), 0644)
	},
}

// compileNamed compiles r, or the named file when r is nil.
func compileNamed(c *althtml.Compiler, name string, r io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if r != nil {
		b, err = io.ReadAll(r)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return "", err
	}
	html, err := c.Compile(string(b))
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return html, nil
}
