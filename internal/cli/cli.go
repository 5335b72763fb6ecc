// Package cli implements the gigdiff command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/justsurfingit/gig-builder/internal/textdiff"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
  # compare a section draft with a suggestion
  gigdiff draft.txt suggestion.txt

  # read the original from stdin, print spans as JSON
  cat draft.txt | gigdiff --json - suggestion.txt`

type options struct {
	mode    string
	json    bool
	noColor bool
}

// NewRootCmd builds the gigdiff command.
func NewRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "gigdiff <original-file> <suggested-file>",
		Short:         "Show the differences between two versions of a gig section",
		Example:       example,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.mode, "mode", "m", string(textdiff.ModeHierarchical), "diff algorithm: hierarchical or character")
	f.BoolVar(&opts.json, "json", false, "print spans as JSON")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	if args[0] == "-" && args[1] == "-" {
		return errors.New("only one input can be read from stdin")
	}
	mode, err := textdiff.ParseMode(opts.mode)
	if err != nil {
		return err
	}

	original, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}
	suggested, err := readInput(cmd.InOrStdin(), args[1])
	if err != nil {
		return err
	}

	spans := mode.Run(original, suggested)
	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(spans)
	}
	return Render(out, spans, !color.NoColor && !opts.noColor)
}

func readInput(stdin io.Reader, path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(b), nil
}

// Render writes spans inline. With colorize, deletions are red and struck
// through and additions are green, even when w is not a terminal; without it
// they are wrapped in [-...-] and {+...+}. The command only colorizes when
// fatih/color detects a terminal.
func Render(w io.Writer, spans []textdiff.Span, colorize bool) error {
	del := func(s string) string { return "[-" + s + "-]" }
	add := func(s string) string { return "{+" + s + "+}" }
	if colorize {
		red := color.New(color.FgRed, color.CrossedOut)
		green := color.New(color.FgGreen)
		red.EnableColor()
		green.EnableColor()
		del = func(s string) string { return red.Sprint(s) }
		add = func(s string) string { return green.Sprint(s) }
	}

	for _, s := range spans {
		text := s.Text
		switch s.Kind {
		case textdiff.Deletion:
			text = del(s.Text)
		case textdiff.Addition:
			text = add(s.Text)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
