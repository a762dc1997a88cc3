package main

import (
	goerrors "errors"
	"io"
	"os"
	"time"

	"github.com/deepnoodle-ai/quill"
	"github.com/deepnoodle-ai/quill/errors"
	"github.com/deepnoodle-ai/quill/program"
	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/deepnoodle-ai/wonton/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// getSource returns the Quil source to process and the path of the file it
// came from, if any. Input may come from the -c flag, --stdin, or a file
// argument.
func getSource(ctx *cli.Context) (string, string, error) {
	codeSet := ctx.IsSet("code")
	stdinSet := ctx.Bool("stdin")
	fileProvided := ctx.Arg(0) != ""

	// Check for conflicting input sources
	count := 0
	if codeSet {
		count++
	}
	if stdinSet {
		count++
	}
	if fileProvided {
		count++
	}
	if count > 1 {
		return "", "", goerrors.New("multiple input sources specified")
	}
	if count == 0 {
		return "", "", goerrors.New("no input provided")
	}

	if stdinSet {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "", nil
	}

	if fileProvided {
		data, err := os.ReadFile(ctx.Arg(0))
		if err != nil {
			return "", "", err
		}
		return string(data), ctx.Arg(0), nil
	}

	return ctx.String("code"), "", nil
}

// parseProgram reads the input selected by the command flags and parses it.
func parseProgram(ctx *cli.Context) (*program.Program, string, error) {
	configureLogging(ctx)

	source, filename, err := getSource(ctx)
	if err != nil {
		return nil, "", err
	}

	var opts []quill.Option
	if filename != "" {
		opts = append(opts, quill.WithFilename(filename))
	}

	start := time.Now()
	p, err := quill.Parse(ctx.Context(), source, opts...)
	if err != nil {
		return nil, filename, formatQuilError(ctx, err)
	}
	log.Debug().
		Str("file", displayName(filename)).
		Int("items", p.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("parsed")
	return p, filename, nil
}

func displayName(filename string) string {
	if filename == "" {
		return "<stdin>"
	}
	return filename
}

// formatQuilError renders parse and validation errors with source context
// when the error supports it.
func formatQuilError(ctx *cli.Context, err error) error {
	useColor := !ctx.Bool("no-color") && color.ShouldColorize(os.Stderr)
	formatter := errors.NewFormatter(useColor)

	if formattable, ok := err.(errors.FormattableError); ok {
		formatted := formattable.ToFormatted()
		return goerrors.New(formatter.Format(formatted))
	}

	return err
}

func configureLogging(ctx *cli.Context) {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	if ctx.Bool("no-color") || !isTerminalIO() {
		w.NoColor = true
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	if ctx.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

func isTerminalIO() bool {
	stdout := os.Stdout.Fd()
	return isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
}
