package main

import (
	"context"
	"fmt"
	"os"

	"github.com/deepnoodle-ai/quill"
	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/rs/zerolog/log"
)

func fmtHandler(ctx *cli.Context) error {
	configureLogging(ctx)
	write := ctx.Bool("write")

	source, filePath, err := getSource(ctx)
	if err != nil {
		return err
	}

	formatted, err := formatQuil(ctx.Context(), source, filePath)
	if err != nil {
		return formatQuilError(ctx, err)
	}

	if write && filePath != "" {
		if err := os.WriteFile(filePath, []byte(formatted), 0o644); err != nil {
			return err
		}
		log.Debug().Str("file", filePath).Msg("rewrote file in canonical form")
		return nil
	}

	fmt.Print(formatted)
	return nil
}

// formatQuil parses source and renders it in canonical form.
func formatQuil(ctx context.Context, source, filename string) (string, error) {
	var opts []quill.Option
	if filename != "" {
		opts = append(opts, quill.WithFilename(filename))
	}
	p, err := quill.Parse(ctx, source, opts...)
	if err != nil {
		return "", err
	}
	return p.Text(), nil
}
