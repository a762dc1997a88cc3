package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/deepnoodle-ai/wonton/color"
	"github.com/deepnoodle-ai/wonton/tui"
	"github.com/hokaccha/go-prettyjson"
)

// formatJSON marshals a result for display, with syntax coloring when the
// output is a color-capable terminal.
func formatJSON(result any, noColor bool) ([]byte, error) {
	if noColor || !color.ShouldColorize(os.Stdout) {
		return json.MarshalIndent(result, "", "  ")
	}
	return prettyjson.Marshal(result)
}

func printJSON(ctx *cli.Context, result any) error {
	data, err := formatJSON(result, ctx.Bool("no-color"))
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// printLine prints a tui.View followed by a newline
func printLine(view tui.View) {
	tui.Print(view)
	fmt.Println()
}
