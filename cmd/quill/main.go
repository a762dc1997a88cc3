package main

import (
	"os"

	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/deepnoodle-ai/wonton/color"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	app := cli.New("quill").
		Description("Parse and analyze Quil quantum programs").
		Version(version).
		AddCompletionCommand()

	// Global flags
	app.GlobalFlags(
		cli.String("code", "c").Help("Quil source to process"),
		cli.Bool("stdin", "").Help("Read source from stdin"),
		cli.Bool("no-color", "").Env("NO_COLOR").Help("Disable colored output"),
		cli.Bool("debug", "").Help("Enable debug logging"),
	)

	// Root command: prints a program overview
	app.Main().
		Args("file?").
		Flags(
			cli.String("output", "o").Enum("json", "text").Help("Output format"),
		).
		Run(runHandler)

	// Version command with JSON support
	app.Command("version").
		Description("Print version information").
		Flags(
			cli.String("output", "o").Enum("json", "text").Help("Output format"),
		).
		Run(versionHandler)

	// Parse command
	app.Command("parse").
		Alias("p").
		Description("Display the parsed form of a Quil program").
		Args("file?").
		Flags(
			cli.String("code", "c").Help("Quil source to parse"),
			cli.Bool("stdin", "").Help("Read source from stdin"),
			cli.String("output", "o").Enum("json", "text").Help("Output format"),
		).
		Run(parseHandler)

	// Check command
	app.Command("check").
		Description("Check a Quil program for semantic problems").
		Args("file?").
		Flags(
			cli.String("code", "c").Help("Quil source to check"),
			cli.Bool("stdin", "").Help("Read source from stdin"),
			cli.String("output", "o").Enum("json", "text").Help("Output format"),
		).
		Run(checkHandler)

	// Format command
	app.Command("fmt").
		Alias("f").
		Description("Rewrite a Quil program in canonical form").
		Args("file?").
		Flags(
			cli.String("code", "c").Help("Quil source to format"),
			cli.Bool("stdin", "").Help("Read source from stdin"),
			cli.Bool("write", "w").Help("Write result to source file"),
		).
		Run(fmtHandler)

	// Blocks command
	app.Command("blocks").
		Description("Display the basic blocks of a Quil program").
		Args("file?").
		Flags(
			cli.String("code", "c").Help("Quil source to analyze"),
			cli.Bool("stdin", "").Help("Read source from stdin"),
			cli.String("output", "o").Enum("json", "text").Help("Output format"),
		).
		Run(blocksHandler)

	// Graph command
	app.Command("graph").
		Description("Display instruction dependencies within basic blocks").
		Args("file?").
		Flags(
			cli.String("code", "c").Help("Quil source to analyze"),
			cli.Bool("stdin", "").Help("Read source from stdin"),
			cli.String("block", "b").Help("Limit output to one block"),
			cli.String("output", "o").Enum("dot", "json", "text").Help("Output format"),
		).
		Run(graphHandler)

	if err := app.Execute(); err != nil {
		if cli.IsHelpRequested(err) {
			return
		}
		printError(err.Error())
		os.Exit(cli.GetExitCode(err))
	}
}

func printError(msg string) {
	if color.ShouldColorize(os.Stderr) {
		msg = color.Red.Apply(msg)
	}
	os.Stderr.WriteString(msg + "\n")
}
