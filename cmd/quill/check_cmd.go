package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/deepnoodle-ai/quill/errors"
	"github.com/deepnoodle-ai/quill/program"
	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/deepnoodle-ai/wonton/color"
	"github.com/deepnoodle-ai/wonton/tui"
)

// Finding is one validation problem in the JSON report
type Finding struct {
	Code    string `json:"code"`
	Kind    string `json:"kind"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// CheckReport is the JSON output of the check command
type CheckReport struct {
	File     string    `json:"file"`
	Findings []Finding `json:"findings"`
	Count    int       `json:"count"`
}

func checkHandler(ctx *cli.Context) error {
	p, filename, err := parseProgram(ctx)
	if err != nil {
		return err
	}

	findings := p.Validate()

	if strings.ToLower(ctx.String("output")) == "json" {
		if err := printJSON(ctx, buildCheckReport(displayName(filename), findings)); err != nil {
			return err
		}
	} else {
		printFindings(ctx, displayName(filename), findings)
	}

	if len(findings) > 0 {
		os.Exit(1)
	}
	return nil
}

func buildCheckReport(filename string, findings []program.ValidationError) CheckReport {
	report := CheckReport{
		File:     filename,
		Findings: []Finding{},
		Count:    len(findings),
	}
	for i := range findings {
		f := &findings[i]
		loc := f.Location()
		report.Findings = append(report.Findings, Finding{
			Code:    string(f.Code()),
			Kind:    f.Kind.String(),
			Line:    loc.Line,
			Column:  loc.Column,
			Message: f.Message,
			Hint:    f.Hint,
		})
	}
	return report
}

func printFindings(ctx *cli.Context, filename string, findings []program.ValidationError) {
	okStyle := tui.NewStyle().WithFgRGB(tui.RGB{R: 100, G: 220, B: 100})
	fileStyle := tui.NewStyle().WithFgRGB(tui.RGB{R: 100, G: 200, B: 255})

	if len(findings) == 0 {
		printLine(tui.Group(
			tui.Text("%s: ", filename).Style(fileStyle),
			tui.Text("OK").Style(okStyle),
		))
		return
	}

	useColor := !ctx.Bool("no-color") && color.ShouldColorize(os.Stdout)
	formatter := errors.NewFormatter(useColor)
	formatted := make([]*errors.FormattedError, 0, len(findings))
	for i := range findings {
		formatted = append(formatted, findings[i].ToFormatted())
	}
	fmt.Print(formatter.FormatMultiple(formatted))

	fmt.Println()
	printLine(tui.Text("%d problem(s) found", len(findings)).Style(errorStyle))
}
