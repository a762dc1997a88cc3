package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/program"
	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/deepnoodle-ai/wonton/tui"
)

// RegionSummary describes one declared memory region.
type RegionSummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size uint64 `json:"size"`
}

// ProgramSummary is the overview printed by the root command.
type ProgramSummary struct {
	File          string          `json:"file,omitempty"`
	Items         int             `json:"items"`
	Instructions  int             `json:"instructions"`
	Definitions   int             `json:"definitions"`
	MemoryRegions []RegionSummary `json:"memory_regions,omitempty"`
	Labels        []string        `json:"labels,omitempty"`
	Gates         []string        `json:"gates,omitempty"`
	Circuits      []string        `json:"circuits,omitempty"`
	Waveforms     []string        `json:"waveforms,omitempty"`
	Frames        []string        `json:"frames,omitempty"`
	Calibrations  int             `json:"calibrations,omitempty"`
	Findings      int             `json:"findings"`
}

func runHandler(ctx *cli.Context) error {
	p, filename, err := parseProgram(ctx)
	if err != nil {
		return err
	}

	summary := summarizeProgram(displayName(filename), p)

	if strings.ToLower(ctx.String("output")) == "json" {
		return printJSON(ctx, summary)
	}
	printSummary(summary)
	return nil
}

func summarizeProgram(filename string, p *program.Program) ProgramSummary {
	summary := ProgramSummary{
		File:         filename,
		Items:        p.Len(),
		Instructions: len(p.Instructions()),
		Definitions:  len(p.Definitions()),
		Findings:     len(p.Validate()),
	}

	for _, def := range p.Definitions() {
		switch d := def.(type) {
		case *ast.Declaration:
			summary.MemoryRegions = append(summary.MemoryRegions, RegionSummary{
				Name: d.Name,
				Type: string(d.Type),
				Size: d.Size,
			})
		case *ast.GateDefinition:
			summary.Gates = append(summary.Gates, d.Name)
		case *ast.CircuitDefinition:
			summary.Circuits = append(summary.Circuits, d.Name)
		case *ast.WaveformDefinition:
			summary.Waveforms = append(summary.Waveforms, d.Name)
		}
	}
	for _, label := range p.Labels() {
		summary.Labels = append(summary.Labels, label.Name)
	}
	for _, frame := range p.Frames() {
		summary.Frames = append(summary.Frames, frame.Frame.String())
	}
	summary.Calibrations = len(p.Calibrations()) + len(p.MeasureCalibrations())

	return summary
}

func printSummary(summary ProgramSummary) {
	printLine(tui.Text("%s", summary.File).Style(nodeStyle))
	printSummaryCount("items", summary.Items)
	printSummaryCount("instructions", summary.Instructions)
	printSummaryCount("definitions", summary.Definitions)

	for _, region := range summary.MemoryRegions {
		printSummaryEntry("memory", fmt.Sprintf("%s %s[%d]", region.Name, region.Type, region.Size))
	}
	printSummaryList("labels", summary.Labels)
	printSummaryList("gates", summary.Gates)
	printSummaryList("circuits", summary.Circuits)
	printSummaryList("waveforms", summary.Waveforms)
	printSummaryList("frames", summary.Frames)
	if summary.Calibrations > 0 {
		printSummaryCount("calibrations", summary.Calibrations)
	}

	if summary.Findings > 0 {
		printLine(tui.Group(
			tui.Text("  %-14s", "findings:").Style(fieldStyle),
			tui.Text("%d (run 'quill check' for details)", summary.Findings).Style(errorStyle),
		))
	}
}

func printSummaryCount(name string, count int) {
	printLine(tui.Group(
		tui.Text("  %-14s", name+":").Style(fieldStyle),
		tui.Text("%d", count).Style(literalStyle),
	))
}

func printSummaryEntry(name, value string) {
	printLine(tui.Group(
		tui.Text("  %-14s", name+":").Style(fieldStyle),
		tui.Text("%s", value).Style(valueStyle),
	))
}

func printSummaryList(name string, values []string) {
	if len(values) == 0 {
		return
	}
	printSummaryEntry(name, strings.Join(values, ", "))
}

func versionHandler(ctx *cli.Context) error {
	format := strings.ToLower(ctx.String("output"))
	if format == "json" {
		info, err := json.MarshalIndent(map[string]any{
			"version": version,
			"commit":  commit,
			"date":    date,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(info))
	} else {
		fmt.Println(version)
	}
	return nil
}
