package main

import (
	"strings"

	"github.com/deepnoodle-ai/quill/program"
	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/deepnoodle-ai/wonton/tui"
)

// BlockInfo summarizes one basic block in the JSON output
type BlockInfo struct {
	Name         string   `json:"name"`
	Label        string   `json:"label,omitempty"`
	Instructions []string `json:"instructions"`
	Terminator   string   `json:"terminator,omitempty"`
}

func blocksHandler(ctx *cli.Context) error {
	p, _, err := parseProgram(ctx)
	if err != nil {
		return err
	}

	blocks := p.BasicBlocks()

	if strings.ToLower(ctx.String("output")) == "json" {
		return printJSON(ctx, blockInfos(blocks))
	}

	printBlocks(blocks)
	return nil
}

func blockInfos(blocks []program.BasicBlock) []BlockInfo {
	infos := make([]BlockInfo, 0, len(blocks))
	for _, b := range blocks {
		info := BlockInfo{Name: b.Name, Instructions: []string{}}
		if b.Label != nil {
			info.Label = "@" + b.Label.Name
		}
		for _, inst := range b.Instructions {
			info.Instructions = append(info.Instructions, inst.String())
		}
		if b.Terminator != nil {
			info.Terminator = b.Terminator.String()
		}
		infos = append(infos, info)
	}
	return infos
}

func printBlocks(blocks []program.BasicBlock) {
	if len(blocks) == 0 {
		printLine(tui.Text("no instructions").Style(mutedStyle))
		return
	}

	for i, b := range blocks {
		if i > 0 {
			printLine(tui.Text(""))
		}
		printLine(tui.Group(
			tui.Text("%s", b.Name).Style(nodeStyle),
			tui.Text(":").Style(mutedStyle),
		))
		for j, inst := range b.Instructions {
			printLine(tui.Group(
				tui.Text("  %3d: ", j).Style(mutedStyle),
				tui.Text("%s", inst.String()),
			))
		}
		if b.Terminator != nil {
			printLine(tui.Group(
				tui.Text("  terminator: ").Style(fieldStyle),
				tui.Text("%s", b.Terminator.String()).Style(valueStyle),
			))
		}
	}
}
