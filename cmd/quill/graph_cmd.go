package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/quill/program"
	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/deepnoodle-ai/wonton/tui"
)

// GraphInfo is the dependency graph of one basic block in the JSON output
type GraphInfo struct {
	Block string   `json:"block"`
	Nodes []string `json:"nodes"`
	Edges [][2]int `json:"edges"`
	Order []int    `json:"order"`
}

func graphHandler(ctx *cli.Context) error {
	p, _, err := parseProgram(ctx)
	if err != nil {
		return err
	}

	blocks := p.BasicBlocks()
	if name := ctx.String("block"); name != "" {
		selected, err := selectBlock(blocks, name)
		if err != nil {
			return err
		}
		blocks = selected
	}

	switch strings.ToLower(ctx.String("output")) {
	case "json":
		return printJSON(ctx, graphInfos(p, blocks))
	case "text":
		printGraphs(p, blocks)
		return nil
	default:
		// DOT is the default: pipe it straight into graphviz
		for _, b := range blocks {
			fmt.Print(p.DependencyGraph(b).DOT(b))
		}
		return nil
	}
}

func selectBlock(blocks []program.BasicBlock, name string) ([]program.BasicBlock, error) {
	for _, b := range blocks {
		if b.Name == name {
			return []program.BasicBlock{b}, nil
		}
	}
	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = b.Name
	}
	return nil, fmt.Errorf("no block named %q (have: %s)", name, strings.Join(names, ", "))
}

func graphInfos(p *program.Program, blocks []program.BasicBlock) []GraphInfo {
	infos := make([]GraphInfo, 0, len(blocks))
	for _, b := range blocks {
		g := p.DependencyGraph(b)
		edges := g.Edges()
		if edges == nil {
			edges = [][2]int{}
		}
		info := GraphInfo{
			Block: b.Name,
			Nodes: []string{},
			Edges: edges,
			Order: g.TopologicalOrder(),
		}
		for _, inst := range b.Instructions {
			info.Nodes = append(info.Nodes, inst.String())
		}
		infos = append(infos, info)
	}
	return infos
}

func printGraphs(p *program.Program, blocks []program.BasicBlock) {
	for i, b := range blocks {
		if i > 0 {
			printLine(tui.Text(""))
		}
		printLine(tui.Group(
			tui.Text("%s", b.Name).Style(nodeStyle),
			tui.Text(":").Style(mutedStyle),
		))
		g := p.DependencyGraph(b)
		for j, inst := range b.Instructions {
			line := tui.Group(
				tui.Text("  %3d: ", j).Style(mutedStyle),
				tui.Text("%s", inst.String()),
			)
			if targets := g.Neighbors(j); len(targets) > 0 {
				entries := make([]string, len(targets))
				for k, t := range targets {
					entries[k] = strconv.Itoa(t)
				}
				line = tui.Group(
					line,
					tui.Text(" -> %s", strings.Join(entries, ", ")).Style(fieldStyle),
				)
			}
			printLine(line)
		}
	}
}
