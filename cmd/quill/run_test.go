package main

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/quill"
	"github.com/deepnoodle-ai/wonton/assert"
)

func TestSummarizeProgram(t *testing.T) {
	src := "DECLARE ro BIT[2]\n" +
		"DEFFRAME 0 \"rf\":\n" +
		"\tSAMPLE-RATE: 1.0\n" +
		"DEFCAL X q:\n" +
		"\tNOP\n" +
		"H 0\n" +
		"CNOT 0 1\n" +
		"MEASURE 0 ro[0]\n" +
		"MEASURE 1 ro[1]\n" +
		"LABEL @end\n"
	p, err := quill.Parse(context.Background(), src)
	assert.Nil(t, err)

	summary := summarizeProgram("teleport.quil", p)
	assert.Equal(t, summary.File, "teleport.quil")
	assert.Equal(t, summary.Items, 8)
	assert.Equal(t, summary.Instructions, 5)
	assert.Equal(t, summary.Definitions, 3)
	assert.Equal(t, summary.MemoryRegions, []RegionSummary{
		{Name: "ro", Type: "BIT", Size: 2},
	})
	assert.Equal(t, summary.Labels, []string{"end"})
	assert.Equal(t, summary.Frames, []string{`0 "rf"`})
	assert.Equal(t, summary.Calibrations, 1)
	assert.Equal(t, summary.Findings, 0)
}

func TestSummarizeProgramMinimal(t *testing.T) {
	p, err := quill.Parse(context.Background(), "H 0")
	assert.Nil(t, err)

	summary := summarizeProgram("<stdin>", p)
	assert.Equal(t, summary.Items, 1)
	assert.Equal(t, summary.Instructions, 1)
	assert.Equal(t, summary.Definitions, 0)
	assert.Len(t, summary.MemoryRegions, 0)
	assert.Len(t, summary.Gates, 0)
	assert.Equal(t, summary.Findings, 0)
}

func TestSummarizeProgramFindings(t *testing.T) {
	p, err := quill.Parse(context.Background(), "JUMP @nowhere")
	assert.Nil(t, err)

	summary := summarizeProgram("<stdin>", p)
	assert.Equal(t, summary.Findings, 1)
}
