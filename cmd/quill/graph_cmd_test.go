package main

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/quill"
	"github.com/deepnoodle-ai/wonton/assert"
)

func TestGraphInfos(t *testing.T) {
	src := "DECLARE ro BIT[1]\nH 0\nCNOT 0 1\nMEASURE 0 ro[0]\n"
	p, err := quill.Parse(context.Background(), src)
	assert.Nil(t, err)

	infos := graphInfos(p, p.BasicBlocks())
	assert.Len(t, infos, 1)

	info := infos[0]
	assert.Equal(t, info.Block, "block_0")
	assert.Equal(t, info.Nodes, []string{"H 0", "CNOT 0 1", "MEASURE 0 ro[0]"})
	assert.Equal(t, info.Edges, [][2]int{{0, 1}, {1, 2}})
	assert.Equal(t, info.Order, []int{0, 1, 2})
}

func TestGraphInfosNoEdges(t *testing.T) {
	src := "X 0\n"
	p, err := quill.Parse(context.Background(), src)
	assert.Nil(t, err)

	infos := graphInfos(p, p.BasicBlocks())
	assert.Len(t, infos, 1)

	// Serializes as an empty list, not null
	assert.NotNil(t, infos[0].Edges)
	assert.Len(t, infos[0].Edges, 0)
	assert.Equal(t, infos[0].Order, []int{0})
}

func TestSelectBlock(t *testing.T) {
	src := "H 0\nJUMP @end\nLABEL @end\nX 1\n"
	p, err := quill.Parse(context.Background(), src)
	assert.Nil(t, err)

	blocks := p.BasicBlocks()
	assert.Len(t, blocks, 2)

	selected, err := selectBlock(blocks, "end")
	assert.Nil(t, err)
	assert.Len(t, selected, 1)
	assert.Equal(t, selected[0].Name, "end")

	_, err = selectBlock(blocks, "nope")
	assert.NotNil(t, err)
	assert.True(t, contains(err.Error(), `no block named "nope"`))
	assert.True(t, contains(err.Error(), "block_0, end"))
}
