package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "empty", KindEmpty.String())
	assert.Equal(t, "pressable", KindPressable.String())
	assert.Equal(t, "view", KindView.String())
	assert.Equal(t, "image", KindImage.String())
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestFlatten(t *testing.T) {
	base := Style{"padding": "12", "flexDirection": "row"}
	overlay := Style{"padding": "4"}

	got := Flatten(base, nil, overlay)

	assert.Equal(t, Style{"padding": "4", "flexDirection": "row"}, got)
	assert.Equal(t, "12", base["padding"], "inputs are not modified")
	assert.NotNil(t, Flatten())
}

func TestStyle_Keys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Style{"c": "", "a": "", "b": ""}.Keys())
}

func TestNode_WalkAndFind(t *testing.T) {
	leaf := &Node{Kind: KindText, Text: "leaf", Attrs: map[string]string{AttrRegion: RegionTitle}}
	tree := &Node{
		Kind: KindView,
		Children: []*Node{
			{Kind: KindImage},
			{Kind: KindView, Children: []*Node{leaf}},
		},
	}

	var depths []int
	tree.Walk(func(_ *Node, depth int) bool {
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []int{0, 1, 1, 2}, depths)

	assert.Same(t, leaf, tree.FindRegion(RegionTitle))
	assert.Nil(t, tree.FindRegion(RegionDescription))

	var visited int
	tree.Walk(func(n *Node, _ int) bool {
		visited++
		return n == tree
	})
	assert.Equal(t, 3, visited, "returning false skips children")
}

func TestNode_NilSafety(t *testing.T) {
	var n *Node

	assert.True(t, n.IsEmpty())
	assert.Equal(t, "", n.Attr("x"))
	assert.Nil(t, n.Find(func(*Node) bool { return true }))
}
