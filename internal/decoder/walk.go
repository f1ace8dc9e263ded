package decoder

import (
	"github.com/retroenv/retrolift/internal/bits"
)

// Walk visits the tree depth first in dispatch order. Nodes shared between
// several parents are visited once per parent. Returning false from visit
// skips the children of the node.
func Walk[W bits.Word, D Context[W, I, O], I any, O comparable](root Decoder[W, D, I, O],
	visit func(node Decoder[W, D, I, O], depth int) bool) {

	walk(root, 0, visit)
}

func walk[W bits.Word, D Context[W, I, O], I any, O comparable](node Decoder[W, D, I, O], depth int,
	visit func(node Decoder[W, D, I, O], depth int) bool) {

	if !visit(node, depth) {
		return
	}
	for _, child := range node.children() {
		walk(child, depth+1, visit)
	}
}

// Stats summarizes a decoder tree.
type Stats struct {
	Nodes     int // distinct nodes
	Terminals int // distinct terminal nodes
	Masks     int // distinct mask nodes
	Conds     int // distinct conditional nodes
	Stubs     int // distinct stub nodes
	MaxDepth  int
}

// Collect returns statistics over the distinct nodes of a tree.
func Collect[W bits.Word, D Context[W, I, O], I any, O comparable](root Decoder[W, D, I, O]) Stats {
	var stats Stats
	seen := make(map[Decoder[W, D, I, O]]struct{})

	Walk(root, func(node Decoder[W, D, I, O], depth int) bool {
		stats.MaxDepth = max(stats.MaxDepth, depth)
		if _, ok := seen[node]; ok {
			return false
		}
		seen[node] = struct{}{}
		stats.Nodes++

		switch node.(type) {
		case *InstrDecoder[W, D, I, O]:
			stats.Terminals++
		case *MaskDecoder[W, D, I, O]:
			stats.Masks++
		case *CondDecoder[W, D, I, O]:
			stats.Conds++
		case *NyiDecoder[W, D, I, O]:
			stats.Stubs++
		}
		return true
	})
	return stats
}
