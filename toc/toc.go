// Package toc builds the hierarchical table of contents from the flat,
// ordered entry sequence the builder accumulates.
package toc

import (
	"strings"

	"epb/common"
)

// Entry is one flat input row: a display title, a target inside the book
// (path, optionally with a #fragment) and a nesting level. An entry
// without a title is excluded from the rendered tree but still
// participates in level tracking, so documents left out of the table of
// contents do not break the nesting of their neighbors.
type Entry struct {
	Title  string
	Target string
	Level  int
}

// Node is one rendered table-of-contents position.
type Node struct {
	Title    string
	Target   string
	Children []*Node
}

// Build assembles the entry forest with a stack of open nodes. Levels
// are relative, not absolute: the first entry is always a root, an entry
// deeper than its predecessor opens a subtree under it, and an entry at
// or above an open ancestor's level closes subtrees back to that
// ancestor. Level gaps wider than one are accepted and never create
// empty intermediate nodes.
//
// resolve, when non-nil, reports whether a target path (fragment
// stripped) is registered; an entry with an unknown target fails the
// build.
func Build(entries []Entry, resolve func(path string) bool) ([]*Node, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	// Full capacity up front: node pointers into the arena must stay
	// valid, the backing array can never reallocate.
	arena := make([]Node, 0, len(entries))
	// Open nodes, outermost first. arena index -1 marks an untitled
	// entry that tracks levels without owning a node.
	type open struct {
		arena int
		level int
	}
	stack := make([]open, 0, 8)
	var roots []*Node

	for _, e := range entries {
		if resolve != nil {
			p := e.Target
			if i := strings.IndexByte(p, '#'); i >= 0 {
				p = p[:i]
			}
			if !resolve(p) {
				return nil, common.Validationf("toc entry %q targets unregistered path %q", e.Title, p)
			}
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= e.Level {
			stack = stack[:len(stack)-1]
		}

		idx := -1
		if e.Title != "" {
			arena = append(arena, Node{Title: e.Title, Target: e.Target})
			idx = len(arena) - 1

			parent := -1
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].arena >= 0 {
					parent = stack[i].arena
					break
				}
			}
			if parent >= 0 {
				arena[parent].Children = append(arena[parent].Children, &arena[idx])
			} else {
				roots = append(roots, &arena[idx])
			}
		}
		stack = append(stack, open{arena: idx, level: e.Level})
	}
	return roots, nil
}

// Depth returns the maximum nesting depth of the forest. An empty forest
// has depth 0, a flat one has depth 1.
func Depth(forest []*Node) int {
	depth := 0
	for _, n := range forest {
		if d := Depth(n.Children) + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// Count returns the number of nodes in the forest.
func Count(forest []*Node) int {
	total := 0
	for _, n := range forest {
		total += 1 + Count(n.Children)
	}
	return total
}
