// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package buildcontext

import (
	"sort"
	"strings"
)

// TreeTruncatedMarker is appended (after the current prefix) when the line cap is hit.
const TreeTruncatedMarker = "... (truncated)"

// trieNode is either a *dirNode or a *fileNode.
type trieNode interface {
	label() string
}

// dirNode is a directory with at least one child.
type dirNode struct {
	name     string
	children map[string]trieNode
}

// fileNode is a leaf.
type fileNode struct {
	name string
}

func (d *dirNode) label() string  { return d.name }
func (f *fileNode) label() string { return f.name }

func newDirNode(name string) *dirNode {
	return &dirNode{name: name, children: make(map[string]trieNode)}
}

// buildTrie inserts every path segment by segment.
func buildTrie(paths []string) *dirNode {
	root := newDirNode(".")
	for _, p := range paths {
		parts := strings.Split(strings.Trim(p, "/"), "/")
		current := root
		for i, part := range parts {
			if part == "" {
				continue
			}
			if i == len(parts)-1 {
				if _, exists := current.children[part]; !exists {
					current.children[part] = &fileNode{name: part}
				}
				break
			}
			next, ok := current.children[part].(*dirNode)
			if !ok {
				// also replaces a leaf that turns out to have children
				next = newDirNode(part)
				current.children[part] = next
			}
			current = next
		}
	}
	return root
}

// sorted returns files first, then directories, each alphabetical.
func (d *dirNode) sorted() []trieNode {
	nodes := make([]trieNode, 0, len(d.children))
	for _, child := range d.children {
		nodes = append(nodes, child)
	}
	sort.Slice(nodes, func(i, j int) bool {
		_, iDir := nodes[i].(*dirNode)
		_, jDir := nodes[j].(*dirNode)
		if iDir != jDir {
			return !iDir
		}
		return nodes[i].label() < nodes[j].label()
	})
	return nodes
}

type treeWriter struct {
	lines   []string
	lineCap int
}

// writeTo renders d's children. It returns false once the cap stopped rendering.
func (w *treeWriter) writeTo(d *dirNode, prefix string) bool {
	children := d.sorted()
	for i, child := range children {
		if len(w.lines) >= w.lineCap {
			w.lines = append(w.lines, prefix+TreeTruncatedMarker)
			return false
		}

		isLast := i == len(children)-1
		connector := "├── "
		if isLast {
			connector = "└── "
		}
		w.lines = append(w.lines, prefix+connector+child.label())

		if sub, ok := child.(*dirNode); ok {
			newPrefix := prefix + "│   "
			if isLast {
				newPrefix = prefix + "    "
			}
			if !w.writeTo(sub, newPrefix) {
				return false
			}
		}
	}
	return true
}

// RenderTree draws paths as a box-drawing tree of at most lineCap lines, plus
// one truncation marker line when the cap is reached. A non-positive lineCap
// means DefaultTreeLineCap.
func RenderTree(paths []string, lineCap int) string {
	if lineCap <= 0 {
		lineCap = DefaultTreeLineCap
	}
	w := &treeWriter{lineCap: lineCap}
	w.writeTo(buildTrie(paths), "")
	return strings.Join(w.lines, "\n")
}
